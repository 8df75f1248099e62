package dashboard

import (
	"testing"
	"time"

	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCache struct {
	keys  []string
	inner *ChartCache
}

func (c *countingCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	c.keys = append(c.keys, key)
	return c.inner.GetOrRender(key, render)
}

func sampleSpec(kind string) ChartSpec {
	return ChartSpec{
		Type:  kind,
		XAxis: []string{"Jan", "Feb", "Mar"},
		Series: []ChartSeries{{Name: "Revenue", Points: []ChartPoint{
			{Label: "Jan", Value: 12000},
			{Label: "Feb", Value: 14500},
			{Label: "Mar", Value: 13200},
		}}},
		Colors: []string{"#8b5cf6"},
	}
}

func TestChartRendererSupportedTypes(t *testing.T) {
	t.Parallel()
	renderer := NewChartRenderer(WithChartCache(nil))
	for _, kind := range []string{"bar", "line", "pie", "LINE"} {
		html, err := renderer.Render(sampleSpec(kind), "")
		require.NoError(t, err, kind)
		assert.Contains(t, html, "echarts", kind)
		assert.Contains(t, html, "#8b5cf6", kind)
	}
}

func TestChartRendererCyclesPaletteAcrossSlicesAndSeries(t *testing.T) {
	t.Parallel()
	renderer := NewChartRenderer(WithChartCache(nil))

	pie := ChartSpec{
		Type: "pie",
		Series: []ChartSeries{{Name: "Sales", Points: []ChartPoint{
			{Label: "Apparel", Value: 40},
			{Label: "Electronics", Value: 35},
			{Label: "Home", Value: 25},
		}}},
		Colors: []string{"#22c55e", "#f97316"},
	}
	html, err := renderer.Render(pie, types.ThemeChalk)
	require.NoError(t, err)
	assert.Contains(t, html, "#22c55e")
	assert.Contains(t, html, "#f97316")

	bar := sampleSpec("bar")
	bar.Series = append(bar.Series, ChartSeries{Name: "Orders", Points: []ChartPoint{{Label: "Jan", Value: 90}}})
	bar.Colors = []string{"#0ea5e9", "#e11d48"}
	html, err = renderer.Render(bar, types.ThemeWesteros)
	require.NoError(t, err)
	assert.Contains(t, html, "#0ea5e9")
	assert.Contains(t, html, "#e11d48")
}

func TestChartRendererRejectsInvalidSpecs(t *testing.T) {
	t.Parallel()
	renderer := NewChartRenderer(WithChartCache(nil))
	_, err := renderer.Render(sampleSpec("bubble"), "")
	assert.ErrorContains(t, err, "unsupported chart type")

	_, err = renderer.Render(ChartSpec{Type: "bar"}, "")
	assert.ErrorContains(t, err, "series is required")
}

func TestChartRendererCachesPerTheme(t *testing.T) {
	t.Parallel()
	cache := &countingCache{inner: NewChartCache(time.Minute)}
	renderer := NewChartRenderer(WithChartCache(cache), WithChartAssetsHost("https://cdn.example.com/echarts/"))

	light, err := renderer.Render(sampleSpec("line"), types.ThemeWesteros)
	require.NoError(t, err)
	again, err := renderer.Render(sampleSpec("line"), types.ThemeWesteros)
	require.NoError(t, err)
	dark, err := renderer.Render(sampleSpec("line"), types.ThemeChalk)
	require.NoError(t, err)

	assert.Equal(t, light, again)
	assert.Contains(t, light, "https://cdn.example.com/echarts/")
	require.Len(t, cache.keys, 3)
	assert.Equal(t, cache.keys[0], cache.keys[1])
	assert.NotEqual(t, cache.keys[0], cache.keys[2])
	assert.Contains(t, dark, types.ThemeChalk)
}

func TestChartRendererFallsBackToDefaultTheme(t *testing.T) {
	t.Parallel()
	cache := &countingCache{inner: NewChartCache(time.Minute)}
	renderer := NewChartRenderer(WithChartCache(cache), WithChartTheme(types.ThemeChalk))
	_, err := renderer.Render(sampleSpec("bar"), "")
	require.NoError(t, err)
	require.Len(t, cache.keys, 1)
	assert.Contains(t, cache.keys[0], "bar:"+types.ThemeChalk+":")
}
