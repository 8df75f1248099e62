package shell

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveBreadcrumbsRoot(t *testing.T) {
	assert.Equal(t, []Breadcrumb{{Label: "Home", Href: "/", Current: true}}, DeriveBreadcrumbs("/"))
	assert.Equal(t, []Breadcrumb{{Label: "Home", Href: "/", Current: true}}, DeriveBreadcrumbs(""))
}

func TestDeriveBreadcrumbsNested(t *testing.T) {
	got := DeriveBreadcrumbs("/products/new")
	assert.Equal(t, []Breadcrumb{
		{Label: "Home", Href: "/"},
		{Label: "Products", Href: "/products"},
		{Label: "New", Href: "/products/new", Current: true},
	}, got)
}

func TestDeriveBreadcrumbsDropsEmptySegments(t *testing.T) {
	got := DeriveBreadcrumbs("//orders///recent/?page=2")
	require.Len(t, got, 3)
	assert.Equal(t, "Orders", got[1].Label)
	assert.Equal(t, "/orders", got[1].Href)
	assert.Equal(t, "Recent", got[2].Label)
	assert.Equal(t, "/orders/recent", got[2].Href)
	assert.True(t, got[2].Current)
}

func TestDeriveBreadcrumbsOnlyUppercasesFirstRune(t *testing.T) {
	got := DeriveBreadcrumbs("/order-items/élan")
	assert.Equal(t, "Order-items", got[1].Label)
	assert.Equal(t, "Élan", got[2].Label)
}

func TestMenuResolveExactMatch(t *testing.T) {
	menu := DefaultMenu()
	assert.Equal(t, "Commerce Admin", menu.Title)
	assert.Equal(t, []string{"/", "/products", "/orders", "/customers", "/analytics", "/settings"}, menu.Paths())

	active := func(path string) []string {
		var out []string
		for _, entry := range menu.Resolve(path) {
			if entry.Active {
				out = append(out, entry.Label)
			}
		}
		return out
	}
	assert.Equal(t, []string{"Dashboard"}, active("/"))
	assert.Equal(t, []string{"Products"}, active("/products"))
	assert.Equal(t, []string{"Products"}, active("/products/"))
	assert.Empty(t, active("/products/new"))

	item, ok := menu.Active("/settings?tab=1")
	require.True(t, ok)
	assert.Equal(t, "Settings", item.Label)
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/", NormalizePath(""))
	assert.Equal(t, "/", NormalizePath("///"))
	assert.Equal(t, "/orders", NormalizePath("orders/"))
	assert.Equal(t, "/orders", NormalizePath("/orders#top"))
}

type recordingTelemetry struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

func TestThemeStoreToggleTwiceRestores(t *testing.T) {
	telemetry := &recordingTelemetry{}
	store := NewThemeStore(ThemeLight, telemetry)
	ctx := context.Background()

	assert.Equal(t, ThemeDark, store.Toggle(ctx))
	assert.Equal(t, ThemeDark, store.Theme())
	assert.Equal(t, ThemeLight, store.Toggle(ctx))
	assert.Equal(t, ThemeLight, store.Theme())
	assert.Len(t, telemetry.events, 2)
}

func TestThemeStoreNormalizesInput(t *testing.T) {
	store := NewThemeStore("", nil)
	assert.Equal(t, ThemeLight, store.Theme())
	store.SetTheme(ThemeDark)
	assert.Equal(t, ThemeDark, store.Theme())
	store.SetTheme("sepia")
	assert.Equal(t, ThemeLight, store.Theme())
}

func TestThemeStoreConcurrentToggle(t *testing.T) {
	store := NewThemeStore(ThemeLight, nil)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Toggle(context.Background())
		}()
	}
	wg.Wait()
	assert.Equal(t, ThemeLight, store.Theme(), "an even number of toggles lands on the start")
}

func TestParseTheme(t *testing.T) {
	theme, err := ParseTheme(" Dark ")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)
	_, err = ParseTheme("blue")
	assert.Error(t, err)
}

func TestSelectTheme(t *testing.T) {
	light := Select(ThemeLight)
	assert.Equal(t, "", light.RootClass)
	assert.Equal(t, types.ThemeWesteros, light.ChartTheme)

	dark := Select(ThemeDark)
	assert.Equal(t, "dark", dark.RootClass)
	assert.Equal(t, types.ThemeChalk, dark.ChartTheme)

	inline := dark.CSSVariablesInline()
	assert.True(t, strings.HasPrefix(inline, "--background: 240 10% 3.9%;"), inline)
	assert.Contains(t, dark.CSSVariables(), "--primary")
}
