package dashboard

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "300px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// ChartSpec is the data and styling of a single chart.
type ChartSpec struct {
	Type     string        `json:"type"`
	Title    string        `json:"title,omitempty"`
	Subtitle string        `json:"subtitle,omitempty"`
	XAxis    []string      `json:"x_axis,omitempty"`
	Series   []ChartSeries `json:"series"`
	Colors   []string      `json:"colors,omitempty"`
	Smooth   bool          `json:"smooth,omitempty"`
}

// ChartSeries represents a set of values plotted for a given legend entry.
type ChartSeries struct {
	Name   string       `json:"name"`
	Points []ChartPoint `json:"points"`
}

// ChartPoint represents an individual value (optionally labeled).
type ChartPoint struct {
	Label string  `json:"label,omitempty"`
	Value float64 `json:"value"`
}

// ChartRenderer turns chart specs into standalone go-echarts HTML documents.
type ChartRenderer struct {
	cache      RenderCache
	theme      string
	assetsHost string
	height     string
}

// ChartRendererOption customizes renderer behavior.
type ChartRendererOption func(*ChartRenderer)

// WithChartCache injects a render cache. A nil cache disables caching.
func WithChartCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets the fallback theme (defaults to Westeros).
func WithChartTheme(theme string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.theme = theme
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.assetsHost = host
	}
}

// WithChartHeight overrides the chart canvas height.
func WithChartHeight(height string) ChartRendererOption {
	return func(r *ChartRenderer) {
		if height != "" {
			r.height = height
		}
	}
}

// NewChartRenderer builds a renderer backed by the shared chart cache.
func NewChartRenderer(options ...ChartRendererOption) *ChartRenderer {
	r := &ChartRenderer{
		cache:  sharedChartCache,
		theme:  types.ThemeWesteros,
		height: defaultChartHeight,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Render draws spec with the given theme; an empty theme uses the fallback.
func (r *ChartRenderer) Render(spec ChartSpec, theme string) (string, error) {
	spec.Type = strings.ToLower(spec.Type)
	if len(spec.Series) == 0 {
		return "", fmt.Errorf("chart series is required")
	}
	if theme == "" {
		theme = r.theme
	}
	renderFn := func() (string, error) {
		return r.render(spec, theme)
	}
	if r.cache == nil {
		return renderFn()
	}
	return r.cache.GetOrRender(ChartKey(spec, theme), renderFn)
}

func (r *ChartRenderer) render(spec ChartSpec, theme string) (string, error) {
	switch spec.Type {
	case "bar":
		bar := charts.NewBar()
		bar.SetGlobalOptions(r.globalChartOptions(spec, theme)...)
		bar.SetXAxis(spec.XAxis)
		for i, s := range spec.Series {
			bar.AddSeries(s.Name, toBarData(s.Points), seriesColor(spec.Colors, i)...)
		}
		return renderChart(bar)
	case "line":
		line := charts.NewLine()
		line.SetGlobalOptions(r.globalChartOptions(spec, theme)...)
		line.SetXAxis(spec.XAxis)
		for i, s := range spec.Series {
			line.AddSeries(s.Name, toLineData(s.Points), seriesColor(spec.Colors, i)...)
		}
		if spec.Smooth {
			line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		}
		return renderChart(line)
	case "pie":
		pie := charts.NewPie()
		pie.SetGlobalOptions(r.globalChartOptions(spec, theme)...)
		for _, s := range spec.Series {
			pie.AddSeries(s.Name, toPieData(s.Points, spec.Colors))
		}
		return renderChart(pie)
	default:
		return "", fmt.Errorf("unsupported chart type: %s", spec.Type)
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *ChartRenderer) globalChartOptions(spec ChartSpec, theme string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  theme,
		Width:  "100%",
		Height: r.height,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	global := []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: spec.Title, Subtitle: spec.Subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(spec.Type == "pie")}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
	return global
}

// seriesColor pins series i to the palette. The chart-level color option is
// ignored by go-echarts under a named theme, so colors go on the item style.
func seriesColor(palette []string, i int) []charts.SeriesOpts {
	if len(palette) == 0 {
		return nil
	}
	return []charts.SeriesOpts{charts.WithItemStyleOpts(opts.ItemStyle{Color: palette[i%len(palette)]})}
}

func toBarData(points []ChartPoint) []opts.BarData {
	data := make([]opts.BarData, len(points))
	for i, point := range points {
		data[i] = opts.BarData{
			Name:  point.Label,
			Value: point.Value,
		}
	}
	return data
}

func toLineData(points []ChartPoint) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		data[i] = opts.LineData{
			Name:  point.Label,
			Value: point.Value,
		}
	}
	return data
}

func toPieData(points []ChartPoint, palette []string) []opts.PieData {
	data := make([]opts.PieData, len(points))
	for i, point := range points {
		name := point.Label
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		data[i] = opts.PieData{
			Name:  name,
			Value: point.Value,
		}
		if len(palette) > 0 {
			data[i].ItemStyle = &opts.ItemStyle{Color: palette[i%len(palette)]}
		}
	}
	return data
}
