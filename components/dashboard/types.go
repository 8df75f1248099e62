package dashboard

// Widget areas rendered by the admin pages.
const (
	AreaOverview  = "commerce.dashboard.main"
	AreaAnalytics = "commerce.analytics.main"
)

// ProviderRegistry stores widget definitions and the providers that fill them.
type ProviderRegistry interface {
	RegisterDefinition(def WidgetDefinition) error
	RegisterProvider(code string, provider Provider) error
	Definition(code string) (WidgetDefinition, bool)
	Provider(code string) (Provider, bool)
	Definitions(area string) []WidgetDefinition
}

// WidgetDefinition describes one card on a page.
type WidgetDefinition struct {
	Code        string
	Name        string
	Description string
	Area        string
	// Template is the partial that renders the widget, relative to the
	// template root and without extension.
	Template      string
	Configuration map[string]any
}

// ViewContext carries per-request inputs that shape widget output.
type ViewContext struct {
	ChartTheme string
	Params     map[string]string
}

// Param returns a request parameter or "".
func (v ViewContext) Param(name string) string {
	if v.Params == nil {
		return ""
	}
	return v.Params[name]
}

// ResolvedWidget is a definition with the data its provider returned. Err is
// set instead of Data when the provider failed.
type ResolvedWidget struct {
	Definition WidgetDefinition
	Data       WidgetData
	Err        error
}
