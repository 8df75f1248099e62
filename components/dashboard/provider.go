package dashboard

import "context"

// Provider fetches data required to render a widget.
type Provider interface {
	Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error)
}

// ProviderFunc adapts a function into a Provider.
type ProviderFunc func(ctx context.Context, meta WidgetContext) (WidgetData, error)

func (fn ProviderFunc) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	return fn(ctx, meta)
}

// WidgetContext contains the metadata needed by providers.
type WidgetContext struct {
	Definition WidgetDefinition
	View       ViewContext
}

// WidgetData is an opaque payload passed to templates.
type WidgetData map[string]any
