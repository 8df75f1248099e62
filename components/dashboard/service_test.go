package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTelemetry struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingTelemetry) sink() TelemetryFunc {
	return func(_ context.Context, event string, _ map[string]any) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, event)
	}
}

func staticProvider(data WidgetData) Provider {
	return ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
		return data, nil
	})
}

func TestRegistryKeepsRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(WidgetDefinition{Code: "b", Area: AreaOverview}, staticProvider(nil)))
	require.NoError(t, reg.Register(WidgetDefinition{Code: "a", Area: AreaOverview}, staticProvider(nil)))
	require.NoError(t, reg.Register(WidgetDefinition{Code: "c", Area: AreaAnalytics}, staticProvider(nil)))
	// re-registering keeps the original slot
	require.NoError(t, reg.RegisterDefinition(WidgetDefinition{Code: "b", Name: "B", Area: AreaOverview}))

	defs := reg.Definitions(AreaOverview)
	require.Len(t, defs, 2)
	assert.Equal(t, "b", defs[0].Code)
	assert.Equal(t, "B", defs[0].Name)
	assert.Equal(t, "a", defs[1].Code)
	assert.Len(t, reg.Definitions(""), 3)
}

func TestRegistryRejectsIncompleteRegistrations(t *testing.T) {
	reg := NewRegistry()
	assert.Error(t, reg.RegisterDefinition(WidgetDefinition{Area: AreaOverview}))
	assert.Error(t, reg.RegisterDefinition(WidgetDefinition{Code: "x"}))
	assert.Error(t, reg.RegisterProvider("missing", staticProvider(nil)))
	require.NoError(t, reg.RegisterDefinition(WidgetDefinition{Code: "x", Area: AreaOverview}))
	assert.Error(t, reg.RegisterProvider("x", nil))
}

func TestResolveAreaRequiresArea(t *testing.T) {
	service := NewService(Options{})
	_, err := service.ResolveArea(context.Background(), "", ViewContext{})
	assert.ErrorIs(t, err, errInvalidArea)
}

func TestResolveAreaIsolatesProviderFailures(t *testing.T) {
	telemetry := &recordingTelemetry{}
	service := NewService(Options{Telemetry: telemetry.sink()})
	reg := service.Registry()
	require.NoError(t, reg.RegisterDefinition(WidgetDefinition{Code: "ok", Area: AreaOverview}))
	require.NoError(t, reg.RegisterProvider("ok", staticProvider(WidgetData{"value": 1})))
	require.NoError(t, reg.RegisterDefinition(WidgetDefinition{Code: "broken", Area: AreaOverview}))
	require.NoError(t, reg.RegisterProvider("broken", ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
		return nil, errors.New("boom")
	})))
	require.NoError(t, reg.RegisterDefinition(WidgetDefinition{Code: "orphan", Area: AreaOverview}))

	widgets, err := service.ResolveArea(context.Background(), AreaOverview, ViewContext{})
	require.NoError(t, err)
	require.Len(t, widgets, 3)

	assert.NoError(t, widgets[0].Err)
	assert.Equal(t, 1, widgets[0].Data["value"])
	assert.ErrorContains(t, widgets[1].Err, "boom")
	assert.ErrorIs(t, widgets[2].Err, errMissingProvider)

	assert.Equal(t, []string{
		EventProviderError,
		EventProviderError,
		EventAreaResolve,
	}, telemetry.events)
}

func TestResolveAreaPassesViewContext(t *testing.T) {
	service := NewService(Options{})
	var seen WidgetContext
	require.NoError(t, service.Registry().RegisterDefinition(WidgetDefinition{Code: "w", Name: "Widget", Area: AreaAnalytics}))
	require.NoError(t, service.Registry().RegisterProvider("w", ProviderFunc(func(_ context.Context, meta WidgetContext) (WidgetData, error) {
		seen = meta
		return WidgetData{}, nil
	})))

	view := ViewContext{ChartTheme: "chalk", Params: map[string]string{DateParam: "2025-03-01"}}
	_, err := service.ResolveArea(context.Background(), AreaAnalytics, view)
	require.NoError(t, err)
	assert.Equal(t, "Widget", seen.Definition.Name)
	assert.Equal(t, "chalk", seen.View.ChartTheme)
	assert.Equal(t, "2025-03-01", seen.View.Param(DateParam))
	assert.Equal(t, "", ViewContext{}.Param(DateParam))
}
