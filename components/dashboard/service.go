package dashboard

import (
	"context"
	"errors"
	"fmt"
)

var (
	errInvalidArea     = errors.New("dashboard: area code is required")
	errMissingProvider = errors.New("dashboard: widget has no provider")
)

// Options configures the dashboard Service.
type Options struct {
	Providers ProviderRegistry
	Telemetry Telemetry
}

// Service resolves page areas into rendered widget data.
type Service struct {
	opts Options
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Providers == nil {
		opts.Providers = NewRegistry()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{opts: opts}
}

// Registry exposes the provider registry for late registration.
func (s *Service) Registry() ProviderRegistry {
	return s.opts.Providers
}

// ResolveArea fetches every widget of an area. A failing provider does not
// fail the area; its widget carries Err instead and the failure is recorded.
func (s *Service) ResolveArea(ctx context.Context, area string, view ViewContext) ([]ResolvedWidget, error) {
	if area == "" {
		return nil, errInvalidArea
	}
	defs := s.opts.Providers.Definitions(area)
	out := make([]ResolvedWidget, 0, len(defs))
	failed := 0
	for _, def := range defs {
		resolved := ResolvedWidget{Definition: def}
		provider, ok := s.opts.Providers.Provider(def.Code)
		if !ok || provider == nil {
			resolved.Err = fmt.Errorf("%w: %s", errMissingProvider, def.Code)
		} else {
			data, err := provider.Fetch(ctx, WidgetContext{Definition: def, View: view})
			if err != nil {
				resolved.Err = fmt.Errorf("dashboard: widget %s: %w", def.Code, err)
			} else {
				resolved.Data = data
			}
		}
		if resolved.Err != nil {
			failed++
			s.recordTelemetry(ctx, EventProviderError, map[string]any{
				"definition_id": def.Code,
				"error":         resolved.Err.Error(),
			})
		}
		out = append(out, resolved)
	}
	s.recordTelemetry(ctx, EventAreaResolve, map[string]any{
		"area_code": area,
		"widgets":   len(out),
		"failed":    failed,
	})
	return out, nil
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}
