package dashboard

import (
	"fmt"
	"sync"
)

// Registry implements ProviderRegistry. Definitions keep registration order
// so areas render in a stable sequence.
type Registry struct {
	mu          sync.RWMutex
	order       []string
	definitions map[string]WidgetDefinition
	providers   map[string]Provider
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		definitions: map[string]WidgetDefinition{},
		providers:   map[string]Provider{},
	}
}

// RegisterDefinition stores widget metadata. Re-registering a code replaces
// the definition in place.
func (r *Registry) RegisterDefinition(def WidgetDefinition) error {
	if def.Code == "" {
		return fmt.Errorf("widget definition code is required")
	}
	if def.Area == "" {
		return fmt.Errorf("widget definition %s requires an area", def.Code)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.definitions[def.Code]; !exists {
		r.order = append(r.order, def.Code)
	}
	r.definitions[def.Code] = def
	return nil
}

// RegisterProvider associates a provider implementation with a definition.
func (r *Registry) RegisterProvider(code string, provider Provider) error {
	if code == "" {
		return fmt.Errorf("widget definition code is required to register provider")
	}
	if provider == nil {
		return fmt.Errorf("provider cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.definitions[code]; !ok {
		return fmt.Errorf("widget definition %s not found", code)
	}
	r.providers[code] = provider
	return nil
}

// Register stores a definition and its provider in one step.
func (r *Registry) Register(def WidgetDefinition, provider Provider) error {
	if err := r.RegisterDefinition(def); err != nil {
		return err
	}
	return r.RegisterProvider(def.Code, provider)
}

// Definition fetches a widget definition by code.
func (r *Registry) Definition(code string) (WidgetDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[code]
	return def, ok
}

// Provider fetches a widget provider by code.
func (r *Registry) Provider(code string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[code]
	return provider, ok
}

// Definitions returns the definitions of an area in registration order. An
// empty area returns every definition.
func (r *Registry) Definitions(area string) []WidgetDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]WidgetDefinition, 0, len(r.order))
	for _, code := range r.order {
		def := r.definitions[code]
		if area == "" || def.Area == area {
			defs = append(defs, def)
		}
	}
	return defs
}
