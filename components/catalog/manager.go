package catalog

import (
	"context"
	"sync"

	"github.com/goliatone/go-commerce-admin/components/notify"
)

// Notifier receives fire-and-forget notices about catalog changes.
type Notifier interface {
	Notify(ctx context.Context, n notify.Notice)
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, notify.Notice) {}

// Options configures a Manager. Nil collaborators fall back to no-ops.
type Options struct {
	Seed      []Product
	Notifier  Notifier
	Telemetry Telemetry
	Validator *Validator
}

// Manager owns the product table state: the ordered product list, the row
// selection and the create dialog. All methods are safe for concurrent use.
type Manager struct {
	mu         sync.RWMutex
	products   []Product
	selected   map[int64]struct{}
	dialogOpen bool
	draft      Draft
	errors     map[string]string
	nextID     int64

	validator *Validator
	notifier  Notifier
	telemetry Telemetry
}

// NewManager seeds a manager. Seed rows keep their order and IDs; rows with
// no status get one derived from stock.
func NewManager(opts Options) *Manager {
	m := &Manager{
		products:  make([]Product, 0, len(opts.Seed)),
		selected:  map[int64]struct{}{},
		nextID:    1,
		validator: opts.Validator,
		notifier:  opts.Notifier,
		telemetry: normalizeTelemetry(opts.Telemetry),
	}
	if m.validator == nil {
		m.validator = NewValidator()
	}
	if m.notifier == nil {
		m.notifier = noopNotifier{}
	}
	for _, p := range opts.Seed {
		if p.Status == "" {
			p.Status = DeriveStatus(p.Stock)
		}
		m.products = append(m.products, p)
		if p.ID >= m.nextID {
			m.nextID = p.ID + 1
		}
	}
	return m
}

// Products returns the list most-recent-first.
func (m *Manager) Products() []Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Product(nil), m.products...)
}

// Selected returns selected IDs in list order.
func (m *Manager) Selected() []int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]int64, 0, len(m.selected))
	for _, p := range m.products {
		if _, ok := m.selected[p.ID]; ok {
			out = append(out, p.ID)
		}
	}
	return out
}

func (m *Manager) IsSelected(id int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.selected[id]
	return ok
}

// AllSelected drives the header checkbox: true only when the list is
// non-empty and every row is selected.
func (m *Manager) AllSelected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.products) > 0 && len(m.selected) == len(m.products)
}

// Dialog returns a snapshot of the create dialog.
func (m *Manager) Dialog() DialogState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state := DialogState{Open: m.dialogOpen, Draft: m.draft.clone()}
	if len(m.errors) > 0 {
		state.Errors = make(map[string]string, len(m.errors))
		for k, v := range m.errors {
			state.Errors[k] = v
		}
	}
	return state
}

// ToggleSelection adds id to the selection if absent and removes it if
// present. IDs that are not loaded are ignored.
func (m *Manager) ToggleSelection(ctx context.Context, id int64) {
	m.mu.Lock()
	if m.indexOf(id) < 0 {
		m.mu.Unlock()
		return
	}
	_, was := m.selected[id]
	if was {
		delete(m.selected, id)
	} else {
		m.selected[id] = struct{}{}
	}
	count := len(m.selected)
	m.mu.Unlock()

	m.telemetry.Record(ctx, "catalog.selection.toggle", map[string]any{
		"id":       id,
		"selected": !was,
		"count":    count,
	})
}

// ToggleSelectAll selects every loaded row when checked, otherwise clears
// the selection.
func (m *Manager) ToggleSelectAll(ctx context.Context, checked bool) {
	m.mu.Lock()
	m.selected = make(map[int64]struct{}, len(m.products))
	if checked {
		for _, p := range m.products {
			m.selected[p.ID] = struct{}{}
		}
	}
	count := len(m.selected)
	m.mu.Unlock()

	m.telemetry.Record(ctx, "catalog.selection.all", map[string]any{
		"checked": checked,
		"count":   count,
	})
}

// BulkDelete removes every selected row and clears the selection. It returns
// the number of rows removed; an empty selection is a silent no-op.
func (m *Manager) BulkDelete(ctx context.Context) int {
	m.mu.Lock()
	if len(m.selected) == 0 {
		m.mu.Unlock()
		return 0
	}
	kept := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		if _, ok := m.selected[p.ID]; !ok {
			kept = append(kept, p)
		}
	}
	removed := len(m.products) - len(kept)
	m.products = kept
	m.selected = map[int64]struct{}{}
	m.mu.Unlock()

	m.telemetry.Record(ctx, "catalog.products.delete", map[string]any{
		"removed": removed,
	})
	m.notifier.Notify(ctx, notify.Notice{
		Kind:        notify.KindSuccess,
		Title:       "Deleted",
		Description: "Selected products were removed.",
	})
	return removed
}

// CreateProduct validates the draft and, on success, prepends a new product.
// On failure it returns a *ValidationError and leaves the product list
// untouched. Dialog state is only touched while the dialog is open: success
// closes it and discards the draft, failure keeps the draft with its field
// errors. Creates made with the dialog closed (the JSON API) leave it alone.
func (m *Manager) CreateProduct(ctx context.Context, d Draft) (Product, error) {
	valid, err := m.validator.check(d)
	if err != nil {
		if verr, ok := AsValidationError(err); ok {
			m.mu.Lock()
			if m.dialogOpen {
				m.draft = d.clone()
				m.errors = verr.Fields
			}
			m.mu.Unlock()
			m.telemetry.Record(ctx, "catalog.products.create_rejected", map[string]any{
				"fields": len(verr.Fields),
			})
		}
		return Product{}, err
	}

	m.mu.Lock()
	product := Product{
		ID:          m.nextID,
		Name:        valid.input.Name,
		Category:    valid.input.Category,
		Price:       valid.input.Price,
		Stock:       valid.input.Stock,
		Status:      DeriveStatus(valid.input.Stock),
		Description: valid.input.Description,
		Image:       valid.image,
	}
	m.nextID++
	m.products = append([]Product{product}, m.products...)
	if m.dialogOpen {
		m.dialogOpen = false
		m.draft = Draft{}
		m.errors = nil
	}
	m.mu.Unlock()

	m.telemetry.Record(ctx, "catalog.products.create", map[string]any{
		"id":       product.ID,
		"category": product.Category,
		"status":   product.Status,
	})
	m.notifier.Notify(ctx, notify.Notice{
		Kind:        notify.KindSuccess,
		Title:       "Product added",
		Description: product.Name + " has been created.",
	})
	return product, nil
}

// SelectCategory records the category picked in the dialog.
func (m *Manager) SelectCategory(ctx context.Context, value string) {
	m.mu.Lock()
	m.draft.Category = value
	m.mu.Unlock()
	m.telemetry.Record(ctx, "catalog.dialog.category", map[string]any{"category": value})
}

// OpenDialog opens the create dialog, keeping any draft in progress.
func (m *Manager) OpenDialog(ctx context.Context) {
	m.mu.Lock()
	m.dialogOpen = true
	m.mu.Unlock()
	m.telemetry.Record(ctx, "catalog.dialog.open", nil)
}

// CancelDialog closes the create dialog and discards the draft.
func (m *Manager) CancelDialog(ctx context.Context) {
	m.mu.Lock()
	m.dialogOpen = false
	m.draft = Draft{}
	m.errors = nil
	m.mu.Unlock()
	m.telemetry.Record(ctx, "catalog.dialog.cancel", nil)
}

func (m *Manager) indexOf(id int64) int {
	for i, p := range m.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
