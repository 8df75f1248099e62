package catalog

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-commerce-admin/components/notify"
)

type stubNotifier struct {
	mu      sync.Mutex
	notices []notify.Notice
}

func (s *stubNotifier) Notify(_ context.Context, n notify.Notice) {
	s.mu.Lock()
	s.notices = append(s.notices, n)
	s.mu.Unlock()
}

type stubTelemetry struct {
	mu     sync.Mutex
	events []string
}

func (s *stubTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()
}

func seedProducts() []Product {
	return []Product{
		{ID: 1, Name: "Basic Tee", Category: "Apparel", Price: 24.99, Stock: 120},
		{ID: 2, Name: "Wireless Mouse", Category: "Electronics", Price: 39.99, Stock: 8},
		{ID: 3, Name: "Water Bottle", Category: "Home", Price: 14.99, Stock: 0},
	}
}

func newTestManager(t *testing.T) (*Manager, *stubNotifier, *stubTelemetry) {
	t.Helper()
	notifier := &stubNotifier{}
	telemetry := &stubTelemetry{}
	m := NewManager(Options{Seed: seedProducts(), Notifier: notifier, Telemetry: telemetry})
	return m, notifier, telemetry
}

func validDraft() Draft {
	return Draft{
		Name:        "Desk Lamp",
		Price:       "19.5",
		Category:    "Home",
		Stock:       "3",
		Description: "Warm light",
	}
}

func productIDs(products []Product) []int64 {
	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestNewManagerDerivesSeedStatus(t *testing.T) {
	m, _, _ := newTestManager(t)
	products := m.Products()
	require.Len(t, products, 3)
	assert.Equal(t, StatusActive, products[0].Status)
	assert.Equal(t, StatusLowStock, products[1].Status)
	assert.Equal(t, StatusOutOfStock, products[2].Status)
	assert.Empty(t, m.Selected())
	assert.False(t, m.AllSelected())
	assert.False(t, m.Dialog().Open)
}

func TestToggleSelection(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	m.ToggleSelection(ctx, 2)
	assert.Equal(t, []int64{2}, m.Selected())
	assert.True(t, m.IsSelected(2))

	m.ToggleSelection(ctx, 2)
	assert.Empty(t, m.Selected())

	m.ToggleSelection(ctx, 99)
	assert.Empty(t, m.Selected(), "unknown ids are ignored")
}

func TestToggleSelectAll(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	m.ToggleSelectAll(ctx, true)
	assert.Equal(t, []int64{1, 2, 3}, m.Selected())
	assert.True(t, m.AllSelected())

	m.ToggleSelectAll(ctx, true)
	assert.Equal(t, []int64{1, 2, 3}, m.Selected())

	m.ToggleSelectAll(ctx, false)
	assert.Empty(t, m.Selected())
	assert.False(t, m.AllSelected())
}

func TestAllSelectedFalseOnEmptyList(t *testing.T) {
	m := NewManager(Options{})
	m.ToggleSelectAll(context.Background(), true)
	assert.False(t, m.AllSelected())
}

func TestBulkDeleteRemovesSelected(t *testing.T) {
	m, notifier, _ := newTestManager(t)
	ctx := context.Background()

	m.ToggleSelection(ctx, 1)
	m.ToggleSelection(ctx, 3)
	removed := m.BulkDelete(ctx)

	assert.Equal(t, 2, removed)
	assert.Equal(t, []int64{2}, productIDs(m.Products()))
	assert.Empty(t, m.Selected())
	require.Len(t, notifier.notices, 1)
	assert.Equal(t, "Deleted", notifier.notices[0].Title)
	assert.Equal(t, "Selected products were removed.", notifier.notices[0].Description)
}

func TestBulkDeleteEmptySelectionIsNoop(t *testing.T) {
	m, notifier, _ := newTestManager(t)

	assert.Zero(t, m.BulkDelete(context.Background()))
	assert.Len(t, m.Products(), 3)
	assert.Empty(t, notifier.notices)
}

func TestBulkDeleteEverything(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	m.ToggleSelectAll(ctx, true)
	m.BulkDelete(ctx)

	assert.Empty(t, m.Products())
	assert.False(t, m.AllSelected())
}

func TestCreateProductPrependsWithDerivedStatus(t *testing.T) {
	m, notifier, telemetry := newTestManager(t)
	ctx := context.Background()
	m.OpenDialog(ctx)

	product, err := m.CreateProduct(ctx, validDraft())
	require.NoError(t, err)

	assert.Equal(t, int64(4), product.ID)
	assert.Equal(t, StatusLowStock, product.Status)
	assert.InDelta(t, 19.5, product.Price, 0.0001)
	assert.Equal(t, []int64{4, 1, 2, 3}, productIDs(m.Products()))

	dialog := m.Dialog()
	assert.False(t, dialog.Open)
	assert.Equal(t, Draft{}, dialog.Draft)
	assert.Empty(t, dialog.Errors)

	require.Len(t, notifier.notices, 1)
	assert.Equal(t, "Product added", notifier.notices[0].Title)
	assert.Equal(t, "Desk Lamp has been created.", notifier.notices[0].Description)
	assert.Contains(t, telemetry.events, "catalog.products.create")
}

func TestCreateProductStatusBoundaries(t *testing.T) {
	cases := map[string]string{
		"0":   StatusOutOfStock,
		"9":   StatusLowStock,
		"10":  StatusActive,
		"250": StatusActive,
	}
	for stock, want := range cases {
		t.Run(stock, func(t *testing.T) {
			m := NewManager(Options{})
			d := validDraft()
			d.Stock = stock
			product, err := m.CreateProduct(context.Background(), d)
			require.NoError(t, err)
			assert.Equal(t, want, product.Status)
		})
	}
}

func TestCreateProductRejectsInvalidDraft(t *testing.T) {
	m, notifier, _ := newTestManager(t)
	ctx := context.Background()
	m.OpenDialog(ctx)

	bad := Draft{Name: "A", Price: "0", Category: "", Stock: "-1", Description: "abc"}
	_, err := m.CreateProduct(ctx, bad)
	require.Error(t, err)

	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Len(t, verr.Fields, 5)
	assert.Equal(t, "Name must be at least 2 characters", verr.Fields["name"])
	assert.Equal(t, "Price must be greater than 0", verr.Fields["price"])
	assert.Equal(t, "Select a category", verr.Fields["category"])
	assert.Equal(t, "Stock cannot be negative", verr.Fields["stock"])
	assert.Equal(t, "Description must be at least 5 characters", verr.Fields["description"])

	assert.Len(t, m.Products(), 3)
	assert.Empty(t, notifier.notices)

	dialog := m.Dialog()
	assert.True(t, dialog.Open)
	assert.Equal(t, "A", dialog.Draft.Name)
	assert.Equal(t, "Select a category", dialog.Error("category"))
}

func TestCreateProductWithClosedDialogKeepsDialogClean(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.CreateProduct(ctx, Draft{Name: "A"})
	require.Error(t, err)

	m.OpenDialog(ctx)
	dialog := m.Dialog()
	assert.True(t, dialog.Open)
	assert.Equal(t, Draft{}, dialog.Draft)
	assert.Empty(t, dialog.Errors)
}

func TestCreateProductWithClosedDialogKeepsPendingCategory(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()
	m.SelectCategory(ctx, "Home")

	_, err := m.CreateProduct(ctx, Draft{Name: "Desk Lamp", Price: "30", Category: "Home", Stock: "12", Description: "Warm light"})
	require.NoError(t, err)

	dialog := m.Dialog()
	assert.False(t, dialog.Open)
	assert.Equal(t, "Home", dialog.Draft.Category)
}

func TestCreateProductCountsNameAndDescriptionAsTyped(t *testing.T) {
	m := NewManager(Options{})
	ctx := context.Background()

	d := validDraft()
	d.Name = " A "
	d.Description = " abc "
	product, err := m.CreateProduct(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, " A ", product.Name)
	assert.Equal(t, " abc ", product.Description)

	d = validDraft()
	d.Name = "A"
	d.Description = "abcd"
	_, err = m.CreateProduct(ctx, d)
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "description")
}

func TestCreateProductCoercion(t *testing.T) {
	m := NewManager(Options{})
	ctx := context.Background()

	d := validDraft()
	d.Price = "abc"
	d.Stock = "2.5"
	_, err := m.CreateProduct(ctx, d)
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Price must be a number", verr.Fields["price"])
	assert.Equal(t, "Stock must be a whole number", verr.Fields["stock"])
	assert.Len(t, verr.Fields, 2)

	d = validDraft()
	d.Price = " 12 "
	d.Stock = "7"
	product, err := m.CreateProduct(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, StatusLowStock, product.Status)
	assert.Equal(t, "$12.00", product.PriceLabel())
}

func TestCreateProductRejectsUnknownCategory(t *testing.T) {
	m := NewManager(Options{})
	d := validDraft()
	d.Category = "Garden"
	_, err := m.CreateProduct(context.Background(), d)
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Category must be one of Apparel, Electronics, Home, Beauty", verr.Fields["category"])
}

func TestCreateProductImage(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")
	m := NewManager(Options{})
	ctx := context.Background()

	d := validDraft()
	d.Image = &ImageUpload{Filename: "lamp.txt", Data: []byte("plain text, not a picture")}
	_, err := m.CreateProduct(ctx, d)
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Image must be an image file", verr.Fields["image"])

	d.Image = &ImageUpload{Filename: "lamp.png", Data: png}
	product, err := m.CreateProduct(ctx, d)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(product.Image, "data:image/png;base64,"))
}

func TestIDsAreNeverReused(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	first, err := m.CreateProduct(ctx, validDraft())
	require.NoError(t, err)
	m.ToggleSelection(ctx, first.ID)
	m.BulkDelete(ctx)

	second, err := m.CreateProduct(ctx, validDraft())
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestDialogLifecycle(t *testing.T) {
	m, _, telemetry := newTestManager(t)
	ctx := context.Background()

	m.OpenDialog(ctx)
	m.SelectCategory(ctx, "Beauty")
	dialog := m.Dialog()
	assert.True(t, dialog.Open)
	assert.Equal(t, "Beauty", dialog.Draft.Category)

	m.CancelDialog(ctx)
	dialog = m.Dialog()
	assert.False(t, dialog.Open)
	assert.Equal(t, Draft{}, dialog.Draft)
	assert.Contains(t, telemetry.events, "catalog.dialog.cancel")
}

func TestManagerConcurrentAccess(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.CreateProduct(ctx, validDraft())
			m.ToggleSelectAll(ctx, true)
			_ = m.Products()
		}()
	}
	wg.Wait()
	assert.Len(t, m.Products(), 11)

	seen := map[int64]bool{}
	for _, p := range m.Products() {
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
	}
}

func TestWriteCSV(t *testing.T) {
	m, _, _ := newTestManager(t)
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, m.Products()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "id,name,category,price,stock,status,description", lines[0])
	assert.Equal(t, "1,Basic Tee,Apparel,24.99,120,Active,", lines[1])
	assert.Equal(t, "3,Water Bottle,Home,14.99,0,Out of Stock,", lines[3])
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"price": "Price is required", "name": "Name is required"}}
	assert.Equal(t, "catalog: validation failed: name: Name is required; price: Price is required", err.Error())
}

func TestProductBadges(t *testing.T) {
	assert.Equal(t, "Active", Product{Status: StatusActive}.Badge())
	assert.Equal(t, "secondary", Product{Status: StatusActive}.BadgeVariant())
	assert.Equal(t, "Low", Product{Status: StatusLowStock}.Badge())
	assert.Equal(t, "Out", Product{Status: StatusOutOfStock}.Badge())
	assert.Equal(t, "destructive", Product{Status: StatusOutOfStock}.BadgeVariant())
}
