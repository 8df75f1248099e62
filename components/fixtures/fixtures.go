package fixtures

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const (
	documentVersionV1 = "1"
	// DocumentVersion exposes the fixture format version for tooling.
	DocumentVersion = documentVersionV1

	schemaResource = "admin-fixtures.json"
)

//go:embed data/admin.yaml data/schema.json
var embedded embed.FS

// ErrEmptyDocument is returned when a fixture source contains no YAML document.
var ErrEmptyDocument = errors.New("fixtures: document is empty")

// Document is the mock data set backing every admin page.
type Document struct {
	Version         string           `json:"version" yaml:"version"`
	Title           string           `json:"title,omitempty" yaml:"title,omitempty"`
	Products        []ProductRecord  `json:"products" yaml:"products"`
	Metrics         []Metric         `json:"metrics" yaml:"metrics"`
	Revenue         []MonthlyRevenue `json:"revenue" yaml:"revenue"`
	SalesByCategory []NamedValue     `json:"sales_by_category" yaml:"sales_by_category"`
	OrderStatus     []NamedValue     `json:"order_status" yaml:"order_status"`
	Palette         []string         `json:"palette,omitempty" yaml:"palette,omitempty"`
	RecentOrders    []Order          `json:"recent_orders" yaml:"recent_orders"`
	Orders          []Order          `json:"orders" yaml:"orders"`
	Customers       []Customer       `json:"customers" yaml:"customers"`
	LowStock        []StockAlert     `json:"low_stock" yaml:"low_stock"`
	Preferences     []Preference     `json:"preferences" yaml:"preferences"`
	Source          string           `json:"-" yaml:"-"`
}

// ProductRecord seeds the product catalog.
type ProductRecord struct {
	ID          int64   `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Category    string  `json:"category" yaml:"category"`
	Price       float64 `json:"price" yaml:"price"`
	Stock       int64   `json:"stock" yaml:"stock"`
	Status      string  `json:"status,omitempty" yaml:"status,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// Metric is a headline dashboard number. Trend is a percentage.
type Metric struct {
	Key    string  `json:"key" yaml:"key"`
	Title  string  `json:"title" yaml:"title"`
	Value  float64 `json:"value" yaml:"value"`
	Format string  `json:"format" yaml:"format"`
	Trend  float64 `json:"trend" yaml:"trend"`
}

type MonthlyRevenue struct {
	Month   string  `json:"month" yaml:"month"`
	Revenue float64 `json:"revenue" yaml:"revenue"`
}

type NamedValue struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// Order rows feed both the dashboard recent-orders card and the orders page;
// Date is only set on the latter.
type Order struct {
	ID       string  `json:"id" yaml:"id"`
	Customer string  `json:"customer" yaml:"customer"`
	Date     string  `json:"date,omitempty" yaml:"date,omitempty"`
	Status   string  `json:"status" yaml:"status"`
	Total    float64 `json:"total" yaml:"total"`
}

type Customer struct {
	Name    string  `json:"name" yaml:"name"`
	Email   string  `json:"email" yaml:"email"`
	Orders  int     `json:"orders" yaml:"orders"`
	Spent   float64 `json:"spent" yaml:"spent"`
	Segment string  `json:"segment" yaml:"segment"`
}

type StockAlert struct {
	Name  string `json:"name" yaml:"name"`
	Stock int    `json:"stock" yaml:"stock"`
}

// Preference is a boolean settings switch with its initial value.
type Preference struct {
	Key     string `json:"key" yaml:"key"`
	Label   string `json:"label" yaml:"label"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

var (
	defaultOnce sync.Once
	defaultDoc  *Document
	defaultErr  error
)

// Default returns the embedded fixture document. It is decoded once; callers
// must treat the result as read-only.
func Default() (*Document, error) {
	defaultOnce.Do(func() {
		f, err := embedded.Open("data/admin.yaml")
		if err != nil {
			defaultErr = fmt.Errorf("fixtures: open embedded document: %w", err)
			return
		}
		defer f.Close()
		doc, err := Decode(f)
		if err != nil {
			defaultErr = err
			return
		}
		doc.Source = "embedded:data/admin.yaml"
		defaultDoc = doc
	})
	return defaultDoc, defaultErr
}

// ReadFile loads and validates a fixture document from disk.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("fixtures: open %s: %w", path, err)
	}
	defer f.Close()
	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("fixtures: decode %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// Decode parses a YAML fixture document, checks it against the embedded JSON
// schema and then decodes it strictly into a Document.
func Decode(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("fixtures: read document: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyDocument
	}
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("fixtures: parse document: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate covers the cross-record rules the schema cannot express.
func (doc *Document) Validate() error {
	if doc.Version != documentVersionV1 {
		return fmt.Errorf("fixtures: unsupported document version %q", doc.Version)
	}
	seen := make(map[int64]struct{}, len(doc.Products))
	for idx, p := range doc.Products {
		if p.ID <= 0 {
			return fmt.Errorf("fixtures: product at index %d has invalid id %d", idx, p.ID)
		}
		if _, exists := seen[p.ID]; exists {
			return fmt.Errorf("fixtures: duplicate product id %d", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	keys := make(map[string]struct{}, len(doc.Preferences))
	for _, pref := range doc.Preferences {
		if _, exists := keys[pref.Key]; exists {
			return fmt.Errorf("fixtures: duplicate preference key %s", pref.Key)
		}
		keys[pref.Key] = struct{}{}
	}
	return nil
}

func (doc *Document) applyDefaults() {
	if doc.Version == "" {
		doc.Version = documentVersionV1
	}
	if doc.Title == "" {
		doc.Title = "Commerce Admin"
	}
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		data, err := embedded.ReadFile("data/schema.json")
		if err != nil {
			schemaErr = fmt.Errorf("fixtures: read schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaResource, bytes.NewReader(data)); err != nil {
			schemaErr = fmt.Errorf("fixtures: load schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(schemaResource)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("fixtures: compile schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

func validateSchema(raw []byte) error {
	compiled, err := compiledSchema()
	if err != nil {
		return err
	}
	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("fixtures: parse document: %w", err)
	}
	// yaml.v3 yields int and map[string]any values; the validator expects the
	// shapes encoding/json produces.
	data, err := json.Marshal(generic)
	if err != nil {
		return fmt.Errorf("fixtures: normalize document: %w", err)
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("fixtures: normalize document: %w", err)
	}
	if err := compiled.Validate(payload); err != nil {
		return fmt.Errorf("fixtures: document failed validation: %w", err)
	}
	return nil
}
