package catalog

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ettle/strcase"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

// MaxImageBytes caps uploaded product images.
const MaxImageBytes = 2 << 20

// ValidationError carries one message per failing create-form field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "catalog: validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+e.Fields[key])
	}
	return "catalog: validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a *ValidationError when possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

type productInput struct {
	Name        string  `validate:"min=2"`
	Price       float64 `validate:"gt=0"`
	Category    string  `validate:"required,oneof=Apparel Electronics Home Beauty"`
	Stock       int64   `validate:"gte=0"`
	Description string  `validate:"min=5"`
}

// validatedProduct is a draft that passed every check.
type validatedProduct struct {
	input productInput
	image string
}

// Validator coerces and checks create-form drafts.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator backed by go-playground/validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// check validates every field independently and reports all failures at
// once. Coercion failures win over rule failures for the same field.
func (v *Validator) check(d Draft) (validatedProduct, error) {
	fields := map[string]string{}
	// Name and description are checked and stored as typed; only the picker
	// value is trimmed.
	input := productInput{
		Name:        d.Name,
		Category:    strings.TrimSpace(d.Category),
		Description: d.Description,
	}

	if price, msg := coercePrice(d.Price); msg != "" {
		fields["price"] = msg
	} else {
		input.Price = price
	}
	if stock, msg := coerceStock(d.Stock); msg != "" {
		fields["stock"] = msg
	} else {
		input.Stock = stock
	}

	if err := v.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return validatedProduct{}, fmt.Errorf("catalog: validate draft: %w", err)
		}
		for _, fe := range verrs {
			key := strcase.ToSnake(fe.StructField())
			if _, exists := fields[key]; exists {
				continue
			}
			fields[key] = fieldMessage(fe)
		}
	}

	image, msg := encodeImage(d.Image)
	if msg != "" {
		fields["image"] = msg
	}

	if len(fields) > 0 {
		return validatedProduct{}, &ValidationError{Fields: fields}
	}
	return validatedProduct{input: input, image: image}, nil
}

func coercePrice(raw string) (float64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, "Price is required"
	}
	price, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, "Price must be a number"
	}
	return price, ""
}

func coerceStock(raw string) (int64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, "Stock is required"
	}
	value, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, "Stock must be a number"
	}
	if value != math.Trunc(value) {
		return 0, "Stock must be a whole number"
	}
	if value >= math.MaxInt64 || value < math.MinInt64 {
		return 0, "Stock is out of range"
	}
	return int64(value), ""
}

func fieldMessage(fe validator.FieldError) string {
	label := fe.StructField()
	switch fe.Tag() {
	case "required":
		if label == "Category" {
			return "Select a category"
		}
		return label + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, fe.Param())
	case "gte":
		return fmt.Sprintf("%s cannot be negative", label)
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", label, strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return label + " is invalid"
	}
}

func encodeImage(img *ImageUpload) (string, string) {
	if img == nil || len(img.Data) == 0 {
		return "", ""
	}
	if len(img.Data) > MaxImageBytes {
		return "", fmt.Sprintf("Image must be %d MB or smaller", MaxImageBytes>>20)
	}
	mt := mimetype.Detect(img.Data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", "Image must be an image file"
	}
	mime := mt.String()
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = mime[:idx]
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data), ""
}
