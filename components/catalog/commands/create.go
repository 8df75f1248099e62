package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-commerce-admin/components/catalog"
)

// CreateProductInput carries a raw draft. Result, when set, receives the
// created product.
type CreateProductInput struct {
	Draft  catalog.Draft    `json:"draft"`
	Result *catalog.Product `json:"-"`
}

type createService interface {
	CreateProduct(ctx context.Context, d catalog.Draft) (catalog.Product, error)
}

// CreateProductCommand wraps Manager.CreateProduct. Validation failures are
// returned unchanged so callers can unwrap *catalog.ValidationError.
type CreateProductCommand struct {
	service   createService
	telemetry Telemetry
}

// NewCreateProductCommand builds the command.
func NewCreateProductCommand(service createService, telemetry Telemetry) *CreateProductCommand {
	return &CreateProductCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CreateProductInput] = (*CreateProductCommand)(nil)

// Execute validates and creates the product.
func (c *CreateProductCommand) Execute(ctx context.Context, msg CreateProductInput) error {
	if c.service == nil {
		return errors.New("create command requires service")
	}
	product, err := c.service.CreateProduct(ctx, msg.Draft)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = product
	}
	c.telemetry.Record(ctx, "catalog.command.create", map[string]any{"id": product.ID})
	return nil
}
