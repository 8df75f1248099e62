package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// BulkDeleteInput removes every selected product. Removed, when set, receives
// the number of rows deleted.
type BulkDeleteInput struct {
	Removed *int `json:"-"`
}

type deleteService interface {
	BulkDelete(ctx context.Context) int
}

// BulkDeleteCommand wraps Manager.BulkDelete.
type BulkDeleteCommand struct {
	service   deleteService
	telemetry Telemetry
}

// NewBulkDeleteCommand builds the command.
func NewBulkDeleteCommand(service deleteService, telemetry Telemetry) *BulkDeleteCommand {
	return &BulkDeleteCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[BulkDeleteInput] = (*BulkDeleteCommand)(nil)

// Execute deletes the current selection.
func (c *BulkDeleteCommand) Execute(ctx context.Context, msg BulkDeleteInput) error {
	if c.service == nil {
		return errors.New("delete command requires service")
	}
	removed := c.service.BulkDelete(ctx)
	if msg.Removed != nil {
		*msg.Removed = removed
	}
	c.telemetry.Record(ctx, "catalog.command.bulk_delete", map[string]any{"removed": removed})
	return nil
}
