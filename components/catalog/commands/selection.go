package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// ToggleSelectionInput flips one row, or every row when All is set.
type ToggleSelectionInput struct {
	ID      int64 `json:"id,omitempty"`
	All     bool  `json:"all,omitempty"`
	Checked bool  `json:"checked,omitempty"`
}

type selectionService interface {
	ToggleSelection(ctx context.Context, id int64)
	ToggleSelectAll(ctx context.Context, checked bool)
}

// ToggleSelectionCommand routes selection changes to the product manager.
type ToggleSelectionCommand struct {
	service   selectionService
	telemetry Telemetry
}

// NewToggleSelectionCommand builds the command.
func NewToggleSelectionCommand(service selectionService, telemetry Telemetry) *ToggleSelectionCommand {
	return &ToggleSelectionCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleSelectionInput] = (*ToggleSelectionCommand)(nil)

// Execute applies a single-row toggle or a select-all.
func (c *ToggleSelectionCommand) Execute(ctx context.Context, msg ToggleSelectionInput) error {
	if c.service == nil {
		return errors.New("selection command requires service")
	}
	if msg.All {
		c.service.ToggleSelectAll(ctx, msg.Checked)
	} else {
		if msg.ID <= 0 {
			return errors.New("selection command requires product id")
		}
		c.service.ToggleSelection(ctx, msg.ID)
	}
	c.telemetry.Record(ctx, "catalog.command.selection", map[string]any{
		"id":      msg.ID,
		"all":     msg.All,
		"checked": msg.Checked,
	})
	return nil
}
