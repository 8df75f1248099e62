package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"
)

// Dialog actions accepted by UpdateDialogCommand.
const (
	DialogOpen     = "open"
	DialogCancel   = "cancel"
	DialogCategory = "category"
)

// UpdateDialogInput drives the create dialog state machine.
type UpdateDialogInput struct {
	Action   string `json:"action"`
	Category string `json:"category,omitempty"`
}

type dialogService interface {
	OpenDialog(ctx context.Context)
	CancelDialog(ctx context.Context)
	SelectCategory(ctx context.Context, value string)
}

// UpdateDialogCommand opens, cancels or sets the category of the dialog.
type UpdateDialogCommand struct {
	service   dialogService
	telemetry Telemetry
}

// NewUpdateDialogCommand builds the command.
func NewUpdateDialogCommand(service dialogService, telemetry Telemetry) *UpdateDialogCommand {
	return &UpdateDialogCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateDialogInput] = (*UpdateDialogCommand)(nil)

func (c *UpdateDialogCommand) Execute(ctx context.Context, msg UpdateDialogInput) error {
	if c.service == nil {
		return errors.New("dialog command requires service")
	}
	switch msg.Action {
	case DialogOpen:
		c.service.OpenDialog(ctx)
	case DialogCancel:
		c.service.CancelDialog(ctx)
	case DialogCategory:
		c.service.SelectCategory(ctx, msg.Category)
	default:
		return fmt.Errorf("dialog command: unknown action %q", msg.Action)
	}
	c.telemetry.Record(ctx, "catalog.command.dialog", map[string]any{"action": msg.Action})
	return nil
}
