package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/healthdesk/admin-console/components/console"
)

// UpdateUserInput carries a partial user update. Nil fields are untouched.
type UpdateUserInput struct {
	ID     int     `json:"id"`
	Role   *string `json:"role,omitempty"`
	Active *bool   `json:"is_active,omitempty"`
}

type userUpdater interface {
	UpdateUser(ctx context.Context, id int, patch console.UserPatch) error
}

// UpdateUserCommand wraps Engine.UpdateUser.
type UpdateUserCommand struct {
	engine    userUpdater
	telemetry Telemetry
}

// NewUpdateUserCommand builds a command instance.
func NewUpdateUserCommand(engine userUpdater, telemetry Telemetry) *UpdateUserCommand {
	return &UpdateUserCommand{engine: engine, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateUserInput] = (*UpdateUserCommand)(nil)

// Execute applies the patch.
func (c *UpdateUserCommand) Execute(ctx context.Context, msg UpdateUserInput) error {
	if c.engine == nil {
		return errors.New("update user command requires engine")
	}
	patch := console.UserPatch{Role: msg.Role, Active: msg.Active}
	if err := c.engine.UpdateUser(ctx, msg.ID, patch); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.user.update", map[string]any{"id": msg.ID})
	return nil
}
