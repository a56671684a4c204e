package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// DeleteKnowledgeInput identifies the entry to delete.
type DeleteKnowledgeInput struct {
	ID int `json:"id"`
}

type knowledgeDeleter interface {
	DeleteKnowledgeEntry(ctx context.Context, id int) error
}

// DeleteKnowledgeCommand wraps Engine.DeleteKnowledgeEntry. Confirmation is
// the engine's responsibility; a declined confirm surfaces as ErrDeclined.
type DeleteKnowledgeCommand struct {
	engine    knowledgeDeleter
	telemetry Telemetry
}

// NewDeleteKnowledgeCommand builds a command instance.
func NewDeleteKnowledgeCommand(engine knowledgeDeleter, telemetry Telemetry) *DeleteKnowledgeCommand {
	return &DeleteKnowledgeCommand{engine: engine, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteKnowledgeInput] = (*DeleteKnowledgeCommand)(nil)

// Execute deletes the entry.
func (c *DeleteKnowledgeCommand) Execute(ctx context.Context, msg DeleteKnowledgeInput) error {
	if c.engine == nil {
		return errors.New("delete knowledge command requires engine")
	}
	if err := c.engine.DeleteKnowledgeEntry(ctx, msg.ID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.knowledge.delete", map[string]any{"id": msg.ID})
	return nil
}
