package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/healthdesk/admin-console/components/console"
)

// SaveKnowledgeInput carries a knowledge entry create or full update. A nil
// ID creates a new entry.
type SaveKnowledgeInput struct {
	ID       *int     `json:"id,omitempty"`
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Language string   `json:"language,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Source   string   `json:"source,omitempty"`
	Active   bool     `json:"is_active"`
}

type knowledgeSaver interface {
	SaveKnowledgeEntry(ctx context.Context, id *int, input console.KnowledgeEntryInput) error
}

// SaveKnowledgeCommand wraps Engine.SaveKnowledgeEntry.
type SaveKnowledgeCommand struct {
	engine    knowledgeSaver
	telemetry Telemetry
}

// NewSaveKnowledgeCommand builds a command instance.
func NewSaveKnowledgeCommand(engine knowledgeSaver, telemetry Telemetry) *SaveKnowledgeCommand {
	return &SaveKnowledgeCommand{engine: engine, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveKnowledgeInput] = (*SaveKnowledgeCommand)(nil)

// Execute saves the entry.
func (c *SaveKnowledgeCommand) Execute(ctx context.Context, msg SaveKnowledgeInput) error {
	if c.engine == nil {
		return errors.New("save knowledge command requires engine")
	}
	input := console.KnowledgeEntryInput{
		Category: msg.Category,
		Title:    msg.Title,
		Content:  msg.Content,
		Language: msg.Language,
		Tags:     msg.Tags,
		Source:   msg.Source,
		Active:   msg.Active,
	}
	if err := c.engine.SaveKnowledgeEntry(ctx, msg.ID, input); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.knowledge.save", map[string]any{"title": msg.Title})
	return nil
}
