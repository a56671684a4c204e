package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	"github.com/healthdesk/admin-console/components/console"
)

// RefreshSectionInput requests a re-sync of one section.
type RefreshSectionInput struct {
	Section console.Section `json:"section"`
}

type sectionLoader interface {
	LoadSection(ctx context.Context, section console.Section) console.RegionView
}

// RefreshSectionCommand forces a fetch-and-render cycle for a section.
type RefreshSectionCommand struct {
	engine    sectionLoader
	telemetry Telemetry
}

// NewRefreshSectionCommand builds a command instance.
func NewRefreshSectionCommand(engine sectionLoader, telemetry Telemetry) *RefreshSectionCommand {
	return &RefreshSectionCommand{engine: engine, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshSectionInput] = (*RefreshSectionCommand)(nil)

// Execute reloads the section.
func (c *RefreshSectionCommand) Execute(ctx context.Context, msg RefreshSectionInput) error {
	if c.engine == nil {
		return errors.New("refresh command requires engine")
	}
	if !msg.Section.Valid() {
		return fmt.Errorf("refresh command: unknown section %q", msg.Section)
	}
	c.engine.LoadSection(ctx, msg.Section)
	c.telemetry.Record(ctx, "console.section.refresh", map[string]any{"section": string(msg.Section)})
	return nil
}
