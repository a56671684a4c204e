package console

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ControllerOptions wires the engine and renderer into a controller.
type ControllerOptions struct {
	Engine   *Engine
	Renderer Renderer
	Title    string
}

// Controller orchestrates page rendering and section payloads for transports.
type Controller struct {
	engine   *Engine
	renderer Renderer
	title    string
}

// NewController builds a controller. The renderer may be nil when only JSON
// payloads are served.
func NewController(opts ControllerOptions) *Controller {
	title := opts.Title
	if title == "" {
		title = "Health Admin Console"
	}
	return &Controller{
		engine:   opts.Engine,
		renderer: opts.Renderer,
		title:    title,
	}
}

type navItem struct {
	Code    string
	Label   string
	Current bool
}

// RenderPage activates the requested section, loads it, and renders the
// console page. An invalid section falls back to the currently active one.
func (c *Controller) RenderPage(ctx context.Context, section Section, w io.Writer) error {
	if c.engine == nil {
		return errors.New("console: controller has no engine")
	}
	if c.renderer == nil {
		return errors.New("console: controller has no renderer")
	}
	if !section.Valid() {
		section = c.engine.ActiveSection()
	}
	region := c.engine.SetActiveSection(ctx, section)

	items := make([]navItem, 0, len(Sections()))
	for _, s := range Sections() {
		items = append(items, navItem{
			Code:    string(s),
			Label:   sectionLabel(s),
			Current: s == section,
		})
	}

	_, err := c.renderer.Render("console", map[string]any{
		"title":    c.title,
		"sections": items,
		"region":   region,
	}, w)
	if err != nil {
		return fmt.Errorf("console: render page: %w", err)
	}
	return nil
}

// SectionPayload loads a section and returns its region view for JSON
// transports. Unknown sections are rejected.
func (c *Controller) SectionPayload(ctx context.Context, section Section) (RegionView, error) {
	if c.engine == nil {
		return RegionView{}, errors.New("console: controller has no engine")
	}
	if !section.Valid() {
		return RegionView{}, fmt.Errorf("console: unknown section %q", section)
	}
	return c.engine.LoadSection(ctx, section), nil
}

func sectionLabel(section Section) string {
	switch section {
	case SectionDashboard:
		return "Dashboard"
	case SectionUsers:
		return "Users"
	case SectionFeedback:
		return "Feedback"
	case SectionKnowledge:
		return "Knowledge Base"
	case SectionQueries:
		return "Queries"
	case SectionActivities:
		return "Activities"
	default:
		return string(section)
	}
}
