package console

import (
	"bytes"
	"context"
	"io"
	"testing"
)

type fakeRenderer struct {
	name string
	data map[string]any
}

func (r *fakeRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.name = name
	r.data, _ = data.(map[string]any)
	if len(out) > 0 && out[0] != nil {
		_, _ = out[0].Write([]byte("<html>console</html>"))
	}
	return "<html>console</html>", nil
}

func TestControllerRenderPageActivatesSection(t *testing.T) {
	users := &stubUsers{users: []User{{ID: 1, Username: "amina"}}}
	engine := NewEngine(Options{Repos: Repositories{Users: users}})
	renderer := &fakeRenderer{}
	controller := NewController(ControllerOptions{Engine: engine, Renderer: renderer})

	var buf bytes.Buffer
	if err := controller.RenderPage(context.Background(), SectionUsers, &buf); err != nil {
		t.Fatalf("render page: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected rendered output")
	}
	if renderer.name != "console" {
		t.Fatalf("expected console template, got %q", renderer.name)
	}
	if engine.ActiveSection() != SectionUsers {
		t.Fatalf("render did not activate section, active=%s", engine.ActiveSection())
	}
	region, ok := renderer.data["region"].(RegionView)
	if !ok || region.Section != SectionUsers || region.Status != RegionRendered {
		t.Fatalf("unexpected region payload %+v", renderer.data["region"])
	}
}

func TestControllerRenderPageInvalidSectionFallsBack(t *testing.T) {
	engine := NewEngine(Options{Repos: Repositories{Stats: staticStats(DashboardSnapshot{})}})
	controller := NewController(ControllerOptions{Engine: engine, Renderer: &fakeRenderer{}})

	var buf bytes.Buffer
	if err := controller.RenderPage(context.Background(), Section("bogus"), &buf); err != nil {
		t.Fatalf("render page: %v", err)
	}
	if engine.ActiveSection() != SectionDashboard {
		t.Fatalf("invalid section changed active to %s", engine.ActiveSection())
	}
}

func TestControllerSectionPayloadRejectsUnknown(t *testing.T) {
	engine := NewEngine(Options{Repos: Repositories{Stats: staticStats(DashboardSnapshot{})}})
	controller := NewController(ControllerOptions{Engine: engine})

	if _, err := controller.SectionPayload(context.Background(), Section("bogus")); err == nil {
		t.Fatalf("expected error for unknown section")
	}
	view, err := controller.SectionPayload(context.Background(), SectionDashboard)
	if err != nil {
		t.Fatalf("section payload: %v", err)
	}
	if view.Status != RegionRendered {
		t.Fatalf("expected rendered dashboard, got %s", view.Status)
	}
}
