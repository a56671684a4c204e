package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/healthdesk/admin-console/components/console"
)

type fakeEngine struct {
	savedIDs []*int
	saved    []console.KnowledgeEntryInput
	deleted  []int
	patched  []console.UserPatch
	loaded   []console.Section
	err      error
}

func (f *fakeEngine) SaveKnowledgeEntry(_ context.Context, id *int, input console.KnowledgeEntryInput) error {
	if f.err != nil {
		return f.err
	}
	f.savedIDs = append(f.savedIDs, id)
	f.saved = append(f.saved, input)
	return nil
}

func (f *fakeEngine) DeleteKnowledgeEntry(_ context.Context, id int) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeEngine) UpdateUser(_ context.Context, id int, patch console.UserPatch) error {
	if f.err != nil {
		return f.err
	}
	f.patched = append(f.patched, patch)
	return nil
}

func (f *fakeEngine) LoadSection(_ context.Context, section console.Section) console.RegionView {
	f.loaded = append(f.loaded, section)
	return console.RegionView{Section: section, Status: console.RegionRendered}
}

func TestSaveKnowledgeCommandMapsInput(t *testing.T) {
	engine := &fakeEngine{}
	cmd := NewSaveKnowledgeCommand(engine, nil)

	id := 4
	err := cmd.Execute(context.Background(), SaveKnowledgeInput{
		ID:       &id,
		Category: "nutrition",
		Title:    "Vitamins",
		Content:  "Eat greens",
		Tags:     []string{"diet"},
		Active:   true,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(engine.saved) != 1 || engine.saved[0].Title != "Vitamins" {
		t.Fatalf("unexpected saved input %+v", engine.saved)
	}
	if engine.savedIDs[0] == nil || *engine.savedIDs[0] != 4 {
		t.Fatalf("expected id 4, got %v", engine.savedIDs[0])
	}
}

func TestSaveKnowledgeCommandRequiresEngine(t *testing.T) {
	cmd := NewSaveKnowledgeCommand(nil, nil)
	if err := cmd.Execute(context.Background(), SaveKnowledgeInput{}); err == nil {
		t.Fatalf("expected error without engine")
	}
}

func TestDeleteKnowledgeCommandPropagatesDecline(t *testing.T) {
	engine := &fakeEngine{err: console.ErrDeclined}
	cmd := NewDeleteKnowledgeCommand(engine, nil)
	err := cmd.Execute(context.Background(), DeleteKnowledgeInput{ID: 3})
	if !errors.Is(err, console.ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
}

func TestUpdateUserCommand(t *testing.T) {
	engine := &fakeEngine{}
	cmd := NewUpdateUserCommand(engine, nil)
	role := "admin"
	if err := cmd.Execute(context.Background(), UpdateUserInput{ID: 7, Role: &role}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(engine.patched) != 1 || engine.patched[0].Role == nil || *engine.patched[0].Role != "admin" {
		t.Fatalf("unexpected patch %+v", engine.patched)
	}
}

func TestRefreshSectionCommandRejectsUnknown(t *testing.T) {
	engine := &fakeEngine{}
	cmd := NewRefreshSectionCommand(engine, nil)

	if err := cmd.Execute(context.Background(), RefreshSectionInput{Section: "bogus"}); err == nil {
		t.Fatalf("expected error for unknown section")
	}
	if len(engine.loaded) != 0 {
		t.Fatalf("unknown section still loaded")
	}

	if err := cmd.Execute(context.Background(), RefreshSectionInput{Section: console.SectionQueries}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(engine.loaded) != 1 || engine.loaded[0] != console.SectionQueries {
		t.Fatalf("unexpected loads %v", engine.loaded)
	}
}
