package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/healthdesk/admin-console/components/console"
	"github.com/healthdesk/admin-console/components/console/commands"
)

type fakeExecutor struct {
	saves    []commands.SaveKnowledgeInput
	deletes  []commands.DeleteKnowledgeInput
	users    []commands.UpdateUserInput
	refreshs []commands.RefreshSectionInput
	err      error
}

func (f *fakeExecutor) SaveKnowledge(_ context.Context, input commands.SaveKnowledgeInput) error {
	if f.err != nil {
		return f.err
	}
	f.saves = append(f.saves, input)
	return nil
}

func (f *fakeExecutor) DeleteKnowledge(_ context.Context, input commands.DeleteKnowledgeInput) error {
	if f.err != nil {
		return f.err
	}
	f.deletes = append(f.deletes, input)
	return nil
}

func (f *fakeExecutor) UpdateUser(_ context.Context, input commands.UpdateUserInput) error {
	if f.err != nil {
		return f.err
	}
	f.users = append(f.users, input)
	return nil
}

func (f *fakeExecutor) Refresh(_ context.Context, input commands.RefreshSectionInput) error {
	if f.err != nil {
		return f.err
	}
	f.refreshs = append(f.refreshs, input)
	return nil
}

func TestHandleSaveKnowledge(t *testing.T) {
	executor := &fakeExecutor{}
	handlers := &Handlers{API: executor}

	req := httptest.NewRequest(http.MethodPost, "/knowledge", strings.NewReader(
		`{"category":"nutrition","title":"Vitamins","content":"Eat greens","is_active":true}`,
	))
	rec := httptest.NewRecorder()
	handlers.HandleSaveKnowledge(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(executor.saves) != 1 || executor.saves[0].Title != "Vitamins" {
		t.Fatalf("unexpected saves %+v", executor.saves)
	}
}

func TestHandleSaveKnowledgeBadJSON(t *testing.T) {
	handlers := &Handlers{API: &fakeExecutor{}}
	req := httptest.NewRequest(http.MethodPost, "/knowledge", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	handlers.HandleSaveKnowledge(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleDeleteKnowledgeRequiresConfirmation(t *testing.T) {
	executor := &fakeExecutor{}
	handlers := &Handlers{API: executor}

	req := httptest.NewRequest(http.MethodDelete, "/knowledge/3", nil)
	rec := httptest.NewRecorder()
	handlers.HandleDeleteKnowledge(rec, req, 3)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without confirmation, got %d", rec.Code)
	}
	if len(executor.deletes) != 0 {
		t.Fatalf("unconfirmed delete reached the executor")
	}

	req = httptest.NewRequest(http.MethodDelete, "/knowledge/3?confirm=true", nil)
	rec = httptest.NewRecorder()
	handlers.HandleDeleteKnowledge(rec, req, 3)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(executor.deletes) != 1 || executor.deletes[0].ID != 3 {
		t.Fatalf("unexpected deletes %+v", executor.deletes)
	}
}

func TestMutationStatusMapping(t *testing.T) {
	declined := &fakeExecutor{err: console.ErrDeclined}
	handlers := &Handlers{API: declined}
	req := httptest.NewRequest(http.MethodDelete, "/knowledge/3?confirm=true", nil)
	rec := httptest.NewRecorder()
	handlers.HandleDeleteKnowledge(rec, req, 3)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for declined delete, got %d", rec.Code)
	}

	unauthorized := &fakeExecutor{err: console.ErrUnauthorized}
	handlers = &Handlers{API: unauthorized}
	req = httptest.NewRequest(http.MethodPut, "/users/7", strings.NewReader(`{"role":"admin"}`))
	rec = httptest.NewRecorder()
	handlers.HandleUpdateUser(rec, req, 7)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for rejected session, got %d", rec.Code)
	}
}

func TestHandleUpdateUserSetsPathID(t *testing.T) {
	executor := &fakeExecutor{}
	handlers := &Handlers{API: executor}

	req := httptest.NewRequest(http.MethodPut, "/users/7", strings.NewReader(`{"id":999,"role":"admin"}`))
	rec := httptest.NewRecorder()
	handlers.HandleUpdateUser(rec, req, 7)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(executor.users) != 1 || executor.users[0].ID != 7 {
		t.Fatalf("path id must win over body id, got %+v", executor.users)
	}
}

func TestHandleRefresh(t *testing.T) {
	executor := &fakeExecutor{}
	handlers := &Handlers{API: executor}

	req := httptest.NewRequest(http.MethodPost, "/refresh", strings.NewReader(`{"section":"queries"}`))
	rec := httptest.NewRecorder()
	handlers.HandleRefresh(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if len(executor.refreshs) != 1 || executor.refreshs[0].Section != console.SectionQueries {
		t.Fatalf("unexpected refreshes %+v", executor.refreshs)
	}
}
