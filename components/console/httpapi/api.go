package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	"github.com/healthdesk/admin-console/components/console"
	"github.com/healthdesk/admin-console/components/console/commands"
)

// Executor abstracts the mutation commands for transports.
type Executor interface {
	SaveKnowledge(ctx context.Context, input commands.SaveKnowledgeInput) error
	DeleteKnowledge(ctx context.Context, input commands.DeleteKnowledgeInput) error
	UpdateUser(ctx context.Context, input commands.UpdateUserInput) error
	Refresh(ctx context.Context, input commands.RefreshSectionInput) error
}

// CommandExecutor adapts go-command commanders to the Executor interface.
type CommandExecutor struct {
	SaveCommander    gocommand.Commander[commands.SaveKnowledgeInput]
	DeleteCommander  gocommand.Commander[commands.DeleteKnowledgeInput]
	UserCommander    gocommand.Commander[commands.UpdateUserInput]
	RefreshCommander gocommand.Commander[commands.RefreshSectionInput]
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) SaveKnowledge(ctx context.Context, input commands.SaveKnowledgeInput) error {
	if e.SaveCommander == nil {
		return errors.New("httpapi: save commander not configured")
	}
	return e.SaveCommander.Execute(ctx, input)
}

func (e *CommandExecutor) DeleteKnowledge(ctx context.Context, input commands.DeleteKnowledgeInput) error {
	if e.DeleteCommander == nil {
		return errors.New("httpapi: delete commander not configured")
	}
	return e.DeleteCommander.Execute(ctx, input)
}

func (e *CommandExecutor) UpdateUser(ctx context.Context, input commands.UpdateUserInput) error {
	if e.UserCommander == nil {
		return errors.New("httpapi: user commander not configured")
	}
	return e.UserCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Refresh(ctx context.Context, input commands.RefreshSectionInput) error {
	if e.RefreshCommander == nil {
		return errors.New("httpapi: refresh commander not configured")
	}
	return e.RefreshCommander.Execute(ctx, input)
}

// Handlers exposes HTTP endpoints backed by shared commands.
type Handlers struct {
	API Executor
}

func (h *Handlers) HandleSaveKnowledge(w http.ResponseWriter, r *http.Request) {
	var payload commands.SaveKnowledgeInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.SaveKnowledge(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), mutationStatus(err))
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// HandleDeleteKnowledge removes an entry. The request must carry confirm=true;
// without it the delete is rejected before any command runs.
func (h *Handlers) HandleDeleteKnowledge(w http.ResponseWriter, r *http.Request, id int) {
	if r.URL.Query().Get("confirm") != "true" {
		http.Error(w, "delete requires confirm=true", http.StatusBadRequest)
		return
	}
	if err := h.API.DeleteKnowledge(r.Context(), commands.DeleteKnowledgeInput{ID: id}); err != nil {
		http.Error(w, err.Error(), mutationStatus(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleUpdateUser(w http.ResponseWriter, r *http.Request, id int) {
	var payload commands.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.ID = id
	if err := h.API.UpdateUser(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), mutationStatus(err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var payload commands.RefreshSectionInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Refresh(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func mutationStatus(err error) int {
	switch {
	case errors.Is(err, console.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, console.ErrDeclined):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
