package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// ErrDeclined reports a destructive action the confirmer refused. No request
// is sent in that case.
var ErrDeclined = errors.New("console: action declined")

// SaveKnowledgeEntry validates and persists a knowledge entry. A nil id
// creates a new entry, otherwise the existing entry is replaced. Validation
// failures abort before any request is sent. On success the knowledge section
// is re-synced from the backend; on failure the region is left untouched.
func (e *Engine) SaveKnowledgeEntry(ctx context.Context, id *int, input KnowledgeEntryInput) error {
	if e.repos.Knowledge == nil {
		return fmt.Errorf("%w: knowledge", errMissingRepository)
	}
	if err := e.validator.Validate(input); err != nil {
		e.telemetry.Record(ctx, "console.knowledge.invalid", map[string]any{"error": err.Error()})
		return err
	}

	var err error
	verb := "create"
	if id == nil {
		err = e.repos.Knowledge.CreateKnowledgeEntry(ctx, input)
	} else {
		verb = "update"
		err = e.repos.Knowledge.UpdateKnowledgeEntry(ctx, *id, patchFromInput(input))
	}
	if err != nil {
		return e.mutationFailed(ctx, SectionKnowledge, "Failed to save entry", err)
	}

	e.notifier.Notify(ctx, NewNotice(NoticeSuccess, "Entry saved successfully!"))
	e.recordActivity(ctx, verb, "knowledge_entry", entryID(id), map[string]any{
		"title":    input.Title,
		"category": input.Category,
	})
	e.load(ctx, SectionKnowledge, "mutation", false)
	return nil
}

// UpdateKnowledgeEntry applies a partial update, such as toggling an entry's
// active flag, then re-syncs the knowledge section.
func (e *Engine) UpdateKnowledgeEntry(ctx context.Context, id int, patch KnowledgeEntryPatch) error {
	if e.repos.Knowledge == nil {
		return fmt.Errorf("%w: knowledge", errMissingRepository)
	}
	if err := e.repos.Knowledge.UpdateKnowledgeEntry(ctx, id, patch); err != nil {
		return e.mutationFailed(ctx, SectionKnowledge, "Failed to update entry", err)
	}
	e.notifier.Notify(ctx, NewNotice(NoticeSuccess, "Entry updated successfully!"))
	e.recordActivity(ctx, "update", "knowledge_entry", strconv.Itoa(id), nil)
	e.load(ctx, SectionKnowledge, "mutation", false)
	return nil
}

// DeleteKnowledgeEntry removes an entry after explicit confirmation. When the
// confirmer declines, no request is sent and ErrDeclined is returned.
func (e *Engine) DeleteKnowledgeEntry(ctx context.Context, id int) error {
	if e.repos.Knowledge == nil {
		return fmt.Errorf("%w: knowledge", errMissingRepository)
	}
	ok, err := e.confirmer.Confirm(ctx, "Are you sure you want to delete this entry? This action cannot be undone.")
	if err != nil {
		return fmt.Errorf("console: confirm delete: %w", err)
	}
	if !ok {
		e.telemetry.Record(ctx, "console.knowledge.delete_declined", map[string]any{"id": id})
		return ErrDeclined
	}
	if err := e.repos.Knowledge.DeleteKnowledgeEntry(ctx, id); err != nil {
		return e.mutationFailed(ctx, SectionKnowledge, "Failed to delete entry", err)
	}
	e.notifier.Notify(ctx, NewNotice(NoticeSuccess, "Entry deleted successfully!"))
	e.recordActivity(ctx, "delete", "knowledge_entry", strconv.Itoa(id), nil)
	e.load(ctx, SectionKnowledge, "mutation", false)
	return nil
}

// UpdateUser patches a user's role or active flag, then re-syncs the users
// section so the table reflects server truth rather than an optimistic edit.
func (e *Engine) UpdateUser(ctx context.Context, id int, patch UserPatch) error {
	if e.repos.Users == nil {
		return fmt.Errorf("%w: users", errMissingRepository)
	}
	if patch.Role == nil && patch.Active == nil {
		return errors.New("console: user patch is empty")
	}
	if err := e.repos.Users.UpdateUser(ctx, id, patch); err != nil {
		return e.mutationFailed(ctx, SectionUsers, "Failed to update user", err)
	}
	e.notifier.Notify(ctx, NewNotice(NoticeSuccess, "User updated successfully!"))
	meta := map[string]any{}
	if patch.Role != nil {
		meta["role"] = *patch.Role
	}
	if patch.Active != nil {
		meta["active"] = *patch.Active
	}
	e.recordActivity(ctx, "update", "user", strconv.Itoa(id), meta)
	e.load(ctx, SectionUsers, "mutation", false)
	return nil
}

func (e *Engine) mutationFailed(ctx context.Context, section Section, message string, err error) error {
	if errors.Is(err, ErrUnauthorized) {
		if e.sessionInvalidated != nil {
			e.sessionInvalidated(ctx)
		}
		e.notifier.Notify(ctx, NewNotice(NoticeError, "Session expired. Please sign in again."))
	} else {
		e.notifier.Notify(ctx, NewNotice(NoticeError, message))
	}
	e.telemetry.Record(ctx, "console.mutation.error", map[string]any{
		"section": string(section),
		"error":   err.Error(),
	})
	return fmt.Errorf("console: %s: %w", message, err)
}

func (e *Engine) recordActivity(ctx context.Context, verb, objectType, objectID string, metadata map[string]any) {
	if err := e.activity.RecordAction(ctx, verb, objectType, objectID, metadata); err != nil {
		e.telemetry.Record(ctx, "console.activity.error", map[string]any{"error": err.Error()})
	}
}

func patchFromInput(input KnowledgeEntryInput) KnowledgeEntryPatch {
	active := input.Active
	patch := KnowledgeEntryPatch{
		Category: &input.Category,
		Title:    &input.Title,
		Content:  &input.Content,
		Active:   &active,
	}
	if input.Language != "" {
		patch.Language = &input.Language
	}
	if input.Source != "" {
		patch.Source = &input.Source
	}
	if len(input.Tags) > 0 {
		tags := input.Tags
		patch.Tags = &tags
	}
	return patch
}

func entryID(id *int) string {
	if id == nil {
		return ""
	}
	return strconv.Itoa(*id)
}
