package usersink

import (
	"context"

	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"

	"github.com/healthdesk/admin-console/pkg/activity"
)

// Sink persists activity records, typically backed by go-users storage.
type Sink interface {
	Log(ctx context.Context, record types.ActivityRecord) error
}

// Hook maps console audit events onto go-users activity records.
type Hook struct {
	Sink Sink
}

// Notify implements activity.Hook. Events without a verb are skipped.
func (h Hook) Notify(ctx context.Context, evt Event) error {
	if h.Sink == nil || !evt.Valid() {
		return nil
	}
	record := types.ActivityRecord{
		ActorID:    parseUUID(evt.ActorID),
		UserID:     parseUUID(evt.UserID),
		TenantID:   parseUUID(evt.TenantID),
		Verb:       evt.Verb,
		ObjectType: evt.ObjectType,
		ObjectID:   evt.ObjectID,
		Channel:    evt.Channel,
		OccurredAt: evt.OccurredAt,
	}

	data := make(map[string]any, len(evt.Metadata)+2)
	for k, v := range evt.Metadata {
		data[k] = v
	}
	if evt.DefinitionCode != "" {
		data["definition_code"] = evt.DefinitionCode
	}
	if len(evt.Recipients) > 0 {
		data["recipients"] = append([]string(nil), evt.Recipients...)
	}
	if len(data) > 0 {
		record.Data = data
	}
	return h.Sink.Log(ctx, record)
}

// Event aliases the activity event for callers of this package.
type Event = activity.Event

func parseUUID(raw string) uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
