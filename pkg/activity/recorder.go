package activity

import "context"

// Recorder adapts the emitter to the console engine's audit interface. The
// actor is fixed at construction, typically the signed-in admin.
type Recorder struct {
	Emitter *Emitter
	ActorID string
}

// RecordAction emits one audit event for an admin mutation.
func (r Recorder) RecordAction(ctx context.Context, verb, objectType, objectID string, metadata map[string]any) error {
	if r.Emitter == nil {
		return nil
	}
	return r.Emitter.Emit(ctx, Event{
		Verb:       verb,
		ActorID:    r.ActorID,
		ObjectType: objectType,
		ObjectID:   objectID,
		Metadata:   metadata,
	})
}
