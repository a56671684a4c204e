package activity

import "context"

// Hook receives normalized audit events.
type Hook interface {
	Notify(ctx context.Context, evt Event) error
}

// HookFunc adapts a function to the Hook interface.
type HookFunc func(ctx context.Context, evt Event) error

// Notify implements Hook.
func (f HookFunc) Notify(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}

// Hooks fans one event out to multiple hooks.
type Hooks []Hook

// Notify normalizes the event and forwards it to every hook. Events without a
// verb are skipped. The first hook error stops the fan-out.
func (h Hooks) Notify(ctx context.Context, evt Event) error {
	if !evt.Valid() {
		return nil
	}
	normalized := NormalizeEvent(evt)
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, normalized); err != nil {
			return err
		}
	}
	return nil
}
