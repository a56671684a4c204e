package activity

import "context"

// DefaultChannel tags events emitted by the admin console.
const DefaultChannel = "console"

// Config controls whether emission is active.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter publishes audit events to its hooks. A disabled or hook-less
// emitter drops events silently.
type Emitter struct {
	hooks   Hooks
	enabled bool
	channel string
}

// NewEmitter builds an emitter. Without hooks the emitter reports disabled.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	channel := cfg.Channel
	if channel == "" {
		channel = DefaultChannel
	}
	return &Emitter{
		hooks:   hooks,
		enabled: cfg.Enabled && len(hooks) > 0,
		channel: channel,
	}
}

// Enabled reports whether Emit will publish anything.
func (e *Emitter) Enabled() bool {
	return e != nil && e.enabled
}

// Emit publishes the event, defaulting its channel.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if !e.Enabled() {
		return nil
	}
	if evt.Channel == "" {
		evt.Channel = e.channel
	}
	return e.hooks.Notify(ctx, evt)
}
