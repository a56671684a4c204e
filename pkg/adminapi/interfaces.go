package adminapi

import (
	"context"

	"github.com/healthdesk/admin-console/components/console"
)

// TokenSource supplies the current session token for outgoing requests. The
// second result is false when no session is active; requests are then sent
// without an Authorization header and rejected by the backend.
type TokenSource interface {
	Token() (string, bool)
}

// Client is the full backend surface consumed by the console: every
// per-section repository plus chat access for the embedded widget.
type Client interface {
	console.StatsRepository
	console.UserRepository
	console.FeedbackRepository
	console.KnowledgeRepository
	console.QueryRepository
	console.ActivityRepository

	SendMessage(ctx context.Context, input ChatInput) (ChatReply, error)
	SubmitFeedback(ctx context.Context, input FeedbackInput) error
}
