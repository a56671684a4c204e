package adminapi

import (
	"context"
	"fmt"
	"net/http"
)

// ChatInput is one user message sent to the chatbot.
type ChatInput struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
	Language  string `json:"language,omitempty"`
}

// ChatReply is the chatbot's answer with its detected intent. MessageID
// identifies the bot message for later feedback.
type ChatReply struct {
	Response   string   `json:"response"`
	Intent     string   `json:"intent"`
	Confidence *float64 `json:"confidence"`
	MessageID  int      `json:"message_id"`
}

// FeedbackInput rates a chatbot answer. Rating is "positive" or "negative";
// the comment is optional.
type FeedbackInput struct {
	MessageID int    `json:"message_id"`
	Rating    string `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// SendMessage posts a chat message and returns the bot's reply.
func (c *HTTPClient) SendMessage(ctx context.Context, input ChatInput) (ChatReply, error) {
	if input.Message == "" {
		return ChatReply{}, fmt.Errorf("adminapi: chat message is required")
	}
	var reply ChatReply
	if err := c.do(ctx, http.MethodPost, "/api/chat", input, &reply); err != nil {
		return ChatReply{}, err
	}
	return reply, nil
}

// SubmitFeedback records a rating for a chatbot answer.
func (c *HTTPClient) SubmitFeedback(ctx context.Context, input FeedbackInput) error {
	if input.Rating != "positive" && input.Rating != "negative" {
		return fmt.Errorf("adminapi: rating must be positive or negative, got %q", input.Rating)
	}
	return c.do(ctx, http.MethodPost, "/api/feedback", input, nil)
}
