package adminapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func TestSendMessageParsesReply(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chat" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["message"] != "how do I prevent malaria?" {
			t.Fatalf("unexpected body %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"response":   "Sleep under a treated net.",
			"intent":     "disease_prevention",
			"confidence": 0.93,
			"message_id": 12,
		})
	}, nil)

	reply, err := client.SendMessage(context.Background(), ChatInput{Message: "how do I prevent malaria?"})
	if err != nil {
		t.Fatalf("send message: %v", err)
	}
	if reply.Intent != "disease_prevention" || reply.MessageID != 12 {
		t.Fatalf("unexpected reply %+v", reply)
	}
	if reply.Confidence == nil || *reply.Confidence != 0.93 {
		t.Fatalf("unexpected confidence %v", reply.Confidence)
	}
}

func TestSendMessageRequiresText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("empty message must not reach the backend")
	}, nil)

	if _, err := client.SendMessage(context.Background(), ChatInput{}); err == nil {
		t.Fatalf("expected error for empty message")
	}
}

func TestSubmitFeedbackValidatesRating(t *testing.T) {
	requests := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/api/feedback" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}, nil)

	if err := client.SubmitFeedback(context.Background(), FeedbackInput{MessageID: 1, Rating: "meh"}); err == nil {
		t.Fatalf("expected invalid rating error")
	}
	if requests != 0 {
		t.Fatalf("invalid rating reached the backend")
	}

	if err := client.SubmitFeedback(context.Background(), FeedbackInput{MessageID: 1, Rating: "positive", Comment: "helpful"}); err != nil {
		t.Fatalf("submit feedback: %v", err)
	}
	if requests != 1 {
		t.Fatalf("expected one request, got %d", requests)
	}
}
