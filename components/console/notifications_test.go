package console

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestBroadcastHookFansOutRegionEventsAndNotices(t *testing.T) {
	hook := NewBroadcastHook()
	events, cancel := hook.Subscribe()
	defer cancel()

	if err := hook.RegionUpdated(context.Background(), RegionEvent{
		Section: SectionUsers,
		Status:  RegionRendered,
		Reason:  "load",
	}); err != nil {
		t.Fatalf("region updated: %v", err)
	}
	hook.Notify(context.Background(), NewNotice(NoticeSuccess, "Entry saved successfully!"))

	first := <-events
	if first.Kind != "region" || first.Region == nil || first.Region.Section != SectionUsers {
		t.Fatalf("unexpected first event %+v", first)
	}
	second := <-events
	if second.Kind != "notice" || second.Notice == nil || second.Notice.Level != NoticeSuccess {
		t.Fatalf("unexpected second event %+v", second)
	}
}

func TestBroadcastHookDropsWhenSubscriberIsFull(t *testing.T) {
	hook := NewBroadcastHook()
	_, cancel := hook.Subscribe()
	defer cancel()

	// Overflow the buffered channel; broadcast must never block.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			hook.Notify(context.Background(), NewNotice(NoticeInfo, "tick"))
		}
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("broadcast blocked on slow subscriber")
	}
}

func TestSubscribeCancelIsIdempotent(t *testing.T) {
	hook := NewBroadcastHook()
	events, cancel := hook.Subscribe()
	cancel()
	cancel()
	if _, ok := <-events; ok {
		t.Fatalf("expected closed channel after cancel")
	}
}

func TestServeSSEWritesEvents(t *testing.T) {
	hook := NewBroadcastHook()

	req := httptest.NewRequest("GET", "/events", nil)
	ctx, cancel := context.WithCancel(req.Context())
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		hook.ServeSSE(rec, req)
	}()

	// Give the handler time to subscribe, then publish and let it drain.
	time.Sleep(50 * time.Millisecond)
	hook.Notify(context.Background(), NewNotice(NoticeError, "Failed to load users"))
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	body := rec.Body.String()
	if !strings.Contains(body, "data: ") {
		t.Fatalf("no SSE payload written, got %q", body)
	}
	line := strings.TrimPrefix(strings.SplitN(body, "\n", 2)[0], "data: ")
	var event ConsoleEvent
	if err := json.Unmarshal([]byte(line), &event); err != nil {
		t.Fatalf("decode SSE payload: %v", err)
	}
	if event.Kind != "notice" || event.Notice.Message != "Failed to load users" {
		t.Fatalf("unexpected event %+v", event)
	}
}

func TestRegionStatusMarshalsByName(t *testing.T) {
	data, err := json.Marshal(RegionEvent{Section: SectionDashboard, Status: RegionLoading, Reason: "timer"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"status":"loading"`) {
		t.Fatalf("expected named status, got %s", data)
	}
}
