package console

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// NoticeLevel classifies transient notifications.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
	NoticeInfo    NoticeLevel = "info"
)

// Notice is a non-blocking, transient notification shown to the admin.
type Notice struct {
	ID      string      `json:"id"`
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
	At      time.Time   `json:"at"`
}

// NewNotice builds a notice with a fresh id and timestamp.
func NewNotice(level NoticeLevel, message string) Notice {
	return Notice{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
		At:      time.Now().UTC(),
	}
}

// Notifier receives transient notices. Implementations must not block.
type Notifier interface {
	Notify(ctx context.Context, notice Notice)
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, Notice) {}

// ConsoleEvent is the fan-out payload: either a region transition or a notice.
type ConsoleEvent struct {
	Kind   string       `json:"kind"`
	Region *RegionEvent `json:"region,omitempty"`
	Notice *Notice      `json:"notice,omitempty"`
}

// BroadcastHook fans region events and notices out to in-process subscribers
// and to SSE/WebSocket clients. It satisfies both RefreshHook and Notifier.
type BroadcastHook struct {
	mu   sync.RWMutex
	subs map[int]chan ConsoleEvent
	next int
}

// NewBroadcastHook creates a broadcast hook.
func NewBroadcastHook() *BroadcastHook {
	return &BroadcastHook{
		subs: make(map[int]chan ConsoleEvent),
	}
}

// RegionUpdated satisfies RefreshHook and broadcasts region transitions.
func (h *BroadcastHook) RegionUpdated(ctx context.Context, event RegionEvent) error {
	h.broadcast(ConsoleEvent{Kind: "region", Region: &event})
	return nil
}

// Notify satisfies Notifier and broadcasts transient notices.
func (h *BroadcastHook) Notify(ctx context.Context, notice Notice) {
	h.broadcast(ConsoleEvent{Kind: "notice", Notice: &notice})
}

func (h *BroadcastHook) broadcast(event ConsoleEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe returns a channel of console events and a cancel func.
func (h *BroadcastHook) Subscribe() (<-chan ConsoleEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan ConsoleEvent, 8)
	h.subs[id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the request and streams console events as JSON.
func (h *BroadcastHook) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer conn.Close()

	events, cancel := h.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}

// ServeSSE provides a Server-Sent Events endpoint for console events.
func (h *BroadcastHook) ServeSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	events, cancel := h.Subscribe()
	defer cancel()

	encoder := json.NewEncoder(w)
	flusher, _ := w.(http.Flusher)

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			w.Write([]byte("data: "))
			if err := encoder.Encode(event); err != nil {
				return
			}
			w.Write([]byte("\n"))
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}
