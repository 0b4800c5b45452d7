package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
)

// StreamManager fans run events out to SSE subscribers, per machine.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // machine -> set of channels
}

// NewStreamManager creates an empty manager.
func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
	}
}

// Subscribe registers a channel for machine. The returned func unsubscribes
// and closes the channel.
func (sm *StreamManager) Subscribe(machine string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[machine]; !ok {
		sm.subscribers[machine] = make(map[chan<- string]struct{})
	}
	sm.subscribers[machine][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[machine]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, machine)
			}
		}
	}
}

// Subscribers counts the channels registered for machine.
func (sm *StreamManager) Subscribers(machine string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[machine])
}

// Broadcast sends msg to every subscriber of machine without blocking.
func (sm *StreamManager) Broadcast(machine string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[machine] {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			slog.Warn("SSE: Client buffer full, dropping message", "machine", machine)
		}
	}
}

// Hooks broadcasts finished runs as JSON RunEvents.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	send := func(_ context.Context, e *domain.RunEvent) {
		if sm.Subscribers(e.Machine) == 0 {
			return
		}
		payload := struct {
			*domain.RunEvent
			Error string `json:"error,omitempty"`
		}{RunEvent: e}
		if e.Err != nil {
			payload.Error = e.Err.Error()
		}
		if data, err := json.Marshal(payload); err == nil {
			sm.Broadcast(e.Machine, string(data))
		}
	}
	return domain.LifecycleHooks{
		OnRunHalt: send,
		OnRunFail: send,
	}
}

// SubscribeEvents handles the GET /machines/{name}/events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}
	eng, ok := s.engine(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(eng.Name)
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: run\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
