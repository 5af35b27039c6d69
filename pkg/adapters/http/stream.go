package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/promistrio/albatros-chute/pkg/domain"
)

// StreamManager fans notifications out to the connected SSE clients.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan string]struct{}
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[chan string]struct{}),
	}
}

// Subscribe registers a client. The returned func unregisters it and closes the channel.
func (sm *StreamManager) Subscribe() (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	sm.subscribers[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			delete(sm.subscribers, ch)
			close(ch)
		})
	}
}

// Broadcast sends msg to every subscriber without blocking; slow clients miss it.
func (sm *StreamManager) Broadcast(msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
			slog.Warn("SSE: client buffer full, dropping message")
		}
	}
}

// Hooks returns lifecycle hooks that broadcast every notification as JSON.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNotify: func(_ context.Context, e *domain.NotificationEvent) {
			data, err := json.Marshal(e.Notification)
			if err != nil {
				return
			}
			sm.Broadcast(string(data))
		},
	}
}
