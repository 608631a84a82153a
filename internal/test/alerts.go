package test

import (
	"context"
	"sync"

	"github.com/phan14/du-an-ss2/internal/domain/model"
)

// QueuedAlert is one message accepted by QueueStub.
type QueuedAlert struct {
	OrderID string
	Text    string
}

// QueueStub records enqueued alerts. Full makes every Enqueue fail.
type QueueStub struct {
	mu    sync.Mutex
	items []QueuedAlert
	Full  bool
}

func (q *QueueStub) Enqueue(orderID, text string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.Full {
		return false
	}
	q.items = append(q.items, QueuedAlert{OrderID: orderID, Text: text})
	return true
}

// Items returns a copy of what was enqueued so far.
func (q *QueueStub) Items() []QueuedAlert {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]QueuedAlert, len(q.items))
	copy(out, q.items)
	return out
}

// TelegramStub records sent messages and returns Err.
type TelegramStub struct {
	mu      sync.Mutex
	Err     error
	Configs []model.TelegramConfig
	Texts   []string
}

func (s *TelegramStub) Send(_ context.Context, cfg model.TelegramConfig, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Configs = append(s.Configs, cfg)
	s.Texts = append(s.Texts, text)
	return s.Err
}

// Sent returns a copy of the messages sent so far.
func (s *TelegramStub) Sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.Texts))
	copy(out, s.Texts)
	return out
}
