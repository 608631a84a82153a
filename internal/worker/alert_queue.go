package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/phan14/du-an-ss2/internal/domain/errors"
)

const defaultSendTimeout = 15 * time.Second

// Sender delivers one alert message.
type Sender interface {
	Send(ctx context.Context, text string) error
}

type alertJob struct {
	orderID string
	text    string
}

// AlertQueue delivers deadline alerts in the background so callers never wait on the chat API.
type AlertQueue struct {
	sender      Sender
	workers     int
	sendTimeout time.Duration
	logger      *slog.Logger

	jobs   chan alertJob
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewAlertQueue constructs a queue holding up to size pending messages.
func NewAlertQueue(sender Sender, size, workers int, logger *slog.Logger) *AlertQueue {
	if workers <= 0 {
		workers = 1
	}
	if size <= 0 {
		size = 1
	}
	return &AlertQueue{
		sender:      sender,
		workers:     workers,
		sendTimeout: defaultSendTimeout,
		logger:      logger,
		jobs:        make(chan alertJob, size),
	}
}

// Enqueue schedules text for delivery. It never blocks and returns false when the queue is full.
func (q *AlertQueue) Enqueue(orderID, text string) bool {
	select {
	case q.jobs <- alertJob{orderID: orderID, text: text}:
		return true
	default:
		return false
	}
}

// Start launches the delivery workers. They outlive ctx's deadline and stop on Stop.
func (q *AlertQueue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	q.cancel = cancel

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(runCtx)
	}
}

// Stop waits for in-flight deliveries. Messages still queued are dropped.
func (q *AlertQueue) Stop() {
	q.mu.Lock()
	if q.cancel != nil {
		q.cancel()
		q.cancel = nil
	}
	q.mu.Unlock()

	q.wg.Wait()
	if n := len(q.jobs); n > 0 {
		q.logger.Warn("alert queue stopped with undelivered messages", slog.Int("dropped", n))
	}
}

func (q *AlertQueue) worker(ctx context.Context) {
	defer q.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-q.jobs:
			q.deliver(ctx, job)
		}
	}
}

func (q *AlertQueue) deliver(ctx context.Context, job alertJob) {
	sendCtx, cancel := context.WithTimeout(ctx, q.sendTimeout)
	defer cancel()

	err := q.sender.Send(sendCtx, job.text)
	switch {
	case err == nil:
		q.logger.Info("alert delivered", slog.String("order_id", job.orderID))
	case errors.Is(err, domainErrors.ErrDispatcherNotConfigured):
		q.logger.Warn("alert skipped, telegram is not configured", slog.String("order_id", job.orderID))
	default:
		var derr *domainErrors.DispatchError
		if errors.As(err, &derr) {
			q.logger.Warn("alert dispatch failed", slog.String("order_id", job.orderID), slog.String("error", err.Error()))
			return
		}
		q.logger.Error("alert delivery failed", slog.String("order_id", job.orderID), slog.String("error", err.Error()))
	}
}
