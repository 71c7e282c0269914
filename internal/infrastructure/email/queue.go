package email

import (
	"context"
	"fmt"
	"sync"

	"helpdesk/internal/shared/goroutine"
	"helpdesk/internal/shared/logger"
)

// Sender is the delivery contract the queue drains into. The Dispatcher is
// the production implementation.
type Sender interface {
	Send(ctx context.Context, msg Message) Outcome
}

type queueJob struct {
	msg    Message
	result chan Outcome
}

// Queue is a bounded in-process dispatch queue drained by a fixed worker
// pool. Enqueue returns a buffered channel carrying the terminal Outcome;
// callers that do not care simply drop it, so fire-and-forget stays cheap
// while interested callers (and tests) can observe every delivery.
type Queue struct {
	sender Sender
	jobs   chan queueJob
	logger logger.Interface

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewQueue(sender Sender, size, workers int, log logger.Interface) *Queue {
	if size <= 0 {
		size = 64
	}
	if workers <= 0 {
		workers = 1
	}

	q := &Queue{
		sender: sender,
		jobs:   make(chan queueJob, size),
		logger: log.Named("email-queue"),
	}

	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		goroutine.SafeGo(q.logger, fmt.Sprintf("email-worker-%d", i), func() {
			defer q.wg.Done()
			q.work()
		})
	}

	return q
}

func (q *Queue) work() {
	for job := range q.jobs {
		outcome := q.sender.Send(context.Background(), job.msg)
		job.result <- outcome
		close(job.result)
	}
}

// Enqueue submits msg for asynchronous delivery. The returned channel
// receives exactly one Outcome and is then closed. When the queue is full or
// already closed the outcome is an immediate failure; nothing blocks.
func (q *Queue) Enqueue(msg Message) <-chan Outcome {
	result := make(chan Outcome, 1)

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		q.logger.Warnw("enqueue on closed queue", "recipient", msg.Recipient, "kind", msg.Kind)
		result <- Outcome{Status: StatusFailed, Err: ErrQueueClosed}
		close(result)
		return result
	}

	select {
	case q.jobs <- queueJob{msg: msg, result: result}:
	default:
		q.logger.Warnw("dispatch queue full, dropping message",
			"recipient", msg.Recipient, "kind", msg.Kind)
		result <- Outcome{Status: StatusFailed, Err: ErrQueueFull}
		close(result)
	}

	return result
}

// Close stops accepting new messages, lets the workers drain what is already
// queued and waits for them to finish.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()
}
