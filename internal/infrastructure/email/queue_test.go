package email

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeQueueSender struct {
	mu      sync.Mutex
	sent    []Message
	started chan struct{}
	block   chan struct{}
	outcome Outcome
}

func (f *fakeQueueSender) Send(ctx context.Context, msg Message) Outcome {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	f.sent = append(f.sent, msg)
	f.mu.Unlock()
	return f.outcome
}

func waitOutcome(t *testing.T, ch <-chan Outcome) Outcome {
	t.Helper()
	select {
	case outcome := <-ch:
		return outcome
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for outcome")
		return Outcome{}
	}
}

func TestQueue_DeliversOutcome(t *testing.T) {
	sender := &fakeQueueSender{outcome: Outcome{Status: StatusSent, Attempts: 1}}
	q := NewQueue(sender, 4, 1, testLogger())
	defer q.Close()

	outcome := waitOutcome(t, q.Enqueue(testMessage()))

	assert.Equal(t, StatusSent, outcome.Status)
	assert.Equal(t, 1, outcome.Attempts)
}

func TestQueue_CloseDrainsPendingWork(t *testing.T) {
	sender := &fakeQueueSender{outcome: Outcome{Status: StatusSent, Attempts: 1}}
	q := NewQueue(sender, 8, 2, testLogger())

	channels := make([]<-chan Outcome, 0, 5)
	for i := 0; i < 5; i++ {
		channels = append(channels, q.Enqueue(testMessage()))
	}

	q.Close()

	for _, ch := range channels {
		outcome := waitOutcome(t, ch)
		assert.Equal(t, StatusSent, outcome.Status)
	}

	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.Len(t, sender.sent, 5)
}

func TestQueue_EnqueueAfterClose(t *testing.T) {
	sender := &fakeQueueSender{outcome: Outcome{Status: StatusSent}}
	q := NewQueue(sender, 4, 1, testLogger())
	q.Close()

	outcome := waitOutcome(t, q.Enqueue(testMessage()))

	assert.Equal(t, StatusFailed, outcome.Status)
	assert.ErrorIs(t, outcome.Err, ErrQueueClosed)
}

func TestQueue_FullQueueRejectsWithoutBlocking(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{}, 1)
	sender := &fakeQueueSender{outcome: Outcome{Status: StatusSent}, started: started, block: block}
	q := NewQueue(sender, 1, 1, testLogger())

	// First message occupies the worker, second fills the buffer, third has
	// nowhere to go.
	first := q.Enqueue(testMessage())
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never picked up the first message")
	}
	second := q.Enqueue(testMessage())

	third := waitOutcome(t, q.Enqueue(testMessage()))
	assert.Equal(t, StatusFailed, third.Status)
	assert.ErrorIs(t, third.Err, ErrQueueFull)

	close(block)
	q.Close()

	assert.Equal(t, StatusSent, waitOutcome(t, first).Status)
	assert.Equal(t, StatusSent, waitOutcome(t, second).Status)
}
