// Package queue implements the bounded backlog queue that decouples the
// stream consumer from the processor loop: a single-producer,
// single-consumer FIFO with a non-blocking, timeout-bounded put and a
// timeout-bounded get.
package queue

import (
	"time"

	"github.com/skywatch-go/skywatch/sbs"
)

// Queue is a bounded FIFO of sbs.Message, backed by a buffered channel.
// FIFO ordering holds as long as there is exactly one producer and one
// consumer, which is the only configuration the supervisor builds.
type Queue struct {
	ch chan sbs.Message
}

// New creates a queue with the given capacity (the spec's default is
// 100).
func New(capacity int) *Queue {
	return &Queue{ch: make(chan sbs.Message, capacity)}
}

// Put enqueues msg, waiting up to timeout for room. It reports false
// (Full) if the timeout elapses first; the caller is expected to treat
// that as "drop newest on full" and count it, not retry.
func (q *Queue) Put(msg sbs.Message, timeout time.Duration) bool {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case q.ch <- msg:
		return true
	case <-t.C:
		return false
	}
}

// Get dequeues the next message, waiting up to timeout. It reports
// false (Empty) if the timeout elapses first.
func (q *Queue) Get(timeout time.Duration) (sbs.Message, bool) {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case msg := <-q.ch:
		return msg, true
	case <-t.C:
		return sbs.Message{}, false
	}
}

// Len reports the number of messages currently queued, for the monitor.
func (q *Queue) Len() int {
	return len(q.ch)
}

// Cap reports the queue's fixed capacity.
func (q *Queue) Cap() int {
	return cap(q.ch)
}
