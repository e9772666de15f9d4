// Package host provides the frame scheduling and environment plumbing shared by
// the background hosts, plus a headless host for runs without a display.
package host

import (
	"time"

	"github.com/pthm-cable/backdrop/background"
)

// FrameQueue implements request/cancel frame semantics on top of a refresh
// signal the owner pumps once per display refresh.
// It is not safe for concurrent use.
type FrameQueue struct {
	next    background.FrameHandle
	pending map[background.FrameHandle]background.FrameFunc
	order   []background.FrameHandle
}

// NewFrameQueue creates an empty queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{pending: make(map[background.FrameHandle]background.FrameFunc)}
}

// Request queues fn for the next Pump and returns its non-zero handle.
func (q *FrameQueue) Request(fn background.FrameFunc) background.FrameHandle {
	q.next++
	h := q.next
	q.pending[h] = fn
	q.order = append(q.order, h)
	return h
}

// Cancel drops the callback behind h. Unknown or already-run handles are ignored.
func (q *FrameQueue) Cancel(h background.FrameHandle) {
	delete(q.pending, h)
}

// Len returns the number of callbacks waiting for the next Pump.
func (q *FrameQueue) Len() int { return len(q.pending) }

// Pump runs the callbacks requested before this call, in request order.
// Callbacks requested while pumping wait for the next Pump; callbacks
// cancelled while pumping do not run. Returns the number of callbacks run.
func (q *FrameQueue) Pump(ts time.Duration) int {
	batch := q.order
	q.order = nil

	ran := 0
	for _, h := range batch {
		fn, ok := q.pending[h]
		if !ok {
			continue
		}
		delete(q.pending, h)
		fn(ts)
		ran++
	}
	return ran
}
