// Package frame schedules work once per display refresh. Everything in it is
// meant to run on a single goroutine, the one driving Loop.
package frame

import "time"

// Handle identifies a requested callback. The zero Handle is never issued.
type Handle uint64

// Callback runs on a display refresh.
type Callback func(now time.Time)

type request struct {
	h  Handle
	cb Callback
}

// Scheduler queues callbacks for the next Tick, like requestAnimationFrame.
// It is not safe for concurrent use.
type Scheduler struct {
	last    Handle
	queue   []request
	running []request
}

// Request queues cb for the next Tick. A callback requested while a Tick is
// running waits for the following one.
func (s *Scheduler) Request(cb Callback) Handle {
	s.last++
	s.queue = append(s.queue, request{s.last, cb})
	return s.last
}

// Cancel drops the callback behind h if it has not run yet. Unknown, zero
// and already-run handles are ignored.
func (s *Scheduler) Cancel(h Handle) {
	if h == 0 {
		return
	}

	for _, q := range [2][]request{s.running, s.queue} {
		for i := range q {
			if q[i].h == h {
				q[i].cb = nil
				return
			}
		}
	}
}

// Pending returns how many callbacks are waiting for the next Tick.
func (s *Scheduler) Pending() int {
	n := 0
	for _, r := range s.queue {
		if r.cb != nil {
			n++
		}
	}
	return n
}

// Tick runs every callback queued before it started and returns how many ran.
func (s *Scheduler) Tick(now time.Time) int {
	s.running, s.queue = s.queue, nil

	ran := 0
	for i := range s.running {
		cb := s.running[i].cb
		if cb == nil {
			continue
		}

		s.running[i].cb = nil
		cb(now)
		ran++
	}

	s.running = nil
	return ran
}
