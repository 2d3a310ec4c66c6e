package frame

import (
	"context"
	"sync"
	"time"
)

// DefaultRate is used when a Loop is given no frame rate.
const DefaultRate = 60

// Loop is the UI goroutine. It owns a Scheduler, runs work posted from other
// goroutines, and ticks the scheduler at the frame rate.
type Loop struct {
	sched    Scheduler
	interval time.Duration

	mu    sync.Mutex
	tasks []func()
	wake  chan struct{}
}

func NewLoop(fps int) *Loop {
	if fps <= 0 {
		fps = DefaultRate
	}

	return &Loop{
		interval: time.Second / time.Duration(fps),
		wake:     make(chan struct{}, 1),
	}
}

// Interval is the time between ticks.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Post queues fn to run on the loop goroutine. Safe from any goroutine.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// RunPending runs posted work, including work posted by that work.
func (l *Loop) RunPending() {
	for {
		l.mu.Lock()
		tasks := l.tasks
		l.tasks = nil
		l.mu.Unlock()

		if len(tasks) == 0 {
			return
		}

		for _, fn := range tasks {
			fn()
		}
	}
}

// RequestFrame queues cb for the next tick. Loop goroutine only.
func (l *Loop) RequestFrame(cb Callback) Handle {
	return l.sched.Request(cb)
}

// CancelFrame drops a queued callback. Loop goroutine only.
func (l *Loop) CancelFrame(h Handle) {
	l.sched.Cancel(h)
}

// Pending returns how many frame callbacks are waiting.
func (l *Loop) Pending() int {
	return l.sched.Pending()
}

// Tick runs posted work and then one frame. Hosts with their own refresh
// signal call this instead of Run.
func (l *Loop) Tick(now time.Time) int {
	l.RunPending()
	return l.sched.Tick(now)
}

// Run ticks at the loop interval until ctx is done, calling present after
// every tick. Posted work runs as soon as it arrives.
func (l *Loop) Run(ctx context.Context, present func()) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.RunPending()
			return ctx.Err()

		case <-l.wake:
			l.RunPending()

		case now := <-ticker.C:
			l.Tick(now)
			if present != nil {
				present()
			}
		}
	}
}
