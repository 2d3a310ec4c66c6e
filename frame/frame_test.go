package frame

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestSchedulerRequest(t *testing.T) {
	var s Scheduler

	var got []int
	h1 := s.Request(func(time.Time) { got = append(got, 1) })
	h2 := s.Request(func(time.Time) { got = append(got, 2) })

	if h1 == 0 || h2 == 0 || h1 == h2 {
		t.Fatalf("handles %d and %d", h1, h2)
	}

	if n := s.Pending(); n != 2 {
		t.Fatalf("pending = %d", n)
	}

	if n := s.Tick(time.Now()); n != 2 {
		t.Errorf("ran %d", n)
	}

	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("order = %v", got)
	}

	if n := s.Tick(time.Now()); n != 0 {
		t.Errorf("callbacks ran twice")
	}
}

func TestSchedulerCancel(t *testing.T) {
	var s Scheduler

	ran := false
	h := s.Request(func(time.Time) { ran = true })
	s.Cancel(h)
	s.Cancel(h)
	s.Cancel(0)
	s.Cancel(Handle(999))

	if s.Pending() != 0 {
		t.Errorf("pending after cancel = %d", s.Pending())
	}

	s.Tick(time.Now())
	if ran {
		t.Errorf("cancelled callback ran")
	}
}

func TestSchedulerCancelDuringTick(t *testing.T) {
	var s Scheduler

	ran := false
	var second Handle

	s.Request(func(time.Time) { s.Cancel(second) })
	second = s.Request(func(time.Time) { ran = true })

	if n := s.Tick(time.Now()); n != 1 {
		t.Errorf("ran %d, want 1", n)
	}

	if ran {
		t.Errorf("callback cancelled earlier in the tick still ran")
	}
}

func TestSchedulerRequestDuringTick(t *testing.T) {
	var s Scheduler

	count := 0
	var cb Callback
	cb = func(time.Time) {
		count++
		s.Request(cb)
	}
	s.Request(cb)

	s.Tick(time.Now())
	if count != 1 {
		t.Fatalf("re-request ran in the same tick: %d", count)
	}

	if s.Pending() != 1 {
		t.Errorf("pending = %d", s.Pending())
	}

	s.Tick(time.Now())
	if count != 2 {
		t.Errorf("count = %d", count)
	}
}

func TestLoopPost(t *testing.T) {
	l := NewLoop(0)

	if l.Interval() != time.Second/DefaultRate {
		t.Errorf("interval = %v", l.Interval())
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	n := 0

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Post(func() {
				mu.Lock()
				n++
				mu.Unlock()
			})
		}()
	}
	wg.Wait()

	nested := false
	l.Post(func() {
		l.Post(func() { nested = true })
	})

	l.RunPending()

	if n != 8 {
		t.Errorf("ran %d posted tasks", n)
	}

	if !nested {
		t.Errorf("work posted by work did not run")
	}
}

func TestLoopTick(t *testing.T) {
	l := NewLoop(30)

	frames := 0
	l.Post(func() {
		l.RequestFrame(func(time.Time) { frames++ })
	})

	if n := l.Tick(time.Now()); n != 1 || frames != 1 {
		t.Errorf("tick ran %d, frames %d", n, frames)
	}

	h := l.RequestFrame(func(time.Time) { frames++ })
	l.CancelFrame(h)

	if l.Pending() != 0 {
		t.Errorf("pending = %d", l.Pending())
	}

	l.Tick(time.Now())
	if frames != 1 {
		t.Errorf("cancelled frame ran")
	}
}

func TestLoopRun(t *testing.T) {
	l := NewLoop(200)
	ctx, cancel := context.WithCancel(context.Background())

	presents := 0
	l.Post(func() {
		l.RequestFrame(func(time.Time) {
			cancel()
		})
	})

	err := l.Run(ctx, func() { presents++ })
	if err != context.Canceled {
		t.Errorf("err = %v", err)
	}

	if presents == 0 {
		t.Errorf("frame was never presented")
	}
}
