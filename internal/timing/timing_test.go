package timing

import (
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestManualClock(t *testing.T) {
	c := NewManualClock(epoch)
	c.Advance(1500 * time.Millisecond)
	if got := c.Now().Sub(epoch); got != 1500*time.Millisecond {
		t.Errorf("Expected 1.5s, got %v", got)
	}
	c.Set(epoch)
	if !c.Now().Equal(epoch) {
		t.Errorf("Expected clock reset to epoch, got %v", c.Now())
	}
}

func TestSchedulerFiresOnInterval(t *testing.T) {
	s := NewScheduler()
	var fired []time.Time
	s.Every("tick", time.Second, epoch, func(now time.Time) {
		fired = append(fired, now)
	})

	s.Run(epoch.Add(999 * time.Millisecond))
	if len(fired) != 0 {
		t.Fatalf("Expected no call before the first interval, got %d", len(fired))
	}

	s.Run(epoch.Add(time.Second))
	s.Run(epoch.Add(1500 * time.Millisecond))
	s.Run(epoch.Add(2 * time.Second))
	if len(fired) != 2 {
		t.Fatalf("Expected 2 calls, got %d", len(fired))
	}
}

func TestSchedulerNoCatchUpBurst(t *testing.T) {
	s := NewScheduler()
	calls := 0
	s.Every("tick", time.Second, epoch, func(time.Time) { calls++ })

	s.Run(epoch.Add(10 * time.Second))
	if calls != 1 {
		t.Errorf("Expected a single call after a long stall, got %d", calls)
	}
	s.Run(epoch.Add(10*time.Second + 500*time.Millisecond))
	if calls != 1 {
		t.Errorf("Expected the next call to be rescheduled from now, got %d", calls)
	}
	s.Run(epoch.Add(11 * time.Second))
	if calls != 2 {
		t.Errorf("Expected 2 calls, got %d", calls)
	}
}

func TestTaskCancel(t *testing.T) {
	s := NewScheduler()
	calls := 0
	task := s.Every("tick", time.Second, epoch, func(time.Time) { calls++ })

	task.Cancel()
	s.Run(epoch.Add(5 * time.Second))
	if calls != 0 {
		t.Errorf("Cancelled task fired %d times", calls)
	}
	if s.Active() != 0 {
		t.Errorf("Expected no active tasks, got %d", s.Active())
	}
	if !task.Canceled() {
		t.Errorf("Expected task to report cancellation")
	}

	var nilTask *Task
	nilTask.Cancel()
	if !nilTask.Canceled() {
		t.Errorf("A nil task counts as cancelled")
	}
}

func TestTaskCancelledByEarlierCallback(t *testing.T) {
	s := NewScheduler()
	var second *Task
	secondCalls := 0

	s.Every("first", time.Second, epoch, func(time.Time) { second.Cancel() })
	second = s.Every("second", time.Second, epoch, func(time.Time) { secondCalls++ })

	s.Run(epoch.Add(time.Second))
	if secondCalls != 0 {
		t.Errorf("A task cancelled during Run must not fire, got %d calls", secondCalls)
	}
	if s.Active() != 1 {
		t.Errorf("Expected 1 active task, got %d", s.Active())
	}
}

func TestTaskRegisteredByCallbackWaits(t *testing.T) {
	s := NewScheduler()
	innerCalls := 0
	var once bool

	s.Every("outer", time.Second, epoch, func(now time.Time) {
		if once {
			return
		}
		once = true
		s.Every("inner", time.Second, now, func(time.Time) { innerCalls++ })
	})

	s.Run(epoch.Add(time.Second))
	if innerCalls != 0 {
		t.Errorf("A task added during Run should wait for its interval, got %d calls", innerCalls)
	}
	if s.Active() != 2 {
		t.Errorf("Expected 2 active tasks, got %d", s.Active())
	}

	s.Run(epoch.Add(2 * time.Second))
	if innerCalls != 1 {
		t.Errorf("Expected inner task to fire once, got %d", innerCalls)
	}
}

func TestCancelAll(t *testing.T) {
	s := NewScheduler()
	s.Every("a", time.Second, epoch, func(time.Time) {})
	s.Every("b", time.Second, epoch, func(time.Time) {})

	s.CancelAll()
	if s.Active() != 0 {
		t.Errorf("Expected no active tasks, got %d", s.Active())
	}
}
