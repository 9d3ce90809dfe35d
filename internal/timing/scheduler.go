package timing

import "time"

// Task is a periodic callback registered with a Scheduler.
type Task struct {
	name     string
	interval time.Duration
	next     time.Time
	fn       func(now time.Time)
	canceled bool
}

// Cancel stops the task. It never fires again, even within the current Run.
// Cancel on a nil task is a no-op.
func (t *Task) Cancel() {
	if t != nil {
		t.canceled = true
	}
}

// Canceled reports whether the task was cancelled.
func (t *Task) Canceled() bool {
	return t == nil || t.canceled
}

// Name returns the label the task was registered with.
func (t *Task) Name() string { return t.name }

// Scheduler fires periodic tasks when the host calls Run. It is not safe for
// concurrent use; the host calls it from its update loop.
type Scheduler struct {
	tasks []*Task
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Every registers fn to fire every interval, first at now+interval.
func (s *Scheduler) Every(name string, interval time.Duration, now time.Time, fn func(now time.Time)) *Task {
	t := &Task{
		name:     name,
		interval: interval,
		next:     now.Add(interval),
		fn:       fn,
	}
	s.tasks = append(s.tasks, t)
	return t
}

// Run fires every due task once. A late host does not get a burst of catch-up
// calls: a task that missed several intervals fires once and is rescheduled from now.
func (s *Scheduler) Run(now time.Time) {
	// Tasks registered by a callback wait for the next Run.
	due := append([]*Task(nil), s.tasks...)
	for _, t := range due {
		if t.canceled || now.Before(t.next) {
			continue
		}
		t.next = t.next.Add(t.interval)
		if !t.next.After(now) {
			t.next = now.Add(t.interval)
		}
		t.fn(now)
	}
	s.compact()
}

// Active returns the number of tasks that have not been cancelled.
func (s *Scheduler) Active() int {
	n := 0
	for _, t := range s.tasks {
		if !t.canceled {
			n++
		}
	}
	return n
}

// CancelAll cancels every registered task.
func (s *Scheduler) CancelAll() {
	for _, t := range s.tasks {
		t.canceled = true
	}
	s.compact()
}

func (s *Scheduler) compact() {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.canceled {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = kept
}
