package pairs

import "time"

// Scheduler runs a callback once after a delay.
type Scheduler interface {
	After(d time.Duration, fn func())
}

type scheduledTask struct {
	due time.Duration
	seq uint64
	fn  func()
}

// TickScheduler is a cooperative Scheduler driven by Advance.
// Callbacks run inside Advance, in the caller's goroutine, so a game loop
// that owns the controller needs no locking. It is not safe for concurrent use.
type TickScheduler struct {
	now   time.Duration
	seq   uint64
	tasks []scheduledTask
}

// NewTickScheduler creates a scheduler whose clock starts at zero.
func NewTickScheduler() *TickScheduler {
	return &TickScheduler{}
}

// After queues fn to run once the clock has advanced by d.
func (s *TickScheduler) After(d time.Duration, fn func()) {
	s.seq++
	s.tasks = append(s.tasks, scheduledTask{due: s.now + d, seq: s.seq, fn: fn})
}

// Advance moves the clock forward by dt and runs every callback that has
// come due, earliest first. Callbacks queued while running are picked up
// in the same call if they are already due. Returns the number run.
func (s *TickScheduler) Advance(dt time.Duration) int {
	s.now += dt
	ran := 0
	for {
		idx := -1
		for i, t := range s.tasks {
			if t.due > s.now {
				continue
			}
			if idx < 0 || t.due < s.tasks[idx].due || (t.due == s.tasks[idx].due && t.seq < s.tasks[idx].seq) {
				idx = i
			}
		}
		if idx < 0 {
			return ran
		}
		task := s.tasks[idx]
		s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
		task.fn()
		ran++
	}
}

// Pending returns the number of queued callbacks.
func (s *TickScheduler) Pending() int {
	return len(s.tasks)
}

// Now returns the scheduler clock.
func (s *TickScheduler) Now() time.Duration {
	return s.now
}
