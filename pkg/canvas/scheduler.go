package canvas

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs a task after a delay. The returned func cancels the task if
// it has not run yet.
type Scheduler interface {
	Schedule(delay time.Duration, task func()) (cancel func())
}

// ImmediateScheduler runs every task synchronously. Headless callers use it so
// a delete completes before the command returns.
type ImmediateScheduler struct{}

func (ImmediateScheduler) Schedule(_ time.Duration, task func()) func() {
	task()
	return func() {}
}

// ManualScheduler queues tasks until Advance moves its clock past their due
// time.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks map[int]*manualTask
}

type manualTask struct {
	seq int
	due time.Duration
	run func()
}

// NewManualScheduler creates a scheduler whose clock starts at zero
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{tasks: make(map[int]*manualTask)}
}

func (s *ManualScheduler) Schedule(delay time.Duration, task func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	id := s.seq
	s.tasks[id] = &manualTask{seq: id, due: s.now + delay, run: task}
	return func() {
		s.mu.Lock()
		delete(s.tasks, id)
		s.mu.Unlock()
	}
}

// Pending returns the number of queued tasks
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Advance moves the clock forward and runs every task that became due, in
// due order.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*manualTask
	for id, t := range s.tasks {
		if t.due <= s.now {
			due = append(due, t)
			delete(s.tasks, id)
		}
	}
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		t.run()
	}
}
