package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// removalDueMsg fires when a deferred canvas task is due
type removalDueMsg struct {
	id int
}

// tickScheduler defers canvas tasks through tea.Tick. Scheduled ticks are
// queued and handed to the runtime by the next Update.
type tickScheduler struct {
	next   int
	tasks  map[int]func()
	queued []tea.Cmd
}

func newTickScheduler() *tickScheduler {
	return &tickScheduler{tasks: make(map[int]func())}
}

func (s *tickScheduler) Schedule(delay time.Duration, task func()) func() {
	s.next++
	id := s.next
	s.tasks[id] = task
	s.queued = append(s.queued, tea.Tick(delay, func(time.Time) tea.Msg {
		return removalDueMsg{id: id}
	}))
	return func() { delete(s.tasks, id) }
}

// run executes a due task unless it was cancelled
func (s *tickScheduler) run(id int) bool {
	task, ok := s.tasks[id]
	if !ok {
		return false
	}
	delete(s.tasks, id)
	task()
	return true
}

// flush runs every pending task now, in scheduling order
func (s *tickScheduler) flush() {
	for id := 1; id <= s.next; id++ {
		s.run(id)
	}
}

// drain returns the queued ticks
func (s *tickScheduler) drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

func (s *tickScheduler) pending() int {
	return len(s.tasks)
}
