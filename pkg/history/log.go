// Package history keeps a bounded undo/redo log of canvas snapshots.
package history

// DefaultCapacity is the number of snapshots kept when none is configured
const DefaultCapacity = 50

// Log is a bounded linear history. Committing after an undo discards the
// redo branch.
type Log struct {
	entries  [][]byte
	index    int
	capacity int
}

// NewLog creates an empty log. A capacity below 1 uses DefaultCapacity.
func NewLog(capacity int) *Log {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Log{index: -1, capacity: capacity}
}

// Commit appends a snapshot after the current position. When the log is full
// the oldest entry is dropped and the index stays where it is.
func (l *Log) Commit(snapshot []byte) {
	l.entries = append(l.entries[:l.index+1], snapshot)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[1:]
	} else {
		l.index++
	}
}

func (l *Log) CanUndo() bool {
	return l.index > 0
}

func (l *Log) CanRedo() bool {
	return l.index < len(l.entries)-1
}

// Undo steps back and returns the entry now current
func (l *Log) Undo() ([]byte, bool) {
	if !l.CanUndo() {
		return nil, false
	}
	l.index--
	return l.entries[l.index], true
}

// Redo steps forward and returns the entry now current
func (l *Log) Redo() ([]byte, bool) {
	if !l.CanRedo() {
		return nil, false
	}
	l.index++
	return l.entries[l.index], true
}

// Current returns the entry at the index
func (l *Log) Current() ([]byte, bool) {
	if l.index < 0 {
		return nil, false
	}
	return l.entries[l.index], true
}

func (l *Log) Len() int {
	return len(l.entries)
}

func (l *Log) Index() int {
	return l.index
}

func (l *Log) Capacity() int {
	return l.capacity
}

// Clear drops every entry
func (l *Log) Clear() {
	l.entries = nil
	l.index = -1
}
