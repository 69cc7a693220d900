// Package notify keeps the transient toast notifications shown in the
// status area.
package notify

import (
	"sync"
	"time"
)

// Kind is the severity of a toast
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

const (
	// DefaultDurationMs applies when a negative duration is given
	DefaultDurationMs = 3000
	// ExitTime is how long a dismissed or expired toast stays visible while fading
	ExitTime = 300 * time.Millisecond
)

// Icon returns the bootstrap icon name of a kind
func (k Kind) Icon() string {
	switch k {
	case KindSuccess:
		return "bi-check-circle"
	case KindWarning:
		return "bi-exclamation-triangle"
	case KindError:
		return "bi-x-circle"
	default:
		return "bi-info-circle"
	}
}

// Toast is one notification
type Toast struct {
	ID       int
	Kind     Kind
	Title    string
	Message  string
	Created  time.Time
	Duration time.Duration // 0 means sticky
	Exiting  bool

	closedAt time.Time
}

// Sticky reports whether the toast stays until dismissed
func (t Toast) Sticky() bool {
	return t.Duration == 0
}

// Notifier collects toasts. It is safe for concurrent use.
type Notifier struct {
	mu       sync.Mutex
	toasts   []*Toast
	next     int
	duration time.Duration
	now      func() time.Time
}

// New creates a notifier whose default toast duration is defaultMs. A
// negative value uses DefaultDurationMs.
func New(defaultMs int) *Notifier {
	if defaultMs < 0 {
		defaultMs = DefaultDurationMs
	}
	return &Notifier{
		duration: time.Duration(defaultMs) * time.Millisecond,
		now:      time.Now,
	}
}

// WithClock replaces the time source
func (n *Notifier) WithClock(now func() time.Time) *Notifier {
	n.now = now
	return n
}

// Notify shows a toast and returns its id. durationMs 0 keeps it until
// dismissed; a negative value uses the default.
func (n *Notifier) Notify(kind Kind, title, message string, durationMs int) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	d := time.Duration(durationMs) * time.Millisecond
	if durationMs < 0 {
		d = n.duration
	}
	n.next++
	n.toasts = append(n.toasts, &Toast{
		ID:       n.next,
		Kind:     kind,
		Title:    title,
		Message:  message,
		Created:  n.now(),
		Duration: d,
	})
	return n.next
}

func (n *Notifier) Info(title, message string) {
	n.Notify(KindInfo, title, message, -1)
}

func (n *Notifier) Success(title, message string) {
	n.Notify(KindSuccess, title, message, -1)
}

func (n *Notifier) Warning(title, message string) {
	n.Notify(KindWarning, title, message, -1)
}

func (n *Notifier) Error(title, message string) {
	n.Notify(KindError, title, message, -1)
}

// Dismiss starts the exit of a toast. Unknown ids are ignored.
func (n *Notifier) Dismiss(id int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, t := range n.toasts {
		if t.ID == id && t.closedAt.IsZero() {
			t.closedAt = n.now()
		}
	}
}

// closeTime returns when the toast starts its exit, if ever
func (t *Toast) closeTime() (time.Time, bool) {
	if !t.closedAt.IsZero() {
		return t.closedAt, true
	}
	if t.Duration > 0 {
		return t.Created.Add(t.Duration), true
	}
	return time.Time{}, false
}

// Visible prunes finished toasts and returns the ones on screen at now,
// oldest first. Toasts inside their exit window are marked Exiting.
func (n *Notifier) Visible(now time.Time) []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	var (
		kept []*Toast
		out  []Toast
	)
	for _, t := range n.toasts {
		closed, ok := t.closeTime()
		if ok && !now.Before(closed.Add(ExitTime)) {
			continue
		}
		kept = append(kept, t)
		cp := *t
		cp.Exiting = ok && !now.Before(closed)
		out = append(out, cp)
	}
	n.toasts = kept
	return out
}

// Active returns the toasts that have not started to exit at now
func (n *Notifier) Active(now time.Time) []Toast {
	var out []Toast
	for _, t := range n.Visible(now) {
		if !t.Exiting {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of toasts not yet pruned
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.toasts)
}
