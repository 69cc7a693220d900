package history

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/brickyard/brickyard-cli/pkg/canvas"
	"github.com/brickyard/brickyard-cli/pkg/logger"
	"github.com/brickyard/brickyard-cli/pkg/models"
)

// Manager records canvas snapshots as yaml and restores them on undo/redo
type Manager struct {
	canvas *canvas.Canvas
	log    *Log
	logger logger.Logger
}

// NewManager creates a manager over c. Call Reset to record the initial state.
func NewManager(c *canvas.Canvas, capacity int, log logger.Logger) *Manager {
	if log == nil {
		log = logger.NewNop()
	}
	return &Manager{
		canvas: c,
		log:    NewLog(capacity),
		logger: log,
	}
}

// Reset discards all history and records the current canvas as the base
func (m *Manager) Reset() {
	m.log.Clear()
	m.Commit()
}

// Commit records the current canvas
func (m *Manager) Commit() {
	data, err := yaml.Marshal(m.canvas.Snapshot())
	if err != nil {
		m.logger.Error(fmt.Sprintf("failed to snapshot canvas: %v", err))
		return
	}
	m.log.Commit(data)
}

func (m *Manager) Undo() bool {
	data, ok := m.log.Undo()
	if !ok {
		return false
	}
	return m.restore(data)
}

func (m *Manager) Redo() bool {
	data, ok := m.log.Redo()
	if !ok {
		return false
	}
	return m.restore(data)
}

func (m *Manager) restore(data []byte) bool {
	var nodes []*models.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		m.logger.Error(fmt.Sprintf("failed to restore snapshot: %v", err))
		return false
	}
	m.canvas.Restore(nodes)
	m.logger.WithField("index", m.log.Index()).Debug("history restored")
	return true
}

func (m *Manager) CanUndo() bool {
	return m.log.CanUndo()
}

func (m *Manager) CanRedo() bool {
	return m.log.CanRedo()
}

// Log exposes the underlying log
func (m *Manager) Log() *Log {
	return m.log
}
