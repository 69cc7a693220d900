package workspace

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickyard/brickyard-cli/pkg/files"
)

func chdirProject(t *testing.T) {
	t.Helper()
	oldWd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(oldWd) })
	require.NoError(t, os.Chdir(t.TempDir()))
	require.NoError(t, files.InitProjectStructure())
}

func TestSessionSaveAndReopen(t *testing.T) {
	chdirProject(t)
	require.NoError(t, files.WritePage(files.NewPage("home", "default")))

	s, err := Open("home", Options{})
	require.NoError(t, err)

	container, ok := s.Engine.InsertTop("container")
	require.True(t, ok)
	_, ok = s.Engine.InsertNested(container.ID, "", "paragraph")
	require.True(t, ok)
	require.NoError(t, s.Save())

	reopened, err := Open("home", Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, reopened.Page.Counter)
	require.Len(t, reopened.Canvas().Nodes(), 1)
	assert.Len(t, reopened.Canvas().Nodes()[0].Children, 1)

	third, ok := reopened.Engine.InsertTop("paragraph")
	require.True(t, ok)
	assert.Equal(t, "comp-3", third.ID)
}

func TestSessionUndoWithinSession(t *testing.T) {
	chdirProject(t)
	s := New(files.NewPage("draft", ""), Options{HistoryCapacity: 5})

	node, _ := s.Engine.InsertTop("paragraph")
	assert.True(t, s.Engine.Delete(node.ID))
	assert.Equal(t, 0, s.Canvas().Count())

	assert.True(t, s.Engine.Undo())
	assert.Equal(t, 1, s.Canvas().Count())
	assert.True(t, s.Engine.Undo())
	assert.Equal(t, 0, s.Canvas().Count())
	assert.False(t, s.Engine.Undo())
}

func TestOpenMissingPage(t *testing.T) {
	chdirProject(t)
	_, err := Open("nope", Options{})
	assert.Error(t, err)
}
