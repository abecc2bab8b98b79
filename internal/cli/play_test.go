package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pairquest/pkg/closest"
	"github.com/matzehuels/pairquest/pkg/points"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m playModel, k string) (playModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(key(k))
	pm, ok := next.(playModel)
	require.True(t, ok)
	return pm, cmd
}

// runSolver presses k and feeds the solver's result back into the model.
func runSolver(t *testing.T, m playModel, k string) playModel {
	t.Helper()
	m, cmd := press(t, m, k)
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(playModel)
}

func newTestPlayModel(count int) playModel {
	return newPlayModel(context.Background(), count, 42, points.DefaultBounds)
}

func TestPlayGenerate(t *testing.T) {
	m := newTestPlayModel(30)
	assert.Len(t, m.points, 30)

	first := m.points
	m, cmd := press(t, m, "g")
	assert.Nil(t, cmd)
	assert.Len(t, m.points, 30)
	assert.NotEqual(t, first, m.points)
}

func TestPlayCount(t *testing.T) {
	m := newTestPlayModel(30)
	m, _ = press(t, m, "+")
	assert.Len(t, m.points, 60)
	m, _ = press(t, m, "-")
	m, _ = press(t, m, "-")
	assert.Len(t, m.points, 15)

	m = newTestPlayModel(1)
	assert.Len(t, m.points, playMinCount)
}

func TestPlaySolveAndReveal(t *testing.T) {
	m := newTestPlayModel(50)

	m, _ = press(t, m, "s")
	assert.False(t, m.revealed)
	assert.Equal(t, "Run a solver first", m.status)

	m = runSolver(t, m, "b")
	m = runSolver(t, m, "d")
	require.Contains(t, m.runs, closest.NameBruteForce)
	require.Contains(t, m.runs, closest.NameDivideAndConquer)
	assert.Equal(t,
		m.runs[closest.NameBruteForce].Pair.Distance,
		m.runs[closest.NameDivideAndConquer].Pair.Distance)

	m, _ = press(t, m, "s")
	assert.True(t, m.revealed)

	view := m.View()
	assert.Contains(t, view, "Closest Distance")
	assert.Contains(t, view, "●")
}

func TestPlayDropsStaleResult(t *testing.T) {
	m := newTestPlayModel(20)
	m, cmd := press(t, m, "d")
	require.NotNil(t, cmd)
	msg := cmd()

	m, _ = press(t, m, "g")
	next, _ := m.Update(msg)
	m = next.(playModel)
	assert.Empty(t, m.runs)
}

func TestPlayIgnoresSolveWhileRunning(t *testing.T) {
	m := newTestPlayModel(20)
	m, cmd := press(t, m, "b")
	require.NotNil(t, cmd)
	_, cmd = press(t, m, "d")
	assert.Nil(t, cmd)
}

func TestPlayQuit(t *testing.T) {
	_, cmd := press(t, newTestPlayModel(5), "q")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestPlayPlot(t *testing.T) {
	m := newTestPlayModel(10)
	lines := strings.Split(m.plot(), "\n")
	assert.Len(t, lines, plotRows)
}
