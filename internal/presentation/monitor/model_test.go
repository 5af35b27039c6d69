package monitor

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	httpAdapter "github.com/promistrio/albatros-chute/pkg/adapters/http"
	"github.com/promistrio/albatros-chute/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	status   httpAdapter.StatusResponse
	err      error
	releases int
}

func (f *fakeSource) Status(context.Context) (httpAdapter.StatusResponse, error) {
	return f.status, f.err
}

func (f *fakeSource) Release(context.Context) (httpAdapter.ReleaseResponse, error) {
	f.releases++
	return httpAdapter.ReleaseResponse{
		Accepted:      true,
		Notifications: []domain.Notification{{Text: "Parachute: Released"}},
	}, nil
}

// step feeds msg to the model and, if a command is returned, runs it once and feeds
// its message back.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil {
		return m, nil
	}
	out := cmd()
	next, _ = m.Update(out)
	return next.(Model), out
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_ShowsStatus(t *testing.T) {
	src := &fakeSource{status: httpAdapter.StatusResponse{
		FlightID: "f-7",
		Phase:    domain.PhaseIdle,
		Config:   domain.DefaultConfig(),
	}}
	m := New(src, 0)
	assert.Contains(t, m.View(), "connecting")

	m, out := step(t, m, key("r"))
	require.IsType(t, statusMsg{}, out)
	view := m.View()
	assert.Contains(t, view, "f-7")
	assert.Contains(t, view, "idle")

	t.Run("Errors keep the last status", func(t *testing.T) {
		src.err = errors.New("connection refused")
		m, _ := step(t, m, key("r"))
		view := m.View()
		assert.Contains(t, view, "connection refused")
		assert.Contains(t, view, "f-7")
	})
}

func TestModel_ReleaseNeedsConfirmation(t *testing.T) {
	src := &fakeSource{status: httpAdapter.StatusResponse{Phase: domain.PhaseIdle}}
	m := New(src, 0)

	m, _ = step(t, m, key("y"))
	assert.Zero(t, src.releases, "y without p does nothing")

	m, _ = step(t, m, key("p"))
	assert.Contains(t, m.View(), "Release the parachute?")

	m, _ = step(t, m, key("n"))
	assert.NotContains(t, m.View(), "Release the parachute?")
	assert.Zero(t, src.releases)

	m, _ = step(t, m, key("p"))
	m, out := step(t, m, key("y"))
	require.IsType(t, releaseMsg{}, out)
	assert.Equal(t, 1, src.releases)
	assert.Contains(t, m.View(), "Release accepted")
	assert.Contains(t, m.View(), "Parachute: Released")
}

func TestModel_Quit(t *testing.T) {
	m := New(&fakeSource{}, 0)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
