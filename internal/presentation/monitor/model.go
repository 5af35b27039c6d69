// Package monitor is a live terminal dashboard for a running release controller.
package monitor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	httpAdapter "github.com/promistrio/albatros-chute/pkg/adapters/http"
	"github.com/promistrio/albatros-chute/pkg/domain"
)

// Source is the API the dashboard polls.
type Source interface {
	Status(ctx context.Context) (httpAdapter.StatusResponse, error)
	Release(ctx context.Context) (httpAdapter.ReleaseResponse, error)
}

const requestTimeout = 3 * time.Second

type statusMsg struct {
	status    httpAdapter.StatusResponse
	err       error
	scheduled bool
}

type pollMsg struct{}

type releaseMsg struct {
	res httpAdapter.ReleaseResponse
	err error
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fafafa")).Background(lipgloss.Color("#dc2626")).Padding(0, 1)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#475569")).Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8")).Width(12)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f97316"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b"))
	warnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#eab308"))

	phaseColors = map[domain.Phase]lipgloss.Color{
		domain.PhaseIdle:       "#a3e635",
		domain.PhaseInitiated:  "#eab308",
		domain.PhaseInProgress: "#f97316",
		domain.PhaseReleased:   "#dc2626",
	}
)

// Model is the bubbletea model of the dashboard.
type Model struct {
	src      Source
	interval time.Duration

	status     httpAdapter.StatusResponse
	hasStatus  bool
	err        error
	updated    time.Time
	confirming bool
	lastAction string

	spinner spinner.Model
}

// New creates a dashboard polling src every interval.
func New(src Source, interval time.Duration) Model {
	return Model{
		src:      src,
		interval: interval,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch(true))
}

// fetch polls the status. Only scheduled fetches re-arm the poll timer, so a
// manual refresh does not start a second loop.
func (m Model) fetch(scheduled bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		st, err := m.src.Status(ctx)
		return statusMsg{status: st, err: err, scheduled: scheduled}
	}
}

func (m Model) release() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		res, err := m.src.Release(ctx)
		return releaseMsg{res: res, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.err = msg.err
		if msg.err == nil {
			m.status = msg.status
			m.hasStatus = true
			m.updated = time.Now()
		}
		if !msg.scheduled {
			return m, nil
		}
		return m, tea.Tick(m.interval, func(time.Time) tea.Msg { return pollMsg{} })

	case pollMsg:
		return m, m.fetch(true)

	case releaseMsg:
		switch {
		case msg.err != nil:
			m.lastAction = "Release failed: " + msg.err.Error()
		case msg.res.Accepted:
			m.lastAction = "Release accepted"
		default:
			m.lastAction = "Release rejected"
		}
		for _, n := range msg.res.Notifications {
			m.lastAction += "\n  " + n.Text
		}
		return m, m.fetch(false)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			return m, m.fetch(false)
		case "p":
			m.confirming = true
			return m, nil
		case "y":
			if m.confirming {
				m.confirming = false
				return m, m.release()
			}
		case "n", "esc":
			m.confirming = false
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("chute monitor"))
	b.WriteString("\n\n")

	if !m.hasStatus {
		b.WriteString(m.spinner.View() + " connecting...\n")
	} else {
		st := m.status
		phase := lipgloss.NewStyle().Bold(true).Foreground(phaseColors[st.Phase]).Render(string(st.Phase))
		rows := []string{
			row("Flight", st.FlightID),
			row("Phase", phase),
			row("Output", fmt.Sprintf("%s (enabled %v, auto %v)", st.Config.Type, st.Config.Enabled, st.Config.AutoEnabled)),
			row("Auto ready", fmt.Sprintf("%v", st.AutoReady)),
		}
		if st.ReleaseTime != nil {
			rows = append(rows, row("Released", st.ReleaseTime.Format("15:04:05.000")))
		}
		rows = append(rows, row("Updated", m.spinner.View()+" "+m.updated.Format("15:04:05")))
		b.WriteString(boxStyle.Render(strings.Join(rows, "\n")))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errStyle.Render("! "+m.err.Error()) + "\n")
	}
	if m.lastAction != "" {
		b.WriteString(m.lastAction + "\n")
	}
	if m.confirming {
		b.WriteString(warnStyle.Render("Release the parachute? [y/n]") + "\n")
	}
	b.WriteString(helpStyle.Render("r refresh · p release · q quit"))
	b.WriteString("\n")
	return b.String()
}

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

// Run shows the dashboard until the user quits or ctx is cancelled.
func Run(ctx context.Context, src Source, interval time.Duration, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(New(src, interval), opts...).Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
