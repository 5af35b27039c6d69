// Package report renders a recorded flight as a markdown post-flight report.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/promistrio/albatros-chute/internal/presentation/graph"
	"github.com/promistrio/albatros-chute/pkg/domain"
)

// Flight is the input of a report. Config is optional; when nil the
// configuration table and phase diagram are omitted.
type Flight struct {
	ID     string
	Config *domain.Config
	Events []domain.Event
}

// Summary is what a flight's events say about the release.
type Summary struct {
	Phase       domain.Phase
	Reason      domain.Reason
	RequestedAt time.Time
	AssertedAt  time.Time
	RestedAt    time.Time
}

// Summarize derives the release outcome from the recorded events alone, so it
// works for flights read back from any recorder.
func Summarize(events []domain.Event) Summary {
	s := Summary{Phase: domain.PhaseIdle}
	for _, e := range events {
		switch e.Type {
		case domain.EventTrigger:
			if s.RequestedAt.IsZero() {
				s.RequestedAt = e.Timestamp
				s.Reason = e.Reason
				s.Phase = domain.PhaseInProgress
			}
		case domain.EventOutputAssert:
			if s.AssertedAt.IsZero() {
				s.AssertedAt = e.Timestamp
				s.Phase = domain.PhaseReleased
			}
		case domain.EventOutputRest:
			s.RestedAt = e.Timestamp
		}
	}
	return s
}

// Markdown builds the report.
func Markdown(f Flight) string {
	var sb strings.Builder
	s := Summarize(f.Events)

	fmt.Fprintf(&sb, "# Flight %s\n\n", f.ID)

	sb.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Outcome | %s |\n", outcome(s))
	if s.Reason != "" {
		fmt.Fprintf(&sb, "| Trigger | %s |\n", s.Reason)
	}
	if !s.RequestedAt.IsZero() {
		fmt.Fprintf(&sb, "| Release requested | %s |\n", clock(s.RequestedAt))
	}
	if !s.AssertedAt.IsZero() {
		fmt.Fprintf(&sb, "| Output asserted | %s (+%s) |\n", clock(s.AssertedAt), s.AssertedAt.Sub(s.RequestedAt))
	}
	if !s.RestedAt.IsZero() {
		fmt.Fprintf(&sb, "| Output at rest | %s (held %s) |\n", clock(s.RestedAt), s.RestedAt.Sub(s.AssertedAt))
	}
	sb.WriteString("\n")

	if f.Config != nil {
		writeConfig(&sb, *f.Config)
		sb.WriteString("## Sequence\n\n```mermaid\n")
		sb.WriteString(graph.GenerateMermaid(*f.Config, &graph.Overlay{Current: s.Phase, Reason: s.Reason}))
		sb.WriteString("```\n\n")
	}

	sb.WriteString("## Timeline\n\n")
	if len(f.Events) == 0 {
		sb.WriteString("No events recorded.\n")
		return sb.String()
	}

	start := f.Events[0].Timestamp
	sb.WriteString("| t+ | event | severity | message |\n|---|---|---|---|\n")
	for _, e := range f.Events {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
			e.Timestamp.Sub(start).Round(time.Millisecond), label(e), e.Severity, escape(e.Message))
	}
	return sb.String()
}

func writeConfig(sb *strings.Builder, cfg domain.Config) {
	sb.WriteString("## Configuration\n\n| parameter | value |\n|---|---|\n")
	row := func(k string, v any) { fmt.Fprintf(sb, "| %s | %v |\n", k, v) }

	row("enabled", cfg.Enabled)
	row("auto release", cfg.AutoEnabled)
	if cfg.Type == domain.ReleaseServo {
		row("output", fmt.Sprintf("servo %d/%d us", cfg.ServoOnPWM, cfg.ServoOffPWM))
	} else {
		row("output", fmt.Sprintf("relay %d", cfg.RelayChannel))
	}
	row("pre-release delay", cfg.PreReleaseDelay())
	row("hold", cfg.HoldDuration())
	row("manual alt min", fmt.Sprintf("%d m", cfg.AltMin))
	row("auto release alt", fmt.Sprintf("%d m (armed at %d m)", cfg.AutoReleaseAltM, cfg.AutoEnableAlt()))
	row("critical sink", fmt.Sprintf("%g m/s", cfg.CriticalSinkMPS))
	row("critical pitch/roll", fmt.Sprintf("%d/%d cdeg", cfg.CriticalPitchCentideg, cfg.CriticalRollCentideg))
	sb.WriteString("\n")
}

func outcome(s Summary) string {
	switch s.Phase {
	case domain.PhaseReleased:
		return "**Released**"
	case domain.PhaseIdle:
		return "Not released"
	default:
		return "Release requested, output never asserted"
	}
}

func label(e domain.Event) string {
	switch {
	case e.Kind != "":
		return string(e.Kind)
	case e.Reason != "":
		return string(e.Type) + " (" + string(e.Reason) + ")"
	default:
		return string(e.Type)
	}
}

func clock(t time.Time) string {
	return t.Format("15:04:05.000")
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
