package runtime

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/promistrio/albatros-chute/pkg/domain"
	"github.com/promistrio/albatros-chute/pkg/ports"
)

// Step reports what a sequencer update did to the output.
type Step int

const (
	StepNone Step = iota
	StepAsserted
	StepRested
)

// Sequencer drives the release output through delay, assert, hold and rest.
// It is the only writer of the actuator.
type Sequencer struct {
	cfg    domain.Config
	state  *State
	out    ports.Actuator
	logger *slog.Logger
}

// NewSequencer binds a sequencer to the controller's state and the actuator.
func NewSequencer(cfg domain.Config, state *State, out ports.Actuator, logger *slog.Logger) *Sequencer {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Sequencer{
		cfg:    cfg,
		state:  state,
		out:    out,
		logger: logger,
	}
}

// TriggerRelease starts the sequence at now. Calls after the first are no-ops and
// return false; the pre-release delay is never restarted.
func (s *Sequencer) TriggerRelease(now time.Time) bool {
	return s.state.Begin(now)
}

// Update advances the sequence. It must be called on every tick.
// A failing driver leaves the state untouched, so the write is retried next tick.
func (s *Sequencer) Update(now time.Time) Step {
	st := s.state
	switch {
	case !st.Initiated:
		return StepNone

	case !st.Released:
		if now.Sub(*st.ReleaseTime) < s.cfg.PreReleaseDelay() {
			return StepNone
		}
		if err := s.drive(true); err != nil {
			s.logger.Error("parachute output assert failed", "err", err)
			return StepNone
		}
		st.MarkAsserted(now)
		return StepAsserted

	case st.InProgress:
		if now.Sub(*st.AssertTime) < s.cfg.HoldDuration() {
			return StepNone
		}
		if err := s.drive(false); err != nil {
			s.logger.Error("parachute output rest failed", "err", err)
			return StepNone
		}
		st.MarkRested()
		return StepRested
	}
	return StepNone
}

// Level returns the output level and, for servos, the pulse width for a state.
func (s *Sequencer) Level(asserted bool) (channel int, pwm int16) {
	if s.cfg.Type == domain.ReleaseServo {
		if asserted {
			return 0, s.cfg.ServoOnPWM
		}
		return 0, s.cfg.ServoOffPWM
	}
	return s.cfg.RelayChannel, 0
}

func (s *Sequencer) drive(asserted bool) error {
	channel, pwm := s.Level(asserted)

	var err error
	switch s.cfg.Type {
	case domain.ReleaseServo:
		err = s.out.SetServo(pwm)
	default:
		err = s.out.SetRelay(channel, asserted)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrOutput, err)
	}
	return nil
}
