package runtime

import (
	"fmt"

	"github.com/promistrio/albatros-chute/pkg/domain"
)

// ManualVerdict is the outcome of the manual release gate.
type ManualVerdict int

const (
	ManualAccepted ManualVerdict = iota
	ManualDisabled
	ManualAlreadyReleased
	ManualTooLow
	ManualPending
)

func (v ManualVerdict) String() string {
	switch v {
	case ManualAccepted:
		return "accepted"
	case ManualDisabled:
		return "disabled"
	case ManualAlreadyReleased:
		return "already_released"
	case ManualTooLow:
		return "too_low"
	case ManualPending:
		return "pending"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// Evaluator inspects telemetry against the configured thresholds.
type Evaluator struct {
	cfg domain.Config
}

// NewEvaluator creates an evaluator bound to a flight configuration.
func NewEvaluator(cfg domain.Config) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Evaluate checks every automatic source on each call and reports the first one
// firing, in the order altitude, sink, pitch, roll. It owns the sink debounce and
// updates state.SinkExceededSince on every call.
func (e *Evaluator) Evaluate(state *State, autoReady bool, t domain.Telemetry) (domain.Trigger, bool) {
	var fired []domain.Trigger

	if trig, ok := e.checkAltitude(state, autoReady, t); ok {
		fired = append(fired, trig)
	}
	if trig, ok := e.checkSink(state, t); ok {
		fired = append(fired, trig)
	}
	fired = append(fired, e.checkAttitude(t)...)

	if len(fired) == 0 {
		return domain.Trigger{}, false
	}
	return fired[0], true
}

func (e *Evaluator) checkAltitude(state *State, autoReady bool, t domain.Telemetry) (domain.Trigger, bool) {
	if !e.cfg.AutoEnabled || state.Released || !autoReady {
		return domain.Trigger{}, false
	}
	if t.RelativeAltitude >= float64(e.cfg.AutoReleaseAltM) {
		return domain.Trigger{}, false
	}
	return domain.Trigger{
		Reason: domain.ReasonAutoAltitude,
		Detail: fmt.Sprintf("alt %.1fm < %dm", t.RelativeAltitude, e.cfg.AutoReleaseAltM),
	}, true
}

func (e *Evaluator) checkSink(state *State, t domain.Telemetry) (domain.Trigger, bool) {
	if !t.Armed || e.cfg.CriticalSinkMPS <= 0 || t.SinkRate <= e.cfg.CriticalSinkMPS {
		state.SinkExceededSince = nil
		return domain.Trigger{}, false
	}

	if state.SinkExceededSince == nil {
		since := t.Time
		state.SinkExceededSince = &since
	}

	elapsed := t.Time.Sub(*state.SinkExceededSince)
	if elapsed < domain.SinkDebounce {
		return domain.Trigger{}, false
	}
	return domain.Trigger{
		Reason: domain.ReasonCriticalSink,
		Detail: fmt.Sprintf("sink %.1fm/s for %s", t.SinkRate, elapsed),
	}, true
}

func (e *Evaluator) checkAttitude(t domain.Telemetry) []domain.Trigger {
	if !t.Armed {
		return nil
	}
	if t.BaroAltitude <= t.TakeoffBaroAltitude+domain.AttitudeBaroMargin {
		return nil
	}

	var fired []domain.Trigger
	if limit := e.cfg.CriticalPitchCentideg; abs32(t.Pitch) >= int32(limit) {
		fired = append(fired, domain.Trigger{
			Reason: domain.ReasonCriticalPitch,
			Detail: fmt.Sprintf("pitch %d >= %d", t.Pitch, limit),
		})
	}
	if limit := e.cfg.CriticalRollCentideg; abs32(t.Roll) >= int32(limit) {
		fired = append(fired, domain.Trigger{
			Reason: domain.ReasonCriticalRoll,
			Detail: fmt.Sprintf("roll %d >= %d", t.Roll, limit),
		})
	}
	return fired
}

// CheckManual applies the manual release gate. The minimum height check is waived
// while the vehicle has never flown, which allows ground tests. A request made
// while a release is under way is pending until the hold has finished, and only
// then counts as a repeat.
func (e *Evaluator) CheckManual(state domain.ReleaseState, t domain.Telemetry) ManualVerdict {
	if !e.cfg.Enabled {
		return ManualDisabled
	}
	if state.Initiated && (state.InProgress || !state.Released) {
		return ManualPending
	}
	if state.Released {
		return ManualAlreadyReleased
	}
	if e.cfg.AltMin > 0 && t.GroundAltitude < float64(e.cfg.AltMin) && t.HasFlown {
		return ManualTooLow
	}
	return ManualAccepted
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
