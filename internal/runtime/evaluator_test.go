package runtime_test

import (
	"testing"
	"time"

	"github.com/promistrio/albatros-chute/internal/runtime"
	"github.com/promistrio/albatros-chute/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t domain.Telemetry, offset time.Duration) domain.Telemetry {
	t.Time = epoch.Add(offset)
	return t
}

func TestEvaluator_SinkDebounce(t *testing.T) {
	cfg := autoConfig()
	eval := runtime.NewEvaluator(cfg)

	sinking := cruise(100)
	sinking.SinkRate = 6

	t.Run("999ms above threshold never fires", func(t *testing.T) {
		var state runtime.State
		for ms := 0; ms <= 999; ms += 111 {
			_, ok := eval.Evaluate(&state, false, at(sinking, time.Duration(ms)*time.Millisecond))
			assert.False(t, ok, "fired after %dms", ms)
		}
		_, ok := eval.Evaluate(&state, false, at(sinking, 999*time.Millisecond))
		assert.False(t, ok)

		// Dropping below resets the timer.
		_, ok = eval.Evaluate(&state, false, at(cruise(100), 1000*time.Millisecond))
		assert.False(t, ok)
		assert.Nil(t, state.SinkExceededSince)

		_, ok = eval.Evaluate(&state, false, at(sinking, 1100*time.Millisecond))
		assert.False(t, ok, "A new run starts from zero")
	})

	t.Run("1000ms continuously fires", func(t *testing.T) {
		var state runtime.State
		_, ok := eval.Evaluate(&state, false, at(sinking, 0))
		require.False(t, ok)
		require.NotNil(t, state.SinkExceededSince)
		assert.Equal(t, epoch, *state.SinkExceededSince)

		trig, ok := eval.Evaluate(&state, false, at(sinking, time.Second))
		require.True(t, ok)
		assert.Equal(t, domain.ReasonCriticalSink, trig.Reason)
	})

	t.Run("Equal to threshold does not count", func(t *testing.T) {
		var state runtime.State
		edge := cruise(100)
		edge.SinkRate = cfg.CriticalSinkMPS
		eval.Evaluate(&state, false, at(edge, 0))
		_, ok := eval.Evaluate(&state, false, at(edge, 2*time.Second))
		assert.False(t, ok)
		assert.Nil(t, state.SinkExceededSince)
	})

	t.Run("Disarmed never fires and clears the timer", func(t *testing.T) {
		var state runtime.State
		eval.Evaluate(&state, false, at(sinking, 0))
		disarmed := sinking
		disarmed.Armed = false
		_, ok := eval.Evaluate(&state, false, at(disarmed, 2*time.Second))
		assert.False(t, ok)
		assert.Nil(t, state.SinkExceededSince)
	})

	t.Run("Zero threshold disables", func(t *testing.T) {
		off := cfg
		off.CriticalSinkMPS = 0
		var state runtime.State
		e := runtime.NewEvaluator(off)
		e.Evaluate(&state, false, at(sinking, 0))
		_, ok := e.Evaluate(&state, false, at(sinking, 5*time.Second))
		assert.False(t, ok)
	})
}

func TestEvaluator_AttitudeGating(t *testing.T) {
	cfg := autoConfig()
	eval := runtime.NewEvaluator(cfg)

	t.Run("Suppressed within takeoff margin", func(t *testing.T) {
		var state runtime.State
		tel := cruise(0)
		tel.BaroAltitude = tel.TakeoffBaroAltitude + domain.AttitudeBaroMargin
		tel.Pitch = 9000
		tel.Roll = -9000
		_, ok := eval.Evaluate(&state, false, at(tel, 0))
		assert.False(t, ok, "Exactly at takeoff + 2m is still suppressed")
	})

	t.Run("Pitch fires at the threshold", func(t *testing.T) {
		var state runtime.State
		tel := cruise(30)
		tel.Pitch = int32(cfg.CriticalPitchCentideg) - 1
		_, ok := eval.Evaluate(&state, false, at(tel, 0))
		assert.False(t, ok)

		tel.Pitch = -int32(cfg.CriticalPitchCentideg)
		trig, ok := eval.Evaluate(&state, false, at(tel, tickPeriod))
		require.True(t, ok)
		assert.Equal(t, domain.ReasonCriticalPitch, trig.Reason)
	})

	t.Run("Roll fires at the threshold", func(t *testing.T) {
		var state runtime.State
		tel := cruise(30)
		tel.Roll = int32(cfg.CriticalRollCentideg)
		trig, ok := eval.Evaluate(&state, false, at(tel, 0))
		require.True(t, ok)
		assert.Equal(t, domain.ReasonCriticalRoll, trig.Reason)
	})

	t.Run("Pitch is reported before roll", func(t *testing.T) {
		var state runtime.State
		tel := cruise(30)
		tel.Roll = 9000
		tel.Pitch = 9000
		trig, ok := eval.Evaluate(&state, false, at(tel, 0))
		require.True(t, ok)
		assert.Equal(t, domain.ReasonCriticalPitch, trig.Reason)
	})

	t.Run("Disarmed is ignored", func(t *testing.T) {
		var state runtime.State
		tel := cruise(30)
		tel.Armed = false
		tel.Roll = 9000
		_, ok := eval.Evaluate(&state, false, at(tel, 0))
		assert.False(t, ok)
	})
}

func TestEvaluator_AutoAltitude(t *testing.T) {
	cfg := autoConfig()
	eval := runtime.NewEvaluator(cfg)
	low := cruise(5)

	t.Run("Requires readiness", func(t *testing.T) {
		var state runtime.State
		_, ok := eval.Evaluate(&state, false, at(low, 0))
		assert.False(t, ok)
	})

	t.Run("Fires below release altitude once ready", func(t *testing.T) {
		var state runtime.State
		trig, ok := eval.Evaluate(&state, true, at(low, 0))
		require.True(t, ok)
		assert.Equal(t, domain.ReasonAutoAltitude, trig.Reason)
	})

	t.Run("Does not need arming", func(t *testing.T) {
		var state runtime.State
		tel := low
		tel.Armed = false
		_, ok := eval.Evaluate(&state, true, at(tel, 0))
		assert.True(t, ok)
	})

	t.Run("At release altitude is not below", func(t *testing.T) {
		var state runtime.State
		_, ok := eval.Evaluate(&state, true, at(cruise(float64(cfg.AutoReleaseAltM)), 0))
		assert.False(t, ok)
	})
}

func TestEvaluator_CheckManual(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Enabled = true
	cfg.AltMin = 10
	eval := runtime.NewEvaluator(cfg)

	low := domain.Telemetry{GroundAltitude: 5, HasFlown: true}

	assert.Equal(t, runtime.ManualTooLow, eval.CheckManual(domain.ReleaseState{}, low))

	low.HasFlown = false
	assert.Equal(t, runtime.ManualAccepted, eval.CheckManual(domain.ReleaseState{}, low), "Ground tests are allowed")

	assert.Equal(t, runtime.ManualAlreadyReleased, eval.CheckManual(domain.ReleaseState{Released: true}, low))
	assert.Equal(t, runtime.ManualAlreadyReleased, eval.CheckManual(domain.ReleaseState{Initiated: true, Released: true}, low))

	assert.Equal(t, runtime.ManualPending, eval.CheckManual(domain.ReleaseState{Initiated: true}, low), "Delay not yet armed")
	assert.Equal(t, runtime.ManualPending, eval.CheckManual(domain.ReleaseState{Initiated: true, InProgress: true}, low))
	assert.Equal(t, runtime.ManualPending, eval.CheckManual(domain.ReleaseState{Initiated: true, InProgress: true, Released: true}, low), "Hold not finished")
	assert.Equal(t, "pending", runtime.ManualPending.String())

	cfg.AltMin = 0
	assert.Equal(t, runtime.ManualAccepted, runtime.NewEvaluator(cfg).CheckManual(domain.ReleaseState{}, domain.Telemetry{HasFlown: true}))

	cfg.Enabled = false
	assert.Equal(t, runtime.ManualDisabled, runtime.NewEvaluator(cfg).CheckManual(domain.ReleaseState{}, low))
	assert.Equal(t, "disabled", runtime.ManualDisabled.String())
}
