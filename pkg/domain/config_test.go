package domain_test

import (
	"testing"
	"time"

	"github.com/promistrio/albatros-chute/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_AutoEnableAlt(t *testing.T) {
	t.Run("Configured value above release altitude is kept", func(t *testing.T) {
		cfg := domain.Config{AutoReleaseAltM: 20, AutoEnableAltM: 80}
		assert.Equal(t, int16(80), cfg.AutoEnableAlt())
	})

	t.Run("Zero falls back to release altitude plus margin", func(t *testing.T) {
		cfg := domain.Config{AutoReleaseAltM: 20}
		assert.Equal(t, int16(50), cfg.AutoEnableAlt())
	})

	t.Run("Equal to release altitude also falls back", func(t *testing.T) {
		cfg := domain.Config{AutoReleaseAltM: 20, AutoEnableAltM: 20}
		assert.Equal(t, int16(50), cfg.AutoEnableAlt())
	})
}

func TestConfig_Durations(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Equal(t, 500*time.Millisecond, cfg.PreReleaseDelay())
	assert.Equal(t, 5*time.Second, cfg.HoldDuration())
}

func TestConfig_Validate(t *testing.T) {
	t.Run("Defaults are valid", func(t *testing.T) {
		require.NoError(t, domain.DefaultConfig().Validate())
	})

	t.Run("Servo with identical positions is rejected", func(t *testing.T) {
		cfg := domain.DefaultConfig()
		cfg.Type = domain.ReleaseServo
		cfg.ServoOnPWM = 1500
		cfg.ServoOffPWM = 1500

		err := cfg.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "both 1500")
	})

	t.Run("All violations are reported", func(t *testing.T) {
		cfg := domain.DefaultConfig()
		cfg.RelayChannel = 7
		cfg.CriticalSinkMPS = -1
		cfg.RecoveryMode = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "relay_channel 7")
		assert.Contains(t, err.Error(), "critical_sink_mps")
		assert.Contains(t, err.Error(), "recovery_mode")
	})

	t.Run("Attitude limits must be positive", func(t *testing.T) {
		cfg := domain.DefaultConfig()
		cfg.CriticalPitchCentideg = 0
		cfg.CriticalRollCentideg = -100

		err := cfg.Validate()
		require.ErrorIs(t, err, domain.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "critical_pitch_centideg must be positive: 0")
		assert.Contains(t, err.Error(), "critical_roll_centideg must be positive: -100")
	})

	t.Run("Unknown release type", func(t *testing.T) {
		cfg := domain.DefaultConfig()
		cfg.Type = "pyro"
		assert.ErrorIs(t, cfg.Validate(), domain.ErrInvalidConfig)
	})
}

func TestReleaseState_Phase(t *testing.T) {
	var s domain.ReleaseState
	assert.Equal(t, domain.PhaseIdle, s.Phase())

	s.Initiated = true
	assert.Equal(t, domain.PhaseInitiated, s.Phase())

	s.InProgress = true
	assert.Equal(t, domain.PhaseInProgress, s.Phase())
	assert.False(t, s.Holding())

	s.Released = true
	assert.Equal(t, domain.PhaseReleased, s.Phase())
	assert.True(t, s.Holding())

	s.InProgress = false
	assert.Equal(t, domain.PhaseReleased, s.Phase(), "Released stays terminal after the hold")
}
