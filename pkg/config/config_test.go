package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/promistrio/albatros-chute/pkg/config"
	"github.com/promistrio/albatros-chute/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("YAML overrides defaults", func(t *testing.T) {
		path := writeFile(t, "chute.yaml", `
enabled: true
auto_enabled: true
type: servo
servo_on_pwm: 1900
critical_sink_mps: 6.5
`)
		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.True(t, cfg.Enabled)
		assert.Equal(t, domain.ReleaseServo, cfg.Type)
		assert.Equal(t, int16(1900), cfg.ServoOnPWM)
		assert.Equal(t, int16(domain.DefaultServoOffPWM), cfg.ServoOffPWM, "absent field keeps default")
		assert.Equal(t, 6.5, cfg.CriticalSinkMPS)
		assert.Equal(t, domain.ModeStabilize, cfg.RecoveryMode)
	})

	t.Run("JSON", func(t *testing.T) {
		path := writeFile(t, "chute.json", `{"enabled": true, "relay_channel": 2}`)
		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.RelayChannel)
	})

	t.Run("Invalid values are rejected", func(t *testing.T) {
		path := writeFile(t, "chute.yml", "relay_channel: 7\n")
		_, err := config.Load(path)
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})

	t.Run("Unknown extension", func(t *testing.T) {
		path := writeFile(t, "chute.toml", "enabled = true\n")
		_, err := config.Load(path)
		assert.ErrorIs(t, err, config.ErrUnsupportedFormat)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestFromParams(t *testing.T) {
	t.Run("Float values from a ground station", func(t *testing.T) {
		cfg, err := config.FromParams(map[string]any{
			"CHUTE_ENABLED":   1.0,
			"CHUTE_TYPE":      2.0,
			"CHUTE_AUTO_ON":   1.0,
			"CHUTE_AUTO_ALT":  25.0,
			"CHUTE_CRT_SINK":  5.5,
			"CHUTE_DELAY_MS":  250.0,
			"CHUTE_CRT_PITCH": 4500.0,
			"SERVO1_FUNCTION": 27.0,
		})
		require.NoError(t, err)
		assert.True(t, cfg.Enabled)
		assert.True(t, cfg.AutoEnabled)
		assert.Equal(t, domain.ReleaseRelay, cfg.Type)
		assert.Equal(t, 2, cfg.RelayChannel)
		assert.Equal(t, int16(25), cfg.AutoReleaseAltM)
		assert.Equal(t, int16(55), cfg.AutoEnableAlt())
		assert.Equal(t, 5.5, cfg.CriticalSinkMPS)
		assert.Equal(t, uint32(250), cfg.PreReleaseDelayMS)
		assert.Equal(t, int16(4500), cfg.CriticalPitchCentideg)
		assert.Equal(t, int16(domain.DefaultCriticalRoll), cfg.CriticalRollCentideg)
	})

	t.Run("Servo type", func(t *testing.T) {
		cfg, err := config.FromParams(map[string]any{"CHUTE_TYPE": 10, "CHUTE_SERVO_ON": 1800})
		require.NoError(t, err)
		assert.Equal(t, domain.ReleaseServo, cfg.Type)
		assert.Equal(t, int16(1800), cfg.ServoOnPWM)
	})

	t.Run("Unknown type", func(t *testing.T) {
		_, err := config.FromParams(map[string]any{"CHUTE_TYPE": 5})
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})

	t.Run("Zero attitude limit", func(t *testing.T) {
		_, err := config.FromParams(map[string]any{"CHUTE_CRT_ROLL": 0.0})
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})

	t.Run("Empty table yields defaults", func(t *testing.T) {
		cfg, err := config.FromParams(nil)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultConfig(), cfg)
	})
}

func TestLoadParams(t *testing.T) {
	path := writeFile(t, "params.yaml", "CHUTE_ENABLED: 1\nCHUTE_TYPE: 10\n")
	cfg, err := config.LoadParams(path)
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, domain.ReleaseServo, cfg.Type)
}
