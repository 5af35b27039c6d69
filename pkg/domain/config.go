package domain

import (
	"errors"
	"fmt"
	"time"
)

// ReleaseType selects the physical output used to release the parachute.
type ReleaseType string

const (
	ReleaseRelay ReleaseType = "relay"
	ReleaseServo ReleaseType = "servo"
)

// Config holds the parachute parameters for one flight. It is loaded externally and
// treated as read-only by the runtime.
type Config struct {
	Enabled     bool `json:"enabled" yaml:"enabled"`
	AutoEnabled bool `json:"auto_enabled" yaml:"auto_enabled"`

	Type         ReleaseType `json:"type" yaml:"type"`
	RelayChannel int         `json:"relay_channel" yaml:"relay_channel"`
	ServoOnPWM   int16       `json:"servo_on_pwm" yaml:"servo_on_pwm"`
	ServoOffPWM  int16       `json:"servo_off_pwm" yaml:"servo_off_pwm"`

	// AltMin is the minimum height above home for a manual release. 0 disables the check.
	AltMin int16 `json:"alt_min" yaml:"alt_min"`

	PreReleaseDelayMS uint32 `json:"pre_release_delay_ms" yaml:"pre_release_delay_ms"`
	HoldDurationMS    uint32 `json:"hold_duration_ms" yaml:"hold_duration_ms"`

	// CriticalSinkMPS is the sink rate that releases after SinkDebounce. 0 disables.
	CriticalSinkMPS       float64 `json:"critical_sink_mps" yaml:"critical_sink_mps"`
	// CriticalPitchCentideg and CriticalRollCentideg must be positive. The
	// attitude check cannot be switched off.
	CriticalPitchCentideg int16   `json:"critical_pitch_centideg" yaml:"critical_pitch_centideg"`
	CriticalRollCentideg  int16   `json:"critical_roll_centideg" yaml:"critical_roll_centideg"`

	AutoReleaseAltM int16 `json:"auto_release_alt_m" yaml:"auto_release_alt_m"`
	AutoEnableAltM  int16 `json:"auto_enable_alt_m" yaml:"auto_enable_alt_m"`

	RecoveryMode    string `json:"recovery_mode" yaml:"recovery_mode"`
	PostReleaseMode string `json:"post_release_mode" yaml:"post_release_mode"`
}

// DefaultConfig returns a disabled configuration populated with library defaults.
func DefaultConfig() Config {
	return Config{
		Type:                  ReleaseRelay,
		ServoOnPWM:            DefaultServoOnPWM,
		ServoOffPWM:           DefaultServoOffPWM,
		AltMin:                DefaultAltMin,
		PreReleaseDelayMS:     DefaultPreReleaseDelayMS,
		HoldDurationMS:        DefaultHoldDurationMS,
		CriticalSinkMPS:       DefaultCriticalSink,
		CriticalPitchCentideg: DefaultCriticalPitch,
		CriticalRollCentideg:  DefaultCriticalRoll,
		AutoReleaseAltM:       DefaultAutoReleaseAlt,
		RecoveryMode:          ModeStabilize,
		PostReleaseMode:       ModeManual,
	}
}

// AutoEnableAlt returns the altitude above home the aircraft must reach before the
// altitude trigger is armed. When the configured value does not exceed the release
// altitude a fixed margin is applied, so the chute cannot fire during climb-out.
func (c Config) AutoEnableAlt() int16 {
	if c.AutoEnableAltM > c.AutoReleaseAltM {
		return c.AutoEnableAltM
	}
	return c.AutoReleaseAltM + AutoEnableMargin
}

// PreReleaseDelay is the wait between a release request and the output assertion.
func (c Config) PreReleaseDelay() time.Duration {
	return time.Duration(c.PreReleaseDelayMS) * time.Millisecond
}

// HoldDuration is the minimum time the output stays asserted.
func (c Config) HoldDuration() time.Duration {
	return time.Duration(c.HoldDurationMS) * time.Millisecond
}

// Validate reports every inconsistent field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error

	switch c.Type {
	case ReleaseRelay:
		if c.RelayChannel < 0 || c.RelayChannel > MaxRelayChannel {
			errs = append(errs, fmt.Errorf("relay_channel %d out of range 0..%d", c.RelayChannel, MaxRelayChannel))
		}
	case ReleaseServo:
		if c.ServoOnPWM <= 0 || c.ServoOffPWM <= 0 {
			errs = append(errs, fmt.Errorf("servo pwm must be positive (on=%d off=%d)", c.ServoOnPWM, c.ServoOffPWM))
		}
		if c.ServoOnPWM == c.ServoOffPWM {
			errs = append(errs, fmt.Errorf("servo_on_pwm and servo_off_pwm are both %d", c.ServoOnPWM))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown release type %q", c.Type))
	}

	if c.AltMin < 0 {
		errs = append(errs, fmt.Errorf("alt_min must not be negative: %d", c.AltMin))
	}
	if c.CriticalSinkMPS < 0 {
		errs = append(errs, fmt.Errorf("critical_sink_mps must not be negative: %g", c.CriticalSinkMPS))
	}
	if c.CriticalPitchCentideg <= 0 {
		errs = append(errs, fmt.Errorf("critical_pitch_centideg must be positive: %d", c.CriticalPitchCentideg))
	}
	if c.CriticalRollCentideg <= 0 {
		errs = append(errs, fmt.Errorf("critical_roll_centideg must be positive: %d", c.CriticalRollCentideg))
	}
	if c.AutoReleaseAltM < 0 {
		errs = append(errs, fmt.Errorf("auto_release_alt_m must not be negative: %d", c.AutoReleaseAltM))
	}
	if c.RecoveryMode == "" {
		errs = append(errs, errors.New("recovery_mode is required"))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
