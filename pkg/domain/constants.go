package domain

import "time"

// Defaults carried over from the autopilot parachute library.
const (
	DefaultPreReleaseDelayMS = 500
	DefaultHoldDurationMS    = 5000
	DefaultServoOnPWM        = 1300
	DefaultServoOffPWM       = 1100
	DefaultCriticalPitch     = 5000 // centidegrees
	DefaultCriticalRoll      = 5500 // centidegrees
	DefaultAltMin            = 10
	DefaultCriticalSink      = 4
	DefaultAutoReleaseAlt    = 20

	// AutoEnableMargin is added to the release altitude when the configured enable
	// altitude does not exceed it.
	AutoEnableMargin = 30

	// AttitudeBaroMargin is the height above the takeoff baro altitude below which
	// attitude triggers are suppressed (ground handling).
	AttitudeBaroMargin = 2.0

	// SinkDebounce is how long the sink rate must stay above the threshold.
	SinkDebounce = 1000 * time.Millisecond

	// MaxRelayChannel is the highest relay selector the release type accepts.
	MaxRelayChannel = 3
)

// Flight modes requested from the vehicle.
const (
	ModeStabilize = "STABILIZE"
	ModeManual    = "MANUAL"

	// ModeReasonCommanded tags mode changes ordered by this engine.
	ModeReasonCommanded = "commanded"
)
