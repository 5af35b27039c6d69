package domain

import "time"

// Phase is the externally observable stage of a release.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseInitiated  Phase = "initiated"   // Request accepted, sequence not yet armed
	PhaseInProgress Phase = "in_progress" // Waiting out the pre-release delay
	PhaseReleased   Phase = "released"    // Output asserted, terminal
)

// ReleaseState is the authoritative record of the release for the current flight.
type ReleaseState struct {
	// Released is true once the output has been asserted. It never reverts.
	Released bool `json:"released"`

	// Initiated is true once a release request has been accepted.
	Initiated bool `json:"release_initiated"`

	// InProgress is true from the request until the hold duration completes.
	InProgress bool `json:"release_in_progress"`

	// ReleaseTime is when the request was accepted.
	ReleaseTime *time.Time `json:"release_time,omitempty"`

	// AssertTime is when the output was driven to its release position.
	AssertTime *time.Time `json:"assert_time,omitempty"`

	// SinkExceededSince is the first tick of the current run above the critical sink rate.
	SinkExceededSince *time.Time `json:"sink_exceeded_since,omitempty"`
}

// Phase derives the current stage from the flags.
func (s ReleaseState) Phase() Phase {
	switch {
	case s.Released:
		return PhaseReleased
	case s.InProgress:
		return PhaseInProgress
	case s.Initiated:
		return PhaseInitiated
	default:
		return PhaseIdle
	}
}

// Holding reports whether the output is asserted and the hold has not completed.
func (s ReleaseState) Holding() bool {
	return s.Released && s.InProgress
}
