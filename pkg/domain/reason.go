package domain

import "fmt"

// Reason tags what caused a release. It only affects notification text.
type Reason string

const (
	ReasonManual        Reason = "manual"
	ReasonAutoAltitude  Reason = "auto_altitude"
	ReasonCriticalSink  Reason = "critical_sink"
	ReasonCriticalPitch Reason = "critical_pitch"
	ReasonCriticalRoll  Reason = "critical_roll"
)

// Kind maps the reason onto the notification announcing it.
func (r Reason) Kind() NotificationKind {
	switch r {
	case ReasonAutoAltitude:
		return KindAutoAltitude
	case ReasonCriticalSink:
		return KindCriticalSink
	case ReasonCriticalPitch, ReasonCriticalRoll:
		return KindCriticalAngle
	default:
		return KindManualRelease
	}
}

// Trigger is a positive decision from the trigger evaluator.
type Trigger struct {
	Reason Reason `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

func (t Trigger) String() string {
	if t.Detail == "" {
		return string(t.Reason)
	}
	return fmt.Sprintf("%s (%s)", t.Reason, t.Detail)
}

// Text is the notification text announcing a release for this reason.
func (r Reason) Text() string {
	switch r {
	case ReasonCriticalPitch:
		return "Parachute released: Reached critical pitch angle"
	case ReasonCriticalRoll:
		return "Parachute released: Reached critical roll angle"
	default:
		return r.Kind().Text()
	}
}
