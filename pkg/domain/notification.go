package domain

import "time"

// Severity follows the MAVLink severity ordering (lower is more severe).
type Severity int

const (
	SeverityEmergency Severity = iota
	SeverityAlert
	SeverityCritical
	SeverityError
	SeverityWarning
	SeverityNotice
	SeverityInfo
	SeverityDebug
)

func (s Severity) String() string {
	switch s {
	case SeverityEmergency:
		return "EMERGENCY"
	case SeverityAlert:
		return "ALERT"
	case SeverityCritical:
		return "CRITICAL"
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityNotice:
		return "NOTICE"
	case SeverityInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

// NotificationKind identifies a distinct ground station message.
type NotificationKind string

const (
	KindReleased       NotificationKind = "released"
	KindReleasedAgain  NotificationKind = "released_again"
	KindAutoAltitude   NotificationKind = "auto_altitude"
	KindCriticalSink   NotificationKind = "critical_sink"
	KindCriticalAngle  NotificationKind = "critical_angle"
	KindAutoReady      NotificationKind = "auto_ready"
	KindElevonOverride NotificationKind = "elevon_override"
	KindManualRelease  NotificationKind = "manual_release"
	KindManualTooLow   NotificationKind = "manual_too_low"
)

type message struct {
	severity Severity
	text     string
}

// messages is the single kind to severity table.
var messages = map[NotificationKind]message{
	KindReleased:       {SeverityCritical, "Parachute: Released"},
	KindReleasedAgain:  {SeverityDebug, "Parachute: Released again"},
	KindAutoAltitude:   {SeverityAlert, `Parachute released: below "AUTO_ALT"`},
	KindCriticalSink:   {SeverityAlert, "Parachute released: critical sink reached"},
	KindCriticalAngle:  {SeverityAlert, "Parachute released: Reached critical angle"},
	KindAutoReady:      {SeverityInfo, "Parachute: AUTO READY"},
	KindElevonOverride: {SeverityInfo, "Parachute: Disarmed, Elevon override"},
	KindManualRelease:  {SeverityWarning, "Parachute: manual release"},
	KindManualTooLow:   {SeverityWarning, "Parachute: Too low"},
}

// Severity returns the severity this kind is always sent with.
func (k NotificationKind) Severity() Severity {
	if m, ok := messages[k]; ok {
		return m.severity
	}
	return SeverityDebug
}

// Text returns the default message text.
func (k NotificationKind) Text() string {
	if m, ok := messages[k]; ok {
		return m.text
	}
	return "Parachute: " + string(k)
}

// Notification is a severity-tagged message for the ground station.
type Notification struct {
	Kind     NotificationKind `json:"kind"`
	Severity Severity         `json:"severity"`
	Text     string           `json:"text"`
	Time     time.Time        `json:"time"`
}

// NewNotification builds the notification for kind using the severity table.
// A non-empty text overrides the default message.
func NewNotification(kind NotificationKind, text string, at time.Time) Notification {
	if text == "" {
		text = kind.Text()
	}
	return Notification{
		Kind:     kind,
		Severity: kind.Severity(),
		Text:     text,
		Time:     at,
	}
}

// NotificationLog remembers which kinds have been sent during the flight.
type NotificationLog map[NotificationKind]time.Time

// Fired reports whether kind has already been sent.
func (l NotificationLog) Fired(kind NotificationKind) bool {
	_, ok := l[kind]
	return ok
}

// Mark records kind and reports whether this was the first time.
func (l NotificationLog) Mark(kind NotificationKind, at time.Time) bool {
	if l.Fired(kind) {
		return false
	}
	l[kind] = at
	return true
}
