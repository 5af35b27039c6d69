package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTrigger      EventType = "trigger"
	EventOutputAssert EventType = "output_assert"
	EventOutputRest   EventType = "output_rest"
	EventNotification EventType = "notification"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	FlightID  string    `json:"flight_id"`
}

// TriggerEvent is fired when a release request is accepted.
type TriggerEvent struct {
	EventBase
	Trigger   Trigger   `json:"trigger"`
	Telemetry Telemetry `json:"telemetry"`
}

// OutputEvent is fired when the actuator output changes level.
type OutputEvent struct {
	EventBase
	Output   ReleaseType `json:"output"`
	Asserted bool        `json:"asserted"`
	Channel  int         `json:"channel,omitempty"`
	PWM      int16       `json:"pwm,omitempty"`
}

// NotificationEvent is fired for every notification that passes the latch.
type NotificationEvent struct {
	EventBase
	Notification Notification `json:"notification"`
}

// LifecycleHooks defines callbacks for engine observability. Nil fields are skipped.
type LifecycleHooks struct {
	OnTrigger func(context.Context, *TriggerEvent)
	OnOutput  func(context.Context, *OutputEvent)
	OnNotify  func(context.Context, *NotificationEvent)
}

// Event is the flat record persisted by flight recorders.
type Event struct {
	Timestamp time.Time         `json:"timestamp"`
	Type      EventType         `json:"type"`
	Reason    Reason            `json:"reason,omitempty"`
	Kind      NotificationKind  `json:"kind,omitempty"`
	Severity  string            `json:"severity,omitempty"`
	Message   string            `json:"message,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}
