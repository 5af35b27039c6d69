package chute

import (
	"context"
	"strconv"

	"github.com/promistrio/albatros-chute/pkg/domain"
)

// combinedHooks queues every lifecycle event for the recorder, then fans out to
// the registered hooks. Recorder failures are logged and never reach the caller.
func (e *Engine) combinedHooks() domain.LifecycleHooks {
	record := func(_ context.Context, ev domain.Event) {
		e.queue.enqueue(ev)
	}

	return domain.LifecycleHooks{
		OnTrigger: func(ctx context.Context, ev *domain.TriggerEvent) {
			record(ctx, triggerRecord(ev))
			for _, h := range e.hooks {
				if h.OnTrigger != nil {
					h.OnTrigger(ctx, ev)
				}
			}
		},
		OnOutput: func(ctx context.Context, ev *domain.OutputEvent) {
			record(ctx, outputRecord(ev))
			for _, h := range e.hooks {
				if h.OnOutput != nil {
					h.OnOutput(ctx, ev)
				}
			}
		},
		OnNotify: func(ctx context.Context, ev *domain.NotificationEvent) {
			record(ctx, notificationRecord(ev))
			for _, h := range e.hooks {
				if h.OnNotify != nil {
					h.OnNotify(ctx, ev)
				}
			}
		},
	}
}

func triggerRecord(ev *domain.TriggerEvent) domain.Event {
	t := ev.Telemetry
	fields := map[string]string{
		"relative_altitude": strconv.FormatFloat(t.RelativeAltitude, 'f', 1, 64),
		"sink_rate":         strconv.FormatFloat(t.SinkRate, 'f', 2, 64),
		"pitch":             strconv.Itoa(int(t.Pitch)),
		"roll":              strconv.Itoa(int(t.Roll)),
	}
	if ev.Trigger.Detail != "" {
		fields["detail"] = ev.Trigger.Detail
	}
	return domain.Event{
		Timestamp: ev.Timestamp,
		Type:      ev.Type,
		Reason:    ev.Trigger.Reason,
		Message:   ev.Trigger.String(),
		Fields:    fields,
	}
}

func outputRecord(ev *domain.OutputEvent) domain.Event {
	fields := map[string]string{"output": string(ev.Output)}
	msg := "output at rest"
	if ev.Asserted {
		msg = "output asserted"
	}
	if ev.Output == domain.ReleaseServo {
		fields["pwm"] = strconv.Itoa(int(ev.PWM))
	} else {
		fields["channel"] = strconv.Itoa(ev.Channel)
	}
	return domain.Event{
		Timestamp: ev.Timestamp,
		Type:      ev.Type,
		Message:   msg,
		Fields:    fields,
	}
}

func notificationRecord(ev *domain.NotificationEvent) domain.Event {
	n := ev.Notification
	return domain.Event{
		Timestamp: ev.Timestamp,
		Type:      ev.Type,
		Kind:      n.Kind,
		Severity:  n.Severity.String(),
		Message:   n.Text,
	}
}
