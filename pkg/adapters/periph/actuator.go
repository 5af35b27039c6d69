// Package periph drives the parachute release output from host GPIO pins.
package periph

import (
	"errors"
	"fmt"
	"time"

	"github.com/promistrio/albatros-chute/pkg/domain"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// DefaultServoFrequency is the standard hobby servo frame rate.
const DefaultServoFrequency = 50 * physic.Hertz

var (
	// ErrNoPin is returned when the requested output has no pin bound.
	ErrNoPin = errors.New("no pin bound to output")
	// ErrPinNotFound is returned by Open when a pin name is unknown to the host.
	ErrPinNotFound = errors.New("gpio pin not found")
)

// Actuator implements ports.Actuator on periph pins. Relays are driven high while
// asserted; the servo is driven with a PWM pulse of the requested width.
type Actuator struct {
	relays    [domain.MaxRelayChannel + 1]gpio.PinOut
	servo     gpio.PinOut
	frequency physic.Frequency
}

// Option configures an Actuator.
type Option func(*Actuator)

// WithRelayPin binds a relay channel to a pin. Out-of-range channels are ignored.
func WithRelayPin(channel int, pin gpio.PinOut) Option {
	return func(a *Actuator) {
		if channel >= 0 && channel < len(a.relays) {
			a.relays[channel] = pin
		}
	}
}

// WithServoPin binds the servo output to a PWM capable pin.
func WithServoPin(pin gpio.PinOut) Option {
	return func(a *Actuator) {
		a.servo = pin
	}
}

// WithServoFrequency overrides the PWM frame rate.
func WithServoFrequency(f physic.Frequency) Option {
	return func(a *Actuator) {
		if f > 0 {
			a.frequency = f
		}
	}
}

// New creates an actuator over already resolved pins.
func New(opts ...Option) *Actuator {
	a := &Actuator{frequency: DefaultServoFrequency}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Open initialises the host drivers and resolves pins by name (e.g. "GPIO17").
// relayPins is indexed by relay channel; empty names are left unbound.
func Open(relayPins []string, servoPin string, opts ...Option) (*Actuator, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	var bound []Option
	for ch, name := range relayPins {
		if name == "" {
			continue
		}
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("%w: %s (relay %d)", ErrPinNotFound, name, ch)
		}
		bound = append(bound, WithRelayPin(ch, p))
	}
	if servoPin != "" {
		p := gpioreg.ByName(servoPin)
		if p == nil {
			return nil, fmt.Errorf("%w: %s (servo)", ErrPinNotFound, servoPin)
		}
		bound = append(bound, WithServoPin(p))
	}
	return New(append(bound, opts...)...), nil
}

// SetRelay drives the relay pin for channel.
func (a *Actuator) SetRelay(channel int, on bool) error {
	if channel < 0 || channel >= len(a.relays) || a.relays[channel] == nil {
		return fmt.Errorf("%w: relay %d", ErrNoPin, channel)
	}
	level := gpio.Low
	if on {
		level = gpio.High
	}
	if err := a.relays[channel].Out(level); err != nil {
		return fmt.Errorf("relay %d: %w", channel, err)
	}
	return nil
}

// SetServo emits a pulse of pwm microseconds every frame.
func (a *Actuator) SetServo(pwm int16) error {
	if a.servo == nil {
		return fmt.Errorf("%w: servo", ErrNoPin)
	}
	if err := a.servo.PWM(a.Duty(pwm), a.frequency); err != nil {
		return fmt.Errorf("servo: %w", err)
	}
	return nil
}

// Duty converts a pulse width in microseconds to a duty cycle at the configured
// frame rate, clamped to [0, DutyMax].
func (a *Actuator) Duty(pwm int16) gpio.Duty {
	period := a.frequency.Period()
	if period <= 0 || pwm <= 0 {
		return 0
	}
	pulse := time.Duration(pwm) * time.Microsecond
	if pulse >= period {
		return gpio.DutyMax
	}
	return gpio.Duty(int64(gpio.DutyMax) * int64(pulse) / int64(period))
}
