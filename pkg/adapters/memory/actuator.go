package memory

import (
	"fmt"
	"sync"
)

// OutputWrite is one call recorded by Actuator.
type OutputWrite struct {
	Relay   bool
	Channel int
	On      bool
	PWM     int16
}

func (w OutputWrite) String() string {
	if w.Relay {
		return fmt.Sprintf("relay[%d]=%t", w.Channel, w.On)
	}
	return fmt.Sprintf("servo=%d", w.PWM)
}

// Actuator records every output write. Fail makes the next writes return an error.
type Actuator struct {
	mu     sync.Mutex
	writes []OutputWrite
	relays map[int]bool
	servo  int16
	err    error
}

// NewActuator creates a recording actuator with every relay low.
func NewActuator() *Actuator {
	return &Actuator{relays: make(map[int]bool)}
}

// SetRelay records a relay write.
func (a *Actuator) SetRelay(channel int, on bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.writes = append(a.writes, OutputWrite{Relay: true, Channel: channel, On: on})
	a.relays[channel] = on
	return nil
}

// SetServo records a servo write.
func (a *Actuator) SetServo(pwm int16) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.writes = append(a.writes, OutputWrite{PWM: pwm})
	a.servo = pwm
	return nil
}

// Fail makes subsequent writes return err. Pass nil to recover.
func (a *Actuator) Fail(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.err = err
}

// Writes returns the recorded writes in order.
func (a *Actuator) Writes() []OutputWrite {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]OutputWrite(nil), a.writes...)
}

// Relay returns the last level written to a channel.
func (a *Actuator) Relay(channel int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.relays[channel]
}

// Servo returns the last pulse width written.
func (a *Actuator) Servo() int16 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.servo
}
