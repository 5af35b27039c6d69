package ports

// Actuator drives the physical release output. Only the release sequencer calls it.
type Actuator interface {
	// SetRelay drives the given relay channel high (on) or low.
	SetRelay(channel int, on bool) error

	// SetServo moves the release servo to the given pulse width in microseconds.
	SetServo(pwm int16) error
}
