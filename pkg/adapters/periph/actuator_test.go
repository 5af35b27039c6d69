package periph_test

import (
	"errors"
	"testing"

	"github.com/promistrio/albatros-chute/pkg/adapters/periph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
)

func TestActuator_Relay(t *testing.T) {
	pin := &gpiotest.Pin{N: "GPIO17", Num: 17}
	act := periph.New(periph.WithRelayPin(2, pin))

	require.NoError(t, act.SetRelay(2, true))
	assert.Equal(t, gpio.High, pin.L)

	require.NoError(t, act.SetRelay(2, false))
	assert.Equal(t, gpio.Low, pin.L)

	err := act.SetRelay(1, true)
	assert.True(t, errors.Is(err, periph.ErrNoPin), "unbound channel")
	err = act.SetRelay(9, true)
	assert.ErrorIs(t, err, periph.ErrNoPin)
}

func TestActuator_Servo(t *testing.T) {
	pin := &gpiotest.Pin{N: "GPIO18", Num: 18}
	act := periph.New(periph.WithServoPin(pin))

	require.NoError(t, act.SetServo(1300))
	assert.Equal(t, 50*physic.Hertz, pin.F)
	assert.Equal(t, gpio.Duty(int64(gpio.DutyMax)*1300/20000), pin.D)

	require.NoError(t, act.SetServo(1100))
	assert.Equal(t, gpio.Duty(int64(gpio.DutyMax)*1100/20000), pin.D)
}

func TestActuator_Duty(t *testing.T) {
	act := periph.New(periph.WithServoFrequency(100 * physic.Hertz))

	assert.Equal(t, gpio.Duty(0), act.Duty(0))
	assert.Equal(t, gpio.DutyMax/10, act.Duty(1000), "1 ms of a 10 ms frame")
	assert.Equal(t, gpio.DutyMax, act.Duty(20000), "clamped")

	err := act.SetServo(1500)
	assert.ErrorIs(t, err, periph.ErrNoPin)
}
