/*
Package chute is the release controller for a fixed-wing emergency parachute.

It watches the telemetry supplied on every polling tick, decides when the aircraft
must come down under canopy, and drives the release output through a timed
assert and hold sequence. Triggers are a pilot command, a low-altitude cutoff
after the aircraft has climbed into the arming band, a sustained critical sink
rate, and excessive pitch or roll once airborne.

# Concept

The Engine owns the release state for one flight. Everything outside the state
machine is injected through ports: the actuator that moves the relay or servo,
the vehicle that accepts disarm and mode commands, the notifier that reaches the
operator, the clock, and a flight recorder for post-flight review. The in-memory
adapters are used when nothing else is supplied.

# Usage

	cfg := domain.DefaultConfig()
	cfg.Enabled = true
	cfg.AutoEnabled = true

	eng, err := chute.New(cfg, chute.WithActuator(relays), chute.WithVehicle(fc))
	if err != nil {
		log.Fatal(err)
	}

	// Poll at 10 Hz with the latest telemetry.
	for range time.Tick(100 * time.Millisecond) {
		eng.Tick(ctx, readTelemetry())
	}

Engine.Run wraps that loop around a TelemetrySource.
*/
package chute
