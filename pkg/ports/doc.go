/*
Package ports defines the driven ports (interfaces) of the parachute release engine.

These interfaces decouple the release logic from the vehicle it runs on, allowing the
same runtime to drive real GPIO hardware, a simulator or test fakes.

# Key Interfaces

  - Actuator: Sets the relay level or the servo pulse that releases the chute.
  - Vehicle: Disarms and switches the flight mode when a release is requested.
  - Notifier: Delivers severity-tagged messages to the ground station.
  - Clock: Monotonic time source, replaceable by a fake clock in tests.
  - FlightRecorder: Post-flight audit trail of triggers, outputs and messages.
  - OutputLocker: Exclusive ownership of a vehicle's release output.
*/
package ports
