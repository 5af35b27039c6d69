/*
Package domain contains the core domain models of the parachute release engine.

It defines the configuration, the per-tick telemetry snapshot, the release state and
the notification vocabulary shared by the runtime, the adapters and the CLI. The
package is kept pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - Config: Immutable per-flight parameters (thresholds, delays, actuator type).
  - Telemetry: The already-filtered readings supplied on every tick.
  - ReleaseState: Authoritative release flags and timestamps (Idle to Released).
  - Notification: Severity-tagged text for the ground station, latched per kind.
  - LifecycleHooks: Observability callbacks fired by the runtime.
*/
package domain
