/*
Package observability exports parachute lifecycle events as Prometheus metrics.

Metrics are fed from domain.LifecycleHooks, so the release logic never depends on
the metrics backend.
*/
package observability
