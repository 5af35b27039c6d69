package domain

import "time"

// Telemetry is the snapshot supplied on every tick. It is not retained by the engine.
type Telemetry struct {
	// RelativeAltitude is the height above home in meters.
	RelativeAltitude float64 `json:"relative_altitude" yaml:"relative_altitude"`
	// GroundAltitude is the height above ground used by the manual release gate.
	GroundAltitude float64 `json:"ground_altitude" yaml:"ground_altitude"`

	BaroAltitude        float64 `json:"baro_altitude" yaml:"baro_altitude"`
	TakeoffBaroAltitude float64 `json:"takeoff_baro_altitude" yaml:"takeoff_baro_altitude"`

	// SinkRate is in m/s, positive when descending.
	SinkRate float64 `json:"sink_rate" yaml:"sink_rate"`

	// Pitch and Roll are in centidegrees.
	Pitch int32 `json:"pitch" yaml:"pitch"`
	Roll  int32 `json:"roll" yaml:"roll"`

	Armed bool `json:"armed" yaml:"armed"`
	// HasFlown is true once the vehicle has ever recorded being airborne.
	HasFlown bool `json:"has_flown" yaml:"has_flown"`

	// Time is overwritten with the controller clock when the snapshot is evaluated.
	Time time.Time `json:"time" yaml:"-"`
}
