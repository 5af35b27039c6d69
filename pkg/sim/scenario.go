// Package sim replays scripted flights through the release controller on a
// simulated clock.
package sim

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/promistrio/albatros-chute/pkg/domain"
	"gopkg.in/yaml.v3"
)

// ErrEmptyScenario is returned for scenarios without keyframes.
var ErrEmptyScenario = errors.New("scenario has no keyframes")

// Keyframe pins the telemetry at an offset from the start of the flight. Numeric
// fields are interpolated linearly to the next keyframe; flags hold until changed.
type Keyframe struct {
	At        time.Duration    `yaml:"at"`
	Telemetry domain.Telemetry `yaml:"telemetry"`
}

// Command is a pilot action issued at an offset.
type Command struct {
	At            time.Duration `yaml:"at"`
	ManualRelease bool          `yaml:"manual_release"`
}

// Scenario describes one simulated flight.
type Scenario struct {
	Name     string        `yaml:"name"`
	Config   domain.Config `yaml:"config"`
	Period   time.Duration `yaml:"period"`
	Duration time.Duration `yaml:"duration"`
	// DisarmFeedback clears Armed once the controller has disarmed the vehicle.
	DisarmFeedback bool       `yaml:"disarm_feedback"`
	Keyframes      []Keyframe `yaml:"keyframes"`
	Commands       []Command  `yaml:"commands"`
}

// Load reads a YAML scenario. The config section is applied over
// domain.DefaultConfig.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML scenario and fills defaults.
func Parse(data []byte) (Scenario, error) {
	sc := Scenario{Config: domain.DefaultConfig(), DisarmFeedback: true}
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if len(sc.Keyframes) == 0 {
		return Scenario{}, ErrEmptyScenario
	}

	sort.SliceStable(sc.Keyframes, func(i, j int) bool { return sc.Keyframes[i].At < sc.Keyframes[j].At })
	sort.SliceStable(sc.Commands, func(i, j int) bool { return sc.Commands[i].At < sc.Commands[j].At })

	if sc.Period <= 0 {
		sc.Period = 100 * time.Millisecond
	}
	if last := sc.Keyframes[len(sc.Keyframes)-1].At; sc.Duration < last {
		sc.Duration = last
	}
	return sc, nil
}

// At returns the telemetry at offset d.
func (sc Scenario) At(d time.Duration) domain.Telemetry {
	frames := sc.Keyframes
	if d <= frames[0].At {
		return frames[0].Telemetry
	}

	i := sort.Search(len(frames), func(i int) bool { return frames[i].At > d })
	if i == len(frames) {
		return frames[len(frames)-1].Telemetry
	}

	from, to := frames[i-1], frames[i]
	span := to.At - from.At
	if span <= 0 {
		return to.Telemetry
	}
	f := float64(d-from.At) / float64(span)
	return lerp(from.Telemetry, to.Telemetry, f)
}

func lerp(a, b domain.Telemetry, f float64) domain.Telemetry {
	mix := func(x, y float64) float64 { return x + (y-x)*f }
	out := a
	out.RelativeAltitude = mix(a.RelativeAltitude, b.RelativeAltitude)
	out.GroundAltitude = mix(a.GroundAltitude, b.GroundAltitude)
	out.BaroAltitude = mix(a.BaroAltitude, b.BaroAltitude)
	out.TakeoffBaroAltitude = mix(a.TakeoffBaroAltitude, b.TakeoffBaroAltitude)
	out.SinkRate = mix(a.SinkRate, b.SinkRate)
	out.Pitch = int32(mix(float64(a.Pitch), float64(b.Pitch)))
	out.Roll = int32(mix(float64(a.Roll), float64(b.Roll)))
	return out
}
