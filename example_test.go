package chute_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/promistrio/albatros-chute"
	"github.com/promistrio/albatros-chute/pkg/adapters/memory"
	"github.com/promistrio/albatros-chute/pkg/domain"
)

// ExampleNew shows a low-altitude cutoff after the aircraft has climbed into the
// arming band.
func ExampleNew() {
	cfg := domain.DefaultConfig()
	cfg.Enabled = true
	cfg.AutoEnabled = true
	cfg.CriticalSinkMPS = 0

	clock := memory.NewClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	relays := memory.NewActuator()

	eng, err := chute.New(cfg, chute.WithClock(clock), chute.WithActuator(relays))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	for _, alt := range []float64{10, 35, 60, 40, 15, 15, 15, 15, 15, 15} {
		t := domain.Telemetry{
			RelativeAltitude:    alt,
			GroundAltitude:      alt,
			BaroAltitude:        alt,
			TakeoffBaroAltitude: 0,
			Armed:               !eng.State().Initiated,
			HasFlown:            true,
		}
		for _, n := range eng.Tick(ctx, t) {
			fmt.Println(n.Severity, n.Text)
		}
		clock.Advance(100 * time.Millisecond)
	}
	fmt.Println("writes:", relays.Writes())
	// Output:
	// INFO Parachute: AUTO READY
	// INFO Parachute: Disarmed, Elevon override
	// ALERT Parachute released: below "AUTO_ALT"
	// CRITICAL Parachute: Released
	// writes: [relay[0]=true]
}
