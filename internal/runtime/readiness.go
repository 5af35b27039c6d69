package runtime

import "github.com/promistrio/albatros-chute/pkg/domain"

// Readiness latches once the aircraft has climbed into the arming band. It is
// advisory: it never releases by itself, it only arms the altitude trigger.
type Readiness struct {
	enableAlt float64
	ready     bool
}

// NewReadiness creates a tracker using cfg.AutoEnableAlt as the band floor.
func NewReadiness(cfg domain.Config) *Readiness {
	return &Readiness{enableAlt: float64(cfg.AutoEnableAlt())}
}

// Update feeds the current relative altitude and returns true only on the call
// that sets the latch. The latch is never cleared during a flight.
func (r *Readiness) Update(relativeAltitude float64) bool {
	if r.ready || relativeAltitude < r.enableAlt {
		return false
	}
	r.ready = true
	return true
}

// Ready reports whether the latch is set.
func (r *Readiness) Ready() bool {
	return r.ready
}

// EnableAlt is the altitude that sets the latch.
func (r *Readiness) EnableAlt() float64 {
	return r.enableAlt
}
