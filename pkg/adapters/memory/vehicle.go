package memory

import (
	"context"
	"sync"

	"github.com/promistrio/albatros-chute/pkg/domain"
)

// ModeChange is one SetMode call.
type ModeChange struct {
	Mode   string
	Reason string
}

// Vehicle is a simulated autopilot that records what the engine asked of it.
type Vehicle struct {
	mu       sync.Mutex
	armed    bool
	disarms  int
	modes    []ModeChange
	messages []domain.Notification
}

// NewVehicle creates an armed simulated vehicle.
func NewVehicle() *Vehicle {
	return &Vehicle{armed: true}
}

// Disarm records a disarm command.
func (v *Vehicle) Disarm(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.armed = false
	v.disarms++
}

// SetMode records a mode change.
func (v *Vehicle) SetMode(ctx context.Context, mode, reason string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.modes = append(v.modes, ModeChange{Mode: mode, Reason: reason})
}

// Notify implements ports.Notifier by keeping messages in an inbox.
func (v *Vehicle) Notify(ctx context.Context, n domain.Notification) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.messages = append(v.messages, n)
}

// Armed reports the simulated arm state.
func (v *Vehicle) Armed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.armed
}

// Arm re-arms the simulated vehicle.
func (v *Vehicle) Arm() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.armed = true
}

// Disarms returns how many disarm commands were received.
func (v *Vehicle) Disarms() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.disarms
}

// Modes returns the mode changes in order.
func (v *Vehicle) Modes() []ModeChange {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]ModeChange(nil), v.modes...)
}

// Mode returns the last requested mode, or "" if none.
func (v *Vehicle) Mode() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.modes) == 0 {
		return ""
	}
	return v.modes[len(v.modes)-1].Mode
}

// Messages returns the notifications received.
func (v *Vehicle) Messages() []domain.Notification {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]domain.Notification(nil), v.messages...)
}
