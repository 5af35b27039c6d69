package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/muesli/termenv"
	"github.com/promistrio/albatros-chute/internal/presentation/tui"
	"github.com/promistrio/albatros-chute/pkg/domain"
)

// consoleVehicle stands in for the autopilot link: commands are logged and
// operator messages are printed to the console.
type consoleVehicle struct {
	logger  *slog.Logger
	out     io.Writer
	profile termenv.Profile
}

func newConsoleVehicle(logger *slog.Logger, out io.Writer) *consoleVehicle {
	return &consoleVehicle{logger: logger, out: out, profile: colorProfile(out)}
}

func (v *consoleVehicle) Disarm(ctx context.Context) {
	v.logger.Warn("Vehicle disarm commanded")
}

func (v *consoleVehicle) SetMode(ctx context.Context, mode, reason string) {
	v.logger.Warn("Vehicle mode change commanded", "mode", mode, "reason", reason)
}

func (v *consoleVehicle) Notify(ctx context.Context, n domain.Notification) {
	io.WriteString(v.out, tui.FormatNotification(v.profile, n)+"\n")
}
