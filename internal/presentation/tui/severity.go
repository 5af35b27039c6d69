package tui

import (
	"fmt"

	"github.com/muesli/termenv"
	"github.com/promistrio/albatros-chute/pkg/domain"
)

var severityColors = map[domain.Severity]string{
	domain.SeverityEmergency: "#b91c1c",
	domain.SeverityAlert:     "#dc2626",
	domain.SeverityCritical:  "#ef4444",
	domain.SeverityError:     "#f97316",
	domain.SeverityWarning:   "#eab308",
	domain.SeverityNotice:    "#22d3ee",
	domain.SeverityInfo:      "#a3e635",
	domain.SeverityDebug:     "#94a3b8",
}

// FormatNotification renders one operator message for a console line. The
// profile decides whether colour escapes are emitted; termenv.Ascii gives plain text.
func FormatNotification(p termenv.Profile, n domain.Notification) string {
	sev := p.String(fmt.Sprintf("%-9s", n.Severity)).Foreground(p.Color(severityColors[n.Severity]))
	if n.Severity <= domain.SeverityCritical {
		sev = sev.Bold()
	}
	return fmt.Sprintf("%s %s %s", n.Time.Format("15:04:05.000"), sev, n.Text)
}
