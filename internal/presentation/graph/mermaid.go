package graph

import (
	"fmt"
	"strings"

	"github.com/promistrio/albatros-chute/pkg/domain"
)

// Overlay marks how far a flight progressed through the release phases.
type Overlay struct {
	Current domain.Phase
	Reason  domain.Reason
}

var phaseOrder = []domain.Phase{
	domain.PhaseIdle,
	domain.PhaseInitiated,
	domain.PhaseInProgress,
	domain.PhaseReleased,
}

// GenerateMermaid produces a Mermaid state diagram of the release sequence for
// cfg. Phases already passed are styled "visited" and the current one "current".
func GenerateMermaid(cfg domain.Config, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")
	sb.WriteString("    direction LR\n")

	trigger := "trigger"
	if overlay != nil && overlay.Reason != "" {
		trigger = string(overlay.Reason)
	}

	sb.WriteString("    [*] --> idle\n")
	fmt.Fprintf(&sb, "    idle --> initiated : %s\n", trigger)
	sb.WriteString("    initiated --> in_progress : disarm, " + cfg.RecoveryMode + "\n")
	fmt.Fprintf(&sb, "    in_progress --> released : after %s\n", cfg.PreReleaseDelay())
	fmt.Fprintf(&sb, "    released --> [*] : output rest after %s\n", cfg.HoldDuration())

	if overlay == nil || overlay.Current == "" {
		return sb.String()
	}

	sb.WriteString("    classDef visited fill:#e2e8f0,stroke:#64748b\n")
	sb.WriteString("    classDef current fill:#fecaca,stroke:#dc2626,stroke-width:2px\n")
	for _, p := range phaseOrder {
		if p == overlay.Current {
			fmt.Fprintf(&sb, "    class %s current\n", p)
			break
		}
		fmt.Fprintf(&sb, "    class %s visited\n", p)
	}
	return sb.String()
}
