package cli

import (
	"fmt"
	"time"

	httpAdapter "github.com/promistrio/albatros-chute/pkg/adapters/http"
)

// TokenOptions configures the 'token' command.
type TokenOptions struct {
	Secret  string
	Subject string
	Role    string
	TTL     time.Duration
}

// IssueToken signs an API token for a ground-station client.
func IssueToken(opts TokenOptions) (string, error) {
	auth, err := httpAdapter.NewAuthenticator([]byte(opts.Secret))
	if err != nil {
		return "", err
	}
	role := httpAdapter.Role(opts.Role)
	switch role {
	case httpAdapter.RoleViewer, httpAdapter.RoleLink, httpAdapter.RolePilot:
	default:
		return "", fmt.Errorf("unknown role %q (want viewer, link or pilot)", opts.Role)
	}
	return auth.Issue(opts.Subject, role, opts.TTL)
}
