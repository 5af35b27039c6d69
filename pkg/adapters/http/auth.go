package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the privilege carried by an API token.
type Role string

const (
	// RoleViewer may read status, flights and the event stream.
	RoleViewer Role = "viewer"
	// RoleLink may also push telemetry.
	RoleLink Role = "link"
	// RolePilot may also command a release.
	RolePilot Role = "pilot"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrForbidden    = errors.New("role not allowed")
)

// Claims is the JWT payload accepted by the API.
type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens shared with the ground station.
type Authenticator struct {
	secret []byte
	now    func() time.Time
}

// NewAuthenticator creates an authenticator for the shared secret.
func NewAuthenticator(secret []byte) (*Authenticator, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("auth: empty secret")
	}
	return &Authenticator{secret: secret, now: time.Now}, nil
}

// Issue signs a token for subject with the given role. A ttl <= 0 never expires.
func (a *Authenticator) Issue(subject string, role Role, ttl time.Duration) (string, error) {
	now := a.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Verify parses and validates a token.
func (a *Authenticator) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	switch claims.Role {
	case RoleViewer, RoleLink, RolePilot:
	default:
		return nil, fmt.Errorf("unknown role %q: %w", claims.Role, ErrForbidden)
	}
	return claims, nil
}

type claimsKey struct{}

// ClaimsFromContext returns the claims of an authenticated request.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok
}

// Require returns middleware that admits tokens carrying one of roles.
func (a *Authenticator) Require(roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			claims, err := a.Verify(token)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}
			if !slices.Contains(roles, claims.Role) {
				http.Error(w, ErrForbidden.Error(), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(token), nil
}
