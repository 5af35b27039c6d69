package http_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/promistrio/albatros-chute"
	chutehttp "github.com/promistrio/albatros-chute/pkg/adapters/http"
	"github.com/promistrio/albatros-chute/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Enabled = true
	eng, err := chute.New(cfg, chute.WithFlightID("f-client"))
	require.NoError(t, err)

	auth, err := chutehttp.NewAuthenticator([]byte("k"))
	require.NoError(t, err)
	srv := httptest.NewServer(chutehttp.NewHandler(eng, chutehttp.WithAuth(auth)))
	defer srv.Close()

	ctx := context.Background()

	t.Run("Without token", func(t *testing.T) {
		_, err := chutehttp.NewClient(srv.URL, "").Status(ctx)
		assert.ErrorContains(t, err, "401")
	})

	pilot, err := auth.Issue("gcs", chutehttp.RolePilot, time.Hour)
	require.NoError(t, err)
	c := chutehttp.NewClient(srv.URL+"/", pilot)

	st, err := c.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "f-client", st.FlightID)

	require.NoError(t, c.SendTelemetry(ctx, domain.Telemetry{GroundAltitude: 3, HasFlown: true}))

	res, err := c.Release(ctx)
	require.NoError(t, err)
	assert.False(t, res.Accepted, "too low after flight")

	require.NoError(t, c.SendTelemetry(ctx, domain.Telemetry{GroundAltitude: 50, HasFlown: true}))
	res, err = c.Release(ctx)
	require.NoError(t, err)
	assert.True(t, res.Accepted)

	st, err = c.Status(ctx)
	require.NoError(t, err)
	assert.True(t, st.Initiated)
}
