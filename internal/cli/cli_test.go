package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/promistrio/albatros-chute/internal/cli"
	"github.com/promistrio/albatros-chute/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenario = `
name: steep dive
config:
  enabled: true
  auto_enabled: true
duration: 3s
keyframes:
  - at: 0s
    telemetry: {relative_altitude: 80, ground_altitude: 80, baro_altitude: 180, takeoff_baro_altitude: 100, armed: true, has_flown: true}
  - at: 1s
    telemetry: {relative_altitude: 80, ground_altitude: 80, baro_altitude: 180, takeoff_baro_altitude: 100, pitch: -6000, armed: true, has_flown: true}
`

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidate(t *testing.T) {
	t.Run("Params table", func(t *testing.T) {
		var out bytes.Buffer
		cfg, err := cli.Validate(cli.CommonOptions{
			ParamsPath: write(t, "params.yaml", "CHUTE_ENABLED: 1\nCHUTE_TYPE: 10\n"),
			Out:        &out,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.ReleaseServo, cfg.Type)
		assert.Contains(t, out.String(), "output=servo 1300/1100 us")
	})

	t.Run("Nothing to validate", func(t *testing.T) {
		_, err := cli.Validate(cli.CommonOptions{Out: &bytes.Buffer{}})
		assert.Error(t, err)
	})

	t.Run("Invalid file", func(t *testing.T) {
		_, err := cli.Validate(cli.CommonOptions{
			ConfigPath: write(t, "chute.yaml", "recovery_mode: \"\"\n"),
			Out:        &bytes.Buffer{},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})
}

func TestRunScenario_AndReport(t *testing.T) {
	mr := miniredis.RunT(t)
	common := cli.CommonOptions{RedisURL: "redis://" + mr.Addr() + "/0"}
	path := write(t, "dive.yaml", scenario)

	var out bytes.Buffer
	common.Out = &out
	err := cli.RunScenario(context.Background(), cli.RunOptions{
		CommonOptions: common,
		ScenarioPath:  path,
		Report:        true,
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Parachute released: Reached critical pitch angle")
	assert.Contains(t, text, "phase released")
	assert.Contains(t, text, "Flight")

	var list bytes.Buffer
	common.Out = &list
	require.NoError(t, cli.Report(context.Background(), cli.ReportOptions{CommonOptions: common}))
	flights := strings.Fields(list.String())
	require.Len(t, flights, 1)

	var md bytes.Buffer
	common.Out = &md
	require.NoError(t, cli.Report(context.Background(), cli.ReportOptions{
		CommonOptions: common,
		FlightID:      flights[0],
		Raw:           true,
	}))
	assert.Contains(t, md.String(), "| Outcome | **Released** |")
	assert.Contains(t, md.String(), "| Trigger | critical_pitch |")
}

func TestReport_UnknownFlight(t *testing.T) {
	err := cli.Report(context.Background(), cli.ReportOptions{
		CommonOptions: cli.CommonOptions{Out: &bytes.Buffer{}},
		FlightID:      "missing",
	})
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
}

func TestIssueToken(t *testing.T) {
	tok, err := cli.IssueToken(cli.TokenOptions{Secret: "s3cret", Subject: "gcs-1", Role: "pilot", TTL: time.Hour})
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(tok, "."), "compact JWS")

	_, err = cli.IssueToken(cli.TokenOptions{Secret: "s3cret", Role: "admin"})
	assert.Error(t, err)

	_, err = cli.IssueToken(cli.TokenOptions{Role: "pilot"})
	assert.Error(t, err, "empty secret")
}

func TestRunScenario_LogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dive.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenario), 0o644))
	logPath := filepath.Join(dir, "chute.log")

	var out bytes.Buffer
	err := cli.RunScenario(context.Background(), cli.RunOptions{
		CommonOptions: cli.CommonOptions{Out: &out, LogLevel: "debug", LogFile: logPath},
		ScenarioPath:  path,
		Debug:         true,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "critical_pitch")
}
