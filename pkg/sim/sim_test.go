package sim_test

import (
	"context"
	"testing"
	"time"

	"github.com/promistrio/albatros-chute/pkg/domain"
	"github.com/promistrio/albatros-chute/pkg/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		sc, err := sim.Parse([]byte(`
keyframes:
  - at: 5s
    telemetry: {relative_altitude: 10}
  - at: 1s
    telemetry: {relative_altitude: 0}
`))
		require.NoError(t, err)
		assert.Equal(t, 100*time.Millisecond, sc.Period)
		assert.Equal(t, 5*time.Second, sc.Duration, "runs at least to the last keyframe")
		assert.Equal(t, time.Second, sc.Keyframes[0].At, "keyframes are sorted")
		assert.Equal(t, domain.DefaultConfig(), sc.Config)
		assert.True(t, sc.DisarmFeedback)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := sim.Parse([]byte("name: nothing\n"))
		assert.ErrorIs(t, err, sim.ErrEmptyScenario)
	})
}

func TestScenario_At(t *testing.T) {
	sc, err := sim.Parse([]byte(`
keyframes:
  - at: 0s
    telemetry: {relative_altitude: 0, pitch: 0, armed: true}
  - at: 10s
    telemetry: {relative_altitude: 100, pitch: 1000, armed: false}
`))
	require.NoError(t, err)

	mid := sc.At(2500 * time.Millisecond)
	assert.InDelta(t, 25.0, mid.RelativeAltitude, 1e-9)
	assert.Equal(t, int32(250), mid.Pitch)
	assert.True(t, mid.Armed, "flags hold until the next keyframe")

	assert.False(t, sc.At(10*time.Second).Armed)
	assert.InDelta(t, 100.0, sc.At(time.Minute).RelativeAltitude, 1e-9, "held after the last keyframe")
}

func TestRun_LowAltitudeProfile(t *testing.T) {
	sc, err := sim.Load("testdata/low_altitude.yaml")
	require.NoError(t, err)

	res, err := sim.Run(context.Background(), sc)
	require.NoError(t, err)

	assert.True(t, res.AutoReady)
	assert.True(t, res.State.Released)
	assert.False(t, res.State.InProgress)
	require.NotNil(t, res.State.ReleaseTime)
	require.NotNil(t, res.State.AssertTime)
	assert.Equal(t, 500*time.Millisecond, res.State.AssertTime.Sub(*res.State.ReleaseTime))

	var kinds []domain.NotificationKind
	for _, n := range res.Notifications {
		kinds = append(kinds, n.Kind)
	}
	assert.Equal(t, []domain.NotificationKind{
		domain.KindAutoReady,
		domain.KindElevonOverride,
		domain.KindAutoAltitude,
		domain.KindReleased,
	}, kinds)

	// The altitude first reads below 20 m at 21.8 s.
	assert.Equal(t, sim.Epoch.Add(21800*time.Millisecond), *res.State.ReleaseTime)

	require.Len(t, res.Writes, 2)
	assert.True(t, res.Writes[0].On)
	assert.False(t, res.Writes[1].On)
	assert.NotEmpty(t, res.Events)
	assert.Equal(t, 301, res.Ticks)
}

func TestRun_ManualCommand(t *testing.T) {
	sc, err := sim.Parse([]byte(`
config: {enabled: true}
duration: 2s
keyframes:
  - at: 0s
    telemetry: {ground_altitude: 40, relative_altitude: 40, has_flown: true, armed: true}
commands:
  - at: 500ms
    manual_release: true
`))
	require.NoError(t, err)

	res, err := sim.Run(context.Background(), sc)
	require.NoError(t, err)
	assert.True(t, res.State.Released)
	assert.Equal(t, sim.Epoch.Add(500*time.Millisecond), *res.State.ReleaseTime)
}
