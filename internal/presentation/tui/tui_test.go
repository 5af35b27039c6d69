package tui_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/promistrio/albatros-chute/internal/presentation/tui"
	"github.com/promistrio/albatros-chute/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNotification_Plain(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 21, 800_000_000, time.UTC)
	n := domain.NewNotification(domain.KindReleased, "", at)

	line := tui.FormatNotification(termenv.Ascii, n)
	assert.Equal(t, "12:00:21.800 CRITICAL  Parachute: Released", line)
}

func TestFormatNotification_Colour(t *testing.T) {
	n := domain.NewNotification(domain.KindAutoReady, "", time.Time{})
	line := tui.FormatNotification(termenv.TrueColor, n)
	assert.Contains(t, line, "\x1b[")
	assert.Contains(t, line, "Parachute: AUTO READY")
}

func TestNewRenderer_NoTTY(t *testing.T) {
	render, err := tui.NewRenderer(false)
	require.NoError(t, err)

	out, err := render("# Flight\n\nreleased")
	require.NoError(t, err)
	assert.Contains(t, out, "Flight")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "1.2.3")
}
