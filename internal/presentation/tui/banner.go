package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the CLI banner with the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	title := p.String("  chute  ").Bold().Foreground(p.Color("#fafafa")).Background(p.Color("#dc2626"))
	sub := p.String(" parachute release controller " + version).Foreground(p.Color("#94a3b8"))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s%s\n", title, sub)
	fmt.Fprintln(w)
}
