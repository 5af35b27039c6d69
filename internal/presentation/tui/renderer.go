package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// Without a terminal the "notty" style is used so output stays plain text.
func NewRenderer(terminal bool) (func(string) (string, error), error) {
	style := glamour.WithStandardStyle("notty")
	if terminal {
		style = glamour.WithAutoStyle()
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return nil, err
	}
	return r.Render, nil
}
