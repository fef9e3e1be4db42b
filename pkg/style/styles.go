// Package style holds the terminal styles used to print layouts.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	DirStyle = lipgloss.NewStyle().
			Foreground(DirColor).
			Bold(true)

	MovedStyle = lipgloss.NewStyle().
			Foreground(MovedColor)

	// OriginStyle renders the input path a relocated entry came from
	OriginStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)
)

// Styler applies styles only when enabled, so plain output stays byte-exact
type Styler struct {
	Enabled bool
}

// Render renders text with s when the styler is enabled
func (st Styler) Render(s lipgloss.Style, text string) string {
	if !st.Enabled {
		return text
	}
	return s.Render(text)
}
