// Package style provides shared styling primitives, colors and icons for
// consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
)

// Banner is the style used for the interactive command-loop banner.
var Banner = lipgloss.NewStyle().Foreground(Iris).Bold(true)

// Hint is the style used for key hints next to the banner.
var Hint = lipgloss.NewStyle().Foreground(Slate)
