// Package style holds the colours and glyphs shared by the report renderer and the logger.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	// Iris highlights headings.
	Iris = lipgloss.Color("#8B5CF6")
	// Slate de-emphasizes informational findings and log lines.
	Slate = lipgloss.Color("#667085")
	// Green marks a passing project.
	Green = lipgloss.Color("#22A06B")
	// Red marks blocked imports, cycles and errors.
	Red = lipgloss.Color("#D93025")
	// Yellow marks warnings and long functions.
	Yellow = lipgloss.Color("#F59E0B")
)

// Glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Arrow   = "→"
)
