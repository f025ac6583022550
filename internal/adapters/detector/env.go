// Package detector provides environment detection for output mode selection.
package detector

import (
	"os"

	"go.trai.ch/archlint/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// OutputMode represents the rendering mode for analysis reports.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModePretty renders a coloured report for interactive terminals.
	ModePretty
	// ModePlain renders the same report without colour codes.
	ModePlain
	// ModeJSON renders the result as JSON.
	ModeJSON
)

// String returns the flag spelling of the mode.
func (m OutputMode) String() string {
	switch m {
	case ModePretty:
		return "pretty"
	case ModePlain:
		return "plain"
	case ModeJSON:
		return "json"
	default:
		return "auto"
	}
}

// DetectEnvironment returns the recommended output mode based on the environment.
// Reports are plain when stdout is not a terminal or a CI variable is set.
func DetectEnvironment() OutputMode {
	return detect(term.IsTerminal(int(os.Stdout.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) OutputMode {
	if !isTTY || ci == "true" || ci == "1" {
		return ModePlain
	}
	return ModePretty
}

// ResolveMode applies the user's --output-mode flag to auto-detection.
func ResolveMode(autoDetected OutputMode, userFlag string) (OutputMode, error) {
	switch userFlag {
	case "auto", "":
		return autoDetected, nil
	case "pretty":
		return ModePretty, nil
	case "plain", "ci", "linear":
		return ModePlain, nil
	case "json":
		return ModeJSON, nil
	default:
		return ModeAuto, zerr.With(domain.ErrInvalidOutputMode, "mode", userFlag)
	}
}
