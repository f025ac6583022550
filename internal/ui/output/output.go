// Package output builds termenv outputs that honour NO_COLOR and the selected report mode.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// ColorProfile detects the terminal's colour support. NO_COLOR forces Ascii.
func ColorProfile() termenv.Profile {
	if noColor() {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// ColorProfileANSI returns the 16 colour profile used for reports, which CI
// log viewers render reliably. NO_COLOR forces Ascii.
func ColorProfileANSI() termenv.Profile {
	if noColor() {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// PlainProfile always returns Ascii.
func PlainProfile() termenv.Profile {
	return termenv.Ascii
}

func noColor() bool {
	return os.Getenv("NO_COLOR") != ""
}

// New creates an output on w with the detected profile. A nil w writes to stderr.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	return NewWithProfile(w, ColorProfile, opts...)
}

// NewWithProfile creates an output on w with the profile returned by profileFn.
// The output is always treated as a terminal so the profile alone decides
// whether escape codes are written. A nil w writes to stderr.
func NewWithProfile(w io.Writer, profileFn func() termenv.Profile, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(profileFn()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}
