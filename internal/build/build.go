// Package build holds build-time information.
package build

import (
	"fmt"
	"runtime"
)

// These values default to development placeholders and are overwritten by linker flags.
var (
	// Version is the application version.
	Version = "dev"
	// Commit is the VCS revision the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)

// Summary describes the binary on one line, including the toolchain and platform.
func Summary() string {
	return fmt.Sprintf("archlint version %s (commit: %s, date: %s, %s %s/%s)",
		Version, Commit, Date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
