// Package progress renders lookup progress on stderr while RPC batches are
// in flight.
package progress

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// IsTerminalFunc is the function used to check if a file descriptor is a terminal.
// It can be overridden for testing.
var IsTerminalFunc = term.IsTerminal

// ShouldShowProgress returns true if progress should be displayed.
// Progress goes to stderr, so that is the stream that must be a terminal;
// stdout may be piped into another tool.
func ShouldShowProgress() bool {
	return IsTerminalFunc(int(os.Stderr.Fd()))
}

// BatchMessage describes how far a lookup has got.
func BatchMessage(done, total int) string {
	if total <= 1 {
		return "Querying AUR..."
	}
	pct := done * 100 / total
	return fmt.Sprintf("Querying AUR: %d/%d batches (%d%%)", done, total, pct)
}
