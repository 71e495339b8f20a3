package main

import (
	"os"

	"github.com/tsukumogami/aurq/internal/aur"
)

// Exit codes for different error types.
// These enable scripts to distinguish between failure modes.
const (
	// ExitSuccess indicates every requested package, or at least one, was found
	ExitSuccess = 0

	// ExitGeneral indicates a general error, including unreadable AUR responses
	ExitGeneral = 1

	// ExitUsage indicates invalid arguments or usage error
	ExitUsage = 2

	// ExitNotFound indicates no requested package was found
	ExitNotFound = 3

	// ExitNetwork indicates the AUR could not be reached or answered with an error status
	ExitNetwork = 5
)

// exitWithCode exits with the specified exit code
func exitWithCode(code int) {
	os.Exit(code)
}

// exitCodeFor maps a batch failure to an exit code.
func exitCodeFor(err *aur.QueryError) int {
	switch err.Kind {
	case aur.KindTransport, aur.KindStatus:
		return ExitNetwork
	case aur.KindDecode:
		return ExitGeneral
	default:
		return ExitGeneral
	}
}

// outcomeExitCode maps a lookup outcome to an exit code. The first failing
// batch decides when there are several.
func outcomeExitCode(o *aur.LookupOutcome) int {
	if o.Verdict.OK() {
		return ExitSuccess
	}
	if len(o.Errors) > 0 {
		return exitCodeFor(o.Errors[0])
	}
	return ExitNotFound
}
