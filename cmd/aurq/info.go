package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsukumogami/aurq/internal/aur"
	"github.com/tsukumogami/aurq/internal/log"
)

var infoJSONFlag bool

var infoCmd = &cobra.Command{
	Use:   "info <package>...",
	Short: "Show information for packages by exact name",
	Long: `Look up one or more packages by exact name.

Names are sent to the AUR in batches of at most max_batch_size, with up to
max_connections batches in flight. Found packages are printed as
"name version" lines.

Exit status:
  0  every package, or at least one of them, was found
  3  none of the packages were found
  5  the AUR could not be reached or answered with an error status
  1  the AUR's answer could not be read

Examples:
  aurq info auracle-git
  aurq info auracle-git pkgfile-git --json`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := loadSettings()
		ctx, cancel := s.lookupContext(cmd.Context())
		defer cancel()

		client, stop := s.newClient(os.Stderr, !infoJSONFlag)
		code := runInfo(ctx, client, args, s.baseURL, os.Stdout, os.Stderr)
		stop()
		cancel()
		exitWithCode(code)
	},
}

func init() {
	infoCmd.Flags().BoolVar(&infoJSONFlag, "json", false, "Print found packages as JSON")
}

type infoClient interface {
	Info(ctx context.Context, names []string) (*aur.LookupOutcome, error)
}

// runInfo performs the lookup and reports it, returning the exit code.
func runInfo(ctx context.Context, client infoClient, names []string, baseURL string, stdout, stderr io.Writer) int {
	outcome, err := client.Info(ctx, names)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitUsage
	}

	if !outcome.Verdict.OK() {
		if len(outcome.Errors) > 0 {
			printLookupErrors(stderr, outcome.Errors, baseURL)
		} else {
			fmt.Fprintln(stderr, "error: no results found")
		}
		return outcomeExitCode(outcome)
	}

	for _, name := range outcome.NotFound() {
		log.Default().Warn("package not found", "name", name)
	}
	if err := printRecords(stdout, outcome.Records, infoJSONFlag); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitGeneral
	}
	return outcomeExitCode(outcome)
}
