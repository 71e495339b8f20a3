package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsukumogami/aurq/internal/aur"
)

var rawInfoCmd = &cobra.Command{
	Use:   "rawinfo <package>...",
	Short: "Dump the AUR's JSON replies for packages",
	Long: `Look up packages by exact name and print each RPC reply body as received,
one per line. Useful for debugging and for feeding other tools.

Replies that arrive are printed even if another batch fails; the exit status
is then non-zero.

Examples:
  aurq rawinfo auracle-git | jq '.results[].Depends'`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := loadSettings()
		ctx, cancel := s.lookupContext(cmd.Context())
		defer cancel()

		client, stop := s.newClient(os.Stderr, false)
		code := runRawInfo(ctx, client, args, s.baseURL, os.Stdout, os.Stderr)
		stop()
		cancel()
		exitWithCode(code)
	},
}

type rawInfoClient interface {
	RawInfo(ctx context.Context, names []string) (*aur.RawOutcome, error)
}

func runRawInfo(ctx context.Context, client rawInfoClient, names []string, baseURL string, stdout, stderr io.Writer) int {
	out, err := client.RawInfo(ctx, names)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitUsage
	}

	for _, body := range out.Bodies {
		body = bytes.TrimRight(body, "\n")
		if _, err := fmt.Fprintf(stdout, "%s\n", body); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return ExitGeneral
		}
	}

	if len(out.Errors) > 0 {
		printLookupErrors(stderr, out.Errors, baseURL)
		return exitCodeFor(out.Errors[0])
	}
	return ExitSuccess
}
