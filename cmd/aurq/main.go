package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsukumogami/aurq/internal/buildinfo"
	"github.com/tsukumogami/aurq/internal/log"
)

var (
	quietFlag   bool
	verboseFlag bool
	debugFlag   bool

	baseURLFlag        string
	maxConnectionsFlag int
)

var rootCmd = &cobra.Command{
	Use:   "aurq",
	Short: "Query the Arch User Repository",
	Long: `aurq looks up packages in the Arch User Repository through its RPC
interface.

Lookups for many packages are split into batches and sent concurrently.
The exit status is zero when at least one requested package was found and
every request to the AUR succeeded.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetDefault(log.NewText(os.Stderr, determineLogLevel()))
	},
}

func init() {
	rootCmd.Version = buildinfo.Version()

	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Show only errors")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show lookup summaries")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Show every RPC request and response")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "baseurl", "", "Base URL of the AUR (overrides AURQ_AUR_URL and aur_url)")
	rootCmd.PersistentFlags().IntVar(&maxConnectionsFlag, "max-connections", 0, "Maximum concurrent RPC calls (default 5)")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(rawInfoCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
}

// determineLogLevel picks the most verbose level asked for. Flags win over
// the AURQ_DEBUG, AURQ_VERBOSE and AURQ_QUIET environment variables.
func determineLogLevel() slog.Level {
	switch {
	case debugFlag:
		return slog.LevelDebug
	case verboseFlag:
		return slog.LevelInfo
	case quietFlag:
		return slog.LevelError
	case isTruthy(os.Getenv("AURQ_DEBUG")):
		return slog.LevelDebug
	case isTruthy(os.Getenv("AURQ_VERBOSE")):
		return slog.LevelInfo
	case isTruthy(os.Getenv("AURQ_QUIET")):
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func isTruthy(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(err)
		exitWithCode(ExitUsage)
	}
}
