package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "paramguard",
	Short: "ParamGuard — sensitive-parameter scrubber for telemetry payloads",
	Long: `ParamGuard filters sensitive data out of telemetry payloads
(request parameters, background-job arguments) before they are
transmitted to a collector. A scrub policy is loaded once and applied
to each payload: denylisted keys are replaced by a sentinel token,
allowlist mode spares only keys a predicate permits, and filter_all
suppresses the payload entirely.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "scrub config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
