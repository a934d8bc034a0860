package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/tkingovr/param-guard/api"
	"github.com/tkingovr/param-guard/internal/config"
	"github.com/tkingovr/param-guard/scrub"
)

var scrubPayload string

var scrubCmd = &cobra.Command{
	Use:   "scrub",
	Short: "Filter a JSON payload through a scrub config",
	Long: `Apply the configured scrub policy to a single JSON payload and print
the filtered result. Useful for testing and debugging scrub configs
before wiring them into an agent.`,
	Example: `  paramguard scrub -c scrub.yaml --payload '{"password":"hunter2","user":"bob"}'
  cat payload.json | paramguard scrub -c scrub.yaml`,
	RunE: runScrub,
}

func init() {
	scrubCmd.Flags().StringVar(&scrubPayload, "payload", "", "JSON payload (reads stdin if omitted)")
	rootCmd.AddCommand(scrubCmd)
}

func runScrub(cmd *cobra.Command, args []string) error {
	if cfgFile == "" {
		return fmt.Errorf("--config/-c is required for scrub command")
	}

	f, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	policy, err := f.Policy()
	if err != nil {
		return fmt.Errorf("building policy: %w", err)
	}

	raw := []byte(scrubPayload)
	if scrubPayload == "" {
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading payload from stdin: %w", err)
		}
	}

	if !gjson.ValidBytes(raw) {
		return fmt.Errorf("payload is not valid JSON")
	}

	filtered, report, err := scrub.ApplyWithReport(policy, gjson.ParseBytes(raw).Value())
	if err != nil {
		return fmt.Errorf("filtering payload: %w", err)
	}

	out, err := json.Marshal(filtered)
	if err != nil {
		return fmt.Errorf("encoding filtered payload: %w", err)
	}

	logger.Debug("payload filtered",
		"mode", report.Mode,
		"redacted_keys", report.RedactedKeys,
		"depth", report.Depth,
	)

	resp := api.ScrubResponse{
		Payload: json.RawMessage(out),
		Report:  report,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
