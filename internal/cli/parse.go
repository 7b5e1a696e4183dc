package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var parseOutput string

// parseCmd normalizes an already-captured raw report. This is the
// offline path the benchmark uses for cached scanner runs.
var parseCmd = &cobra.Command{
	Use:   "parse [scanner] [raw-results-file]",
	Short: "Normalize a previously captured raw scanner report",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		reg := newRegistry(cfg, log)
		adapter, err := lookupAdapter(reg, args[0])
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("reading raw results: %w", err)
		}

		results, err := adapter.ParseResults(raw)
		if err != nil {
			return fmt.Errorf("parsing %s results: %w", adapter.Name(), err)
		}

		return printResults(cmd.OutOrStdout(), results, parseOutput)
	},
}

func init() {
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "json", "output format: json or table")
}
