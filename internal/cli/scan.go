package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/misconfbench/misconfbench/internal/scanner"
)

var scanOutput string

var scanCmd = &cobra.Command{
	Use:   "scan [scanner] [target-dir]",
	Short: "Run a scanner against a manifest directory and print normalized results",
	Args:  cobra.RangeArgs(1, 2),
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

		target := cfg.ManifestsDir
		if len(args) == 2 {
			target = args[1]
		}

		reg := newRegistry(cfg, log)
		adapter, err := lookupAdapter(reg, args[0])
		if err != nil {
			return err
		}

		runner := scanner.NewRunner(&scanner.ExecRunner{}, log)
		runner.SetTimeout(cfg.ScanTimeout())

		results, err := runner.Scan(cmd.Context(), adapter, target)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		return printResults(cmd.OutOrStdout(), results, scanOutput)
	},
}

func init() {
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "json", "output format: json or table")
}

func printResults(w io.Writer, results []scanner.CheckResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "table":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CHECK\tOBJECT\tSCANNER CHECK\tSTATUS\tSEVERITY")
		for _, r := range results {
			checkID := r.CheckID
			if checkID == "" {
				checkID = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", checkID, r.ObjectName, r.ScannerCheckID, r.Status, r.Severity)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
