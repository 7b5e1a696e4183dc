package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misconfbench/misconfbench/internal/scanner"
)

var toolVersionCmd = &cobra.Command{
	Use:   "tool-version [scanner]",
	Short: "Print the version of the wrapped scanner tool",
	Args:  cobra.ExactArgs(1),
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

		runner := scanner.NewRunner(&scanner.ExecRunner{}, log)
		v, err := runner.Version(cmd.Context(), adapter)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", adapter.Name(), v)
		return nil
	},
}
