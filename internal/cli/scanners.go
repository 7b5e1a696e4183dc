package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var scannersCmd = &cobra.Command{
	Use:   "scanners",
	Short: "List the registered scanner adapters",
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

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tCI MODE\tOFFLINE\tFORMATS")
		for _, name := range reg.Names() {
			a, _ := reg.Get(name)
			fmt.Fprintf(tw, "%s\t%t\t%t\t%s\n",
				a.Name(), a.CIMode(), a.RunsOffline(), strings.Join(a.Formats(), ","))
		}
		return tw.Flush()
	},
}
