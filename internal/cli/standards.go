package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newStandardsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "standards",
		Short: "List the accounting standards with a mapping table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := loadRegistry()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STANDARD\tLABEL\tACCOUNT CODES")
			for _, def := range registry.Standards() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", def.Standard, def.Label, def.Numbering.Pattern)
			}
			return w.Flush()
		},
	}
}
