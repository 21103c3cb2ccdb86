package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/dblmodel/internal/document"
)

func newTheoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "theories",
		Short: "List the theories model files can name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := document.Theories()
			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tKIND\tOBJECT TYPES\tMORPHISM TYPES")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Name, e.Kind,
					strings.Join(e.ObTypes, ","), strings.Join(e.MorTypes, ","))
			}
			return tw.Flush()
		},
	}
}
