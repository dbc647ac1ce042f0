package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"fuvar/internal/core"

	"github.com/spf13/cobra"
)

func newZonesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "List the distance zones and their ledger columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ZONE\tCOLUMN")
			for _, b := range core.ZoneBands() {
				fmt.Fprintf(tw, "%s\t%d\n", b.Label(), b.Column())
			}
			return tw.Flush()
		},
	}
}

// zoneLabel accepts a full band label or the band's lower bound in km.
func zoneLabel(s string) string {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return core.ZoneBand{LowerKm: n}.Label()
	}
	return s
}
