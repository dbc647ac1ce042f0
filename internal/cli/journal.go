package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newJournalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Print the journaled work entries or delivery trips",
	}
	cmd.AddCommand(
		needsRuntime(&cobra.Command{
			Use:   "work",
			Short: "Print the work hours journal",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				records, err := runtimeFrom(cmd).trips.WorkJournal()
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "RECORDED\tDATE\tSTART\tEND\tTYPE")
				for _, r := range records {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
						r.RecordedAt.Local().Format("2006-01-02 15:04"), r.Date, r.StartTime, r.EndTime, r.Type)
				}
				return tw.Flush()
			},
		}),
		needsRuntime(&cobra.Command{
			Use:     "delivery",
			Aliases: []string{"deliveries", "trips"},
			Short:   "Print the delivery journal",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				records, err := runtimeFrom(cmd).trips.DeliveryJournal()
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "RECORDED\tDATE\tZONE\tFACTORY\tADDRESS\tNUMBER\tM3")
				for _, r := range records {
					m3 := make([]string, len(r.M3Values))
					for i, v := range r.M3Values {
						m3[i] = fmt.Sprintf("%.1f", v)
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
						r.RecordedAt.Local().Format("2006-01-02 15:04"), r.Date, r.KmRange, r.Factory,
						r.Address, r.DeliveryNumber, strings.Join(m3, " + "))
				}
				return tw.Flush()
			},
		}),
	)
	return cmd
}
