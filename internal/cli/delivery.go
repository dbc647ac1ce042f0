package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"fuvar/internal/core"
	applog "fuvar/internal/log"

	"github.com/spf13/cobra"
)

func newDeliveryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delivery",
		Aliases: []string{"trip"},
		Short:   "Record delivery trips",
	}
	cmd.AddCommand(newDeliveryLogCommand())
	return cmd
}

func newDeliveryLogCommand() *cobra.Command {
	var (
		date, zone, factory, address, number string
		volumes                              []string
	)
	cmd := needsRuntime(&cobra.Command{
		Use:   "log",
		Short: "Add a trip's m3 total to its zone column",
		Long: `The m3 values of the trip are summed and added to the ledger cell of the
trip's day and zone. Values come from --m3 flags, or one per line from stdin
when no flag is given (an empty line ends the list). Both "." and "," are
accepted as decimal separator.`,
		Example: `  fuvar delivery log --date 2024-09-03 --zone "Zone 10-15" --factory BMW --m3 6,0 --m3 3.5
  fuvar delivery log --zone 10 --factory CATL`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDay(date)
			if err != nil {
				return err
			}
			entry := core.DeliveryEntry{
				Date:           d,
				Zone:           zoneLabel(zone),
				Factory:        strings.TrimSpace(factory),
				Address:        strings.TrimSpace(address),
				DeliveryNumber: strings.TrimSpace(number),
			}
			if err := entry.Validate(); err != nil {
				return err
			}
			if core.ResolveColumn(entry.Zone) == core.NoColumn {
				return fmt.Errorf("%w: %q (see fuvar zones)", core.ErrUnknownZone, entry.Zone)
			}

			session := core.NewVolumeSession()
			if len(volumes) > 0 {
				for _, v := range volumes {
					if _, err := session.Append(v); err != nil {
						return err
					}
				}
			} else if err := readVolumes(cmd.InOrStdin(), cmd.OutOrStdout(), session); err != nil {
				return err
			}
			applog.FromContext(cmd.Context()).DebugContext(cmd.Context(), "Collected m3 values",
				applog.FieldEntries, session.Len(),
				applog.FieldVolume, core.FormatVolume(session.Total()))

			res, err := runtimeFrom(cmd).trips.LogDelivery(cmd.Context(), entry, session)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (column %d): +%s m3, cell %s, day total %s\n",
				res.Date, res.Zone, res.Column, res.Added, res.Cell, res.Total)
			return nil
		},
	})
	cmd.Flags().StringVar(&date, "date", "", "Trip day (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&zone, "zone", "", `Zone label such as "Zone 10-15", or its lower bound in km`)
	cmd.Flags().StringVar(&factory, "factory", "", "Factory name, must be in the factories list")
	cmd.Flags().StringVar(&address, "address", "", "Delivery address")
	cmd.Flags().StringVar(&number, "number", "", "Delivery number")
	cmd.Flags().StringArrayVar(&volumes, "m3", nil, "m3 value, repeatable")
	_ = cmd.MarkFlagRequired("zone")
	_ = cmd.MarkFlagRequired("factory")
	return cmd
}

// readVolumes appends one value per input line until an empty line or EOF,
// echoing the running summary. Malformed lines print a warning and are skipped.
func readVolumes(in io.Reader, out io.Writer, session *core.VolumeSession) error {
	fmt.Fprintln(out, "m3 values, one per line, empty line to finish:")
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "m3> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			break
		}
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		summary, err := session.Append(line)
		if err != nil {
			fmt.Fprintf(out, "warning: %v\n", err)
			continue
		}
		fmt.Fprintln(out, summary)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read m3 values: %w", err)
	}
	return nil
}
