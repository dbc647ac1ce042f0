package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"fuvar/internal/core"
	"fuvar/internal/ledger"

	"github.com/spf13/cobra"
)

const monthLayout = "2006-01"

func newLedgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Show, export or import the monthly ledger",
	}
	cmd.AddCommand(newLedgerShowCommand(), newLedgerExportCommand(), newLedgerImportCommand())
	return cmd
}

func newLedgerShowCommand() *cobra.Command {
	var month string
	cmd := needsRuntime(&cobra.Command{
		Use:   "show",
		Short: "Print both ledger tables of a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, m, err := parseMonth(month)
			if err != nil {
				return err
			}
			l, err := runtimeFrom(cmd).trips.OpenMonth(cmd.Context(), year, m)
			if err != nil {
				return err
			}
			return printLedger(cmd.OutOrStdout(), l)
		},
	})
	cmd.Flags().StringVar(&month, "month", "", "Month to show (YYYY-MM, default current)")
	return cmd
}

func newLedgerExportCommand() *cobra.Command {
	var month string
	cmd := needsRuntime(&cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Write the month ledger to a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, m, err := parseMonth(month)
			if err != nil {
				return err
			}
			if err := runtimeFrom(cmd).trips.Export(cmd.Context(), year, m, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %04d-%02d to %s\n", year, int(m), args[0])
			return nil
		},
	})
	cmd.Flags().StringVar(&month, "month", "", "Month to export (YYYY-MM, default current)")
	return cmd
}

func newLedgerImportCommand() *cobra.Command {
	var month string
	cmd := needsRuntime(&cobra.Command{
		Use:   "import <file.xlsx|file.xls>",
		Short: "Merge a workbook into the month ledger",
		Long: `Rows are matched by their date. Non-empty cells of matched rows overwrite
the ledger cell at the same position. Rows with a date outside the month are
skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, m, err := parseMonth(month)
			if err != nil {
				return err
			}
			stats, err := runtimeFrom(cmd).trips.Import(cmd.Context(), year, m, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d rows (%d cells), skipped %d rows outside %04d-%02d\n",
				stats.Rows, stats.Cells, stats.Skipped, year, int(m))
			return nil
		},
	})
	cmd.Flags().StringVar(&month, "month", "", "Month to import into (YYYY-MM, default current)")
	return cmd
}

// parseMonth parses a YYYY-MM flag, defaulting to the current month.
func parseMonth(s string) (int, time.Month, error) {
	if strings.TrimSpace(s) == "" {
		now := time.Now()
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse(monthLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q, want YYYY-MM", errInvalidMonth, s)
	}
	return t.Year(), t.Month(), nil
}

func printLedger(w io.Writer, l *ledger.Ledger) error {
	fmt.Fprintf(w, "%s %d\n\n", l.Month(), l.Year())
	for _, table := range []ledger.Table{ledger.WorkHours, ledger.Deliveries} {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(table.Headers(), "\t"))
		for _, row := range l.Rows(table) {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Month m3 total: %s\n", core.FormatVolume(l.DeliveryTotal()))
	return nil
}
