package cli

import (
	"fmt"
	"strings"
	"time"

	"fuvar/internal/core"
	"fuvar/internal/ledger"

	"github.com/spf13/cobra"
)

func newWorkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "work",
		Short: "Record work hours",
	}
	cmd.AddCommand(newWorkLogCommand())
	return cmd
}

func newWorkLogCommand() *cobra.Command {
	var (
		date, start, end, workType string
	)
	cmd := needsRuntime(&cobra.Command{
		Use:   "log",
		Short: "Write one day's working times into the month ledger",
		Long: `Normal workdays fill Work-Start and Work-End, workshop days fill
Workshop-Start and Workshop-End. Both compute Hours-Worked. Vacation and
sick leave days take no times and write their label instead.`,
		Example: `  fuvar work log --date 2024-09-03 --start 07:00 --end 15:30
  fuvar work log --date 2024-09-04 --type vacation`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := parseWorkEntry(date, start, end, workType)
			if err != nil {
				return err
			}
			l, err := runtimeFrom(cmd).trips.LogWork(cmd.Context(), entry)
			if err != nil {
				return err
			}
			day := entry.Date.Format(core.DateLayout)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %s, hours %s\n",
				day,
				l.Cell(ledger.WorkHours, day, ledger.ColDay),
				entry.Type.Label(),
				l.Cell(ledger.WorkHours, day, ledger.ColHoursWorked))
			return nil
		},
	})
	cmd.Flags().StringVar(&date, "date", "", "Day to record (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&workType, "type", string(core.NormalDay), "Day type: "+strings.Join(workTypeNames(), ", "))
	return cmd
}

func parseWorkEntry(date, start, end, workType string) (core.WorkEntry, error) {
	d, err := parseDay(date)
	if err != nil {
		return core.WorkEntry{}, err
	}
	t, err := core.ParseWorkType(workType)
	if err != nil {
		return core.WorkEntry{}, err
	}
	entry := core.WorkEntry{Date: d, Type: t}
	if t.IsLeave() {
		return entry, nil
	}
	if entry.Start, err = core.ParseClock(start); err != nil {
		return core.WorkEntry{}, fmt.Errorf("start: %w", err)
	}
	if entry.End, err = core.ParseClock(end); err != nil {
		return core.WorkEntry{}, fmt.Errorf("end: %w", err)
	}
	return entry, nil
}

// parseDay parses a YYYY-MM-DD flag, defaulting to today.
func parseDay(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		s = time.Now().Format(core.DateLayout)
	}
	return core.ParseDate(s)
}

func workTypeNames() []string {
	types := core.WorkTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}
