package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"fuvar/internal/core"
	"fuvar/internal/ledger"
	applog "fuvar/internal/log"

	"github.com/spf13/cobra"
)

var (
	errInvalidArgument = errors.New("invalid argument")
	errInvalidMonth    = errors.New("invalid month")
)

type rtKey struct{}

// app owns the runtime opened for the executing command.
type app struct {
	rt *runtime
}

func (a *app) close() error {
	if a.rt == nil {
		return nil
	}
	err := a.rt.Close()
	a.rt = nil
	return err
}

// newRootCommand builds the fuvar command tree.
func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "fuvar",
		Short: "Log work hours and delivery trips into a monthly ledger",
		Long: `fuvar records daily work hours and delivery trips. Trips are folded into a
monthly ledger by distance zone and stored as an Excel workbook per month,
while every saved action is also appended to a JSON journal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations["runtime"] != "true" {
				return nil
			}
			rt, err := openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			a.rt = rt
			ctx := context.WithValue(cmd.Context(), rtKey{}, rt)
			cmd.SetContext(applog.NewContext(ctx, rt.logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.AddCommand(
		newRefCommand(),
		newZonesCommand(),
		newWorkCommand(),
		newDeliveryCommand(),
		newLedgerCommand(),
		newJournalCommand(),
	)
	return root
}

// needsRuntime marks a command as requiring configuration and the backends.
func needsRuntime(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations["runtime"] = "true"
	return cmd
}

func runtimeFrom(cmd *cobra.Command) *runtime {
	rt, _ := cmd.Context().Value(rtKey{}).(*runtime)
	return rt
}

// Execute runs the command tree with args and returns the process exit status.
//
// Ledger misses are reported as a notice. Every other error is printed as a
// single line on stderr with status 1.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{}
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ledger.ErrDateNotFound):
		fmt.Fprintf(stderr, "notice: %v\n", err)
		return 0
	case isInputError(err):
		fmt.Fprintf(stderr, "invalid input: %v\n", err)
		return 1
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
}

func isInputError(err error) bool {
	for _, target := range []error{
		core.ErrInvalidVolume,
		core.ErrUnknownZone,
		core.ErrUnknownFactory,
		core.ErrEmptyField,
		core.ErrInvalidKind,
		core.ErrInvalidWorkType,
		core.ErrInvalidDate,
		core.ErrInvalidTime,
		errInvalidArgument,
		errInvalidMonth,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
