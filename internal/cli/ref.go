package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"fuvar/internal/core"
	applog "fuvar/internal/log"

	"github.com/spf13/cobra"
)

func newRefCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ref",
		Short: "Manage factories, addresses and zones",
		Long: `Reference data lives in three independent lists: factories, addresses and
zones. Records are added with a label and a positive price and removed by id.

The memory backend is seed-only: it loads the seed files on every run and
forgets added or removed records when the command exits.`,
	}
	cmd.AddCommand(newRefAddCommand(), newRefRemoveCommand(), newRefListCommand())
	return cmd
}

func newRefAddCommand() *cobra.Command {
	return needsRuntime(&cobra.Command{
		Use:     "add <kind> <label> <price>",
		Short:   "Add a reference record",
		Example: `  fuvar ref add factories "CATL" 5000`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := core.ParseReferenceKind(args[0])
			if err != nil {
				return err
			}
			price, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				// Non-numeric prices are ignored like non-positive ones.
				price = 0
			}

			rt := runtimeFrom(cmd)
			id, added, err := rt.backend.Store.Add(cmd.Context(), kind, args[1], price)
			if err != nil {
				return fmt.Errorf("add %s: %w", kind, err)
			}
			if !added {
				fmt.Fprintf(cmd.OutOrStdout(), "ignored: %s needs a non-empty label and a positive price\n", kind)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s #%d\n", kind, id)
			warnNotPersisted(cmd, rt, kind)
			return nil
		},
	})
}

func newRefRemoveCommand() *cobra.Command {
	return needsRuntime(&cobra.Command{
		Use:     "rm <kind> <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a reference record by id",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := core.ParseReferenceKind(args[0])
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("%w: id %q is not a number", errInvalidArgument, args[1])
			}

			rt := runtimeFrom(cmd)
			removed, err := rt.backend.Store.Remove(cmd.Context(), kind, id)
			if err != nil {
				return fmt.Errorf("remove %s: %w", kind, err)
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "no %s with id %d\n", kind, id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s #%d\n", kind, id)
			warnNotPersisted(cmd, rt, kind)
			return nil
		},
	})
}

func newRefListCommand() *cobra.Command {
	return needsRuntime(&cobra.Command{
		Use:     "list <kind>",
		Aliases: []string{"ls"},
		Short:   "List reference records in id order",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := core.ParseReferenceKind(args[0])
			if err != nil {
				return err
			}
			records, err := runtimeFrom(cmd).backend.Store.List(cmd.Context(), kind)
			if err != nil {
				return fmt.Errorf("list %s: %w", kind, err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLABEL\tPRICE")
			for _, r := range records {
				fmt.Fprintf(tw, "%d\t%s\t%d\n", r.ID, r.Label, r.Price)
			}
			return tw.Flush()
		},
	})
}

func warnNotPersisted(cmd *cobra.Command, rt *runtime, kind core.ReferenceKind) {
	if rt.backend.Persistent {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "warning: the %s backend does not persist %s changes\n", rt.cfg.DataBackend, kind)
	rt.logger.WithComponent(applog.ComponentReference).WarnContext(cmd.Context(), "Reference change not persisted",
		applog.FieldKind, kind, "backend", rt.cfg.DataBackend)
}
