package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/teammap/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newManagerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manager",
		Short: "Change and inspect reporting lines",
	}

	cmd.AddCommand(
		newManagerSetCmd(app),
		newManagerTopCmd(app),
		newManagerRemoveCmd(app),
		newManagerChainCmd(app),
		newManagerReportsCmd(app),
	)

	return cmd
}

func newManagerSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set NODE MANAGER",
		Short: "Make NODE report to MANAGER",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			node, err := resolveNode(ctx, app, args[0])
			if err != nil {
				return err
			}
			mgr, err := resolveNode(ctx, app, args[1])
			if err != nil {
				return err
			}

			applied, err := app.Reporting.SetManager(ctx, node.ID, mgr.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !applied {
				fmt.Fprintf(out, "%s %s already sits above %s in the chain; nothing changed\n",
					formatter.StyleYellow.Render("!"), mgr.Name, node.Name)
				return nil
			}
			fmt.Fprintf(out, "%s now reports to %s\n", node.Name, mgr.Name)
			return nil
		},
	}
}

func newManagerTopCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "top NODE",
		Short: "Mark NODE as top level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			node, err := resolveNode(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Reporting.SetTopLevel(ctx, node.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now top level\n", node.Name)
			return nil
		},
	}
}

func newManagerRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NODE",
		Short: "Clear NODE's manager, leaving it unassigned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			node, err := resolveNode(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Reporting.RemoveManager(ctx, node.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now unassigned\n", node.Name)
			return nil
		},
	}
}

func newManagerChainCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chain NODE",
		Short: "Show the chain of command above NODE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveNodeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			chain, err := app.Reporting.Chain(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatNodeRefs(chain))
			return nil
		},
	}
}

func newManagerReportsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reports NODE",
		Short: "List NODE's direct reports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveNodeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			reports, err := app.Reporting.DirectReports(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatNodeRefs(reports))
			return nil
		},
	}
}
