package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/teammap/internal/cli/formatter"
	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/orgchart"
	"github.com/spf13/cobra"
)

const defaultVerticalColor = "#83a598"

func newVerticalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vertical",
		Short: "Manage verticals (named groupings on the canvas)",
	}

	cmd.AddCommand(
		newVerticalAddCmd(app),
		newVerticalListCmd(app),
		newVerticalUpdateCmd(app),
		newVerticalDeleteCmd(app),
		newVerticalAssignCmd(app),
	)

	return cmd
}

func newVerticalAddCmd(app *App) *cobra.Command {
	var (
		color string
		x, y  float64
	)

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a vertical",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := app.Verticals.Add(context.Background(), args[0], color, domain.Position{X: x, Y: y})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added vertical %s %s (%s)\n", formatter.Swatch(v.Color), v.Name, v.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&color, "color", defaultVerticalColor, "Band color (#rrggbb)")
	cmd.Flags().Float64Var(&x, "x", 0, "Band X coordinate")
	cmd.Flags().Float64Var(&y, "y", 0, "Band Y coordinate")
	return cmd
}

func newVerticalListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List verticals with member counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			vs, err := app.Verticals.List(ctx)
			if err != nil {
				return err
			}
			nodes, err := app.Nodes.List(ctx)
			if err != nil {
				return err
			}
			members := make(map[string]int)
			for _, n := range nodes {
				if n.VerticalID != "" {
					members[n.VerticalID]++
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatVerticals(vs, members))
			return nil
		},
	}
}

func newVerticalUpdateCmd(app *App) *cobra.Command {
	var (
		name, color string
		x, y        float64
	)

	cmd := &cobra.Command{
		Use:   "update VERTICAL",
		Short: "Rename, recolor or move a vertical",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			v, err := resolveVertical(ctx, app, args[0])
			if err != nil {
				return err
			}

			var patch orgchart.VerticalPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("color") {
				patch.Color = &color
			}
			if flags.Changed("x") || flags.Changed("y") {
				pos := v.Position
				if flags.Changed("x") {
					pos.X = x
				}
				if flags.Changed("y") {
					pos.Y = y
				}
				patch.Position = &pos
			}

			updated, err := app.Verticals.Update(ctx, v.ID, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated vertical %s %s\n", formatter.Swatch(updated.Color), updated.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&color, "color", "", "New color (#rrggbb)")
	cmd.Flags().Float64Var(&x, "x", 0, "Band X coordinate")
	cmd.Flags().Float64Var(&y, "y", 0, "Band Y coordinate")
	return cmd
}

func newVerticalDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete VERTICAL",
		Short: "Delete a vertical; its members keep their place in the chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			v, err := resolveVertical(ctx, app, args[0])
			if err != nil {
				return err
			}
			ok, err := confirm(app, yes, fmt.Sprintf("Delete vertical %q?", v.Name), "Members are removed from the vertical.")
			if err != nil || !ok {
				return err
			}
			cleared, err := app.Verticals.Delete(ctx, v.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted vertical %s (%d member(s) cleared)\n", v.Name, len(cleared))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newVerticalAssignCmd(app *App) *cobra.Command {
	var unassign bool

	cmd := &cobra.Command{
		Use:   "assign NODE [VERTICAL]",
		Short: "Put a node into a vertical, or take it out with --clear",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			node, err := resolveNode(ctx, app, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if unassign {
				if len(args) == 2 {
					return fmt.Errorf("--clear takes no VERTICAL argument")
				}
				if _, err := app.Verticals.Assign(ctx, node.ID, ""); err != nil {
					return err
				}
				fmt.Fprintf(out, "%s is no longer in a vertical\n", node.Name)
				return nil
			}
			if len(args) < 2 {
				return fmt.Errorf("VERTICAL is required (or pass --clear)")
			}

			v, err := resolveVertical(ctx, app, args[1])
			if err != nil {
				return err
			}
			if _, err := app.Verticals.Assign(ctx, node.ID, v.ID); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s is now in %s\n", node.Name, v.Name)
			return nil
		},
	}
	cmd.Flags().BoolVar(&unassign, "clear", false, "Remove the node from its vertical")
	return cmd
}
