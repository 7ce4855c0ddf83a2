package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/teammap/internal/cli/formatter"
	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/orgchart"
	"github.com/spf13/cobra"
)

func newChartCmd(app *App) *cobra.Command {
	var vertical string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print the reporting tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			facts, err := app.Reporting.Facts(ctx)
			if err != nil {
				return err
			}
			if vertical != "" {
				v, err := resolveVertical(ctx, app, vertical)
				if err != nil {
					return err
				}
				facts = inVertical(facts, v)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatChart(facts))
			return nil
		},
	}
	cmd.Flags().StringVar(&vertical, "vertical", "", "Only show members of this vertical")
	return cmd
}

func inVertical(facts []orgchart.NodeFacts, v *domain.Vertical) []orgchart.NodeFacts {
	out := facts[:0:0]
	for _, f := range facts {
		if f.Node.VerticalID == v.ID {
			out = append(out, f)
		}
	}
	return out
}

func newLayoutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Arrange and inspect canvas positions",
	}

	cmd.AddCommand(
		newLayoutArrangeCmd(app),
		newLayoutShowCmd(app),
		newLayoutSetCmd(app),
	)

	return cmd
}

func newLayoutArrangeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "arrange",
		Short: "Recompute every position from the reporting tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			positions, err := app.Layout.AutoArrange(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Arranged %d node(s)\n", len(positions))
			return nil
		},
	}
}

func newLayoutShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List positions, placing any node that has none",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			positions, err := app.Layout.Positions(ctx)
			if err != nil {
				return err
			}
			nodes, err := app.Nodes.List(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPositions(nodes, positions))
			return nil
		},
	}
}

func newLayoutSetCmd(app *App) *cobra.Command {
	var x, y float64

	cmd := &cobra.Command{
		Use:   "set NODE",
		Short: "Pin a node to a canvas position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			node, err := resolveNode(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Layout.SetPosition(ctx, node.ID, domain.Position{X: x, Y: y}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to (%g, %g)\n", node.Name, x, y)
			return nil
		},
	}
	cmd.Flags().Float64Var(&x, "x", 0, "X coordinate")
	cmd.Flags().Float64Var(&y, "y", 0, "Y coordinate")
	cmd.MarkFlagsRequiredTogether("x", "y")
	_ = cmd.MarkFlagRequired("x")
	return cmd
}
