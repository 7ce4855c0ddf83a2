package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/teammap/internal/cli/formatter"
	"github.com/alexanderramin/teammap/internal/quickstart"
	"github.com/spf13/cobra"
)

func newQuickstartCmd(app *App) *cobra.Command {
	var (
		preset, size, structure string
		roles                   []string
		yes                     bool
	)

	cmd := &cobra.Command{
		Use:   "quickstart",
		Short: "Replace the chart with a generated starter team",
		Long: `Generate a starter chart from a team preset.

The preset's level ladder and role types replace the current ones. All
nodes, verticals and positions are replaced and the result is
auto-arranged. Run 'quickstart presets' to list presets.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := quickstart.Request{Preset: preset, RoleTypes: roles}
			var err error
			if req.Size, err = quickstart.ParseSize(size); err != nil {
				return err
			}
			if req.Structure, err = quickstart.ParseStructure(structure); err != nil {
				return err
			}

			ctx := context.Background()
			existing, err := app.Nodes.List(ctx)
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				ok, err := confirm(app, yes, "Replace the chart?", fmt.Sprintf("The current %d node(s) are replaced by a generated starter team.", len(existing)))
				if err != nil || !ok {
					return err
				}
			}

			res, err := app.Quickstart.Apply(ctx, req)
			if err != nil {
				return err
			}
			facts, err := app.Reporting.Facts(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created a %s %s team with %d node(s)\n\n", size, res.Preset.Name, len(res.Nodes))
			fmt.Fprint(out, formatter.FormatChart(facts))
			return nil
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "design", "Team preset id")
	cmd.Flags().StringVar(&size, "size", string(quickstart.SizeSmall), "Team size (tiny|small|medium|large)")
	cmd.Flags().StringVar(&structure, "structure", string(quickstart.StructureHierarchical), "Structure (flat|hierarchical|pods)")
	cmd.Flags().StringSliceVar(&roles, "roles", nil, "Role type ids to keep (default all of the preset's)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	cmd.AddCommand(newQuickstartPresetsCmd(app))
	return cmd
}

func newQuickstartPresetsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List team presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := app.Quickstart.Presets(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPresets(presets))
			return nil
		},
	}
}
