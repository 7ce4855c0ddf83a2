package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/teammap/internal/cli/formatter"
	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/alexanderramin/teammap/internal/orgchart"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func parseDate(flag, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q (expected YYYY-MM-DD)", flag, value)
	}
	return &t, nil
}

// nodeFlags are the fields shared by "member add" and "hire add".
type nodeFlags struct {
	name, role, track, manager, vertical, notes, gender string
	level                                               int
	years                                               float64
	topLevel                                            bool
}

func (f *nodeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Display name")
	cmd.Flags().StringVar(&f.role, "role", "", "Role type id (see 'settings show')")
	cmd.Flags().IntVar(&f.level, "level", 1, "Level number")
	cmd.Flags().StringVar(&f.track, "track", "", "Career track (ic|manager), only for branched levels")
	cmd.Flags().Float64Var(&f.years, "years", 0, "Years of experience")
	cmd.Flags().StringVar(&f.manager, "manager", "", "Manager (id, id prefix or name)")
	cmd.Flags().BoolVar(&f.topLevel, "top-level", false, "Mark as top level (no manager)")
	cmd.Flags().StringVar(&f.vertical, "vertical", "", "Vertical (id, id prefix or name)")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Free-form notes")
	cmd.Flags().StringVar(&f.gender, "gender", "", "Gender (female|male|non_binary|undisclosed)")
	_ = cmd.MarkFlagRequired("name")
	cmd.MarkFlagsMutuallyExclusive("manager", "top-level")
}

func (f *nodeFlags) newNode(ctx context.Context, app *App) (orgchart.NewNode, error) {
	in := orgchart.NewNode{
		Name:              f.name,
		RoleType:          f.role,
		Level:             f.level,
		Track:             domain.Track(f.track),
		YearsOfExperience: f.years,
		Notes:             f.notes,
		Gender:            domain.Gender(f.gender),
	}
	switch {
	case f.topLevel:
		in.Manager = domain.TopLevel()
	case f.manager != "":
		id, err := resolveNodeID(ctx, app, f.manager)
		if err != nil {
			return in, err
		}
		in.Manager = domain.ReportsTo(id)
	}
	if f.vertical != "" {
		v, err := resolveVertical(ctx, app, f.vertical)
		if err != nil {
			return in, err
		}
		in.VerticalID = v.ID
	}
	return in, nil
}

func newMemberCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage team members",
	}

	var f nodeFlags
	var joined string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a team member",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			in, err := f.newNode(ctx, app)
			if err != nil {
				return err
			}
			if in.JoiningDate, err = parseDate("joined", joined); err != nil {
				return err
			}
			n, err := app.Nodes.AddTeamMember(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added team member %s (%s)\n", n.Name, n.ID)
			return nil
		},
	}
	f.register(add)
	add.Flags().StringVar(&joined, "joined", "", "Joining date (YYYY-MM-DD)")

	cmd.AddCommand(add)
	return cmd
}

func newHireCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hire",
		Short: "Manage planned hires",
	}

	var f nodeFlags
	var tentative string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a planned hire",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			in, err := f.newNode(ctx, app)
			if err != nil {
				return err
			}
			in.TentativeDate = tentative
			n, err := app.Nodes.AddPlannedHire(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added planned hire %s (%s)\n", n.Name, n.ID)
			return nil
		},
	}
	f.register(add)
	add.Flags().StringVar(&tentative, "tentative", "", "Tentative start, free text (e.g. Q3 2026)")

	cmd.AddCommand(add)
	return cmd
}

func newNodeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Inspect and edit members and planned hires",
	}

	cmd.AddCommand(
		newNodeListCmd(app),
		newNodeShowCmd(app),
		newNodeUpdateCmd(app),
		newNodeDeleteCmd(app),
		newNodeConvertCmd(app),
	)

	return cmd
}

func newNodeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all nodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			facts, err := app.Reporting.Facts(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatNodeList(facts))
			return nil
		},
	}
}

func newNodeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show REF",
		Short: "Show node details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveNodeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			facts, err := app.Reporting.Facts(ctx)
			if err != nil {
				return err
			}
			var found *orgchart.NodeFacts
			for i := range facts {
				if facts[i].Node.ID == id {
					found = &facts[i]
					break
				}
			}
			if found == nil {
				return fmt.Errorf("node %s: %w", id, orgchart.ErrNodeNotFound)
			}
			chain, err := app.Reporting.Chain(ctx, id)
			if err != nil {
				return err
			}

			var vertical *domain.Vertical
			if found.Node.VerticalID != "" {
				verticals, err := app.Verticals.List(ctx)
				if err != nil {
					return err
				}
				for _, v := range verticals {
					if v.ID == found.Node.VerticalID {
						vertical = v
					}
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNodeDetail(*found, chain, vertical))
			return nil
		},
	}
}

func newNodeUpdateCmd(app *App) *cobra.Command {
	var (
		name, role, track, joined, tentative, notes, gender, vertical string
		level                                                         int
		years                                                         float64
	)

	cmd := &cobra.Command{
		Use:   "update REF",
		Short: "Update node fields",
		Long:  "Update node fields. Only the flags given are changed. Use 'manager' commands to change reporting lines.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveNodeID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var patch domain.NodePatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("role") {
				patch.RoleType = &role
			}
			if flags.Changed("level") {
				patch.Level = &level
			}
			if flags.Changed("track") {
				t := domain.Track(track)
				patch.Track = &t
			}
			if flags.Changed("years") {
				patch.YearsOfExperience = &years
			}
			if flags.Changed("joined") {
				d, err := parseDate("joined", joined)
				if err != nil {
					return err
				}
				if d == nil {
					return fmt.Errorf("--joined cannot be empty")
				}
				patch.JoiningDate = d
			}
			if flags.Changed("tentative") {
				patch.TentativeDate = &tentative
			}
			if flags.Changed("notes") {
				patch.Notes = &notes
			}
			if flags.Changed("gender") {
				g := domain.Gender(gender)
				patch.Gender = &g
			}
			if flags.Changed("vertical") {
				vid := ""
				if vertical != "" {
					v, err := resolveVertical(ctx, app, vertical)
					if err != nil {
						return err
					}
					vid = v.ID
				}
				patch.VerticalID = &vid
			}

			n, err := app.Nodes.Update(ctx, id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", n.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&role, "role", "", "Role type id")
	cmd.Flags().IntVar(&level, "level", 1, "Level number")
	cmd.Flags().StringVar(&track, "track", "", "Career track (ic|manager)")
	cmd.Flags().Float64Var(&years, "years", 0, "Years of experience")
	cmd.Flags().StringVar(&joined, "joined", "", "Joining date (YYYY-MM-DD), members only")
	cmd.Flags().StringVar(&tentative, "tentative", "", "Tentative start, planned hires only")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().StringVar(&gender, "gender", "", "Gender (female|male|non_binary|undisclosed)")
	cmd.Flags().StringVar(&vertical, "vertical", "", "Vertical (empty to remove)")

	return cmd
}

func newNodeDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete REF",
		Short: "Delete a node; its direct reports become unassigned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			n, err := resolveNode(ctx, app, args[0])
			if err != nil {
				return err
			}
			cleared, err := app.Nodes.Delete(ctx, n.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Deleted %s\n", n.Name)
			if len(cleared) > 0 {
				fmt.Fprintf(out, "%s\n", formatter.Dim(fmt.Sprintf("%d direct report(s) are now unassigned", len(cleared))))
			}
			return nil
		},
	}
}

func newNodeConvertCmd(app *App) *cobra.Command {
	var joined string

	cmd := &cobra.Command{
		Use:   "convert REF",
		Short: "Convert a planned hire into a team member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveNodeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			date, err := parseDate("joined", joined)
			if err != nil {
				return err
			}
			n, err := app.Nodes.ConvertToHired(ctx, id, date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s joined on %s\n", n.Name, n.JoiningDate.Format(dateLayout))
			return nil
		},
	}
	cmd.Flags().StringVar(&joined, "joined", "", "Joining date (YYYY-MM-DD, default today)")
	return cmd
}
