package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/teammap/internal/cli/formatter"
	"github.com/alexanderramin/teammap/internal/domain"
	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "View and change the level ladder and chart settings",
	}

	cmd.AddCommand(
		newSettingsShowCmd(app),
		newSettingsSetCmd(app),
		newSettingsResetCmd(app),
	)

	return cmd
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Settings.Get(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSettings(s))
			return nil
		},
	}
}

func newSettingsSetCmd(app *App) *cobra.Command {
	var (
		span, split int
		company     string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change scalar settings",
		Long:  "Change scalar settings. Level ladders and role types are replaced through 'import' or 'quickstart'.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.SettingsPatch
			flags := cmd.Flags()
			if flags.Changed("span") {
				patch.SpanOfControlThreshold = &span
			}
			if flags.Changed("split") {
				patch.TrackSplitLevel = &split
			}
			if flags.Changed("company") {
				patch.CompanyName = &company
			}
			if patch.SpanOfControlThreshold == nil && patch.TrackSplitLevel == nil && patch.CompanyName == nil {
				return fmt.Errorf("nothing to change: pass --span, --split or --company")
			}

			s, err := app.Settings.Update(context.Background(), patch)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSettings(s))
			return nil
		},
	}
	cmd.Flags().IntVar(&span, "span", domain.DefaultSpanOfControlThreshold, "Direct reports above which a manager is over capacity")
	cmd.Flags().IntVar(&split, "split", domain.DefaultTrackSplitLevel, "First level with separate ic and manager tracks")
	cmd.Flags().StringVar(&company, "company", "", "Company name")
	return cmd
}

func newSettingsResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default ladder, role types and thresholds",
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirm(app, yes, "Reset settings?", "Levels, role types and thresholds go back to the defaults.")
			if err != nil || !ok {
				return err
			}
			s, err := app.Settings.Reset(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSettings(s))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}
