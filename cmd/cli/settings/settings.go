package settings

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"

	"github.com/crucial707/dayplan/cmd/cli/client"
	"github.com/crucial707/dayplan/cmd/cli/output"
	"github.com/crucial707/dayplan/cmd/cli/root"
	"github.com/crucial707/dayplan/internal/models"
)

// ==========================
// Init Settings
// ==========================
func InitSettings(rootCmd *cobra.Command) {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change planning settings",
	}

	settingsCmd.AddCommand(showCmd(), setCmd())
	rootCmd.AddCommand(settingsCmd)
}

func render(cmd *cobra.Command, s models.Settings) error {
	if root.JSON {
		return output.PrintJSON(cmd.OutOrStdout(), s)
	}
	output.RenderTable(cmd.OutOrStdout(), []string{"Setting", "Value"}, [][]interface{}{
		{"available hours / day", output.Hours(s.AvailableHoursPerDay)},
		{"unscheduled hours / day", output.Hours(s.UnscheduledHoursPerDay)},
		{"horizon", s.HorizonDate},
	})
	return nil
}

// ==========================
// SHOW
// ==========================
func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authed()
			if err != nil {
				return err
			}
			var s models.Settings
			if err := c.Get("/settings", &s); err != nil {
				return err
			}
			return render(cmd, s)
		},
	}
}

// ==========================
// SET
// ==========================
func setCmd() *cobra.Command {
	var (
		available, unscheduled float64
		horizon                string
	)

	cmd := &cobra.Command{
		Use:     "set",
		Short:   "Change settings; omitted flags keep their current value",
		Example: "  dayplan settings set --available 6 --horizon 2024-06-30",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authed()
			if err != nil {
				return err
			}
			var s models.Settings
			if err := c.Get("/settings", &s); err != nil {
				return err
			}
			if cmd.Flags().Changed("available") {
				s.AvailableHoursPerDay = available
			}
			if cmd.Flags().Changed("unscheduled") {
				s.UnscheduledHoursPerDay = unscheduled
			}
			if cmd.Flags().Changed("horizon") {
				d, err := civil.ParseDate(horizon)
				if err != nil {
					return fmt.Errorf("--horizon: %w", err)
				}
				s.HorizonDate = d
			}

			var saved models.Settings
			payload := map[string]interface{}{
				"available_hours_per_day":   s.AvailableHoursPerDay,
				"unscheduled_hours_per_day": s.UnscheduledHoursPerDay,
				"horizon_date":              s.HorizonDate,
			}
			if err := c.Put("/settings", payload, &saved); err != nil {
				return err
			}
			return render(cmd, saved)
		},
	}

	cmd.Flags().Float64Var(&available, "available", 0, "Hours available for planning per day")
	cmd.Flags().Float64Var(&unscheduled, "unscheduled", 0, "Hours per day assumed free beyond the horizon")
	cmd.Flags().StringVar(&horizon, "horizon", "", "Last date schedules are known for (YYYY-MM-DD)")
	return cmd
}
