package plan

import (
	"fmt"
	"net/url"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"

	"github.com/crucial707/dayplan/cmd/cli/client"
	"github.com/crucial707/dayplan/cmd/cli/output"
	"github.com/crucial707/dayplan/cmd/cli/root"
	"github.com/crucial707/dayplan/internal/models"
	"github.com/crucial707/dayplan/internal/planner"
)

// ==========================
// Init Plan
// ==========================
func InitPlan(rootCmd *cobra.Command) {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Planning views: remaining slack and day overview",
	}

	planCmd.AddCommand(slackCmd(), dayCmd())
	rootCmd.AddCommand(planCmd)
}

// dateQuery validates v and returns "?name=v", or "" when v is empty.
func dateQuery(name, v string) (string, error) {
	if v == "" {
		return "", nil
	}
	if _, err := civil.ParseDate(v); err != nil {
		return "", fmt.Errorf("--%s: %w", name, err)
	}
	return "?" + url.Values{name: {v}}.Encode(), nil
}

// ==========================
// SLACK
// ==========================
func slackCmd() *cobra.Command {
	var today string

	cmd := &cobra.Command{
		Use:   "slack",
		Short: "Show remaining slack hours of every task",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := dateQuery("today", today)
			if err != nil {
				return err
			}
			c, err := client.Authed()
			if err != nil {
				return err
			}
			var list []planner.TaskSlack
			if err := c.Get("/plan/slack"+q, &list); err != nil {
				return err
			}
			if root.JSON {
				return output.PrintJSON(cmd.OutOrStdout(), list)
			}
			rows := make([][]interface{}, 0, len(list))
			over := make([]bool, 0, len(list))
			for _, s := range list {
				rows = append(rows, []interface{}{
					s.Task.ID, s.Task.Name, s.Task.Deadline, s.DaysLeft,
					output.Hours(s.SlackHours), output.Hours(s.SlackPerDay),
				})
				over = append(over, s.OverBudget)
			}
			output.RenderSlack(cmd.OutOrStdout(), rows, over)
			return nil
		},
	}

	cmd.Flags().StringVar(&today, "today", "", "Reference date (default: server today)")
	return cmd
}

// ==========================
// DAY
// ==========================
type dayPlan struct {
	Date          civil.Date        `json:"date"`
	Schedules     []models.Schedule `json:"schedules"`
	Tasks         []models.Task     `json:"tasks"`
	Notes         []models.Note     `json:"notes"`
	OccupiedHours float64           `json:"occupied_hours"`
	Available     float64           `json:"available_hours"`
}

func dayCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show schedules, deadlines and notes of a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := dateQuery("date", date)
			if err != nil {
				return err
			}
			c, err := client.Authed()
			if err != nil {
				return err
			}
			var day dayPlan
			if err := c.Get("/plan/day"+q, &day); err != nil {
				return err
			}
			if root.JSON {
				return output.PrintJSON(cmd.OutOrStdout(), day)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s  %sh of %sh booked\n", day.Date, output.Hours(day.OccupiedHours), output.Hours(day.Available))
			rows := make([][]interface{}, 0, len(day.Schedules)+len(day.Tasks)+len(day.Notes))
			for _, s := range day.Schedules {
				rows = append(rows, []interface{}{"schedule", s.ID, s.Name,
					s.StartTime.Format("15:04") + "-" + s.EndTime.Format("15:04"), s.Location})
			}
			for _, t := range day.Tasks {
				rows = append(rows, []interface{}{"deadline", t.ID, t.Name, output.Hours(t.EstimatedHours) + "h", t.Memo})
			}
			for _, n := range day.Notes {
				rows = append(rows, []interface{}{"note", n.ID, n.Name, "", ""})
			}
			output.RenderTable(w, []string{"Kind", "ID", "Name", "When", "Info"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to show (default: server today)")
	return cmd
}
