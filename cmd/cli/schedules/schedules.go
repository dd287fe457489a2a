package schedules

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"

	"github.com/crucial707/dayplan/cmd/cli/client"
	"github.com/crucial707/dayplan/cmd/cli/output"
	"github.com/crucial707/dayplan/cmd/cli/root"
	"github.com/crucial707/dayplan/internal/models"
)

// ==========================
// Init Schedules
// ==========================
func InitSchedules(rootCmd *cobra.Command) {
	schedulesCmd := &cobra.Command{
		Use:     "schedules",
		Aliases: []string{"schedule", "sch"},
		Short:   "Manage calendar schedules",
	}

	schedulesCmd.AddCommand(
		listSchedulesCmd(),
		createScheduleCmd(),
		deleteScheduleCmd(),
		splitScheduleCmd(),
	)

	rootCmd.AddCommand(schedulesCmd)
}

// clockLayouts are accepted by --start/--end, read in the local zone unless RFC 3339.
var clockLayouts = []string{"2006-01-02T15:04", "2006-01-02 15:04"}

func parseClock(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	for _, layout := range clockLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q: want YYYY-MM-DDTHH:MM", v)
}

func formatDates(ds []civil.Date) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = d.String()
	}
	return strings.Join(parts, ",")
}

func scheduleRows(list []models.Schedule) [][]interface{} {
	rows := make([][]interface{}, 0, len(list))
	for _, s := range list {
		until := "-"
		if s.RepeatEndDate != nil {
			until = s.RepeatEndDate.String()
		}
		rows = append(rows, []interface{}{
			s.ID, s.Name,
			s.StartTime.Format("2006-01-02 15:04"), s.EndTime.Format("2006-01-02 15:04"),
			s.Repeat, s.RepeatStartDate, until, formatDates(s.BlackoutDates),
		})
	}
	return rows
}

var scheduleHeaders = []string{"ID", "Name", "Start", "End", "Repeat", "From", "Until", "Blackout"}

// ==========================
// LIST
// ==========================
func listSchedulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authed()
			if err != nil {
				return err
			}
			var list []models.Schedule
			if err := c.Get("/schedules", &list); err != nil {
				return err
			}
			if root.JSON {
				return output.PrintJSON(cmd.OutOrStdout(), list)
			}
			output.RenderTable(cmd.OutOrStdout(), scheduleHeaders, scheduleRows(list))
			return nil
		},
	}
}

// ==========================
// CREATE
// ==========================
func createScheduleCmd() *cobra.Command {
	var (
		name, start, end, repeat string
		from, until              string
		location, memo           string
		blackout                 []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a schedule",
		Example: `  dayplan schedules create --name standup --start 2024-01-01T09:00 --end 2024-01-01T09:30 --repeat weekly
  dayplan schedules create --name trip --start 2024-05-03T08:00 --end 2024-05-05T20:00`,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{
				"name":     name,
				"repeat":   repeat,
				"location": location,
				"memo":     memo,
			}
			st, err := parseClock(start)
			if err != nil {
				return err
			}
			en, err := parseClock(end)
			if err != nil {
				return err
			}
			payload["start_time"], payload["end_time"] = st, en
			if from != "" {
				d, err := civil.ParseDate(from)
				if err != nil {
					return fmt.Errorf("--from: %w", err)
				}
				payload["repeat_start_date"] = d
			}
			if until != "" {
				d, err := civil.ParseDate(until)
				if err != nil {
					return fmt.Errorf("--until: %w", err)
				}
				payload["repeat_end_date"] = d
			}
			dates := make([]civil.Date, 0, len(blackout))
			for _, v := range blackout {
				d, err := civil.ParseDate(v)
				if err != nil {
					return fmt.Errorf("--blackout: %w", err)
				}
				dates = append(dates, d)
			}
			payload["blackout_dates"] = dates

			c, err := client.Authed()
			if err != nil {
				return err
			}
			var created models.Schedule
			if err := c.Post("/schedules", payload, &created); err != nil {
				return err
			}
			if root.JSON {
				return output.PrintJSON(cmd.OutOrStdout(), created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created schedule %d (%s)\n", created.ID, created.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Schedule name")
	cmd.Flags().StringVar(&start, "start", "", "Template start (YYYY-MM-DDTHH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "Template end (YYYY-MM-DDTHH:MM)")
	cmd.Flags().StringVar(&repeat, "repeat", "none", "none, daily, weekly, monthly or yearly")
	cmd.Flags().StringVar(&from, "from", "", "First date the series applies (default: start date)")
	cmd.Flags().StringVar(&until, "until", "", "Last date the series applies")
	cmd.Flags().StringSliceVar(&blackout, "blackout", nil, "Dates excluded from the series")
	cmd.Flags().StringVar(&location, "location", "", "Location")
	cmd.Flags().StringVar(&memo, "memo", "", "Memo")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")

	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid schedule id %q", args[0])
			}
			c, err := client.Authed()
			if err != nil {
				return err
			}
			if err := c.Delete("/schedules/" + strconv.Itoa(id)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted schedule %d\n", id)
			return nil
		},
	}
}

// ==========================
// SPLIT
// ==========================
type splitResult struct {
	Mode               string          `json:"mode"`
	Series             models.Schedule `json:"series"`
	Created            models.Schedule `json:"created"`
	AddedBlackoutDates []civil.Date    `json:"added_blackout_dates"`
}

func splitScheduleCmd() *cobra.Command {
	var date, mode string

	cmd := &cobra.Command{
		Use:   "split <id>",
		Short: "Detach one occurrence (single) or all occurrences from a date (future)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid schedule id %q", args[0])
			}
			d, err := civil.ParseDate(date)
			if err != nil {
				return fmt.Errorf("--date: %w", err)
			}
			c, err := client.Authed()
			if err != nil {
				return err
			}
			var out splitResult
			path := "/schedules/" + strconv.Itoa(id) + "/split"
			if err := c.Post(path, map[string]interface{}{"date": d, "mode": mode}, &out); err != nil {
				return err
			}
			if root.JSON {
				return output.PrintJSON(cmd.OutOrStdout(), out)
			}
			output.RenderTable(cmd.OutOrStdout(), scheduleHeaders, scheduleRows([]models.Schedule{out.Series, out.Created}))
			if len(out.AddedBlackoutDates) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Blacked out %s on schedule %d\n", formatDates(out.AddedBlackoutDates), out.Series.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Occurrence date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&mode, "mode", "single", "single or future")
	cmd.MarkFlagRequired("date")

	return cmd
}
