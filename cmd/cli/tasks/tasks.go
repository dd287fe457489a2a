package tasks

import (
	"fmt"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"

	"github.com/crucial707/dayplan/cmd/cli/client"
	"github.com/crucial707/dayplan/cmd/cli/output"
	"github.com/crucial707/dayplan/cmd/cli/root"
	"github.com/crucial707/dayplan/internal/models"
)

// ==========================
// Init Tasks
// ==========================
func InitTasks(rootCmd *cobra.Command) {
	tasksCmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Manage deadline tasks",
	}

	tasksCmd.AddCommand(
		listTasksCmd(),
		createTaskCmd(),
		deleteTaskCmd(),
	)

	rootCmd.AddCommand(tasksCmd)
}

// ==========================
// LIST
// ==========================
func listTasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks by deadline",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authed()
			if err != nil {
				return err
			}
			var list []models.Task
			if err := c.Get("/tasks", &list); err != nil {
				return err
			}
			if root.JSON {
				return output.PrintJSON(cmd.OutOrStdout(), list)
			}
			rows := make([][]interface{}, 0, len(list))
			for _, t := range list {
				rows = append(rows, []interface{}{t.ID, t.Name, t.Deadline, output.Hours(t.EstimatedHours), t.Memo})
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Name", "Deadline", "Estimate (h)", "Memo"}, rows)
			return nil
		},
	}
}

// ==========================
// CREATE
// ==========================
func createTaskCmd() *cobra.Command {
	var (
		name, deadline, memo string
		hours                float64
	)

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a task",
		Example: "  dayplan tasks create --name report --deadline 2024-01-31 --hours 6",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := civil.ParseDate(deadline)
			if err != nil {
				return fmt.Errorf("--deadline: %w", err)
			}
			c, err := client.Authed()
			if err != nil {
				return err
			}
			var created models.Task
			payload := map[string]interface{}{
				"name":            name,
				"deadline":        d,
				"estimated_hours": hours,
				"memo":            memo,
			}
			if err := c.Post("/tasks", payload, &created); err != nil {
				return err
			}
			if root.JSON {
				return output.PrintJSON(cmd.OutOrStdout(), created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %d (%s, due %s)\n", created.ID, created.Name, created.Deadline)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Estimated hours of work")
	cmd.Flags().StringVar(&memo, "memo", "", "Memo")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("deadline")
	cmd.MarkFlagRequired("hours")

	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteTaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}
			c, err := client.Authed()
			if err != nil {
				return err
			}
			if err := c.Delete("/tasks/" + strconv.Itoa(id)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d\n", id)
			return nil
		},
	}
}
