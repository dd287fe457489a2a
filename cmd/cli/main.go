package main

import (
	"github.com/crucial707/dayplan/cmd/cli/plan"
	"github.com/crucial707/dayplan/cmd/cli/root"
	"github.com/crucial707/dayplan/cmd/cli/schedules"
	"github.com/crucial707/dayplan/cmd/cli/settings"
	"github.com/crucial707/dayplan/cmd/cli/tasks"
	"github.com/crucial707/dayplan/cmd/cli/users"
)

func main() {
	rootCmd := root.GetRoot()
	users.InitUsers(rootCmd)
	schedules.InitSchedules(rootCmd)
	tasks.InitTasks(rootCmd)
	plan.InitPlan(rootCmd)
	settings.InitSettings(rootCmd)

	// Execute the root Cobra command
	root.Execute()
}
