package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// JSON is set by the persistent --json flag.
var JSON bool

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:           "dayplan",
	Short:         "dayplan CLI",
	Long:          "Command line interface for the dayplan schedule and deadline planner API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&JSON, "json", false, "Print raw JSON instead of tables")
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// Optional helper to return the RootCmd
func GetRoot() *cobra.Command {
	return RootCmd
}
