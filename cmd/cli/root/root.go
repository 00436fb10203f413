package root

import (
	"github.com/spf13/cobra"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:           "recipes",
	Short:         "Recipe API CLI",
	Long:          "Command line interface for interacting with the Recipe API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// GetRoot returns the RootCmd.
func GetRoot() *cobra.Command {
	return RootCmd
}
