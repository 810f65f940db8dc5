// Package commands implements the vselect CLI commands.
package commands

import "github.com/spf13/cobra"

// Version is the CLI version, set from main.
var Version = "0.0.0-dev"

var rootCmd = &cobra.Command{
	Use:   "vselect",
	Short: "Version selection debugger",
	Long: `vselect runs one version-selection call over a candidate file and
prints the per-candidate outcome ledger, the same ledger the resolution
report is built from.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		// Show help when no command is provided
		_ = cmd.Help()
	},
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = Version
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(newSelectCommand())
}
