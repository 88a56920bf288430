package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"promptctl/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "promptctl",
	Short: "promptctl – terminal prompt manager",
	Long: "promptctl stores reusable prompts as markdown, edits them with vim-style\n" +
		"keys, and resolves [[references]], [[file:paths]] and {{commands}} on copy.",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default action: launch the TUI
		return app.Start()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
