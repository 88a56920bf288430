package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"promptctl/internal/store"
)

func init() {
	rootCmd.AddCommand(mvCmd)
}

var mvCmd = &cobra.Command{
	Use:   "mv <name> [folder]",
	Short: "Move a prompt into a folder",
	Long: "Moves an active prompt into the named folder, creating the folder\n" +
		"if needed. Without a folder the prompt moves back to the top level.",
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open()
		if err != nil {
			return err
		}
		folder := ""
		if len(args) == 2 {
			folder = args[1]
		}
		if err := s.MoveToFolder(args[0], folder); err != nil {
			return err
		}
		if folder == "" {
			fmt.Printf("moved %s to top level\n", args[0])
			return nil
		}
		fmt.Printf("moved %s to %s/\n", args[0], folder)
		return nil
	},
}
