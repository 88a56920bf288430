package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"promptctl/internal/store"
)

func init() {
	rootCmd.AddCommand(rmCmd)
	rmCmd.Flags().Bool("archive", false, "archive instead of deleting")
}

var rmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete or archive a prompt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open()
		if err != nil {
			return err
		}
		archive, _ := cmd.Flags().GetBool("archive")
		if archive {
			if err := s.Archive(args[0]); err != nil {
				return err
			}
			fmt.Printf("archived %s\n", args[0])
			return nil
		}
		if err := s.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}
