package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"promptctl/internal/store"
)

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().StringP("tag", "t", "", "only prompts carrying this tag")
	lsCmd.Flags().BoolP("archived", "a", false, "list archived prompts instead")
	lsCmd.Flags().StringP("folder", "f", "", "list prompts inside this folder")
}

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored prompts",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open()
		if err != nil {
			return err
		}
		tag, _ := cmd.Flags().GetString("tag")
		archived, _ := cmd.Flags().GetBool("archived")
		folder, _ := cmd.Flags().GetString("folder")

		prompts := s.List()
		switch {
		case archived:
			prompts = s.ListArchived()
		case folder != "":
			prompts = s.ListFolder(folder)
		case tag != "":
			prompts = s.FilterByTag(tag)
		}
		if len(prompts) == 0 {
			fmt.Println("no prompts")
			return nil
		}
		for _, p := range prompts {
			line := p.Name
			if len(p.Tags) > 0 {
				line += "  [" + strings.Join(p.Tags, ", ") + "]"
			}
			fmt.Println(line)
		}
		return nil
	},
}
