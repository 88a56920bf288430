package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"promptctl/internal/store"
)

func init() {
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Add a prompt from arguments or stdin",
	Long: "Creates a new prompt. Content comes from the arguments, or from stdin\n" +
		"when no arguments are given. The name is derived from the first line.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var content string
		if len(args) > 0 {
			content = strings.Join(args, " ")
		} else {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			content = string(data)
		}
		s, err := store.Open()
		if err != nil {
			return err
		}
		p, err := s.Create(content)
		if err != nil {
			return err
		}
		fmt.Println(p.Name)
		return nil
	},
}
