package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"promptctl/internal/prompt"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema for prompt documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := prompt.SchemaJSON()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}
