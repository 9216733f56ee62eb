package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmicfriends/promptkit/internal/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [name]",
	Short: "Print the embedded record schemas",
	Long: `Print the JSON Schema character records are validated against.
Without a name, lists the embedded schemas.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			s, err := schema.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Print(s.Source)
			return nil
		}

		schemas, err := schema.All()
		if err != nil {
			return err
		}
		for _, s := range schemas {
			fmt.Println(s.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
