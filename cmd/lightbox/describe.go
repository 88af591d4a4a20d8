// Describe command sets an entry's description.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <entry> <text>",
	Short: "Set an entry's description",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := openProject()
		if err != nil {
			return err
		}
		defer project.Close()

		entry, err := findEntry(project, args[0])
		if err != nil {
			return err
		}
		if err := entry.SetDescription(args[1]); err != nil {
			return fmt.Errorf("describe: %w", err)
		}

		if flagJSON {
			return printJSON(map[string]string{
				"id":          entry.ID(),
				"description": args[1],
			})
		}
		fmt.Printf("Described %s\n", entry.Name())
		return nil
	},
}
