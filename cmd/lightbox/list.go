// List command prints the project's entries.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := openProject()
		if err != nil {
			return err
		}
		defer project.Close()

		entries, err := project.Images().Entries()
		if err != nil {
			return fmt.Errorf("list entries: %w", err)
		}

		if flagJSON {
			summaries := make([]entrySummary, 0, len(entries))
			for _, entry := range entries {
				s, err := summarize(entry)
				if err != nil {
					return err
				}
				summaries = append(summaries, s)
			}
			return printJSON(summaries)
		}

		if len(entries) == 0 {
			fmt.Println("No entries")
			return nil
		}
		for _, entry := range entries {
			fmt.Printf("%s  %s\n", entry.ID(), entry.Name())
		}
		return nil
	},
}
