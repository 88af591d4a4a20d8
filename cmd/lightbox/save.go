// Save command persists pending project state.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Persist project name, flags, and timestamps",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := openProject()
		if err != nil {
			return err
		}
		defer project.Close()

		if err := project.Save(); err != nil {
			return fmt.Errorf("save project: %w", err)
		}

		if flagJSON {
			return printJSON(map[string]any{
				"path":     project.Path(),
				"modified": project.TimestampModification(),
			})
		}
		fmt.Printf("Saved project at %s\n", project.Path())
		return nil
	},
}
