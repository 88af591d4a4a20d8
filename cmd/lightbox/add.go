// Add command registers image files into the project.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <image>...",
	Short: "Register one or more image files",
	Long: `Add registers image files into the project. Each file's format is
detected from its content; unsupported files are rejected. A thumbnail is
rendered and stored with the new entry.

Example:
  lightbox add slide.png
  lightbox add scans/*.tif`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := openProject()
		if err != nil {
			return err
		}
		defer project.Close()

		var added []entrySummary
		for _, path := range args {
			entry, err := project.Images().Add(path)
			if err != nil {
				return fmt.Errorf("add %s: %w", path, err)
			}
			s, err := summarize(entry)
			if err != nil {
				return err
			}
			added = append(added, s)
		}
		if err := project.Save(); err != nil {
			return fmt.Errorf("save project: %w", err)
		}

		if flagJSON {
			return printJSON(added)
		}
		for _, s := range added {
			fmt.Printf("Added %s: %s\n", s.Name, s.ID)
		}
		return nil
	},
}
