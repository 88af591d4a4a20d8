// Info command shows project and entry details.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [entry]",
	Short: "Show project details, or one entry's details",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := openProject()
		if err != nil {
			return err
		}
		defer project.Close()

		if len(args) == 1 {
			entry, err := findEntry(project, args[0])
			if err != nil {
				return err
			}
			s, err := summarize(entry)
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(s)
			}
			fmt.Printf("ID:          %s\n", s.ID)
			fmt.Printf("Name:        %s\n", s.Name)
			if orig, ok := entry.OriginalName(); ok {
				fmt.Printf("Original:    %s\n", orig)
			}
			fmt.Printf("URI:         %s\n", s.URI)
			if s.Description != "" {
				fmt.Printf("Description: %s\n", s.Description)
			}
			fmt.Printf("Metadata:    %d\n", len(s.Metadata))
			fmt.Printf("Annotations: %d\n", s.Annotations)
			return nil
		}

		count, err := project.Len()
		if err != nil {
			return fmt.Errorf("count entries: %w", err)
		}
		if flagJSON {
			info := map[string]any{
				"path":     project.Path(),
				"uri":      project.URI(),
				"name":     project.Name(),
				"version":  project.Version(),
				"created":  project.TimestampCreation(),
				"modified": project.TimestampModification(),
				"entries":  count,
			}
			if prev, ok := project.PreviousURI(); ok {
				info["previous_uri"] = prev
			}
			return printJSON(info)
		}
		fmt.Printf("Name:     %s\n", project.Name())
		fmt.Printf("Path:     %s\n", project.Path())
		fmt.Printf("URI:      %s\n", project.URI())
		if prev, ok := project.PreviousURI(); ok {
			fmt.Printf("Moved:    was %s\n", prev)
		}
		fmt.Printf("Version:  %s\n", project.Version())
		fmt.Printf("Created:  %s\n", project.TimestampCreation().Format("2006-01-02 15:04:05"))
		fmt.Printf("Modified: %s\n", project.TimestampModification().Format("2006-01-02 15:04:05"))
		fmt.Printf("Entries:  %d\n", count)
		return nil
	},
}
