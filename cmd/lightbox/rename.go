// Rename command changes an entry's display name.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <entry> <name>",
	Short: "Rename an entry",
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
		previous := entry.Name()
		if err := entry.SetName(args[1]); err != nil {
			return fmt.Errorf("rename: %w", err)
		}

		if flagJSON {
			return printJSON(map[string]string{
				"id":       entry.ID(),
				"name":     args[1],
				"previous": previous,
			})
		}
		fmt.Printf("Renamed %q to %q\n", previous, args[1])
		return nil
	},
}
