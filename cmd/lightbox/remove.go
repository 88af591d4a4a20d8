// Remove command drops entries from the project.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <entry>...",
	Short: "Remove entries from the project",
	Long: `Remove drops entries from the project along with their metadata and
annotations. Entries are referenced by ID, unique ID prefix, or name. The
source image files are not touched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := openProject()
		if err != nil {
			return err
		}
		defer project.Close()

		for _, ref := range args {
			entry, err := findEntry(project, ref)
			if err != nil {
				return err
			}
			if err := project.Images().Discard(entry); err != nil {
				return fmt.Errorf("remove %s: %w", ref, err)
			}
			if !flagJSON {
				fmt.Printf("Removed %s\n", entry.Name())
			}
		}
		if err := project.Save(); err != nil {
			return fmt.Errorf("save project: %w", err)
		}
		if flagJSON {
			return printJSON(map[string]int{"removed": len(args)})
		}
		return nil
	},
}
