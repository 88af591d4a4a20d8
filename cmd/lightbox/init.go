// Init command for the lightbox CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initName string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a project in the project directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := openProject()
		if err != nil {
			return err
		}
		defer project.Close()

		if initName != "" {
			if err := project.SetName(initName); err != nil {
				return fmt.Errorf("set name: %w", err)
			}
		}
		if err := project.Save(); err != nil {
			return fmt.Errorf("save project: %w", err)
		}

		if flagJSON {
			return printJSON(map[string]string{
				"path": project.Path(),
				"uri":  project.URI(),
				"name": project.Name(),
			})
		}
		fmt.Printf("Initialized project at %s\n", project.Path())
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "project name")
}
