// Classes command group manages the project's classification registry.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slidelab/lightbox/pkg/types"
)

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "Manage path classes",
}

var classesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the project's path classes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := openProject()
		if err != nil {
			return err
		}
		defer project.Close()

		classes, err := project.PathClasses()
		if err != nil {
			return fmt.Errorf("list classes: %w", err)
		}

		if flagJSON {
			return printJSON(classes)
		}
		if len(classes) == 0 {
			fmt.Println("No path classes")
			return nil
		}
		for _, class := range classes {
			if class.Color != "" {
				fmt.Printf("%s  %s\n", class.Name, class.Color)
			} else {
				fmt.Println(class.Name)
			}
		}
		return nil
	},
}

var classesSetCmd = &cobra.Command{
	Use:   "set <name[:color]>...",
	Short: "Replace the project's path classes",
	Long: `Set replaces the entire path class registry. Each argument is a class
name with an optional #RRGGBB color after a colon.

Example:
  lightbox classes set Tumor:#ff0000 Stroma:#00ff00 Immune`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := openProject()
		if err != nil {
			return err
		}
		defer project.Close()

		classes := make([]types.PathClass, 0, len(args))
		for _, arg := range args {
			name, color, _ := strings.Cut(arg, ":")
			if name == "" {
				return fmt.Errorf("invalid class %q (expected name[:color])", arg)
			}
			classes = append(classes, types.PathClass{Name: name, Color: color})
		}

		if err := project.SetPathClasses(classes); err != nil {
			return fmt.Errorf("set classes: %w", err)
		}

		if flagJSON {
			return printJSON(classes)
		}
		fmt.Printf("Set %d path classes\n", len(classes))
		return nil
	},
}

func init() {
	classesCmd.AddCommand(classesListCmd)
	classesCmd.AddCommand(classesSetCmd)
}
