// Meta command group manages per-entry metadata.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var metaCmd = &cobra.Command{
	Use:   "meta",
	Short: "Manage entry metadata",
}

var metaSetCmd = &cobra.Command{
	Use:   "set <entry> <key> <value>",
	Short: "Set a metadata value",
	Args:  cobra.ExactArgs(3),
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
		if err := entry.Metadata().Set(args[1], args[2]); err != nil {
			return fmt.Errorf("set metadata: %w", err)
		}

		if flagJSON {
			return printJSON(map[string]string{"id": entry.ID(), args[1]: args[2]})
		}
		fmt.Printf("%s = %s\n", args[1], args[2])
		return nil
	},
}

var metaGetCmd = &cobra.Command{
	Use:   "get <entry> <key>",
	Short: "Print a metadata value",
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
		value, err := entry.Metadata().Get(args[1])
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(map[string]string{args[1]: value})
		}
		fmt.Println(value)
		return nil
	},
}

var metaDeleteCmd = &cobra.Command{
	Use:   "delete <entry> <key>",
	Short: "Delete a metadata value",
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
		if err := entry.Metadata().Delete(args[1]); err != nil {
			return fmt.Errorf("delete metadata: %w", err)
		}

		if flagJSON {
			return printJSON(map[string]string{"id": entry.ID(), "deleted": args[1]})
		}
		fmt.Printf("Deleted %s\n", args[1])
		return nil
	},
}

var metaListCmd = &cobra.Command{
	Use:   "list <entry>",
	Short: "List an entry's metadata",
	Args:  cobra.ExactArgs(1),
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
		meta := entry.Metadata()

		if flagJSON {
			pairs, err := meta.All()
			if err != nil {
				return err
			}
			return printJSON(pairs)
		}
		keys, err := meta.Keys()
		if err != nil {
			return err
		}
		for _, key := range keys {
			value, err := meta.Get(key)
			if err != nil {
				return err
			}
			fmt.Printf("%s = %s\n", key, value)
		}
		return nil
	},
}

var metaClearCmd = &cobra.Command{
	Use:   "clear <entry>",
	Short: "Remove all of an entry's metadata",
	Args:  cobra.ExactArgs(1),
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
		if err := entry.Metadata().Clear(); err != nil {
			return fmt.Errorf("clear metadata: %w", err)
		}

		if flagJSON {
			return printJSON(map[string]string{"id": entry.ID(), "cleared": "metadata"})
		}
		fmt.Printf("Cleared metadata for %s\n", entry.Name())
		return nil
	},
}

func init() {
	metaCmd.AddCommand(metaSetCmd)
	metaCmd.AddCommand(metaGetCmd)
	metaCmd.AddCommand(metaDeleteCmd)
	metaCmd.AddCommand(metaListCmd)
	metaCmd.AddCommand(metaClearCmd)
}
