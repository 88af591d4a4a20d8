// Root command for the lightbox CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/slidelab/lightbox/internal/paths"
	"github.com/slidelab/lightbox/pkg/lightbox"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagProject   string
	flagJSON      bool
)

// configProjectDir holds the project_dir value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configProjectDir string

var rootCmd = &cobra.Command{
	Use:     "lightbox",
	Short:   "Lightbox catalogs image files into local projects",
	Version: lightbox.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configProjectDir = cfg.GetString(cfgKeyProjectDir)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagProject, "project", "", "project directory (default: $(CWD)/.lightbox-project)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(metaCmd)
	rootCmd.AddCommand(classesCmd)
	rootCmd.AddCommand(saveCmd)
}

// resolveProjectDir returns the project directory following the precedence:
// --project flag > config.yaml project_dir > LIGHTBOX_PROJECT_DIR env > default.
func resolveProjectDir() (string, error) {
	return paths.ResolveProjectDir(flagProject, configProjectDir)
}

// resolveConfigDir returns the configuration directory following the precedence:
// --config-dir flag > LIGHTBOX_CONFIG_DIR env > DefaultConfigDir().
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
