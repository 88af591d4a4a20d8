// Version command for the lightbox CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slidelab/lightbox/pkg/lightbox"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the lightbox version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("lightbox", lightbox.Version)
	},
}
