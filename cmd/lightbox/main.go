// Package main provides the lightbox CLI for managing image projects.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/slidelab/lightbox/pkg/types"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lightbox:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the CLI exit code. User-correctable failures
// exit 1; everything else exits 2.
func exitCode(err error) int {
	switch {
	case errors.Is(err, types.ErrKeyNotFound),
		errors.Is(err, types.ErrEntryNotFound),
		errors.Is(err, types.ErrUnsupportedFormat),
		errors.Is(err, types.ErrRegistrationFailed):
		return exitUserError
	default:
		return exitSysError
	}
}
