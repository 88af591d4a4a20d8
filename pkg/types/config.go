// Package types defines the project store, entry, and reader contracts, the
// typed scalar bridge, and standard errors for the lightbox proxy layer.
package types

import "errors"

// Config holds backend selection and parameters for opening a project store.
type Config struct {
	Backend    string `json:"backend" yaml:"backend"`
	ProjectDir string `json:"project_dir" yaml:"project_dir"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty    = errors.New("backend must not be empty")
	ErrBackendUnknown  = errors.New("unknown backend")
	ErrProjectDirEmpty = errors.New("project directory must not be empty")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.ProjectDir == "" {
		return ErrProjectDirEmpty
	}
	return nil
}
