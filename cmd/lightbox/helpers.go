// Shared helpers for lightbox CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/slidelab/lightbox/pkg/lightbox"
)

// openProject resolves the project directory and opens the project there.
// The caller must defer project.Close().
func openProject() (*lightbox.Project, error) {
	dir, err := resolveProjectDir()
	if err != nil {
		return nil, fmt.Errorf("resolve project dir: %w", err)
	}

	project, err := lightbox.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open project: %w", err)
	}
	return project, nil
}

// findEntry locates an entry by ID or, failing that, by exact name. The ref
// may also be a unique ID prefix.
func findEntry(project *lightbox.Project, ref string) (*lightbox.ImageEntry, error) {
	entries, err := project.Images().Entries()
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.ID() == ref {
			return entry, nil
		}
	}

	var byPrefix *lightbox.ImageEntry
	prefixHits := 0
	for _, entry := range entries {
		if strings.HasPrefix(entry.ID(), ref) {
			byPrefix = entry
			prefixHits++
		}
	}
	if prefixHits == 1 {
		return byPrefix, nil
	}
	if prefixHits > 1 {
		return nil, fmt.Errorf("ambiguous entry reference %q", ref)
	}

	for _, entry := range entries {
		if entry.Name() == ref {
			return entry, nil
		}
	}

	return nil, fmt.Errorf("no entry matches %q", ref)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// entrySummary is the JSON shape used by list and info output.
type entrySummary struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	URI         string            `json:"uri"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Annotations int               `json:"annotations"`
}

func summarize(entry *lightbox.ImageEntry) (entrySummary, error) {
	s := entrySummary{
		ID:   entry.ID(),
		Name: entry.Name(),
		URI:  entry.URI(),
	}
	s.Description = entry.Description()
	meta, err := entry.Metadata().All()
	if err != nil {
		return s, err
	}
	if len(meta) > 0 {
		s.Metadata = meta
	}
	s.Annotations = entry.Hierarchy().Len()
	return s, nil
}
