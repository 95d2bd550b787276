package fs

import (
	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Filename string   `json:"filename"`
	Exclude  []string `json:"exclude,omitempty"`
	Root     string   `json:"root,omitempty"`
	Found    int      `json:"found"`
	Missing  int      `json:"missing"`
	Skipped  []string `json:"skipped,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	return RepositoryState{
		Filename: r.config.Filename,
		Exclude:  r.config.Exclude,
		Root:     r.lastRoot,
		Found:    r.lastFound,
		Missing:  r.lastMissing,
		Skipped:  r.lastSkipped,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
