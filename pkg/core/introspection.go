package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	RepositoryType string              `json:"repository_type"`
	Repository     any                 `json:"repository,omitempty"`
	Filename       string              `json:"filename"`
	Columns        []string            `json:"columns"`
	DenyList       []string            `json:"deny_list"`
	Root           string              `json:"root,omitempty"`
	Records        map[string]Record   `json:"records,omitempty"`
	Failures       []string            `json:"failures,omitempty"`
	Sanitized      []string            `json:"sanitized,omitempty"`
	Drift          map[string][]string `json:"drift,omitempty"`
}

// State implements introspection.Introspectable.
// After a run it also carries the sanitized catalog of the last report.
func (s *Service) State() any {
	repoType := "unknown"
	if s.repo != nil {
		repoType = "repository"
		if comp, ok := s.repo.(introspection.Component); ok {
			repoType = comp.ComponentType()
		}
	}
	var repoState any
	if in, ok := s.repo.(introspection.Introspectable); ok {
		repoState = in.State()
	}

	state := ServiceState{
		RepositoryType: repoType,
		Repository:     repoState,
		Filename:       s.config.Filename,
		Columns:        s.config.Columns,
		DenyList:       s.config.DenyList.Chars(),
	}

	if r := s.last; r != nil {
		state.Root = r.Listing.Root
		state.Records = make(map[string]Record, r.Catalog.Len())
		for _, dir := range r.Catalog.Dirs() {
			rec, _ := r.Catalog.Get(dir)
			state.Records[dir] = rec
		}
		for _, f := range r.Failures {
			state.Failures = append(state.Failures, f.Path)
		}
		state.Sanitized = r.Warnings.Sorted()
		if len(r.Drift) > 0 {
			state.Drift = make(map[string][]string, len(r.Drift))
			for _, d := range r.Drift {
				state.Drift[d.Path] = d.Missing
			}
		}
	}

	return state
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
