package service

import (
	"github.com/aretw0/introspection"
)

// NotesState exposes internal state for observability.
type NotesState struct {
	RepositoryType string `json:"repository_type"`
}

// State implements introspection.Introspectable.
func (s *Notes) State() any {
	repoType := "repository"
	if comp, ok := s.repo.(introspection.Component); ok {
		repoType = comp.ComponentType()
	}
	return NotesState{RepositoryType: repoType}
}

// ComponentType implements introspection.Component.
func (s *Notes) ComponentType() string {
	return "notes-service"
}

var _ introspection.Introspectable = (*Notes)(nil)
var _ introspection.Component = (*Notes)(nil)
