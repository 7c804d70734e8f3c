package diskstore

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	BasePath string `json:"base_path"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	return StoreState{BasePath: s.Path}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "disk-record-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
