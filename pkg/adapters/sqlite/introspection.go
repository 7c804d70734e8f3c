package sqlite

import (
	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	OpenConnections int `json:"open_connections"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	return RepositoryState{OpenConnections: r.db.Stats().OpenConnections}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "sqlite-repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
