package localdbenv

import "github.com/giantswarm/localdbenv/internal/connstr"

// ConnectionString accumulates semicolon-terminated key=value fragments in
// call order. Fragments are never deduplicated.
type ConnectionString = connstr.ConnectionString

// NewConnectionString returns an empty, unset ConnectionString.
func NewConnectionString() *ConnectionString {
	return connstr.New()
}

// NewConnectionStringFrom returns a ConnectionString starting from initial.
func NewConnectionStringFrom(initial string) *ConnectionString {
	return connstr.NewFrom(initial)
}
