package definition

import (
	"fmt"

	"github.com/dmitrymomot/formkit/pkg/lookup"
)

// Lookup modes and backends.
const (
	LookupUnique = "unique"
	LookupKnown  = "known"

	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// LookupSpec attaches an asynchronous existence check to a field. Redis
// lookups test membership in Set; Postgres lookups test Column of Table.
type LookupSpec struct {
	Mode    string `yaml:"mode" json:"mode"`
	Backend string `yaml:"backend" json:"backend"`
	Set     string `yaml:"set,omitempty" json:"set,omitempty"`
	Table   string `yaml:"table,omitempty" json:"table,omitempty"`
	Column  string `yaml:"column,omitempty" json:"column,omitempty"`
}

// Backends holds the stores lookups may run against. A nil backend makes
// Build fail for fields that need it.
type Backends struct {
	Redis    lookup.SetMembership
	Postgres lookup.Querier
}

func (l *LookupSpec) validate() error {
	if l.Mode != LookupUnique && l.Mode != LookupKnown {
		return fmt.Errorf("%w: lookup mode %q", ErrInvalidDefinition, l.Mode)
	}
	switch l.Backend {
	case BackendRedis:
		if l.Set == "" {
			return fmt.Errorf("%w: redis lookup needs a set", ErrInvalidDefinition)
		}
	case BackendPostgres:
		if l.Table == "" || l.Column == "" {
			return fmt.Errorf("%w: postgres lookup needs a table and a column", ErrInvalidDefinition)
		}
	default:
		return fmt.Errorf("%w: lookup backend %q", ErrInvalidDefinition, l.Backend)
	}
	return nil
}

func (l *LookupSpec) checker(b Backends) (lookup.Checker, error) {
	switch l.Backend {
	case BackendRedis:
		if b.Redis == nil {
			return nil, fmt.Errorf("%w: redis", ErrBackendUnavailable)
		}
		return lookup.NewRedisSet(b.Redis, l.Set), nil
	case BackendPostgres:
		if b.Postgres == nil {
			return nil, fmt.Errorf("%w: postgres", ErrBackendUnavailable)
		}
		return lookup.NewPostgresQuery(b.Postgres, l.Table, l.Column), nil
	}
	return nil, fmt.Errorf("%w: lookup backend %q", ErrInvalidDefinition, l.Backend)
}
