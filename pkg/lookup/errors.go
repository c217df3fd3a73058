package lookup

import "errors"

var (
	// ErrLookupFailed wraps backend errors returned while checking a value.
	ErrLookupFailed = errors.New("lookup: backend check failed")

	ErrFailedToParseRedisURL    = errors.New("lookup: failed to parse redis connection url")
	ErrRedisNotReady            = errors.New("lookup: redis did not become ready within the given time period")
	ErrFailedToParsePostgresDSN = errors.New("lookup: failed to parse postgres connection string")
	ErrPostgresNotReady         = errors.New("lookup: postgres did not become ready within the given time period")
)
