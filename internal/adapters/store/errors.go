package store

import "errors"

// Sentinel kinds for store errors.
var (
	// ErrUnavailable is the single opaque failure surfaced when a
	// collection scan cannot be served. The engine returns no partial or
	// degraded results.
	ErrUnavailable = errors.New("data source unavailable")
)
