package config

import "errors"

// Configuration validation errors, returned by Config.Validate.
//
// Sentinel errors rather than ad-hoc errors.New calls in Validate so
// callers can branch with errors.Is while users still get a readable
// message.
var (
	// ErrNoSeed is returned when no seed address was provided.
	ErrNoSeed = errors.New("no seed address specified")

	// ErrInvalidDepth is returned when the maximum depth is negative.
	// Depth 0 is valid and means only the seed page is fetched.
	ErrInvalidDepth = errors.New("invalid max depth: must be non-negative")

	// ErrInvalidWorkers is returned when the worker count is not
	// positive. Zero workers would mean no page can ever be fetched.
	ErrInvalidWorkers = errors.New("invalid worker count: must be positive")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidTopWords is returned when the top-words count is
	// negative. Zero is valid and suppresses the word listing.
	ErrInvalidTopWords = errors.New("invalid top words count: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is
	// negative. Use 0 for the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are requested. Only one format can be produced.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
