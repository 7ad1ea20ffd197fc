package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// Fixture pipeline failures. They never reach callers as errors; they are
// logged and reported on results that were served from fallback data.
var (
	ErrSourceFailure = errors.New("fixture source failure")
	ErrParseFailure  = errors.New("fixture parse failure")
)
