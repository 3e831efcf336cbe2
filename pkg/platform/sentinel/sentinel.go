package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and file readers return
// these (optionally wrapped) so services can translate them into domain errors.
//
// - ErrNotFound: the requested artifact or entity does not exist
// - ErrUnavailable: the backing store could not be reached or failed the query
//
// For validation errors (bad input, malformed rows), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
