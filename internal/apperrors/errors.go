package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAllocationApplied indicates an attempt to re-apply a paycheck allocation
// that already left the draft state.
var ErrAllocationApplied = errors.New("allocation already applied")

// ErrAdvisoryUnavailable indicates the external advisory provider could not
// be used (not configured, timed out, or returned garbage). Callers fall back
// to deterministic math and never surface this to the client.
var ErrAdvisoryUnavailable = errors.New("advisory provider unavailable")
