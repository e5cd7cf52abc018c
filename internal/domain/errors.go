package domain

import "errors"

// ErrNotFound is returned by repo, session and service functions when the
// requested resource does not exist (or, for estimator sessions, has expired).
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. unknown destination, malformed booking form).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
