package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service and repo functions when input fails
// business rule validation (e.g. end date before start date, a reorder list
// with duplicate or unknown room ids).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrOwnership is returned when the target entity exists but belongs to a
// different trip than the one the caller asserts. It is deliberately distinct
// from ErrNotFound: the record exists, the caller's scope is wrong.
// Handlers should map this to HTTP 403.
var ErrOwnership = errors.New("ownership error")
