package domain

import "errors"

// ErrNotFound is returned when an operation references a measurement that
// does not exist in the store.
// Clients surface this as a non-fatal notification.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when a candidate measurement fails the domain
// invariant (empty title/name/unit, or a non-positive value).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrFormat is returned when a persisted or imported document cannot be
// reconstructed (malformed JSON, wrong field types, missing required fields).
// The load or import is refused and the prior state is kept.
var ErrFormat = errors.New("format error")

// ErrPersist is returned when a backing store cannot be read or written
// (local storage failure, remote endpoint unreachable, timeout).
// Callers fall back to the other backend or surface a notification;
// it never crashes the app.
var ErrPersist = errors.New("persist error")
