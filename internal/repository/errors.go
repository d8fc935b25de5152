// Package repository defines the data-access interfaces the services
// depend on, with two families of implementations: HTTP-backed ones
// that call the remote backend through the upstream client (the
// production path) and in-memory ones used by tests and by the demo
// mode. Sentinel errors let handlers translate failures to HTTP
// statuses without inspecting implementation details.
package repository

import "errors"

// ErrNotFound is returned when the requested record does not exist.
// Handlers translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the backend rejects the caller's
// access to a record belonging to another tenant. Handlers translate
// this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state, such as deleting a reservation that has already
// moved past the cancellable statuses. Handlers translate this into an
// HTTP 409 response.
var ErrConflict = errors.New("conflict")
