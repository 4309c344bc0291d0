// Package repository defines error values reused across repositories.
// These sentinels let handlers map failure scenarios onto HTTP statuses
// without inspecting SQL errors.  ErrNotFound deliberately covers three
// cases — the row does not exist, it belongs to another user, or it has
// been soft-deleted — so the API never reveals whether a foreign resource
// exists.
package repository

import "errors"

// ErrNotFound is returned when an entity is absent, soft-deleted, or owned
// by a different user.  Handlers translate it into an HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when registering with an email address that
// is already taken.  Handlers translate it into an HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrConstraint is returned when an insert or update violates a storage
// constraint.  Handlers translate it into an HTTP 422.
var ErrConstraint = errors.New("constraint violation")
