// Package registry is the single source of truth for tool and material
// state. All functions operate on a Document owned by the caller; the
// engine serializes access and handles persistence.
package registry

import "errors"

var (
	// ErrNotFound means no tool or material matched the given id.
	ErrNotFound = errors.New("resource not found")

	// ErrNotAvailable means a take was attempted on a resource that is
	// in use or under maintenance.
	ErrNotAvailable = errors.New("resource not available")

	// ErrNotInUse means a return was attempted on a resource nobody holds.
	ErrNotInUse = errors.New("resource not in use")

	// ErrDepleted means a material's quantity has reached zero.
	ErrDepleted = errors.New("material depleted")
)
