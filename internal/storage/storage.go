// Package storage defines the errors shared by every repository
// implementation. Concrete backends live in the subpackages.
package storage

import "errors"

// ErrNotFound is returned when a requested entity does not exist,
// whatever the backend.
var ErrNotFound = errors.New("storage: not found")
