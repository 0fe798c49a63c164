package util

import (
	"github.com/oklog/ulid/v2"
)

// NewULID returns a new lexicographically sortable run identifier.
func NewULID() string {
	return ulid.Make().String()
}

// IsULID reports whether s is a canonical ULID string.
func IsULID(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
