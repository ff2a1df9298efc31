package core

import "github.com/google/uuid"

// NewID returns a fresh item id prefixed with its kind, e.g. "gap-<uuid>".
func NewID(kind Kind) string {
	return string(kind) + "-" + uuid.NewString()
}
