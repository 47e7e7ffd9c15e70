package utils

import "github.com/google/uuid"

func NewID() string { return uuid.NewString() }

// IsID reports whether s is a well-formed entity id. Malformed ids are a
// Bad Request, distinct from a well-formed id that matches nothing.
func IsID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
