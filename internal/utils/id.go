package utils

import "github.com/google/uuid"

// GenerateID returns a new document/session identifier.
func GenerateID() string {
	return uuid.NewString()
}
