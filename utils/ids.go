package utils

import "github.com/google/uuid"

// NewID returns a random identifier for accounts, notes and feedback.
func NewID() string {
	return uuid.New().String()
}
