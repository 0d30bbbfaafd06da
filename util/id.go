package util

import (
	"github.com/google/uuid"
)

// NewID generate a new request/correlation id
func NewID() string {
	return uuid.NewString()
}
