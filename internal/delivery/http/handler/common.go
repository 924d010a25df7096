package handler

import (
	"fmt"

	"github.com/google/uuid"
)

// parseUUIDField parses a UUID carried in a JSON request body field
func parseUUIDField(value, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}
