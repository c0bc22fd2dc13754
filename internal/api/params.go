package api

import (
	"strconv"
	"strings"

	"itemd/internal/errors"
)

// ParseItemID extracts the numeric item id that follows prefix in path.
// The remainder must be non-empty and consist solely of ASCII digits,
// so signs, whitespace and trailing garbage are rejected before strconv
// ever sees the string. This is the single choke point for id parsing,
// shared by the get, update and delete handlers.
func ParseItemID(path, prefix string) (int, error) {
	if !strings.HasPrefix(path, prefix) {
		return 0, errors.New(errors.InvalidInput, "path does not start with "+prefix, nil)
	}

	raw := strings.TrimPrefix(path, prefix)
	if raw == "" {
		return 0, errors.New(errors.InvalidInput, "empty item id", nil)
	}

	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, errors.New(errors.InvalidInput, "item id must be numeric", nil)
		}
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		// All-digit input can only fail Atoi by overflowing int.
		return 0, errors.New(errors.InvalidInput, "item id out of range", err)
	}

	return id, nil
}
