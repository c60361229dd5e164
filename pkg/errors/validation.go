package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxFieldLength bounds entity names, vertex type ids and edge types.
const maxFieldLength = 256

// ValidateEntityName validates a free-text entity name as typed by the user.
// Names must contain at least one non-space character, must not exceed 256
// characters and must not contain control characters.
func ValidateEntityName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeValidation, "entity name cannot be empty")
	}
	return validateField("entity name", name)
}

// ValidateVertexTypeID validates a vertex type id such as "person" or "food-1".
// Surrounding whitespace is tolerated, the trimmed id must be non-empty.
func ValidateVertexTypeID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeValidation, "vertex type id cannot be empty")
	}
	return validateField("vertex type id", id)
}

// ValidateEdgeType validates an edge label. Empty labels are allowed.
func ValidateEdgeType(edgeType string) error {
	if edgeType == "" {
		return nil
	}
	return validateField("edge type", edgeType)
}

func validateField(what, s string) error {
	if utf8.RuneCountInString(s) > maxFieldLength {
		return New(ErrCodeValidation, "%s too long (max %d characters)", what, maxFieldLength)
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return New(ErrCodeValidation, "%s contains invalid control characters", what)
		}
	}
	return nil
}
