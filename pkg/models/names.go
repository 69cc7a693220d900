package models

import (
	"errors"
	"strings"
)

// Page name errors
var (
	ErrEmptyPageName        = errors.New("page name cannot be empty")
	ErrPageNameTooLong      = errors.New("page name cannot exceed 50 characters")
	ErrInvalidPageCharacter = errors.New("page name contains invalid characters")
)

// NormalizePageName turns a display name into the slug used as file name
func NormalizePageName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, " ", "-")
	normalized = strings.TrimSuffix(normalized, ".yaml")

	var result strings.Builder
	for _, r := range normalized {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ValidatePageName checks if a page name is valid
func ValidatePageName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyPageName
	}

	if len(name) > 50 {
		return ErrPageNameTooLong
	}

	for _, r := range name {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_' || r == ' ') {
			return ErrInvalidPageCharacter
		}
	}

	return nil
}
