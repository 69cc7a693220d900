package files

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	repeatHyphen = regexp.MustCompile(`-+`)
)

// Slugify converts a display name to a valid page file name
// Examples:
//
//	"Landing Page" → "landing-page"
//	"Pricing (v2)!" → "pricing-v2"
func Slugify(displayName string) string {
	slug := strings.ToLower(displayName)
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	slug = repeatHyphen.ReplaceAllString(slug, "-")

	if slug == "" {
		slug = "unnamed"
	}

	return slug
}

// ExtractDisplayName turns a page file name back into a title
// Examples:
//
//	"landing-page.yaml" → "Landing Page"
func ExtractDisplayName(filename string) string {
	name := strings.TrimSuffix(filename, PageExt)

	parts := strings.Split(name, "-")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}

	return strings.Join(parts, " ")
}

// RenamePage moves a page to the slug of newDisplayName
func RenamePage(oldName, newDisplayName string) (string, error) {
	if strings.TrimSpace(newDisplayName) == "" {
		return "", fmt.Errorf("new display name cannot be empty")
	}

	page, err := ReadPage(oldName)
	if err != nil {
		return "", fmt.Errorf("failed to read page: %w", err)
	}
	oldPath := page.Path
	newName := Slugify(newDisplayName)

	if newName == page.Name {
		return newName, nil
	}
	if PageExists(newName) {
		return "", fmt.Errorf("page with name '%s' already exists", newName)
	}

	page.Name = newName
	if err := WritePage(page); err != nil {
		return "", fmt.Errorf("failed to write renamed page: %w", err)
	}

	if err := os.Remove(oldPath); err != nil {
		// Rollback: drop the new file so the page exists once
		os.Remove(page.Path)
		return "", fmt.Errorf("failed to remove old file: %w", err)
	}

	return newName, nil
}
