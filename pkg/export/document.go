// Package export turns a canvas into a standalone Bootstrap document and
// formats it for display.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/osteele/liquid"

	"github.com/brickyard/brickyard-cli/pkg/canvas"
)

const (
	DefaultTheme    = "default"
	DefaultTitle    = "My Bootstrap Website"
	DefaultFilename = "my-bootstrap-page.html"

	BootstrapCSS = "https://cdn.jsdelivr.net/npm/bootstrap@5.3.2/dist/css/bootstrap.min.css"
	IconsCSS     = "https://cdn.jsdelivr.net/npm/bootstrap-icons@1.11.1/font/bootstrap-icons.css"
	BootstrapJS  = "https://cdn.jsdelivr.net/npm/bootstrap@5.3.2/dist/js/bootstrap.bundle.min.js"
)

var themes = []string{
	DefaultTheme, "cerulean", "cosmo", "cyborg", "darkly", "flatly", "journal",
	"litera", "lumen", "lux", "materia", "minty", "morph", "pulse", "quartz",
	"sandstone", "simplex", "sketchy", "slate", "solar", "spacelab",
	"superhero", "united", "vapor", "yeti", "zephyr",
}

// Themes lists the selectable themes, default first
func Themes() []string {
	out := make([]string, len(themes))
	copy(out, themes)
	return out
}

// NextTheme returns the theme after current, wrapping around
func NextTheme(current string) string {
	for i, t := range themes {
		if t == current {
			return themes[(i+1)%len(themes)]
		}
	}
	return DefaultTheme
}

// ThemeURL returns the stylesheet of a theme. Anything but "default" is
// looked up on bootswatch.
func ThemeURL(theme string) string {
	if theme == "" || theme == DefaultTheme {
		return BootstrapCSS
	}
	return fmt.Sprintf("https://cdn.jsdelivr.net/npm/bootswatch@5.3.2/dist/%s/bootstrap.min.css", theme)
}

const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{ title }}</title>
    <!-- Bootstrap 5 CSS -->
    <link href="{{ css }}" rel="stylesheet">
    <!-- Bootstrap Icons -->
    <link href="{{ icons }}" rel="stylesheet">
</head>
<body>
{{ content }}
    <!-- Bootstrap 5 JS -->
    <script src="{{ script }}"></script>
</body>
</html>`

var engine = liquid.NewEngine()

// Document wraps content in the full page for a theme. content is indented
// by four spaces inside the body.
func Document(content, theme, title string) (string, error) {
	if title == "" {
		title = DefaultTitle
	}
	out, err := engine.ParseAndRenderString(documentTemplate, map[string]any{
		"title":   title,
		"css":     ThemeURL(theme),
		"icons":   IconsCSS,
		"script":  BootstrapJS,
		"content": Indent(content, 4),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}
	return out, nil
}

// Indent prefixes every line of s with n spaces
func Indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}

// ExtractCanvasHTML renders every top-level node and joins them with a
// blank line
func ExtractCanvasHTML(c *canvas.Canvas) (string, error) {
	var parts []string
	for _, n := range c.Nodes() {
		html, err := canvas.RenderNode(n)
		if err != nil {
			return "", err
		}
		parts = append(parts, strings.TrimSpace(html))
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n")), nil
}

// Page renders the canvas as a complete document
func Page(c *canvas.Canvas, theme, title string) (string, error) {
	content, err := ExtractCanvasHTML(c)
	if err != nil {
		return "", err
	}
	return Document(content, theme, title)
}

// WriteFile saves a document and returns its size in bytes
func WriteFile(path, doc string) (int, error) {
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return len(doc), nil
}
