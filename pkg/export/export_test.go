package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickyard/brickyard-cli/pkg/canvas"
	"github.com/brickyard/brickyard-cli/pkg/catalogue"
	"github.com/brickyard/brickyard-cli/pkg/compat"
)

func TestThemeURL(t *testing.T) {
	tests := []struct {
		theme string
		want  string
	}{
		{"default", BootstrapCSS},
		{"", BootstrapCSS},
		{"darkly", "https://cdn.jsdelivr.net/npm/bootswatch@5.3.2/dist/darkly/bootstrap.min.css"},
		{"minty", "https://cdn.jsdelivr.net/npm/bootswatch@5.3.2/dist/minty/bootstrap.min.css"},
	}
	for _, tt := range tests {
		t.Run(tt.theme, func(t *testing.T) {
			assert.Equal(t, tt.want, ThemeURL(tt.theme))
		})
	}
}

func TestNextThemeWraps(t *testing.T) {
	all := Themes()
	assert.Equal(t, DefaultTheme, all[0])
	assert.Equal(t, all[1], NextTheme(DefaultTheme))
	assert.Equal(t, DefaultTheme, NextTheme(all[len(all)-1]))
	assert.Equal(t, DefaultTheme, NextTheme("unknown"))
}

func TestDocument(t *testing.T) {
	doc, err := Document("<h1>Hi</h1>\n<p>there</p>", DefaultTheme, "")
	require.NoError(t, err)

	want := `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>My Bootstrap Website</title>
    <!-- Bootstrap 5 CSS -->
    <link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.2/dist/css/bootstrap.min.css" rel="stylesheet">
    <!-- Bootstrap Icons -->
    <link href="https://cdn.jsdelivr.net/npm/bootstrap-icons@1.11.1/font/bootstrap-icons.css" rel="stylesheet">
</head>
<body>
    <h1>Hi</h1>
    <p>there</p>
    <!-- Bootstrap 5 JS -->
    <script src="https://cdn.jsdelivr.net/npm/bootstrap@5.3.2/dist/js/bootstrap.bundle.min.js"></script>
</body>
</html>`
	assert.Equal(t, want, doc)
}

func TestDocumentAlternateTheme(t *testing.T) {
	doc, err := Document("", "darkly", "Landing")
	require.NoError(t, err)
	assert.Contains(t, doc, "darkly")
	assert.NotContains(t, doc, BootstrapCSS)
	assert.Contains(t, doc, "<title>Landing</title>")
	assert.Contains(t, doc, IconsCSS)
	assert.Contains(t, doc, BootstrapJS)
}

func TestExtractCanvasHTML(t *testing.T) {
	c := canvas.New(compat.Default())
	e := canvas.NewEngine(canvas.Deps{Canvas: c, Catalogue: catalogue.Default()})

	empty, err := ExtractCanvasHTML(c)
	require.NoError(t, err)
	assert.Equal(t, "", empty)

	box, _ := e.InsertTop("container")
	e.InsertNested(box.ID, "", "heading-h1")
	e.InsertTop("lead")

	html, err := ExtractCanvasHTML(c)
	require.NoError(t, err)
	parts := strings.Split(html, "\n\n")
	require.Len(t, parts, 2)
	assert.Equal(t, `<div class="container py-4"><h1 class="my-3">Main heading</h1></div>`, parts[0])
	assert.True(t, strings.HasPrefix(parts[1], `<p class="lead`))
	assert.NotContains(t, html, canvas.SlotAttr)
	assert.NotContains(t, html, "comp-")
}

func TestFormatHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "nested blocks",
			in:   `<div class="a"><div><p>x</p></div></div>`,
			want: "<div class=\"a\">\n    <div>\n        <p>x</p>\n    </div>\n</div>",
		},
		{
			name: "void tags do not indent",
			in:   `<div><img src="a.png"><hr><br><p>t</p></div>`,
			want: "<div>\n    <img src=\"a.png\">\n    <hr>\n    <br>\n    <p>t</p>\n</div>",
		},
		{
			name: "self closing",
			in:   `<div><input type="text" /><span>s</span></div>`,
			want: "<div>\n    <input type=\"text\" />\n    <span>s</span>\n</div>",
		},
		{
			name: "stray closing tag never goes negative",
			in:   `</div><p>x</p>`,
			want: "</div>\n<p>x</p>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatHTML(tt.in))
		})
	}
}

func TestHighlightHTML(t *testing.T) {
	got := HighlightHTML(`<a href="/x">A & B</a>`)
	want := `&lt;<span class="tag">a</span> <span class="attr">href</span>="<span class="string">/x</span>"&gt;A &amp; B&lt;/<span class="tag">a</span>&gt;`
	assert.Equal(t, want, got)
}

func TestTokens(t *testing.T) {
	got := Tokens(`<p class="lead">Hi</p>`)
	assert.Equal(t, []Token{
		{TokenText, "<"},
		{TokenTag, "p"},
		{TokenText, " "},
		{TokenAttr, "class"},
		{TokenText, `="`},
		{TokenString, "lead"},
		{TokenText, `">Hi</`},
		{TokenTag, "p"},
		{TokenText, ">"},
	}, got)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFilename)
	n, err := WriteFile(path, "<html></html>")
	require.NoError(t, err)
	assert.Equal(t, 13, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))

	_, err = WriteFile(filepath.Join(t.TempDir(), "missing", "x.html"), "")
	assert.Error(t, err)
}
