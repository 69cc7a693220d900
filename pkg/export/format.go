package export

import (
	"regexp"
	"strings"
)

var (
	betweenTags = regexp.MustCompile(`>\s*<`)
	closingTag  = regexp.MustCompile(`^</\w`)
	openingTag  = regexp.MustCompile(`^<\w[^>]*[^/]>$`)
	voidTag     = regexp.MustCompile(`(?i)^<(br|hr|img|input|meta|link)`)
)

// FormatHTML puts every tag on its own line and indents four spaces per
// open element. Void elements do not open a level.
func FormatHTML(src string) string {
	var b strings.Builder
	indent := 0
	for _, line := range strings.Split(betweenTags.ReplaceAllString(src, ">\n<"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if closingTag.MatchString(line) && indent > 0 {
			indent--
		}
		b.WriteString(strings.Repeat("    ", indent))
		b.WriteString(line)
		b.WriteByte('\n')
		if openingTag.MatchString(line) && !voidTag.MatchString(line) {
			indent++
		}
	}
	return strings.TrimSpace(b.String())
}

// TokenKind classifies a piece of highlighted markup
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenTag
	TokenAttr
	TokenString
)

// Token is a run of source text with one highlight class
type Token struct {
	Kind TokenKind
	Text string
}

var highlightRe = regexp.MustCompile(`(</?)([\w-]+)|([\w-]+)(=)|"([^"]*)"`)

// Tokens splits markup into tag names, attribute names, quoted values and
// everything else
func Tokens(src string) []Token {
	var out []Token
	text := func(s string) {
		if s == "" {
			return
		}
		if n := len(out); n > 0 && out[n-1].Kind == TokenText {
			out[n-1].Text += s
			return
		}
		out = append(out, Token{TokenText, s})
	}

	last := 0
	for _, m := range highlightRe.FindAllStringSubmatchIndex(src, -1) {
		text(src[last:m[0]])
		switch {
		case m[2] >= 0:
			text(src[m[2]:m[3]])
			out = append(out, Token{TokenTag, src[m[4]:m[5]]})
		case m[6] >= 0:
			out = append(out, Token{TokenAttr, src[m[6]:m[7]]})
			text("=")
		default:
			text(`"`)
			if m[10] < m[11] {
				out = append(out, Token{TokenString, src[m[10]:m[11]]})
			}
			text(`"`)
		}
		last = m[1]
	}
	text(src[last:])
	return out
}

var tokenClass = map[TokenKind]string{
	TokenTag:    "tag",
	TokenAttr:   "attr",
	TokenString: "string",
}

// HighlightHTML escapes markup for display inside a page and wraps tags,
// attributes and strings in spans with classes tag, attr and string.
func HighlightHTML(src string) string {
	var b strings.Builder
	for _, t := range Tokens(src) {
		escaped := escape(t.Text)
		if class, ok := tokenClass[t.Kind]; ok {
			b.WriteString(`<span class="` + class + `">` + escaped + `</span>`)
			continue
		}
		b.WriteString(escaped)
	}
	return b.String()
}

// escape only touches &, < and >, leaving quotes readable
func escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}
