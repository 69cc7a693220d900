package editor

import (
	"math/rand/v2"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/brickyard/brickyard-cli/pkg/models"
)

// Options describes which property groups apply to a node and their current
// values
type Options struct {
	Layout  bool
	Columns int

	Link       bool
	LinkURL    string
	LinkTarget string

	Image    bool
	ImageURL string
	ImageAlt string

	ItemCount      bool
	ItemCountValue int

	Progress      bool
	ProgressValue int

	Accordion      bool
	AccordionCount int

	Texts []string
}

// OptionsFor inspects a node's content. Background, text color and spacing
// always apply and are not reported.
func OptionsFor(n *models.Node) Options {
	var o Options
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(n.Content))
	if err != nil {
		return o
	}
	body := doc.Find("body")

	if row, cols := rowColumns(body); row.Length() > 0 {
		o.Layout = true
		o.Columns = cols.Length()
	}
	if a := body.Find("a").First(); a.Length() > 0 {
		o.Link = true
		o.LinkURL = a.AttrOr("href", "#")
		o.LinkTarget = a.AttrOr("target", "_self")
	}
	if img := body.Find("img").First(); img.Length() > 0 {
		o.Image = true
		o.ImageURL = img.AttrOr("src", "")
		o.ImageAlt = img.AttrOr("alt", "")
	}

	switch n.Type {
	case "scroll-x", "scroll-cards":
		o.ItemCount = true
		o.ItemCountValue = orDefault(body.Find(".d-flex > div, .d-flex > .card").Length(), 4)
	case "nav-pills", "nav-tabs":
		o.ItemCount = true
		o.ItemCountValue = orDefault(body.Find(".nav-item").Length(), 4)
	case "list-group", "list-group-flush":
		o.ItemCount = true
		o.ItemCountValue = orDefault(body.Find(".list-group-item").Length(), 3)
	case "progress", "progress-striped":
		o.Progress = true
		o.ProgressValue = 50
		if pct, ok := progressOf(body); ok {
			o.ProgressValue = pct
		}
	case "accordion", "style-faq":
		o.Accordion = true
		o.AccordionCount = orDefault(body.Find(".accordion-item").Length(), 2)
	}

	for _, s := range editables(body) {
		o.Texts = append(o.Texts, strings.Join(strings.Fields(s.Text()), " "))
	}
	return o
}

// Options reports the property groups of the selected node
func (e *Editor) Options() (Options, bool) {
	n, ok := e.selected()
	if !ok {
		return Options{}, false
	}
	return OptionsFor(n), true
}

func orDefault(n, def int) int {
	if n == 0 {
		return def
	}
	return n
}

func randomSeed() int {
	return rand.IntN(1000)
}
