// Package editor mutates the content of the selected canvas node: text,
// colors, spacing, columns, links, images and per-component item counts.
package editor

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"

	"github.com/brickyard/brickyard-cli/pkg/canvas"
	"github.com/brickyard/brickyard-cli/pkg/logger"
	"github.com/brickyard/brickyard-cli/pkg/models"
)

// Host is what the editor needs from the placement engine
type Host interface {
	Canvas() *canvas.Canvas
	Commit()
	Notifier() canvas.Notifier
}

// Editor applies property changes to the selected node. Every change that
// touches the content commits one history entry.
type Editor struct {
	host Host
	log  logger.Logger
	// Seed picks picsum seeds for new images and fresh accordion ids
	Seed func() int
}

func New(host Host, log logger.Logger) *Editor {
	if log == nil {
		log = logger.NewNop()
	}
	return &Editor{host: host, log: log, Seed: randomSeed}
}

// selected returns the selected node when it is live
func (e *Editor) selected() (*models.Node, bool) {
	c := e.host.Canvas()
	loc, ok := c.Find(c.SelectedID())
	if !ok || loc.Exiting() {
		return nil, false
	}
	return loc.Node, true
}

// apply parses the selected node's content, runs fn and stores the result
// when fn reports a change and the markup actually differs.
func (e *Editor) apply(fn func(n *models.Node, body *goquery.Selection) bool) bool {
	n, ok := e.selected()
	if !ok {
		return false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(n.Content))
	if err != nil {
		e.log.WithField("id", n.ID).Warn(fmt.Sprintf("failed to parse content: %v", err))
		return false
	}
	body := doc.Find("body")
	before, _ := body.Html()
	children := len(n.Children)
	if !fn(n, body) {
		return false
	}
	out, err := body.Html()
	if err != nil {
		e.log.WithField("id", n.ID).Warn(fmt.Sprintf("failed to render content: %v", err))
		return false
	}
	if out == before && len(n.Children) == children {
		return false
	}
	n.Content = strings.TrimSpace(out)
	e.host.Commit()
	return true
}

func first(body *goquery.Selection) *goquery.Selection {
	return body.Children().First()
}

// editables lists the in-place editable text elements of content in
// selector order. Elements wrapping other editable elements, form controls
// and icon-only elements are skipped.
func editables(body *goquery.Selection) []*goquery.Selection {
	all := strings.Join(canvas.EditableSelectors, ",")
	seen := map[*xhtml.Node]bool{}
	var out []*goquery.Selection
	for _, sel := range canvas.EditableSelectors {
		body.Find(sel).Each(func(_ int, s *goquery.Selection) {
			node := s.Get(0)
			if seen[node] {
				return
			}
			if s.Find(all).Length() > 0 {
				return
			}
			if s.Is("input, textarea, select") {
				return
			}
			if (s.HasClass("bi") || s.Find(".bi").Length() > 0) && strings.TrimSpace(s.Text()) == "" {
				return
			}
			seen[node] = true
			out = append(out, s)
		})
	}
	return out
}

// EditableTexts returns the current text of each editable element of the
// selected node
func (e *Editor) EditableTexts() []string {
	n, ok := e.selected()
	if !ok {
		return nil
	}
	return EditableTexts(n.Content)
}

// EditableTexts returns the text of each editable element of content
func EditableTexts(content string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil
	}
	var out []string
	for _, s := range editables(doc.Find("body")) {
		out = append(out, strings.Join(strings.Fields(s.Text()), " "))
	}
	return out
}

// SetText replaces the text of the index-th editable element. Icons inside
// the element are kept.
func (e *Editor) SetText(index int, text string) bool {
	return e.apply(func(_ *models.Node, body *goquery.Selection) bool {
		els := editables(body)
		if index < 0 || index >= len(els) {
			return false
		}
		el := els[index]
		var icons []string
		el.Find(".bi").Each(func(_ int, i *goquery.Selection) {
			if h, err := goquery.OuterHtml(i); err == nil {
				icons = append(icons, h)
			}
		})
		if len(icons) == 0 {
			el.SetText(text)
			return true
		}
		el.SetHtml(strings.Join(icons, "") + " " + html.EscapeString(text))
		return true
	})
}

// SetBackground sets a solid background on the first element
func (e *Editor) SetBackground(color string) bool {
	return e.apply(func(_ *models.Node, body *goquery.Selection) bool {
		el := first(body)
		if el.Length() == 0 {
			return false
		}
		setStyle(el, "background", color)
		removeClassPrefix(el, "bg-")
		return true
	})
}

// SetTransparent clears the background of the first element
func (e *Editor) SetTransparent() bool {
	return e.SetBackground("transparent")
}

// SetGradient sets a diagonal two-stop gradient on the first element
func (e *Editor) SetGradient(from, to string) bool {
	return e.apply(func(_ *models.Node, body *goquery.Selection) bool {
		el := first(body)
		if el.Length() == 0 {
			return false
		}
		setStyle(el, "background", fmt.Sprintf("linear-gradient(135deg, %s 0%%, %s 100%%)", from, to))
		return true
	})
}

// SetTextColor colors the first element and its text descendants
func (e *Editor) SetTextColor(color string) bool {
	return e.apply(func(_ *models.Node, body *goquery.Selection) bool {
		el := first(body)
		if el.Length() == 0 {
			return false
		}
		setStyle(el, "color", color)
		el.Find("h1,h2,h3,h4,h5,h6,p,span,a,li").Each(func(_ int, s *goquery.Selection) {
			setStyle(s, "color", color)
		})
		removeClassPrefix(el, "text-")
		return true
	})
}

// Spacing kinds for SetSpacing
const (
	Padding = "padding"
	Margin  = "margin"
)

// SetSpacing swaps the p-N or my-N utility class of the first element. An
// empty value only removes the old class.
func (e *Editor) SetSpacing(kind, value string) bool {
	prefix := "my-"
	if kind == Padding {
		prefix = "p-"
	} else if kind != Margin {
		return false
	}
	return e.apply(func(_ *models.Node, body *goquery.Selection) bool {
		el := first(body)
		if el.Length() == 0 {
			return false
		}
		removeClasses(el, func(c string) bool {
			rest, ok := strings.CutPrefix(c, prefix)
			return ok && len(rest) == 1 && rest[0] >= '0' && rest[0] <= '9'
		})
		if value != "" {
			el.AddClass(value)
		}
		return true
	})
}

// SetLinkURL points every link of the node at url
func (e *Editor) SetLinkURL(url string) bool {
	return e.apply(func(_ *models.Node, body *goquery.Selection) bool {
		links := body.Find("a")
		links.SetAttr("href", url)
		return links.Length() > 0
	})
}

// SetLinkTarget opens links in a new tab for "_blank" and in place otherwise
func (e *Editor) SetLinkTarget(target string) bool {
	return e.apply(func(_ *models.Node, body *goquery.Selection) bool {
		links := body.Find("a")
		if target == "_blank" {
			links.SetAttr("target", "_blank")
			links.SetAttr("rel", "noopener noreferrer")
		} else {
			links.RemoveAttr("target")
			links.RemoveAttr("rel")
		}
		return links.Length() > 0
	})
}

// SetImageURL changes the source of every image of the node
func (e *Editor) SetImageURL(url string) bool {
	return e.apply(func(_ *models.Node, body *goquery.Selection) bool {
		imgs := body.Find("img")
		imgs.SetAttr("src", url)
		return imgs.Length() > 0
	})
}

func (e *Editor) SetImageAlt(alt string) bool {
	return e.apply(func(_ *models.Node, body *goquery.Selection) bool {
		imgs := body.Find("img")
		imgs.SetAttr("alt", alt)
		return imgs.Length() > 0
	})
}

// PicsumURL returns the placeholder image for a seed
func PicsumURL(seed, width, height int) string {
	return fmt.Sprintf("https://picsum.photos/seed/%d/%d/%d", seed, width, height)
}

// RandomImage replaces every image of the node with a picsum placeholder
func (e *Editor) RandomImage(seed int) bool {
	return e.SetImageURL(PicsumURL(seed, 800, 400))
}

// setStyle sets one declaration of the inline style, keeping the others
func setStyle(s *goquery.Selection, prop, value string) {
	style, _ := s.Attr("style")
	var decls []string
	found := false
	for _, d := range strings.Split(style, ";") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		name, _, _ := strings.Cut(d, ":")
		if strings.TrimSpace(name) == prop {
			if !found {
				decls = append(decls, prop+": "+value)
				found = true
			}
			continue
		}
		decls = append(decls, d)
	}
	if !found {
		decls = append(decls, prop+": "+value)
	}
	s.SetAttr("style", strings.Join(decls, "; ")+";")
}

// styleValue returns one declaration of the inline style
func styleValue(s *goquery.Selection, prop string) string {
	style, _ := s.Attr("style")
	for _, d := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(d, ":")
		if ok && strings.TrimSpace(name) == prop {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func removeClassPrefix(s *goquery.Selection, prefix string) {
	removeClasses(s, func(c string) bool { return strings.HasPrefix(c, prefix) })
}

func removeClasses(s *goquery.Selection, drop func(string) bool) {
	class, ok := s.Attr("class")
	if !ok {
		return
	}
	var keep []string
	for _, c := range strings.Fields(class) {
		if !drop(c) {
			keep = append(keep, c)
		}
	}
	s.SetAttr("class", strings.Join(keep, " "))
}
