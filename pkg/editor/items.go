package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/brickyard/brickyard-cli/pkg/models"
)

var scrollColors = []string{"bg-primary", "bg-success", "bg-info", "bg-warning", "bg-danger", "bg-secondary"}

// SetItemCount grows or shrinks the repeated items of scrollers, navs and
// list groups
func (e *Editor) SetItemCount(count int) bool {
	if count < 1 {
		return false
	}
	changed := e.apply(func(n *models.Node, body *goquery.Selection) bool {
		switch n.Type {
		case "scroll-x":
			box := body.Find(".d-flex").First()
			if box.Length() == 0 {
				return false
			}
			items := box.ChildrenFiltered("div")
			for i := items.Length(); i < count; i++ {
				class := "p-4 " + scrollColors[i%len(scrollColors)]
				if i%6 <= 2 {
					class += " text-white"
				}
				box.AppendHtml(fmt.Sprintf(`<div class="%s rounded">Item %d</div>`, class, i+1))
			}
			trim(items, count)
		case "scroll-cards":
			box := body.Find(".d-flex").First()
			if box.Length() == 0 {
				return false
			}
			cards := box.Find(".card")
			for i := cards.Length(); i < count; i++ {
				box.AppendHtml(fmt.Sprintf(`<div class="card flex-shrink-0" style="width: 250px;">`+
					`<img src="%s" class="card-img-top" alt="Card">`+
					`<div class="card-body"><h6 class="card-title">Card %d</h6></div></div>`,
					PicsumURL(e.Seed(), 250, 150), i+1))
			}
			trim(cards, count)
		case "nav-pills", "nav-tabs":
			nav := body.Find(".nav").First()
			if nav.Length() == 0 {
				return false
			}
			items := nav.Find(".nav-item")
			for i := items.Length(); i < count; i++ {
				nav.AppendHtml(fmt.Sprintf(`<li class="nav-item"><a class="nav-link" href="#">Tab %d</a></li>`, i+1))
			}
			trim(items, count)
		case "list-group", "list-group-flush":
			list := body.Find(".list-group").First()
			if list.Length() == 0 {
				return false
			}
			items := list.Find(".list-group-item")
			for i := items.Length(); i < count; i++ {
				list.AppendHtml(fmt.Sprintf(`<li class="list-group-item">Item %d</li>`, i+1))
			}
			trim(items, count)
		default:
			return false
		}
		return true
	})
	if changed {
		e.host.Notifier().Success("Updated", fmt.Sprintf("Item count set to %d", count))
	}
	return changed
}

// trim removes the items past count
func trim(items *goquery.Selection, count int) {
	if items.Length() > count {
		items.Slice(count, items.Length()).Remove()
	}
}

// SetProgress sets every progress bar of the node to pct percent
func (e *Editor) SetProgress(pct int) bool {
	if pct < 0 {
		pct = 0
	} else if pct > 100 {
		pct = 100
	}
	return e.apply(func(_ *models.Node, body *goquery.Selection) bool {
		bars := body.Find(".progress-bar")
		bars.Each(func(_ int, bar *goquery.Selection) {
			setStyle(bar, "width", fmt.Sprintf("%d%%", pct))
			bar.SetText(fmt.Sprintf("%d%%", pct))
		})
		return bars.Length() > 0
	})
}

// SetAccordionCount grows or shrinks the accordion of the node
func (e *Editor) SetAccordionCount(count int) bool {
	if count < 1 {
		return false
	}
	changed := e.apply(func(_ *models.Node, body *goquery.Selection) bool {
		acc := body.Find(".accordion").First()
		if acc.Length() == 0 {
			return false
		}
		id, ok := acc.Attr("id")
		if !ok || id == "" {
			id = "acc" + strconv.Itoa(e.Seed())
			acc.SetAttr("id", id)
		}
		items := acc.ChildrenFiltered(".accordion-item")
		for i := items.Length(); i < count; i++ {
			itemID := fmt.Sprintf("collapse%s%d", id, i)
			acc.AppendHtml(fmt.Sprintf(`<div class="accordion-item">`+
				`<h2 class="accordion-header"><button class="accordion-button collapsed" type="button" data-bs-toggle="collapse" data-bs-target="#%s">Item #%d</button></h2>`+
				`<div id="%s" class="accordion-collapse collapse" data-bs-parent="#%s"><div class="accordion-body">Content for item %d.</div></div>`+
				`</div>`, itemID, i+1, itemID, id, i+1))
		}
		trim(items, count)
		return true
	})
	if changed {
		e.host.Notifier().Success("Updated", fmt.Sprintf("Accordion now has %d items", count))
	}
	return changed
}

// progressOf reads the width of the first progress bar
func progressOf(body *goquery.Selection) (int, bool) {
	bar := body.Find(".progress-bar").First()
	if bar.Length() == 0 {
		return 0, false
	}
	w := strings.TrimSuffix(styleValue(bar, "width"), "%")
	pct, err := strconv.Atoi(w)
	if err != nil {
		return 50, true
	}
	return pct, true
}
