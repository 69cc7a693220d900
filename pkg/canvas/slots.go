package canvas

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/brickyard/brickyard-cli/pkg/models"
)

// SlotAttr marks the element inside a node's content that receives children
const SlotAttr = "data-slot"

// MainSlot is the slot key of every non-row container
const MainSlot = "main"

// ColumnSlot returns the slot key of the i-th column of a row
func ColumnSlot(i int) string {
	return "col-" + strconv.Itoa(i)
}

// ColumnIndex parses a column slot key. ok is false for non-column slots.
func ColumnIndex(slot string) (int, bool) {
	rest, found := strings.CutPrefix(slot, "col-")
	if !found {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

func parseFragment(content string) (*goquery.Document, *goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse markup: %w", err)
	}
	return doc, doc.Find("body"), nil
}

// AnnotateSlots marks the element(s) of content that children are appended
// to. The first matching rule wins:
//  1. a .container or .container-fluid
//  2. the direct columns of a .row, each as its own slot (its .p-3 child when present)
//  3. a .card-body
//  4. a section's inner .container
//  5. the first element
//
// Existing markers are replaced, so the call is idempotent.
func AnnotateSlots(content string) (string, error) {
	_, body, err := parseFragment(content)
	if err != nil {
		return "", err
	}
	body.Find("[" + SlotAttr + "]").RemoveAttr(SlotAttr)

	if c := body.Find(".container, .container-fluid").First(); c.Length() > 0 {
		c.SetAttr(SlotAttr, MainSlot)
	} else if row := body.Find(".row").First(); row.Length() > 0 && columns(row).Length() > 0 {
		columns(row).Each(func(i int, col *goquery.Selection) {
			target := col.ChildrenFiltered(".p-3").First()
			if target.Length() == 0 {
				target = col
			}
			target.SetAttr(SlotAttr, ColumnSlot(i))
		})
	} else if cb := body.Find(".card-body").First(); cb.Length() > 0 {
		cb.SetAttr(SlotAttr, MainSlot)
	} else if sc := body.Find("section .container").First(); sc.Length() > 0 {
		sc.SetAttr(SlotAttr, MainSlot)
	} else if first := body.Children().First(); first.Length() > 0 {
		first.SetAttr(SlotAttr, MainSlot)
	}

	return body.Html()
}

// AnnotateNestedSlots marks the single slot of a node placed inside another
// node: its .container or .container-fluid, otherwise its first element.
// Nested rows get no column slots.
func AnnotateNestedSlots(content string) (string, error) {
	_, body, err := parseFragment(content)
	if err != nil {
		return "", err
	}
	body.Find("[" + SlotAttr + "]").RemoveAttr(SlotAttr)

	if c := body.Find(".container, .container-fluid").First(); c.Length() > 0 {
		c.SetAttr(SlotAttr, MainSlot)
	} else if first := body.Children().First(); first.Length() > 0 {
		first.SetAttr(SlotAttr, MainSlot)
	}
	return body.Html()
}

// columns returns the direct column children of a row
func columns(row *goquery.Selection) *goquery.Selection {
	return row.ChildrenFiltered(`[class*="col"]`)
}

// Slots lists the slot keys present in content in document order, and the
// slot a drop lands in when no column is targeted: the last column of a row,
// otherwise the main slot.
func Slots(content string) (keys []string, def string) {
	_, body, err := parseFragment(content)
	if err != nil {
		return nil, ""
	}
	var cols []int
	body.Find("[" + SlotAttr + "]").Each(func(_ int, s *goquery.Selection) {
		key, _ := s.Attr(SlotAttr)
		if i, ok := ColumnIndex(key); ok {
			cols = append(cols, i)
			return
		}
		keys = append(keys, key)
	})
	if len(cols) > 0 {
		sort.Ints(cols)
		for _, i := range cols {
			keys = append(keys, ColumnSlot(i))
		}
		return keys, ColumnSlot(cols[len(cols)-1])
	}
	if len(keys) > 0 {
		return keys, keys[0]
	}
	return nil, ""
}

// HasSlot reports whether content carries the given slot marker
func HasSlot(content, slot string) bool {
	keys, _ := Slots(content)
	for _, k := range keys {
		if k == slot {
			return true
		}
	}
	return false
}

// RenderNode produces the export markup of a node: children are placed into
// their slots and slot markers are stripped.
func RenderNode(n *models.Node) (string, error) {
	_, body, err := parseFragment(n.Content)
	if err != nil {
		return "", err
	}
	for _, child := range n.Children {
		html, err := RenderNode(child)
		if err != nil {
			return "", err
		}
		target := body.Find(fmt.Sprintf(`[%s=%q]`, SlotAttr, child.Slot)).First()
		if target.Length() == 0 {
			continue
		}
		target.AppendHtml(html)
	}
	body.Find("[" + SlotAttr + "]").RemoveAttr(SlotAttr)
	out, err := body.Html()
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", n.ID, err)
	}
	return strings.TrimSpace(out), nil
}

// TextOf returns the visible text of content with whitespace collapsed
func TextOf(content string) string {
	_, body, err := parseFragment(content)
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(body.Text()), " ")
}
