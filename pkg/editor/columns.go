package editor

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/brickyard/brickyard-cli/pkg/canvas"
	"github.com/brickyard/brickyard-cli/pkg/models"
)

var colClassRe = regexp.MustCompile(`col(-\w+)?(-\d+)?`)

const defaultColClass = "col-md-4"

func rowColumns(body *goquery.Selection) (*goquery.Selection, *goquery.Selection) {
	row := body.Find(".row").First()
	return row, row.ChildrenFiltered(`[class*="col"]`)
}

// AddColumn appends a column to the node's row, reusing the class of the
// existing columns
func (e *Editor) AddColumn() bool {
	changed := e.apply(func(n *models.Node, body *goquery.Selection) bool {
		row, cols := rowColumns(body)
		if row.Length() == 0 {
			return false
		}
		class := defaultColClass
		if cols.Length() > 0 {
			existing, _ := cols.First().Attr("class")
			if m := colClassRe.FindString(existing); m != "" {
				class = m
			}
		}
		// only top-level rows expose their columns as slots
		marker := ""
		if !n.Nested {
			marker = ` ` + canvas.SlotAttr + `="` + canvas.ColumnSlot(cols.Length()) + `"`
		}
		row.AppendHtml(`<div class="` + class + `"><div class="p-3 border rounded bg-light"` +
			marker + `>New Column</div></div>`)
		return true
	})
	if changed {
		e.host.Canvas().BindTree()
	}
	return changed
}

// RemoveColumn drops the last column of the node's row together with the
// components placed in it. A row always keeps one column.
func (e *Editor) RemoveColumn() bool {
	changed := e.apply(func(n *models.Node, body *goquery.Selection) bool {
		_, cols := rowColumns(body)
		if cols.Length() <= 1 {
			return false
		}
		last := cols.Length() - 1
		cols.Eq(last).Remove()

		slot := canvas.ColumnSlot(last)
		kept := n.Children[:0:0]
		for _, child := range n.Children {
			if child.Slot != slot {
				kept = append(kept, child)
			}
		}
		n.Children = kept
		return true
	})
	if changed {
		e.host.Canvas().BindTree()
	}
	return changed
}
