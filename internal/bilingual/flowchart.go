package bilingual

import (
	"context"
	"strings"

	"docx-translator/internal/detect"
	"docx-translator/internal/docx"
)

const (
	// flowchartFontHalfPoints is the run size forced inside translated
	// textboxes. English renderings run longer than the Chinese source, so
	// shapes keep their layout only with a fixed small size.
	flowchartFontHalfPoints = 11
	// flowchartLineExact is the exact line height (twentieths of a point)
	// forced on translated textbox paragraphs.
	flowchartLineExact = 130
)

// Cloner handles flowchart tables: a table dense with textboxes is never
// mutated in place; a clone placed after a page break carries the
// translation instead.
type Cloner struct {
	state     *DocumentState
	engine    Translator
	threshold int
}

// NewCloner returns a cloner using the given textbox-count threshold.
func NewCloner(state *DocumentState, engine Translator, threshold int) *Cloner {
	return &Cloner{state: state, engine: engine, threshold: threshold}
}

// IsFlowchartTable reports whether the table holds enough textboxes to be
// treated as a flowchart.
func (c *Cloner) IsFlowchartTable(tbl *docx.Table) bool {
	return tbl.CountTextboxes() >= c.threshold
}

// CloneAndTranslate records the original as excluded, inserts a page break
// after it, clones the table subtree after the break and translates only
// the clone. The original is never touched again.
func (c *Cloner) CloneAndTranslate(ctx context.Context, doc *docx.Document, tbl *docx.Table) {
	c.state.ExcludeTable(tbl.Element())

	pageBreak := doc.InsertPageBreakAfter(tbl.Element())
	clone := tbl.Clone(pageBreak)

	for _, cell := range clone.Cells() {
		for _, p := range cell.Paragraphs() {
			text := strings.TrimSpace(p.Text())
			if text == "" || !detect.HasChinese(text) {
				continue
			}
			translated := strings.TrimSpace(translate(ctx, c.engine, text))
			p.SetTextPreserveDrawing(translated)
		}
		for _, tb := range cell.Textboxes() {
			c.translateTextbox(ctx, tb)
		}
	}

	c.state.Result.FlowchartsCloned++
}

// TranslateRemainingTextboxes is the generic pass over every textbox in
// the document body. Textboxes inside an excluded flowchart original are
// skipped so the untranslated original survives next to its clone.
func (c *Cloner) TranslateRemainingTextboxes(ctx context.Context, doc *docx.Document) {
	for _, tb := range doc.Textboxes() {
		if c.state.IsExcludedTable(tb.EnclosingTable()) {
			continue
		}
		c.translateTextbox(ctx, tb)
	}
}

// translateTextbox rewrites every text node in place. Whenever a node held
// Chinese text, the whole textbox is normalized so the longer English
// rendering still fits its shape.
func (c *Cloner) translateTextbox(ctx context.Context, tb *docx.Textbox) {
	for _, node := range tb.TextNodes() {
		if strings.TrimSpace(node.Text()) == "" {
			continue
		}
		original := node.Text()
		translated := translate(ctx, c.engine, original)
		if translated != "" {
			node.SetText(translated)
		}
		if detect.HasChinese(original) {
			normalizeTextbox(tb)
		}
	}
}

// normalizeTextbox forces the fixed font size, exact line height and
// centered alignment on a translated textbox.
func normalizeTextbox(tb *docx.Textbox) {
	for _, r := range tb.Runs() {
		r.SetFontSize(flowchartFontHalfPoints)
	}
	for _, p := range tb.Paragraphs() {
		p.SetLineSpacing(flowchartLineExact)
		p.SetAlignment("center")
	}
}
