package bilingual

import (
	"context"
	"strings"

	"docx-translator/internal/detect"
	"docx-translator/internal/docx"
)

// translateHeaderFooters processes every header and footer part actually
// referenced by a section. Parts inherited from the previous section never
// appear in the enumeration, so inherited content is translated only once.
func (o *Orchestrator) translateHeaderFooters(ctx context.Context, doc *docx.Document) {
	for _, hf := range doc.HeaderFooters() {
		for _, p := range hf.Paragraphs() {
			text := strings.TrimSpace(p.Text())
			if text == "" || !detect.HasChinese(text) {
				continue
			}
			setChineseRunSizes(p, int(o.cfg.HeaderFooterChineseSize*2))
			translated := strings.TrimSpace(translate(ctx, o.engine, p.Text()))
			if translated != "" {
				o.insertEnglishBelow(p, translated, o.cfg.HeaderFooterEnglishSize, "center")
			}
		}

		for _, tbl := range hf.Tables() {
			// The same text repeats across merged header cells; translate
			// each distinct string once per table.
			seen := make(map[string]bool)
			for _, cell := range tbl.Cells() {
				for _, p := range cell.Paragraphs() {
					text := strings.TrimSpace(p.Text())
					if text == "" || !detect.HasChinese(text) {
						continue
					}
					setChineseRunSizes(p, int(o.cfg.HeaderFooterChineseSize*2))
					if seen[text] {
						continue
					}
					translated := strings.TrimSpace(translate(ctx, o.engine, p.Text()))
					if translated != "" {
						o.insertEnglishBelow(p, translated, o.cfg.TableHeaderEnglishSize, "center")
						seen[text] = true
					}
				}
			}
		}
	}
}

// setChineseRunSizes sets the font size on runs that carry Chinese text,
// leaving other runs alone. The style binding is dropped first so the
// direct size is not fighting the part's bound style.
func setChineseRunSizes(p *docx.Paragraph, halfPoints int) {
	p.RemoveStyleBinding()
	for _, r := range p.Runs() {
		if detect.HasChinese(r.Text()) {
			r.SetFontSize(halfPoints)
		}
	}
}
