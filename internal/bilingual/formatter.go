package bilingual

import (
	"strings"

	"docx-translator/internal/detect"
	"docx-translator/internal/docx"
	"docx-translator/internal/types"
)

// tableFontFloorHalfPoints is the smallest size the table shrink pass will
// produce (10pt).
const tableFontFloorHalfPoints = 20

// Formatter applies the document-wide cosmetic passes that run after all
// translation: shrinking English-only table text, forcing the Latin font
// and removing leftover empty paragraphs.
type Formatter struct {
	cfg *types.Config
}

// NewFormatter returns a formatter bound to the run's configuration.
func NewFormatter(cfg *types.Config) *Formatter {
	return &Formatter{cfg: cfg}
}

// ShrinkTableEnglishFont scales down runs in table paragraphs that carry
// no Chinese text. Inserted translations run longer than the source, so
// tables stay readable only with slightly smaller English type.
func (f *Formatter) ShrinkTableEnglishFont(tbl *docx.Table) {
	for _, cell := range tbl.Cells() {
		for _, p := range cell.Paragraphs() {
			text := strings.TrimSpace(p.Text())
			if text == "" || detect.HasChinese(text) {
				continue
			}
			for _, r := range p.Runs() {
				if strings.TrimSpace(r.Text()) == "" {
					continue
				}
				r.ScaleFontSizes(f.cfg.TableEnglishFontRatio, tableFontFloorHalfPoints)
			}
		}
	}
}

// ForceLatinFont applies the configured Latin font to every run without
// Chinese text: body paragraphs, tables, headers and footers, and textbox
// runs.
func (f *Formatter) ForceLatinFont(doc *docx.Document) {
	for _, p := range doc.Paragraphs() {
		f.forceParagraphFont(p)
	}
	for _, tbl := range doc.Tables() {
		f.forceTableFont(tbl)
	}
	for _, hf := range doc.HeaderFooters() {
		for _, p := range hf.Paragraphs() {
			f.forceParagraphFont(p)
		}
		for _, tbl := range hf.Tables() {
			f.forceTableFont(tbl)
		}
	}
	for _, tb := range doc.Textboxes() {
		for _, r := range tb.Runs() {
			f.forceRunFont(r)
		}
	}
}

func (f *Formatter) forceTableFont(tbl *docx.Table) {
	for _, cell := range tbl.Cells() {
		for _, p := range cell.Paragraphs() {
			f.forceParagraphFont(p)
		}
	}
}

func (f *Formatter) forceParagraphFont(p *docx.Paragraph) {
	for _, r := range p.Runs() {
		f.forceRunFont(r)
	}
}

func (f *Formatter) forceRunFont(r *docx.Run) {
	text := strings.TrimSpace(r.Text())
	if text == "" || detect.HasChinese(text) {
		return
	}
	r.SetFonts(f.cfg.DefaultFont, "")
}

// RemoveEmptyParagraphs deletes body paragraphs that hold neither text
// nor a drawing. Paragraphs carrying a manual page break stay, they
// separate flowchart originals from their clones.
func (f *Formatter) RemoveEmptyParagraphs(doc *docx.Document) {
	for _, p := range doc.Paragraphs() {
		if strings.TrimSpace(p.Text()) == "" && !p.HasDrawing() && !p.HasPageBreak() {
			p.Remove()
		}
	}
}
