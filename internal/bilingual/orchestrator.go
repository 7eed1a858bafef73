package bilingual

import (
	"context"
	"strings"

	"docx-translator/internal/detect"
	"docx-translator/internal/docx"
	"docx-translator/internal/grouping"
	"docx-translator/internal/logger"
	"docx-translator/internal/types"
)

// Translator produces the English rendering of one string. Implementations
// must leave non-Chinese input unchanged.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Orchestrator runs the full bilingual rewrite over one document: the
// grouping analysis pass, the paragraph and table mutation pass, flowchart
// cloning, the header/footer and textbox passes, then the cosmetic passes.
type Orchestrator struct {
	state  *DocumentState
	engine Translator
	cfg    *types.Config

	// body paragraphs captured before any mutation; group member indices
	// refer to this slice
	paras []*docx.Paragraph
}

// NewOrchestrator wires an orchestrator for one document run.
func NewOrchestrator(state *DocumentState, engine Translator, cfg *types.Config) *Orchestrator {
	return &Orchestrator{state: state, engine: engine, cfg: cfg}
}

// translate returns the engine's rendering of text, keeping the original
// on failure. Translation never aborts a document.
func translate(ctx context.Context, engine Translator, text string) string {
	translated, err := engine.Translate(ctx, text)
	if err != nil {
		logger.Warn("translation soft-failed, keeping original text", logger.Err(err))
		return text
	}
	return translated
}

// Run executes every pass in order. Analysis completes before the first
// mutation so group membership is computed from pristine indices.
func (o *Orchestrator) Run(ctx context.Context, doc *docx.Document) {
	o.paras = doc.Paragraphs()

	engine := grouping.NewEngine()
	for i, p := range o.paras {
		text := p.Text()
		if strings.TrimSpace(text) != "" && detect.HasChinese(text) {
			engine.Observe(i, text)
		}
	}
	o.state.Groups = engine.Finalize()
	logger.Info("paragraph analysis complete",
		logger.Int("paragraphs", len(o.paras)), logger.Int("groups", len(o.state.Groups)))

	for i, p := range o.paras {
		if strings.TrimSpace(p.Text()) == "" {
			continue
		}
		o.translateParagraph(ctx, p, i)
	}

	cloner := NewCloner(o.state, o.engine, o.cfg.FlowchartTextboxThreshold)
	for _, tbl := range doc.Tables() {
		if cloner.IsFlowchartTable(tbl) {
			logger.Info("flowchart table detected, cloning",
				logger.Int("textboxes", tbl.CountTextboxes()))
			cloner.CloneAndTranslate(ctx, doc, tbl)
		} else {
			o.translateTable(ctx, tbl)
		}
	}

	o.translateHeaderFooters(ctx, doc)
	cloner.TranslateRemainingTextboxes(ctx, doc)

	formatter := NewFormatter(o.cfg)
	for _, tbl := range doc.Tables() {
		formatter.ShrinkTableEnglishFont(tbl)
	}
	for _, hf := range doc.HeaderFooters() {
		for _, tbl := range hf.Tables() {
			formatter.ShrinkTableEnglishFont(tbl)
		}
	}
	formatter.ForceLatinFont(doc)
	formatter.RemoveEmptyParagraphs(doc)
}

// translateParagraph dispatches one body paragraph: skipped when it is a
// non-seed group member, merged when it seeds a group, otherwise handled
// standalone.
func (o *Orchestrator) translateParagraph(ctx context.Context, p *docx.Paragraph, index int) {
	if !detect.HasChinese(p.Text()) {
		return
	}

	group, isSeed := o.state.GroupFor(index)
	if group != nil && !isSeed {
		// Cleared when the group's seed is processed.
		return
	}
	if group != nil {
		o.translateGroup(ctx, p, group)
		return
	}
	o.translateStandalone(ctx, p)
}

// translateGroup rewrites the seed paragraph with the group's merged text,
// inserts the translation below it and clears the remaining members.
func (o *Orchestrator) translateGroup(ctx context.Context, seed *docx.Paragraph, g *grouping.Group) {
	merged := g.MergedText
	indent := detect.IndentPrefix(seed.Text())

	if seed.HasDrawing() {
		seed.SetTextPreserveDrawing(merged)
	} else {
		seed.SetTextPreserveDrawing(indent + merged)
	}

	pure := detect.StripNumbering(merged, g.Members[0].NumberingPrefix)
	translated := strings.TrimSpace(translate(ctx, o.engine, pure))
	o.insertEnglishBelow(seed, indent+translated, 0, "")

	for _, m := range g.Members[1:] {
		if m.Index < len(o.paras) {
			o.paras[m.Index].ClearTextPreserveDrawing()
		}
	}

	o.state.MarkConsumed(g.ID)
	o.state.Result.ParagraphsMerged++
}

// translateStandalone handles an ungrouped paragraph. A label ending in a
// bare colon is rewritten in place; everything else gets a translated
// sibling below.
func (o *Orchestrator) translateStandalone(ctx context.Context, p *docx.Paragraph) {
	raw := p.Text()
	trimmed := strings.TrimSpace(raw)
	indent := detect.IndentPrefix(raw)

	cp := detect.ClassifyColon(trimmed)
	if cp.HasColon && !cp.HasContent {
		translated := strings.TrimSpace(translate(ctx, o.engine, cp.Label))
		p.SetTextPreserveDrawing(indent + cp.Label + "(" + translated + ")" + detect.ColonChar(raw))
		return
	}

	prefix := detect.NumberingPrefixLoose(trimmed)
	pure := detect.StripNumbering(trimmed, prefix)
	translated := strings.TrimSpace(translate(ctx, o.engine, pure))
	o.insertEnglishBelow(p, indent+translated, 0, "")
}

// translateTable walks every cell. A cell holding several Chinese
// paragraphs where at least one is numbered translates as one merged unit;
// any other qualifying paragraph goes through the standalone path.
func (o *Orchestrator) translateTable(ctx context.Context, tbl *docx.Table) {
	for _, cell := range tbl.Cells() {
		var chinese []*docx.Paragraph
		for _, p := range cell.Paragraphs() {
			if strings.TrimSpace(p.Text()) != "" && detect.HasChinese(p.Text()) {
				chinese = append(chinese, p)
			}
		}
		if len(chinese) == 0 {
			continue
		}

		numbered := false
		for _, p := range chinese {
			if detect.NumberingPrefix(strings.TrimSpace(p.Text())) != "" {
				numbered = true
				break
			}
		}

		if numbered && len(chinese) > 1 {
			o.translateNumberedCell(ctx, chinese)
		} else {
			for _, p := range chinese {
				o.translateStandalone(ctx, p)
			}
		}
	}
}

// translateNumberedCell merges a cell's numbered items into one string,
// translates it once and re-splits the result on sentence boundaries,
// re-attaching the original item numbers positionally. Excess segments are
// appended unlabeled; a shortfall drops numbering for the unmatched tail.
func (o *Orchestrator) translateNumberedCell(ctx context.Context, paras []*docx.Paragraph) {
	items := make([]string, 0, len(paras))
	numbers := make([]string, 0, len(paras))
	for _, p := range paras {
		trimmed := strings.TrimSpace(p.Text())
		prefix := detect.NumberingPrefix(trimmed)
		items = append(items, detect.StripNumbering(trimmed, prefix))
		numbers = append(numbers, prefix)
	}

	merged := strings.Join(items, " ")
	translated := translate(ctx, o.engine, merged)

	var parts []string
	for _, part := range strings.Split(translated, ".") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}

	var lines []string
	for i, num := range numbers {
		if i >= len(parts) {
			break
		}
		if num != "" {
			lines = append(lines, num+"."+parts[i])
		} else {
			lines = append(lines, parts[i])
		}
	}
	if len(parts) > len(numbers) {
		lines = append(lines, parts[len(numbers):]...)
	}

	o.insertEnglishBelow(paras[len(paras)-1], strings.Join(lines, "\n"), 0, "")
}

// insertEnglishBelow appends a translated sibling paragraph directly after
// p. sizePts zero inherits the seed's first-run size or falls back to the
// configured default; an empty alignment inherits p's alignment.
func (o *Orchestrator) insertEnglishBelow(p *docx.Paragraph, text string, sizePts float64, alignment string) {
	eng := p.InsertParagraphAfter()
	if eng == nil {
		// Detached paragraphs have no parent to host a sibling.
		return
	}

	if alignment == "" {
		if a := p.Alignment(); a != "" {
			alignment = a
		} else {
			alignment = "left"
		}
	}
	eng.SetAlignment(alignment)

	run := eng.AppendTextRun(text)
	run.SetFonts(o.cfg.DefaultFont, o.cfg.DefaultFont)
	switch {
	case sizePts > 0:
		run.SetFontSize(int(sizePts * 2))
	case p.FirstRunFontSize() > 0:
		run.SetFontSize(p.FirstRunFontSize())
	default:
		run.SetFontSize(int(o.cfg.DefaultFontSize * 2))
	}

	o.state.Result.ParagraphsInserted++
}
