package docx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Paragraph wraps a w:p element.
type Paragraph struct {
	elem *etree.Element
}

// Element returns the underlying XML element. Used for identity comparisons
// and sibling insertion.
func (p *Paragraph) Element() *etree.Element {
	return p.elem
}

// Runs returns the paragraph's direct runs in order. Runs nested in drawings
// or textboxes are not included; those belong to the textbox passes.
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	for _, child := range p.elem.ChildElements() {
		if child.Space == "w" && child.Tag == "r" {
			runs = append(runs, &Run{elem: child})
		}
	}
	return runs
}

// Text returns the concatenated text of the paragraph's direct runs, with
// w:tab elements rendered as tab characters.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs() {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// HasDrawing reports whether any run of the paragraph carries an embedded
// drawing or picture.
func (p *Paragraph) HasDrawing() bool {
	for _, r := range p.Runs() {
		if r.HasDrawing() {
			return true
		}
	}
	return false
}

// HasPageBreak reports whether the paragraph contains a manual page
// break.
func (p *Paragraph) HasPageBreak() bool {
	for _, br := range p.elem.FindElements(".//w:br") {
		if br.SelectAttrValue("w:type", "") == "page" {
			return true
		}
	}
	return false
}

// ClearTextPreserveDrawing empties the text of every run that does not carry
// a drawing. Drawing-bearing runs are left untouched so embedded graphics
// survive the rewrite.
func (p *Paragraph) ClearTextPreserveDrawing() {
	for _, r := range p.Runs() {
		if !r.HasDrawing() {
			r.SetText("")
		}
	}
}

// SetTextPreserveDrawing clears all non-drawing runs and appends a new run
// holding text at the end of the paragraph.
func (p *Paragraph) SetTextPreserveDrawing(text string) {
	p.ClearTextPreserveDrawing()
	p.AppendTextRun(text)
}

// AppendTextRun appends a new run with the given text to the paragraph.
func (p *Paragraph) AppendTextRun(text string) *Run {
	r := p.elem.CreateElement("w:r")
	run := &Run{elem: r}
	run.SetText(text)
	return run
}

// InsertParagraphAfter creates a new empty paragraph directly after this one
// and returns it. Returns nil when the paragraph has no parent.
func (p *Paragraph) InsertParagraphAfter() *Paragraph {
	if p.elem.Parent() == nil {
		return nil
	}
	np := etree.NewElement("w:p")
	insertAfter(p.elem, np)
	return &Paragraph{elem: np}
}

// pPr returns the paragraph properties element, creating it as the first
// child when absent. w:pPr must precede the runs.
func (p *Paragraph) pPr() *etree.Element {
	if pr := p.elem.SelectElement("w:pPr"); pr != nil {
		return pr
	}
	pr := etree.NewElement("w:pPr")
	p.elem.InsertChildAt(0, pr)
	return pr
}

// Alignment returns the w:jc value of the paragraph, or "" when unset.
func (p *Paragraph) Alignment() string {
	pr := p.elem.SelectElement("w:pPr")
	if pr == nil {
		return ""
	}
	jc := pr.SelectElement("w:jc")
	if jc == nil {
		return ""
	}
	return jc.SelectAttrValue("w:val", "")
}

// SetAlignment sets the paragraph alignment ("left", "center", "right",
// "both").
func (p *Paragraph) SetAlignment(val string) {
	pr := p.pPr()
	jc := pr.SelectElement("w:jc")
	if jc == nil {
		jc = pr.CreateElement("w:jc")
	}
	jc.CreateAttr("w:val", val)
}

// SetLineSpacing sets exact line spacing in twentieths of a point.
func (p *Paragraph) SetLineSpacing(line int) {
	pr := p.pPr()
	spacing := pr.SelectElement("w:spacing")
	if spacing == nil {
		spacing = pr.CreateElement("w:spacing")
	}
	spacing.CreateAttr("w:line", strconv.Itoa(line))
	spacing.CreateAttr("w:lineRule", "exact")
}

// FirstRunFontSize returns the half-point font size of the first sized run,
// or 0 when no run declares a size.
func (p *Paragraph) FirstRunFontSize() int {
	for _, r := range p.Runs() {
		if sz := r.FontSize(); sz > 0 {
			return sz
		}
	}
	return 0
}

// RemoveStyleBinding drops the paragraph's w:pStyle so direct formatting is
// not overridden by the bound style. Used on header/footer paragraphs before
// resizing.
func (p *Paragraph) RemoveStyleBinding() {
	pr := p.elem.SelectElement("w:pPr")
	if pr == nil {
		return
	}
	if st := pr.SelectElement("w:pStyle"); st != nil {
		pr.RemoveChild(st)
	}
}

// Remove detaches the paragraph from its parent.
func (p *Paragraph) Remove() {
	parent := p.elem.Parent()
	if parent != nil {
		parent.RemoveChild(p.elem)
	}
}

// Run wraps a w:r element.
type Run struct {
	elem *etree.Element
}

// Element returns the underlying w:r element.
func (r *Run) Element() *etree.Element {
	return r.elem
}

// Text returns the text content of the run, with w:tab rendered as "\t".
func (r *Run) Text() string {
	var sb strings.Builder
	for _, child := range r.elem.ChildElements() {
		if child.Space != "w" {
			continue
		}
		switch child.Tag {
		case "t":
			sb.WriteString(child.Text())
		case "tab":
			sb.WriteString("\t")
		}
	}
	return sb.String()
}

// HasDrawing reports whether the run contains an embedded drawing or
// legacy picture element.
func (r *Run) HasDrawing() bool {
	if r.elem.FindElement(".//w:drawing") != nil {
		return true
	}
	return r.elem.FindElement(".//w:pict") != nil
}

// SetText writes text into the run's first w:t node, clears any extra text
// nodes, and creates a text node when none exists. Drawing children are
// never touched.
func (r *Run) SetText(text string) {
	var textNodes []*etree.Element
	for _, child := range r.elem.ChildElements() {
		if child.Space == "w" && child.Tag == "t" {
			textNodes = append(textNodes, child)
		}
	}
	if len(textNodes) == 0 {
		if text == "" {
			return
		}
		t := r.elem.CreateElement("w:t")
		setTextNode(t, text)
		return
	}
	setTextNode(textNodes[0], text)
	for _, extra := range textNodes[1:] {
		setTextNode(extra, "")
	}
}

// FontSize returns the run's w:sz value in half points, or 0 when unset.
func (r *Run) FontSize() int {
	pr := r.elem.SelectElement("w:rPr")
	if pr == nil {
		return 0
	}
	sz := pr.SelectElement("w:sz")
	if sz == nil {
		return 0
	}
	n, err := strconv.Atoi(sz.SelectAttrValue("w:val", ""))
	if err != nil {
		return 0
	}
	return n
}

// rPr returns the run properties element, creating it as the first child
// when absent.
func (r *Run) rPr() *etree.Element {
	if pr := r.elem.SelectElement("w:rPr"); pr != nil {
		return pr
	}
	pr := etree.NewElement("w:rPr")
	r.elem.InsertChildAt(0, pr)
	return pr
}

// SetFontSize sets the run font size in half points, keeping w:sz and
// w:szCs in sync.
func (r *Run) SetFontSize(halfPoints int) {
	pr := r.rPr()
	for _, tag := range []string{"w:sz", "w:szCs"} {
		elem := pr.SelectElement(tag)
		if elem == nil {
			elem = pr.CreateElement(tag)
		}
		elem.CreateAttr("w:val", strconv.Itoa(halfPoints))
	}
}

// ScaleFontSizes multiplies the run's w:sz, w:szCs and w:szFarEast values
// by ratio, never going below floor half points. Missing size elements are
// created from a 22 half-point base so the scaled size still applies.
func (r *Run) ScaleFontSizes(ratio float64, floor int) {
	pr := r.rPr()
	for _, tag := range []string{"w:sz", "w:szCs", "w:szFarEast"} {
		elem := pr.SelectElement(tag)
		if elem == nil {
			elem = etree.NewElement(tag)
			pr.InsertChildAt(0, elem)
		}
		base := 22
		if n, err := strconv.Atoi(elem.SelectAttrValue("w:val", "")); err == nil {
			base = n
		}
		scaled := int(float64(base) * ratio)
		if scaled < floor {
			scaled = floor
		}
		elem.CreateAttr("w:val", strconv.Itoa(scaled))
	}
}

// SetFonts sets the run's Latin, high-ANSI and complex-script fonts. When
// eastAsia is non-empty the East Asian font is set as well.
func (r *Run) SetFonts(latin, eastAsia string) {
	pr := r.rPr()
	fonts := pr.SelectElement("w:rFonts")
	if fonts == nil {
		fonts = etree.NewElement("w:rFonts")
		pr.InsertChildAt(0, fonts)
	}
	fonts.CreateAttr("w:ascii", latin)
	fonts.CreateAttr("w:hAnsi", latin)
	fonts.CreateAttr("w:cs", latin)
	if eastAsia != "" {
		fonts.CreateAttr("w:eastAsia", eastAsia)
	}
}

// setTextNode writes text into a w:t element, marking significant leading or
// trailing whitespace with xml:space="preserve" so Word keeps it.
func setTextNode(t *etree.Element, text string) {
	t.SetText(text)
	if text != strings.TrimSpace(text) {
		t.CreateAttr("xml:space", "preserve")
	}
}
