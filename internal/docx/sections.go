package docx

import "github.com/beevik/etree"

// HeaderFooter is one header or footer part referenced by a section. Only
// parts a section explicitly references are returned; a variant with no
// reference inherits from the previous section and must not be processed
// again.
type HeaderFooter struct {
	PartName string
	IsHeader bool
	// Type is the reference type: "default", "first" or "even".
	Type string
	root *etree.Element
}

// Blocks returns the ordered paragraph/table sequence of the part.
func (hf *HeaderFooter) Blocks() []Block {
	return blocksOf(hf.root)
}

// Paragraphs returns the part's top-level paragraphs.
func (hf *HeaderFooter) Paragraphs() []*Paragraph {
	var paras []*Paragraph
	for _, b := range hf.Blocks() {
		if b.Kind == BlockParagraph {
			paras = append(paras, b.Paragraph)
		}
	}
	return paras
}

// Tables returns the part's top-level tables.
func (hf *HeaderFooter) Tables() []*Table {
	var tables []*Table
	for _, b := range hf.Blocks() {
		if b.Kind == BlockTable {
			tables = append(tables, b.Table)
		}
	}
	return tables
}

// HeaderFooters returns every header/footer part referenced by any section
// of the document. Each part appears once even when several sections
// reference it.
func (d *Document) HeaderFooters() []*HeaderFooter {
	body := d.Body()
	if body == nil {
		return nil
	}

	var result []*HeaderFooter
	seen := make(map[string]bool)

	for _, sectPr := range body.FindElements(".//w:sectPr") {
		for _, ref := range sectPr.ChildElements() {
			if ref.Space != "w" || (ref.Tag != "headerReference" && ref.Tag != "footerReference") {
				continue
			}
			id := ref.SelectAttrValue("r:id", "")
			partName, ok := d.rels[id]
			if !ok || seen[partName] {
				continue
			}
			part, ok := d.parts[partName]
			if !ok || part.Root() == nil {
				continue
			}
			seen[partName] = true
			result = append(result, &HeaderFooter{
				PartName: partName,
				IsHeader: ref.Tag == "headerReference",
				Type:     ref.SelectAttrValue("w:type", "default"),
				root:     part.Root(),
			})
		}
	}
	return result
}
