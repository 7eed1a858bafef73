package docx

import "github.com/beevik/etree"

// Table wraps a w:tbl element.
type Table struct {
	elem *etree.Element
}

// Element returns the underlying XML element. Table identity (for the
// flowchart excluded-set) is the element pointer.
func (t *Table) Element() *etree.Element {
	return t.elem
}

// Rows returns the table rows in order.
func (t *Table) Rows() []*Row {
	var rows []*Row
	for _, child := range t.elem.ChildElements() {
		if child.Space == "w" && child.Tag == "tr" {
			rows = append(rows, &Row{elem: child})
		}
	}
	return rows
}

// Cells returns every cell of the table in row-major order.
func (t *Table) Cells() []*Cell {
	var cells []*Cell
	for _, row := range t.Rows() {
		cells = append(cells, row.Cells()...)
	}
	return cells
}

// CountTextboxes returns the number of textbox containers found anywhere
// within the table's cells. Dense diagram tables score high here.
func (t *Table) CountTextboxes() int {
	count := 0
	for _, cell := range t.Cells() {
		count += len(cell.Textboxes())
	}
	return count
}

// Clone deep-copies the table subtree and inserts the copy directly after
// ref. The original is not modified.
func (t *Table) Clone(ref *etree.Element) *Table {
	copied := t.elem.Copy()
	insertAfter(ref, copied)
	return &Table{elem: copied}
}

// Row wraps a w:tr element.
type Row struct {
	elem *etree.Element
}

// Cells returns the row's cells in order.
func (r *Row) Cells() []*Cell {
	var cells []*Cell
	for _, child := range r.elem.ChildElements() {
		if child.Space == "w" && child.Tag == "tc" {
			cells = append(cells, &Cell{elem: child})
		}
	}
	return cells
}

// Cell wraps a w:tc element.
type Cell struct {
	elem *etree.Element
}

// Paragraphs returns the cell's direct paragraphs in order. Paragraphs
// inside nested tables or textboxes are not included.
func (c *Cell) Paragraphs() []*Paragraph {
	var paras []*Paragraph
	for _, child := range c.elem.ChildElements() {
		if child.Space == "w" && child.Tag == "p" {
			paras = append(paras, &Paragraph{elem: child})
		}
	}
	return paras
}

// Textboxes returns every textbox container nested anywhere under the cell.
func (c *Cell) Textboxes() []*Textbox {
	var boxes []*Textbox
	for _, elem := range c.elem.FindElements(".//w:txbxContent") {
		boxes = append(boxes, &Textbox{elem: elem})
	}
	return boxes
}
