package docx

import "github.com/beevik/etree"

// Textbox wraps a w:txbxContent element: the block container nested inside
// a drawing.
type Textbox struct {
	elem *etree.Element
}

// TextNodes returns every w:t node inside the textbox in document order.
func (tb *Textbox) TextNodes() []*TextNode {
	var nodes []*TextNode
	for _, elem := range tb.elem.FindElements(".//w:t") {
		nodes = append(nodes, &TextNode{elem: elem})
	}
	return nodes
}

// Runs returns every run inside the textbox.
func (tb *Textbox) Runs() []*Run {
	var runs []*Run
	for _, elem := range tb.elem.FindElements(".//w:r") {
		runs = append(runs, &Run{elem: elem})
	}
	return runs
}

// Paragraphs returns every paragraph inside the textbox.
func (tb *Textbox) Paragraphs() []*Paragraph {
	var paras []*Paragraph
	for _, elem := range tb.elem.FindElements(".//w:p") {
		paras = append(paras, &Paragraph{elem: elem})
	}
	return paras
}

// EnclosingTable returns the nearest w:tbl ancestor of the textbox, or nil
// when the textbox floats outside any table.
func (tb *Textbox) EnclosingTable() *etree.Element {
	parent := tb.elem.Parent()
	for parent != nil {
		if parent.Space == "w" && parent.Tag == "tbl" {
			return parent
		}
		parent = parent.Parent()
	}
	return nil
}

// TextNode wraps a single w:t element for direct text replacement inside
// textboxes.
type TextNode struct {
	elem *etree.Element
}

// Text returns the node's text content.
func (n *TextNode) Text() string {
	return n.elem.Text()
}

// SetText replaces the node's text content.
func (n *TextNode) SetText(text string) {
	setTextNode(n.elem, text)
}
