// Package docx exposes the structured-document object model the translation
// passes operate on: an ordered block sequence of paragraphs and tables,
// header/footer parts, and the in-place mutations (text replacement, sibling
// insertion, subtree cloning) the bilingual rewrite needs. The package owns
// the zip container and the XML trees; callers never see raw parts except
// through the wrapper types.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/beevik/etree"
)

const (
	documentPart = "word/document.xml"
	documentRels = "word/_rels/document.xml.rels"
)

// zipEntry is a raw archive member carried through verbatim on save unless
// it is one of the parsed XML parts.
type zipEntry struct {
	name string
	data []byte
}

// Document is an opened .docx container. The main document part and every
// header/footer part are parsed into XML trees; all other members are kept
// as raw bytes and written back unchanged.
type Document struct {
	entries []zipEntry
	parts   map[string]*etree.Document // part name -> parsed tree
	rels    map[string]string          // relationship id -> part name
}

// Open reads and parses a .docx file.
func Open(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading docx file: %w", err)
	}
	return OpenBytes(data)
}

// OpenBytes parses a .docx archive held in memory.
func OpenBytes(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening docx archive: %w", err)
	}

	d := &Document{
		parts: make(map[string]*etree.Document),
		rels:  make(map[string]string),
	}

	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening archive member %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading archive member %s: %w", f.Name, err)
		}
		d.entries = append(d.entries, zipEntry{name: f.Name, data: content})
	}

	if err := d.parsePart(documentPart); err != nil {
		return nil, err
	}
	for _, e := range d.entries {
		if isHeaderFooterPart(e.name) {
			if err := d.parsePart(e.name); err != nil {
				return nil, err
			}
		}
	}
	if err := d.parseRelationships(); err != nil {
		return nil, err
	}

	if d.Body() == nil {
		return nil, fmt.Errorf("document has no body element")
	}
	return d, nil
}

func isHeaderFooterPart(name string) bool {
	base := path.Base(name)
	return path.Dir(name) == "word" &&
		(strings.HasPrefix(base, "header") || strings.HasPrefix(base, "footer")) &&
		strings.HasSuffix(base, ".xml")
}

func (d *Document) parsePart(name string) error {
	raw := d.rawEntry(name)
	if raw == nil {
		return fmt.Errorf("docx part %s not found", name)
	}
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(raw); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	d.parts[name] = tree
	return nil
}

func (d *Document) parseRelationships() error {
	raw := d.rawEntry(documentRels)
	if raw == nil {
		// No relationships part means no headers/footers to resolve.
		return nil
	}
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(raw); err != nil {
		return fmt.Errorf("parsing %s: %w", documentRels, err)
	}
	root := tree.Root()
	if root == nil {
		return nil
	}
	for _, rel := range root.ChildElements() {
		id := rel.SelectAttrValue("Id", "")
		target := rel.SelectAttrValue("Target", "")
		if id == "" || target == "" {
			continue
		}
		// Targets are relative to word/.
		d.rels[id] = path.Clean(path.Join("word", target))
	}
	return nil
}

func (d *Document) rawEntry(name string) []byte {
	for _, e := range d.entries {
		if e.name == name {
			return e.data
		}
	}
	return nil
}

// Body returns the w:body element of the main document part.
func (d *Document) Body() *etree.Element {
	root := d.parts[documentPart].Root()
	if root == nil {
		return nil
	}
	return root.SelectElement("w:body")
}

// Save serializes the document to a new file at filename. The source file is
// never modified.
func (d *Document) Save(filename string) error {
	out, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, e := range d.entries {
		data := e.data
		if tree, ok := d.parts[e.name]; ok {
			serialized, err := tree.WriteToBytes()
			if err != nil {
				return fmt.Errorf("serializing %s: %w", e.name, err)
			}
			data = serialized
		}
		w, err := zw.Create(e.name)
		if err != nil {
			return fmt.Errorf("writing archive member %s: %w", e.name, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing archive member %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return nil
}

// BlockKind discriminates the members of the body block sequence.
type BlockKind int

const (
	// BlockParagraph is a w:p block.
	BlockParagraph BlockKind = iota
	// BlockTable is a w:tbl block.
	BlockTable
)

// Block is one position in document order: either a paragraph or a table.
type Block struct {
	Kind      BlockKind
	Paragraph *Paragraph
	Table     *Table
}

// Blocks returns the ordered paragraph/table sequence of the document body.
func (d *Document) Blocks() []Block {
	return blocksOf(d.Body())
}

func blocksOf(container *etree.Element) []Block {
	if container == nil {
		return nil
	}
	var blocks []Block
	for _, child := range container.ChildElements() {
		if child.Space != "w" {
			continue
		}
		switch child.Tag {
		case "p":
			blocks = append(blocks, Block{Kind: BlockParagraph, Paragraph: &Paragraph{elem: child}})
		case "tbl":
			blocks = append(blocks, Block{Kind: BlockTable, Table: &Table{elem: child}})
		}
	}
	return blocks
}

// Paragraphs returns the top-level paragraphs of the body in document order.
func (d *Document) Paragraphs() []*Paragraph {
	var paras []*Paragraph
	for _, b := range d.Blocks() {
		if b.Kind == BlockParagraph {
			paras = append(paras, b.Paragraph)
		}
	}
	return paras
}

// Tables returns the top-level tables of the body in document order.
func (d *Document) Tables() []*Table {
	var tables []*Table
	for _, b := range d.Blocks() {
		if b.Kind == BlockTable {
			tables = append(tables, b.Table)
		}
	}
	return tables
}

// Textboxes returns every textbox container in the document body, including
// those nested inside tables and drawings.
func (d *Document) Textboxes() []*Textbox {
	var boxes []*Textbox
	for _, elem := range d.Body().FindElements(".//w:txbxContent") {
		boxes = append(boxes, &Textbox{elem: elem})
	}
	return boxes
}

// InsertPageBreakAfter inserts a new paragraph containing a page break
// directly after ref and returns its element.
func (d *Document) InsertPageBreakAfter(ref *etree.Element) *etree.Element {
	p := etree.NewElement("w:p")
	r := p.CreateElement("w:r")
	br := r.CreateElement("w:br")
	br.CreateAttr("w:type", "page")
	insertAfter(ref, p)
	return p
}

// insertAfter places elem directly after ref under ref's parent.
func insertAfter(ref, elem *etree.Element) {
	parent := ref.Parent()
	if parent == nil {
		return
	}
	parent.InsertChildAt(ref.Index()+1, elem)
}
