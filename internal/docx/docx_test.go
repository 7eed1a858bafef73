package docx

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"testing"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

// buildDocx assembles a minimal .docx archive around the given body XML.
// extra maps additional part names to their content.
func buildDocx(t *testing.T, body string, extra map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := map[string]string{
		"[Content_Types].xml": contentTypesXML,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<w:body>` + body + `</w:body>
</w:document>`,
	}
	for name, content := range extra {
		parts[name] = content
	}

	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}
	return buf.Bytes()
}

func para(text string) string {
	return `<w:p><w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
}

func TestOpenBytes_Blocks(t *testing.T) {
	body := para("第一段") +
		`<w:tbl><w:tr><w:tc>` + para("儲存格") + `</w:tc></w:tr></w:tbl>` +
		para("第二段")
	doc, err := OpenBytes(buildDocx(t, body, nil))
	if err != nil {
		t.Fatalf("OpenBytes() error = %v", err)
	}

	blocks := doc.Blocks()
	if len(blocks) != 3 {
		t.Fatalf("len(Blocks()) = %d, want 3", len(blocks))
	}
	if blocks[0].Kind != BlockParagraph || blocks[1].Kind != BlockTable || blocks[2].Kind != BlockParagraph {
		t.Errorf("block kinds = %v %v %v, want paragraph/table/paragraph",
			blocks[0].Kind, blocks[1].Kind, blocks[2].Kind)
	}
	if got := blocks[0].Paragraph.Text(); got != "第一段" {
		t.Errorf("first paragraph text = %q, want %q", got, "第一段")
	}
}

func TestParagraphText_TabsAndMultipleRuns(t *testing.T) {
	body := `<w:p><w:r><w:tab/><w:t>縮排</w:t></w:r><w:r><w:t xml:space="preserve">內容</w:t></w:r></w:p>`
	doc, err := OpenBytes(buildDocx(t, body, nil))
	if err != nil {
		t.Fatalf("OpenBytes() error = %v", err)
	}
	got := doc.Paragraphs()[0].Text()
	if got != "\t縮排內容" {
		t.Errorf("Text() = %q, want %q", got, "\t縮排內容")
	}
}

func TestClearTextPreserveDrawing(t *testing.T) {
	body := `<w:p>` +
		`<w:r><w:t>文字</w:t></w:r>` +
		`<w:r><w:drawing/></w:r>` +
		`</w:p>`
	doc, err := OpenBytes(buildDocx(t, body, nil))
	if err != nil {
		t.Fatalf("OpenBytes() error = %v", err)
	}

	p := doc.Paragraphs()[0]
	p.ClearTextPreserveDrawing()

	if got := p.Text(); got != "" {
		t.Errorf("Text() after clear = %q, want empty", got)
	}
	if !p.HasDrawing() {
		t.Error("drawing run was lost by ClearTextPreserveDrawing")
	}
}

func TestSetTextPreserveDrawing(t *testing.T) {
	body := `<w:p><w:r><w:t>舊</w:t></w:r><w:r><w:drawing/></w:r></w:p>`
	doc, err := OpenBytes(buildDocx(t, body, nil))
	if err != nil {
		t.Fatalf("OpenBytes() error = %v", err)
	}

	p := doc.Paragraphs()[0]
	p.SetTextPreserveDrawing("  新內容")

	if got := p.Text(); got != "  新內容" {
		t.Errorf("Text() = %q, want %q", got, "  新內容")
	}
	if !p.HasDrawing() {
		t.Error("drawing run was lost by SetTextPreserveDrawing")
	}
}

func TestInsertParagraphAfter(t *testing.T) {
	body := para("甲") + para("乙")
	doc, err := OpenBytes(buildDocx(t, body, nil))
	if err != nil {
		t.Fatalf("OpenBytes() error = %v", err)
	}

	first := doc.Paragraphs()[0]
	np := first.InsertParagraphAfter()
	np.AppendTextRun("inserted")

	texts := []string{}
	for _, p := range doc.Paragraphs() {
		texts = append(texts, p.Text())
	}
	want := []string{"甲", "inserted", "乙"}
	if len(texts) != 3 || texts[0] != want[0] || texts[1] != want[1] || texts[2] != want[2] {
		t.Errorf("paragraph order = %v, want %v", texts, want)
	}
}

func TestTableTextboxesAndClone(t *testing.T) {
	textbox := `<w:txbxContent><w:p><w:r><w:t>流程</w:t></w:r></w:p></w:txbxContent>`
	body := `<w:tbl><w:tr>` +
		`<w:tc>` + para("欄") + textbox + textbox + `</w:tc>` +
		`<w:tc>` + textbox + `</w:tc>` +
		`</w:tr></w:tbl>`
	doc, err := OpenBytes(buildDocx(t, body, nil))
	if err != nil {
		t.Fatalf("OpenBytes() error = %v", err)
	}

	table := doc.Tables()[0]
	if got := table.CountTextboxes(); got != 3 {
		t.Errorf("CountTextboxes() = %d, want 3", got)
	}

	pageBreak := doc.InsertPageBreakAfter(table.Element())
	clone := table.Clone(pageBreak)

	if got := clone.CountTextboxes(); got != 3 {
		t.Errorf("clone CountTextboxes() = %d, want 3", got)
	}
	if len(doc.Tables()) != 2 {
		t.Fatalf("len(Tables()) after clone = %d, want 2", len(doc.Tables()))
	}

	// Mutating the clone must not touch the original.
	for _, tb := range clone.Cells()[0].Textboxes() {
		for _, n := range tb.TextNodes() {
			n.SetText("translated")
		}
	}
	origNode := table.Cells()[0].Textboxes()[0].TextNodes()[0]
	if origNode.Text() != "流程" {
		t.Errorf("original textbox text = %q after clone mutation, want %q", origNode.Text(), "流程")
	}
}

func TestTextboxEnclosingTable(t *testing.T) {
	textbox := `<w:txbxContent><w:p><w:r><w:t>盒</w:t></w:r></w:p></w:txbxContent>`
	body := `<w:tbl><w:tr><w:tc>` + textbox + `</w:tc></w:tr></w:tbl>` +
		`<w:p><w:r>` + textbox + `</w:r></w:p>`
	doc, err := OpenBytes(buildDocx(t, body, nil))
	if err != nil {
		t.Fatalf("OpenBytes() error = %v", err)
	}

	boxes := doc.Textboxes()
	if len(boxes) != 2 {
		t.Fatalf("len(Textboxes()) = %d, want 2", len(boxes))
	}
	if boxes[0].EnclosingTable() == nil {
		t.Error("table-hosted textbox has no enclosing table")
	}
	if boxes[1].EnclosingTable() != nil {
		t.Error("floating textbox reports an enclosing table")
	}
}

func TestHeaderFooters_LinkedToPreviousSkipped(t *testing.T) {
	headerXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		para("頁首") + `</w:hdr>`
	relsXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/header" Target="header1.xml"/>
</Relationships>`

	// The section only references a default header; first/even variants are
	// inherited and must not appear.
	body := para("正文") +
		`<w:sectPr><w:headerReference w:type="default" r:id="rId1"/></w:sectPr>`
	doc, err := OpenBytes(buildDocx(t, body, map[string]string{
		"word/header1.xml":             headerXML,
		"word/_rels/document.xml.rels": relsXML,
	}))
	if err != nil {
		t.Fatalf("OpenBytes() error = %v", err)
	}

	hfs := doc.HeaderFooters()
	if len(hfs) != 1 {
		t.Fatalf("len(HeaderFooters()) = %d, want 1", len(hfs))
	}
	if !hfs[0].IsHeader || hfs[0].Type != "default" {
		t.Errorf("header = %+v, want default header", hfs[0])
	}
	if got := hfs[0].Paragraphs()[0].Text(); got != "頁首" {
		t.Errorf("header paragraph text = %q, want %q", got, "頁首")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	body := para("原文")
	doc, err := OpenBytes(buildDocx(t, body, nil))
	if err != nil {
		t.Fatalf("OpenBytes() error = %v", err)
	}

	p := doc.Paragraphs()[0]
	np := p.InsertParagraphAfter()
	np.AppendTextRun("translated")

	out := filepath.Join(t.TempDir(), "out.docx")
	if err := doc.Save(out); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reopened, err := Open(out)
	if err != nil {
		t.Fatalf("Open() after save error = %v", err)
	}
	paras := reopened.Paragraphs()
	if len(paras) != 2 {
		t.Fatalf("len(Paragraphs()) after roundtrip = %d, want 2", len(paras))
	}
	if paras[0].Text() != "原文" || paras[1].Text() != "translated" {
		t.Errorf("roundtrip texts = %q, %q", paras[0].Text(), paras[1].Text())
	}
}
