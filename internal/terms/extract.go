package terms

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"docx-translator/internal/logger"
)

// Glossary line formats, most specific first: an English phrase followed by
// at least one space and a Chinese rendering.
var glossaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^([A-Za-z0-9\s()\-,./\[\]'"&+]+?)\s{2,}([^\x00-\x7F]+.*)$`),
	regexp.MustCompile(`^([A-Za-z0-9\s()\-,./\[\]'"&+]+?)\s+([^\x00-\x7F]+.*)$`),
}

var (
	latinPattern     = regexp.MustCompile(`[A-Za-z]`)
	cjkColumnPattern = regexp.MustCompile(`[\x{4e00}-\x{9fff}]`)
	bareNumberLine   = regexp.MustCompile(`^\d+$`)
)

// Extract reads a bilingual glossary PDF and builds a term dictionary from
// lines pairing an English phrase with a Chinese rendering. Lines that do
// not carry both scripts are skipped.
func Extract(pdfPath string) (*Dictionary, error) {
	f, reader, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening glossary pdf %s: %w", pdfPath, err)
	}
	defer f.Close()

	d := NewDictionary()
	pages := reader.NumPage()
	logger.Info("extracting terms from pdf", logger.String("path", pdfPath), logger.Int("pages", pages))

	for pageNum := 1; pageNum <= pages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Warn("skipping unreadable pdf page", logger.Int("page", pageNum), logger.Err(err))
			continue
		}
		extractFromText(d, text)
	}

	logger.Info("term extraction complete", logger.Int("terms", d.Len()))
	return d, nil
}

// extractFromText parses glossary lines out of one page of text.
func extractFromText(d *Dictionary, text string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 3 || bareNumberLine.MatchString(line) {
			continue
		}
		if !latinPattern.MatchString(line) || !cjkColumnPattern.MatchString(line) {
			continue
		}

		for _, pattern := range glossaryPatterns {
			m := pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			english := strings.TrimSpace(m[1])
			chinese := strings.TrimSpace(m[2])
			if len(english) < 2 || chinese == "" {
				break
			}

			if existing, ok := d.entries[english]; ok {
				// Keep the more detailed rendering for duplicates.
				if len(chinese) > len(existing.Traditional) {
					existing.Traditional = chinese
					d.entries[english] = existing
				}
			} else {
				d.Add(Term{English: english, Traditional: chinese})
			}
			break
		}
	}
}
