// Package detect provides stateless text classification for the bilingual
// translation passes: source-language detection, indentation measurement,
// numbering-prefix extraction and colon decomposition.
package detect

import (
	"regexp"
	"strings"
)

var chinesePattern = regexp.MustCompile(`[\x{4e00}-\x{9fff}]`)

// HasChinese reports whether text contains at least one Chinese character.
func HasChinese(text string) bool {
	return chinesePattern.MatchString(text)
}

// LeadingIndentWidth returns the width of the leading whitespace of text,
// counting tabs as 4 spaces. Returns 0 when text does not start with
// whitespace.
func LeadingIndentWidth(text string) int {
	width := 0
	for _, r := range text {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
	}
	return width
}

// IndentPrefix returns a run of spaces matching the number of leading
// space/tab characters of text. The rewritten and inserted paragraphs use it
// to keep the original indentation.
func IndentPrefix(text string) string {
	n := len(text) - len(strings.TrimLeft(text, " \t"))
	return strings.Repeat(" ", n)
}

// Numbering prefix patterns, most segments first. The one-segment pattern
// requires a trailing dot so that bare counts ("20 pcs") are not mistaken
// for section numbers.
var strictNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d+\.\d+\.\d+\.\d+)`), // 1.2.3.4
	regexp.MustCompile(`^(\d+\.\d+\.\d+)`),      // 1.2.3
	regexp.MustCompile(`^(\d+\.\d+)`),           // 1.2
	regexp.MustCompile(`^(\d+\.)`),              // 1.
}

// looseOnePattern accepts a bare number without a following dot. Used only
// for ungrouped standalone paragraphs, never for grouping or table cells.
var looseOnePattern = regexp.MustCompile(`^(\d+\.?)`)

// NumberingPrefix extracts a leading dotted section number from text
// (e.g. "4.9", "1.2.3"), trying four segments down to one. The returned
// prefix has no trailing dot. Returns "" when text does not start with a
// section number.
func NumberingPrefix(text string) string {
	return matchNumbering(text, strictNumberPatterns)
}

// NumberingPrefixLoose behaves like NumberingPrefix but also accepts a bare
// number without a following dot as a one-segment prefix.
func NumberingPrefixLoose(text string) string {
	patterns := make([]*regexp.Regexp, 0, len(strictNumberPatterns))
	patterns = append(patterns, strictNumberPatterns[:len(strictNumberPatterns)-1]...)
	patterns = append(patterns, looseOnePattern)
	return matchNumbering(text, patterns)
}

func matchNumbering(text string, patterns []*regexp.Regexp) string {
	trimmed := strings.TrimLeft(text, " \t　")
	for _, p := range patterns {
		if m := p.FindStringSubmatch(trimmed); m != nil {
			return strings.TrimSuffix(m[1], ".")
		}
	}
	return ""
}

var colonPattern = regexp.MustCompile(`^([^:：]+)[：:](.*)$`)

// ColonParts describes the decomposition of a "label: remainder" paragraph.
type ColonParts struct {
	HasColon   bool
	HasContent bool   // remainder is non-empty after trimming
	Label      string // trimmed text before the first colon
	Remainder  string // trimmed text after the first colon
}

// ClassifyColon splits text on the first half-width or full-width colon.
func ClassifyColon(text string) ColonParts {
	m := colonPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return ColonParts{}
	}
	label := strings.TrimSpace(m[1])
	remainder := strings.TrimSpace(m[2])
	return ColonParts{
		HasColon:   true,
		HasContent: remainder != "",
		Label:      label,
		Remainder:  remainder,
	}
}

// ColonChar returns the colon variant present in text, preferring the
// full-width form. Used when rewriting a label-only paragraph so the
// original punctuation survives.
func ColonChar(text string) string {
	if strings.Contains(text, "：") {
		return "："
	}
	return ":"
}
