// Package grouping implements the single-pass paragraph grouping engine.
// It scans the pristine block sequence once, before any mutation, and
// decides which consecutive indented paragraphs form one translatable unit.
package grouping

import (
	"strings"

	"docx-translator/internal/detect"
)

// Member is one paragraph of a group, keyed by its index in the pristine
// block sequence.
type Member struct {
	Index           int
	Text            string // trimmed paragraph text
	IndentWidth     int    // leading whitespace width, tabs as 4
	NumberingPrefix string // dotted section number, "" when absent
}

// Group is a contiguous run of paragraphs translated as one unit. Groups are
// immutable once finalized; the orchestrator consumes each group at most
// once.
type Group struct {
	ID         int
	Members    []Member
	MergedText string
}

// SeedIndex returns the block index of the group's first member.
func (g *Group) SeedIndex() int {
	return g.Members[0].Index
}

// HasNumbering reports whether any member carries a numbering prefix.
func (g *Group) HasNumbering() bool {
	for _, m := range g.Members {
		if m.NumberingPrefix != "" {
			return true
		}
	}
	return false
}

// MemberAt returns the member with the given block index, or nil.
func (g *Group) MemberAt(index int) *Member {
	for i := range g.Members {
		if g.Members[i].Index == index {
			return &g.Members[i]
		}
	}
	return nil
}

// mergeText joins member texts into the group's translation unit. Numbered
// groups continue a broken line, so their members concatenate directly;
// unnumbered groups join with a single space.
func mergeText(members []Member, numbered bool) string {
	lines := make([]string, len(members))
	for i, m := range members {
		lines[i] = strings.TrimSpace(m.Text)
	}
	if numbered {
		return strings.Join(lines, "")
	}
	return strings.Join(lines, " ")
}

// Engine builds groups from a forward scan over paragraphs that contain
// source-language content. Tables never enter the scan.
type Engine struct {
	current *Group
	groups  []*Group
}

// NewEngine returns an empty grouping engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Observe feeds the next source-language paragraph into the scan. index is
// the paragraph's position in the pristine block sequence and text its raw,
// untranslated content.
func (e *Engine) Observe(index int, text string) {
	indent := detect.LeadingIndentWidth(text)

	// A flush-left paragraph closes any open group and joins none.
	if indent == 0 {
		e.closeCurrent()
		return
	}

	prefix := detect.NumberingPrefix(text)
	member := Member{
		Index:           index,
		Text:            strings.TrimSpace(text),
		IndentWidth:     indent,
		NumberingPrefix: prefix,
	}

	if prefix != "" {
		// A numbered paragraph always starts a fresh group.
		e.closeCurrent()
		e.openGroup(member)
		return
	}

	if e.current != nil {
		e.current.Members = append(e.current.Members, member)
		return
	}
	// Indented continuation with no open group: a singleton group. The
	// effect matches ungrouped translation but the distinction is kept.
	e.openGroup(member)
}

func (e *Engine) openGroup(seed Member) {
	e.current = &Group{
		ID:      len(e.groups) + 1,
		Members: []Member{seed},
	}
}

func (e *Engine) closeCurrent() {
	if e.current == nil {
		return
	}
	g := e.current
	g.MergedText = mergeText(g.Members, g.HasNumbering())
	e.groups = append(e.groups, g)
	e.current = nil
}

// Finalize closes any open group and returns the ordered group list.
func (e *Engine) Finalize() []*Group {
	e.closeCurrent()
	return e.groups
}
