// Package bilingual rewrites a docx in place so every Chinese block is
// followed by its English rendering: grouped paragraphs merge into one
// translation unit, flowchart tables are cloned and only the clone is
// translated, and cosmetic passes normalize fonts afterwards.
package bilingual

import (
	"github.com/beevik/etree"

	"docx-translator/internal/grouping"
	"docx-translator/internal/logger"
	"docx-translator/internal/terms"
	"docx-translator/internal/types"
)

// DocumentState is the mutable state of one document run. It is created
// fresh per document and discarded after save.
type DocumentState struct {
	Groups []*grouping.Group

	consumed map[int]bool
	// flowchart originals, keyed by table element identity
	excluded map[*etree.Element]bool

	Dictionary *terms.Dictionary
	Fixed      map[string]string

	Result *types.TranslationResult
}

// NewDocumentState returns an empty state for one document run.
func NewDocumentState() *DocumentState {
	return &DocumentState{
		consumed: make(map[int]bool),
		excluded: make(map[*etree.Element]bool),
		Result:   &types.TranslationResult{},
	}
}

// LoadDictionaries loads the term dictionary and fixed-translation map.
// Either file may be absent; translation then degrades to backend-only
// for that lookup, which is logged but never an error.
func (s *DocumentState) LoadDictionaries(termPath, fixedPath string) {
	if termPath != "" {
		d, err := terms.LoadDictionary(termPath)
		if err != nil {
			logger.Warn("term dictionary unavailable, continuing without it",
				logger.String("path", termPath), logger.Err(err))
		} else {
			s.Dictionary = d
		}
	}
	if fixedPath != "" {
		fixed, err := terms.LoadFixedTranslations(fixedPath)
		if err != nil {
			logger.Warn("fixed translations unavailable, continuing without them",
				logger.String("path", fixedPath), logger.Err(err))
		} else {
			s.Fixed = fixed
		}
	}
}

// GroupFor returns the unconsumed group containing the paragraph at index,
// and whether that paragraph is the group's seed.
func (s *DocumentState) GroupFor(index int) (*grouping.Group, bool) {
	for _, g := range s.Groups {
		if s.consumed[g.ID] {
			continue
		}
		if g.MemberAt(index) != nil {
			return g, index == g.SeedIndex()
		}
	}
	return nil, false
}

// MarkConsumed records that a group has been translated.
func (s *DocumentState) MarkConsumed(id int) {
	s.consumed[id] = true
}

// ExcludeTable records a flowchart original so later passes leave it
// untouched.
func (s *DocumentState) ExcludeTable(tbl *etree.Element) {
	s.excluded[tbl] = true
}

// IsExcludedTable reports whether tbl is a recorded flowchart original.
// A nil tbl is never excluded.
func (s *DocumentState) IsExcludedTable(tbl *etree.Element) bool {
	return tbl != nil && s.excluded[tbl]
}
