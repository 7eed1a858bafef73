// Package terms provides the term-dictionary and fixed-translation lookups
// consulted before any translation backend call, plus extraction of new
// dictionaries from PDF glossaries.
package terms

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"

	"docx-translator/internal/logger"
)

// Term is one glossary entry keyed by its English rendering.
type Term struct {
	English     string `json:"english"`
	Simplified  string `json:"simplified,omitempty"`
	Traditional string `json:"traditional"`
}

// Dictionary maps English terms to their Chinese forms, as produced by
// Extract or loaded from a JSON file.
type Dictionary struct {
	entries map[string]Term
	// order keeps the load/extract order stable for deterministic lookup
	// and serialization.
	order []string
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{entries: make(map[string]Term)}
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Add inserts or replaces an entry.
func (d *Dictionary) Add(term Term) {
	if _, exists := d.entries[term.English]; !exists {
		d.order = append(d.order, term.English)
	}
	d.entries[term.English] = term
}

// Lookup returns the preferred English rendering for a Chinese source
// string. An exact match on the traditional form wins; otherwise each
// comma-separated item of the traditional form is compared. Returns false
// when the dictionary has no answer.
func (d *Dictionary) Lookup(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	for _, english := range d.order {
		term := d.entries[english]
		if term.Traditional == text {
			return english, true
		}
		for _, item := range splitTermItems(term.Traditional) {
			if strings.TrimSpace(item) == text {
				return english, true
			}
		}
	}
	return "", false
}

// TermMatch pairs one Chinese rendering found in a text with its English
// term.
type TermMatch struct {
	Traditional string
	English     string
}

// MatchesIn returns the entries whose Chinese renderings occur as
// substrings of text, in load order. Used to build the term reference
// attached to translation prompts.
func (d *Dictionary) MatchesIn(text string) []TermMatch {
	var matches []TermMatch
	for _, english := range d.order {
		term := d.entries[english]
		for _, item := range splitTermItems(term.Traditional) {
			item = strings.TrimSpace(item)
			if item != "" && strings.Contains(text, item) {
				matches = append(matches, TermMatch{Traditional: item, English: english})
				break
			}
		}
	}
	return matches
}

var termItemSeparator = regexp.MustCompile(`[，,]`)

func splitTermItems(traditional string) []string {
	if traditional == "" {
		return nil
	}
	return termItemSeparator.Split(traditional, -1)
}

// LoadDictionary reads a term dictionary from a JSON file shaped as
// {english: {"traditional": ..., "simplified": ...}}. Files saved in Big5
// are transparently decoded.
func LoadDictionary(path string) (*Dictionary, error) {
	data, err := readTextFile(path)
	if err != nil {
		return nil, err
	}

	raw := make(map[string]Term)
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing term dictionary %s: %w", path, err)
	}

	d := NewDictionary()
	for english, term := range raw {
		term.English = english
		d.Add(term)
	}
	logger.Info("term dictionary loaded", logger.String("path", path), logger.Int("terms", d.Len()))
	return d, nil
}

// SaveDictionary writes the dictionary to path in the JSON shape consumed
// by LoadDictionary.
func SaveDictionary(d *Dictionary, path string) error {
	raw := make(map[string]Term, d.Len())
	for _, english := range d.order {
		raw[english] = d.entries[english]
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling term dictionary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing term dictionary %s: %w", path, err)
	}
	return nil
}

// LoadFixedTranslations reads an exact source-to-target translation map
// from a JSON file shaped as {source: target}.
func LoadFixedTranslations(path string) (map[string]string, error) {
	data, err := readTextFile(path)
	if err != nil {
		return nil, err
	}
	fixed := make(map[string]string)
	if err := json.Unmarshal(data, &fixed); err != nil {
		return nil, fmt.Errorf("parsing fixed translations %s: %w", path, err)
	}
	logger.Info("fixed translations loaded", logger.String("path", path), logger.Int("entries", len(fixed)))
	return fixed, nil
}

// readTextFile reads a file and decodes it from Big5 when it is not valid
// UTF-8. Legacy glossaries exported on Traditional Chinese systems are
// often Big5-encoded.
func readTextFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if utf8.Valid(data) {
		return data, nil
	}
	decoded, _, err := transform.Bytes(traditionalchinese.Big5.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s as Big5: %w", path, err)
	}
	logger.Debug("decoded dictionary from Big5", logger.String("path", path))
	return decoded, nil
}
