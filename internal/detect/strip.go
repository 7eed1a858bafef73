package detect

import "strings"

// numberingSeparators are the characters that may follow a section number
// before the real content starts: dot, colon (both widths), ideographic
// space, tab and space.
const numberingSeparators = ". :：　\t"

// StripNumbering removes prefix and any following separator run from text,
// returning the pure translatable remainder. When prefix is empty or not
// found, text is returned unchanged.
func StripNumbering(text, prefix string) string {
	if prefix == "" {
		return text
	}
	idx := strings.Index(text, prefix)
	if idx < 0 {
		return text
	}
	rest := text[idx+len(prefix):]
	return strings.TrimLeft(rest, numberingSeparators)
}
