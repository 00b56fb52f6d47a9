package buffer

import (
	"github.com/rowkit/vid/internal/highlight"
)

// growthMargin is the slack added when a row's text outgrows its capacity.
const growthMargin = 16

// Row is one line of text together with its per-character highlight
// classes and the lexer state flowing through it. Rows are linked into
// a document; the links are owned by the Buffer.
type Row struct {
	text []rune
	hl   []highlight.Token

	prev *Row
	next *Row

	dirty    bool
	carryIn  highlight.Carry
	carryOut highlight.Carry
}

func (r *Row) Len() int                      { return len(r.text) }
func (r *Row) Text() string                  { return string(r.text) }
func (r *Row) Runes() []rune                 { return r.text }
func (r *Row) Highlights() []highlight.Token { return r.hl }
func (r *Row) Next() *Row                    { return r.next }
func (r *Row) Prev() *Row                    { return r.prev }
func (r *Row) Dirty() bool                   { return r.dirty }
func (r *Row) MarkDirty()                    { r.dirty = true }
func (r *Row) ClearDirty()                   { r.dirty = false }

// CarryOut is the lexer state this row leaves open for its successor.
func (r *Row) CarryOut() highlight.Carry { return r.carryOut }

// rescan re-runs the highlighter over the row and reports whether the
// exit state changed. The highlight slice always ends up exactly as
// long as the text.
func (r *Row) rescan() bool {
	prev := r.carryOut
	r.hl, r.carryOut = highlight.Scan(r.text, r.carryIn)
	return r.carryOut != prev
}

// grow makes room for n more runes without changing the length.
func (r *Row) grow(n int) {
	need := len(r.text) + n
	if need <= cap(r.text) {
		return
	}
	newCap := len(r.text) + growthMargin
	if newCap < need {
		newCap = need * 2
	}
	text := make([]rune, len(r.text), newCap)
	copy(text, r.text)
	r.text = text
}

// InsertChars inserts s at index, shifting trailing content right.
// Out-of-range indices are no-ops.
func (r *Row) InsertChars(index int, s []rune) bool {
	if index < 0 || index > len(r.text) || len(s) == 0 {
		return false
	}
	r.grow(len(s))
	r.text = r.text[:len(r.text)+len(s)]
	copy(r.text[index+len(s):], r.text[index:])
	copy(r.text[index:], s)
	r.dirty = true
	r.rescan()
	return true
}

// RemoveChars removes up to count characters starting at index and
// returns how many were actually removed.
func (r *Row) RemoveChars(index, count int) int {
	if index < 0 || index >= len(r.text) || count <= 0 {
		return 0
	}
	if index+count > len(r.text) {
		count = len(r.text) - index
	}
	copy(r.text[index:], r.text[index+count:])
	r.text = r.text[:len(r.text)-count]
	r.dirty = true
	r.rescan()
	return count
}

// Replace swaps the row's entire content.
func (r *Row) Replace(s string) {
	r.text = []rune(s)
	r.dirty = true
	r.rescan()
}

// Trim truncates the row to index characters.
func (r *Row) Trim(index int) {
	if index < 0 || index >= len(r.text) {
		return
	}
	r.text = r.text[:index]
	r.dirty = true
	r.rescan()
}

// HasWhitespaceAt reports whether the character at pos is blank.
func (r *Row) HasWhitespaceAt(pos int) bool {
	if pos < 0 || pos >= len(r.text) {
		return false
	}
	return highlight.IsWhitespace(r.text[pos])
}

// OffsetToFirstNonblank counts consecutive whitespace characters at start.
func (r *Row) OffsetToFirstNonblank(start int) int {
	if start < 0 || start >= len(r.text) {
		return 0
	}
	n := 0
	for i := start; i < len(r.text) && r.HasWhitespaceAt(i); i++ {
		n++
	}
	return n
}

// OffsetToNextWord returns the offset from start to the first character
// of the next word, or to end of line when start is in the last word.
func (r *Row) OffsetToNextWord(start int) int {
	if start < 0 || start >= len(r.text) {
		return 0
	}
	stripped := 0
	firstChar := false

	offset := start
	for ; offset < len(r.text); offset++ {
		if !firstChar {
			if !r.HasWhitespaceAt(offset) {
				firstChar = true
			} else {
				stripped++
				continue
			}
		}
		if stripped > 0 {
			offset = stripped
			break
		}
		if firstChar && r.HasWhitespaceAt(offset) {
			break
		}
	}

	for ; offset < len(r.text); offset++ {
		if !r.HasWhitespaceAt(offset) {
			return offset - start
		}
	}

	if firstChar {
		return len(r.text) - start
	}
	return 0
}

// OffsetToPrevWord returns a non-positive offset from start to the first
// character of the previous word, or to the start of the line.
func (r *Row) OffsetToPrevWord(start int) int {
	if start < 0 || start > len(r.text) {
		return 0
	}
	firstChar := false

	for i := start - 1; i > 0; i-- {
		if !firstChar {
			if !r.HasWhitespaceAt(i) {
				firstChar = true
			} else {
				continue
			}
		}
		if firstChar && r.HasWhitespaceAt(i) {
			return i - start + 1
		}
	}

	if firstChar {
		return -start
	}
	return 0
}
