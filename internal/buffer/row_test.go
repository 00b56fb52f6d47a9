package buffer

import (
	"testing"

	"github.com/rowkit/vid/internal/highlight"
)

func newTestRow(text string) *Row {
	b := NewEmpty()
	b.Current().Replace(text)
	return b.Current()
}

func TestOffsetToNextWord(t *testing.T) {
	tests := []struct {
		text  string
		start int
		want  int
	}{
		{"Hello world", 0, 6},
		{"Hello world", 6, 5},
		{"this      ha      fw  w w x", 0, 10},
		{"this      ha      fw  w w x", 10, 8},
		{"this      ha      fw  w w x", 18, 4},
		{"this      ha      fw  w w x", 22, 2},
		{"this      ha      fw  w w x", 24, 2},
	}
	for _, tt := range tests {
		r := newTestRow(tt.text)
		if got := r.OffsetToNextWord(tt.start); got != tt.want {
			t.Fatalf("OffsetToNextWord(%q, %d) = %d, want %d", tt.text, tt.start, got, tt.want)
		}
	}
}

func TestOffsetToNextWordOutOfRange(t *testing.T) {
	r := newTestRow("abc")
	if got := r.OffsetToNextWord(-1); got != 0 {
		t.Fatalf("negative start = %d, want 0", got)
	}
	if got := r.OffsetToNextWord(3); got != 0 {
		t.Fatalf("start at end = %d, want 0", got)
	}
}

func TestOffsetToPrevWord(t *testing.T) {
	tests := []struct {
		text  string
		start int
		want  int
	}{
		{"Hello world", 9, -3},
		{"Hello world", 6, -6},
		{"Hello world", 0, 0},
	}
	for _, tt := range tests {
		r := newTestRow(tt.text)
		if got := r.OffsetToPrevWord(tt.start); got != tt.want {
			t.Fatalf("OffsetToPrevWord(%q, %d) = %d, want %d", tt.text, tt.start, got, tt.want)
		}
	}
}

func TestOffsetToFirstNonblank(t *testing.T) {
	r := newTestRow("    x")
	if got := r.OffsetToFirstNonblank(0); got != 4 {
		t.Fatalf("offset = %d, want 4", got)
	}
	if got := r.OffsetToFirstNonblank(4); got != 0 {
		t.Fatalf("offset on nonblank = %d, want 0", got)
	}
	if got := newTestRow("").OffsetToFirstNonblank(0); got != 0 {
		t.Fatalf("offset on empty = %d, want 0", got)
	}
}

func TestInsertRemoveRoundtrip(t *testing.T) {
	const text = "int main(void)"
	for i := 0; i <= len(text); i++ {
		r := newTestRow(text)
		if !r.InsertChars(i, []rune("XY")) {
			t.Fatalf("insert at %d failed", i)
		}
		if r.Len() != len(text)+2 {
			t.Fatalf("len after insert = %d, want %d", r.Len(), len(text)+2)
		}
		if got := r.RemoveChars(i, 2); got != 2 {
			t.Fatalf("removed %d chars at %d, want 2", got, i)
		}
		if r.Text() != text {
			t.Fatalf("roundtrip at %d = %q, want %q", i, r.Text(), text)
		}
		if len(r.Highlights()) != r.Len() {
			t.Fatalf("hl length = %d, want %d", len(r.Highlights()), r.Len())
		}
	}
}

func TestInsertCharsOutOfRange(t *testing.T) {
	r := newTestRow("abc")
	if r.InsertChars(-1, []rune("x")) {
		t.Fatalf("insert at -1 succeeded")
	}
	if r.InsertChars(4, []rune("x")) {
		t.Fatalf("insert past end succeeded")
	}
	if r.Text() != "abc" {
		t.Fatalf("text = %q, want %q", r.Text(), "abc")
	}
}

func TestRemoveCharsClamped(t *testing.T) {
	r := newTestRow("abc")
	if got := r.RemoveChars(1, 10); got != 2 {
		t.Fatalf("removed = %d, want 2", got)
	}
	if r.Text() != "a" {
		t.Fatalf("text = %q, want %q", r.Text(), "a")
	}
	if got := r.RemoveChars(5, 1); got != 0 {
		t.Fatalf("remove past end = %d, want 0", got)
	}
}

func TestTrim(t *testing.T) {
	r := newTestRow("abcdef")
	r.Trim(2)
	if r.Text() != "ab" {
		t.Fatalf("text = %q, want %q", r.Text(), "ab")
	}
	r.Trim(9)
	if r.Text() != "ab" {
		t.Fatalf("out-of-range trim changed text to %q", r.Text())
	}
}

func TestMutationsKeepHighlightsInSync(t *testing.T) {
	r := newTestRow("return 1;")
	hl := r.Highlights()
	if len(hl) != r.Len() {
		t.Fatalf("hl length = %d, want %d", len(hl), r.Len())
	}
	for i := 0; i < 6; i++ {
		if hl[i] != highlight.Keyword {
			t.Fatalf("hl[%d] = %d, want Keyword", i, hl[i])
		}
	}
	r.InsertChars(0, []rune("x"))
	hl = r.Highlights()
	if len(hl) != r.Len() {
		t.Fatalf("hl length after insert = %d, want %d", len(hl), r.Len())
	}
	// "xreturn" is a plain identifier now
	if hl[0] != highlight.Normal || hl[1] != highlight.Normal {
		t.Fatalf("hl prefix = %v, want Normal", hl[:2])
	}
}

func TestHasWhitespaceAt(t *testing.T) {
	r := newTestRow("a b")
	if r.HasWhitespaceAt(0) {
		t.Fatalf("pos 0 reported blank")
	}
	if !r.HasWhitespaceAt(1) {
		t.Fatalf("pos 1 not reported blank")
	}
	if r.HasWhitespaceAt(3) {
		t.Fatalf("out of range reported blank")
	}
}
