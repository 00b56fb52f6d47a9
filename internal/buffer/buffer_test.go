package buffer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rowkit/vid/internal/highlight"
)

func newTestBuffer(lines ...string) *Buffer {
	if len(lines) == 0 {
		lines = []string{""}
	}
	b := NewEmpty()
	b.Current().Replace(lines[0])
	for _, line := range lines[1:] {
		b.AppendLine(line)
	}
	b.Propagate(b.Head())
	return b
}

func collectLines(b *Buffer) []string {
	var out []string
	for r := b.Head(); r != nil; r = r.Next() {
		out = append(out, r.Text())
	}
	return out
}

func TestNewEmptyNeverEmpty(t *testing.T) {
	b := NewEmpty()
	if b.Len() != 1 {
		t.Fatalf("len = %d, want 1", b.Len())
	}
	if b.Current() == nil || b.Current().Len() != 0 {
		t.Fatalf("current row missing or not empty")
	}
	if !b.IsFirstRow() || !b.IsLastRow() {
		t.Fatalf("sole row must be both first and last")
	}
}

func TestAppendLineLinksAndCounts(t *testing.T) {
	b := newTestBuffer("one", "two", "three")
	if b.Len() != 3 {
		t.Fatalf("len = %d, want 3", b.Len())
	}
	got := collectLines(b)
	want := []string{"one", "two", "three"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
	// walk back from tail
	r := b.Row(2)
	if r == nil || r.Prev() == nil || r.Prev().Text() != "two" {
		t.Fatalf("backward link broken")
	}
	if b.Row(3) != nil || b.Row(-1) != nil {
		t.Fatalf("out-of-range Row lookup not nil")
	}
}

func TestBreakThenJoinIsIdentity(t *testing.T) {
	const text = "int main(void) { return 0; }"
	for at := 0; at <= len(text); at++ {
		b := newTestBuffer(text)
		b.BreakCurrentLine(at)
		if b.Len() != 2 {
			t.Fatalf("at %d: len = %d, want 2", at, b.Len())
		}
		if got := b.Current().Text(); got != text[:at] {
			t.Fatalf("at %d: first = %q, want %q", at, got, text[:at])
		}
		b.ScrollRows(1)
		chars := b.JoinCurrentWithPrevious()
		if chars != len(text)-at {
			t.Fatalf("at %d: joined %d chars, want %d", at, chars, len(text)-at)
		}
		if b.Len() != 1 {
			t.Fatalf("at %d: len = %d, want 1", at, b.Len())
		}
		if got := b.Current().Text(); got != text {
			t.Fatalf("at %d: text = %q, want %q", at, got, text)
		}
	}
}

func TestJoinWithoutPreviousIsNoop(t *testing.T) {
	b := newTestBuffer("only")
	if got := b.JoinCurrentWithPrevious(); got != 0 {
		t.Fatalf("join on head = %d, want 0", got)
	}
	if b.Len() != 1 || b.Current().Text() != "only" {
		t.Fatalf("document changed by no-op join")
	}
}

func TestRemoveCurrentRowTriState(t *testing.T) {
	b := newTestBuffer("one", "two", "three")

	// head removed: successor becomes current
	if got := b.RemoveCurrentRow(); got != 1 {
		t.Fatalf("remove head = %d, want 1", got)
	}
	if b.Current().Text() != "two" {
		t.Fatalf("current = %q, want %q", b.Current().Text(), "two")
	}

	// tail removed: predecessor becomes current
	b.ScrollRows(1)
	if got := b.RemoveCurrentRow(); got != -1 {
		t.Fatalf("remove tail = %d, want -1", got)
	}
	if b.Current().Text() != "two" {
		t.Fatalf("current = %q, want %q", b.Current().Text(), "two")
	}

	// sole row is cleared in place
	if got := b.RemoveCurrentRow(); got != 0 {
		t.Fatalf("remove sole row = %d, want 0", got)
	}
	if b.Len() != 1 || b.Current().Text() != "" {
		t.Fatalf("document not reduced to a single empty row")
	}
}

func TestScrollRowsClamped(t *testing.T) {
	b := newTestBuffer("one", "two", "three")
	b.ScrollRows(10)
	if !b.IsLastRow() {
		t.Fatalf("scroll past tail did not stop at tail")
	}
	b.ScrollRows(-10)
	if !b.IsFirstRow() {
		t.Fatalf("scroll past head did not stop at head")
	}
	b.ScrollRows(2)
	b.ScrollToTop()
	if !b.IsFirstRow() {
		t.Fatalf("ScrollToTop did not reset current")
	}
}

func TestSetScrollTopClamped(t *testing.T) {
	b := newTestBuffer("one", "two", "three")
	b.SetScrollTop(-5)
	if b.ScrollTop() != 0 {
		t.Fatalf("scrollTop = %d, want 0", b.ScrollTop())
	}
	b.SetScrollTop(99)
	if b.ScrollTop() != 3 {
		t.Fatalf("scrollTop = %d, want 3", b.ScrollTop())
	}
}

func TestCommentCloseCascades(t *testing.T) {
	b := newTestBuffer("/*", "int a;", "*/ int b;")

	r1 := b.Row(1)
	for i, tok := range r1.Highlights() {
		if tok != highlight.Comment {
			t.Fatalf("inside comment: hl[%d] = %d, want Comment", i, tok)
		}
	}

	// deleting the opener re-highlights every row below
	b.Head().RemoveChars(0, 2)
	b.Propagate(b.Head())

	hl := r1.Highlights()
	for i := 0; i < 3; i++ {
		if hl[i] != highlight.Type {
			t.Fatalf("after reopen: hl[%d] = %d, want Type", i, hl[i])
		}
	}
	r2 := b.Row(2)
	hl2 := r2.Highlights()
	if hl2[0] != highlight.Symbol || hl2[1] != highlight.Symbol {
		t.Fatalf("stray closer = %v, want Symbol Symbol", hl2[:2])
	}
	if !r1.Dirty() || !r2.Dirty() {
		t.Fatalf("cascaded rows not marked dirty")
	}
}

func TestBreakInsideCommentSeedsCarry(t *testing.T) {
	b := newTestBuffer("a /* b */ c")
	b.BreakCurrentLine(5) // split between /* and */
	b.ScrollRows(1)
	cur := b.Current()
	hl := cur.Highlights()
	for i := 0; i < 4; i++ { // "b */" stays commented
		if hl[i] != highlight.Comment {
			t.Fatalf("hl[%d] = %d, want Comment", i, hl[i])
		}
	}
	if cur.CarryOut() != (highlight.Carry{}) {
		t.Fatalf("comment not closed on second row")
	}
	if b.Row(0).CarryOut() != (highlight.Carry{CommentOpen: true}) {
		t.Fatalf("first row must carry an open comment")
	}
}

func TestUnlinkReseedsCarryAtJoint(t *testing.T) {
	b := newTestBuffer("/*", "*/", "int x;")
	r2 := b.Row(2)
	if r2.Highlights()[0] != highlight.Type {
		t.Fatalf("setup: third row not code")
	}

	// removing the closer drags the rows below into the comment
	b.ScrollRows(1)
	b.RemoveCurrentRow()
	if r2.Highlights()[0] != highlight.Comment {
		t.Fatalf("row after removed closer = %d, want Comment", r2.Highlights()[0])
	}
}

func TestDirtyLifecycle(t *testing.T) {
	b := newTestBuffer("one", "two")
	for r := b.Head(); r != nil; r = r.Next() {
		if !r.Dirty() {
			t.Fatalf("fresh row not dirty")
		}
		r.ClearDirty()
	}
	b.Current().InsertChars(0, []rune("x"))
	if !b.Current().Dirty() {
		t.Fatalf("mutated row not dirty")
	}
	if b.Row(1).Dirty() {
		t.Fatalf("untouched row dirty")
	}
}

func TestSaveToAndLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.c")

	b := newTestBuffer("int main(void) {", "\treturn 0;", "}")
	if err := b.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "int main(void) {\n\treturn 0;\n}\n"
	if string(data) != want {
		t.Fatalf("file = %q, want %q", data, want)
	}

	loaded := Load(path)
	if loaded.Len() != 3 {
		t.Fatalf("loaded len = %d, want 3", loaded.Len())
	}
	got := collectLines(loaded)
	for i, line := range collectLines(b) {
		if got[i] != line {
			t.Fatalf("line %d = %q, want %q", i, got[i], line)
		}
	}
	if loaded.Filename() != path {
		t.Fatalf("filename = %q, want %q", loaded.Filename(), path)
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	b := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	if b.Len() != 1 || b.Current().Len() != 0 {
		t.Fatalf("missing file must yield one empty row, got %d rows", b.Len())
	}
}
