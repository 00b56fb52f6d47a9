// Package buffer implements the document model: an ordered, doubly
// linked list of rows with a current-row cursor and a vertical scroll
// offset. Every mutation keeps the highlight state of downstream rows
// consistent via an explicit carry cascade.
package buffer

import (
	"bufio"
	"os"
	"strings"

	"github.com/rowkit/vid/internal/highlight"
	"github.com/rowkit/vid/internal/logger"
)

// Buffer is the document for one open file. It is never empty once
// initialized: removing the last remaining row clears it in place.
type Buffer struct {
	head    *Row
	tail    *Row
	current *Row

	count     int
	scrollTop int
	filename  string
}

// NewEmpty returns a document holding a single empty row.
func NewEmpty() *Buffer {
	b := &Buffer{}
	b.AppendLine("")
	return b
}

// Load reads path into a new document. A file that cannot be opened
// yields a single empty row; the failure is logged, not surfaced, so
// editing a new file and editing an unreadable one look the same.
func Load(path string) *Buffer {
	b := &Buffer{filename: path}
	f, err := os.Open(path)
	if err != nil {
		logger.Warn("open failed, starting with an empty document", "path", path, "err", err)
		b.AppendLine("")
		return b
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		b.AppendLine(sc.Text())
	}
	if err := sc.Err(); err != nil {
		logger.Warn("read failed, keeping partial document", "path", path, "err", err)
	}
	if b.count == 0 {
		b.AppendLine("")
	}
	logger.Debug("loaded document", "path", path, "rows", b.count)
	return b
}

// SaveTo writes the document to path, one line per row.
func (b *Buffer) SaveTo(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for r := b.head; r != nil; r = r.next {
		if _, err := w.WriteString(r.Text()); err != nil {
			f.Close()
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (b *Buffer) Len() int             { return b.count }
func (b *Buffer) Head() *Row           { return b.head }
func (b *Buffer) Current() *Row        { return b.current }
func (b *Buffer) Filename() string     { return b.filename }
func (b *Buffer) SetFilename(p string) { b.filename = p }
func (b *Buffer) ScrollTop() int       { return b.scrollTop }

func (b *Buffer) SetScrollTop(n int) {
	if n < 0 {
		n = 0
	}
	if n > b.count {
		n = b.count
	}
	b.scrollTop = n
}

// Row walks to the index-th row; nil when out of range.
func (b *Buffer) Row(index int) *Row {
	if index < 0 || index >= b.count {
		return nil
	}
	r := b.head
	for i := 0; i < index && r != nil; i++ {
		r = r.next
	}
	return r
}

// AppendLine strips a trailing line terminator, creates a row and links
// it at the tail, seeding its carry state from its predecessor.
func (b *Buffer) AppendLine(line string) *Row {
	line = strings.TrimRight(line, "\r\n")
	r := &Row{text: []rune(line), dirty: true}
	if b.tail == nil {
		b.head = r
		b.tail = r
		b.current = r
	} else {
		r.carryIn = b.tail.carryOut
		r.prev = b.tail
		b.tail.next = r
		b.tail = r
	}
	b.count++
	r.rescan()
	return r
}

// Propagate pushes r's exit carry into the rows below, re-highlighting
// each until a row's exit state stops changing or the document ends.
func (b *Buffer) Propagate(r *Row) {
	for r != nil && r.next != nil && r.next.carryIn != r.carryOut {
		r.next.carryIn = r.carryOut
		r.next.rescan()
		r.next.dirty = true
		r = r.next
	}
}

// BreakCurrentLine splits the current row at column at: a new row takes
// the characters from at onward and is linked right after.
func (b *Buffer) BreakCurrentLine(at int) {
	cur := b.current
	if cur == nil {
		return
	}
	if at < 0 {
		at = 0
	}
	if at > cur.Len() {
		at = cur.Len()
	}
	nr := &Row{text: []rune(string(cur.text[at:])), dirty: true}
	nr.prev = cur
	nr.next = cur.next
	if cur.next != nil {
		cur.next.prev = nr
	} else {
		b.tail = nr
	}
	cur.next = nr
	b.count++

	cur.Trim(at)
	nr.carryIn = cur.carryOut
	nr.rescan()
	b.Propagate(nr)
}

// JoinCurrentWithPrevious appends the current row's content to its
// predecessor, removes the current row and returns the number of
// characters appended. Without a previous row this is a no-op.
func (b *Buffer) JoinCurrentWithPrevious() int {
	cur := b.current
	if cur == nil || cur.prev == nil {
		return 0
	}
	prev := cur.prev
	n := cur.Len()
	if n > 0 {
		prev.InsertChars(prev.Len(), cur.text)
	}
	b.current = prev
	b.unlink(cur)
	b.Propagate(prev)
	return n
}

// RemoveRow unlinks row from the list. The sole remaining row is
// cleared in place instead, keeping the document non-empty.
func (b *Buffer) RemoveRow(r *Row) {
	if r == nil {
		return
	}
	if b.count <= 1 {
		r.Replace("")
		b.Propagate(r)
		return
	}
	if b.current == r {
		if r.next != nil {
			b.current = r.next
		} else {
			b.current = r.prev
		}
	}
	b.unlink(r)
}

// RemoveCurrentRow removes the current row and reports which neighbour
// became current: +1 for next, -1 for previous, 0 when the row was
// cleared in place.
func (b *Buffer) RemoveCurrentRow() int {
	cur := b.current
	if cur == nil {
		return 0
	}
	if b.count <= 1 {
		cur.Replace("")
		b.Propagate(cur)
		return 0
	}
	if cur.next != nil {
		b.current = cur.next
		b.unlink(cur)
		return 1
	}
	b.current = cur.prev
	b.unlink(cur)
	return -1
}

// unlink splices r out and re-seeds the carry state at the joint.
func (b *Buffer) unlink(r *Row) {
	if r.prev != nil {
		r.prev.next = r.next
	} else {
		b.head = r.next
	}
	if r.next != nil {
		r.next.prev = r.prev
	} else {
		b.tail = r.prev
	}
	b.count--

	if r.next != nil {
		var in highlight.Carry
		if r.prev != nil {
			in = r.prev.carryOut
		}
		if r.next.carryIn != in {
			r.next.carryIn = in
			r.next.rescan()
			r.next.dirty = true
			b.Propagate(r.next)
		}
	}
	r.prev = nil
	r.next = nil
}

// ScrollRows moves the current row by up to |delta| links, stopping at
// the document boundaries.
func (b *Buffer) ScrollRows(delta int) {
	for delta > 0 && b.current != nil && b.current.next != nil {
		b.current = b.current.next
		delta--
	}
	for delta < 0 && b.current != nil && b.current.prev != nil {
		b.current = b.current.prev
		delta++
	}
}

// ScrollToTop makes the head row current.
func (b *Buffer) ScrollToTop() {
	b.current = b.head
}

func (b *Buffer) IsFirstRow() bool { return b.current != nil && b.current == b.head }
func (b *Buffer) IsLastRow() bool  { return b.current != nil && b.current == b.tail }
