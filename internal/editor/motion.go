package editor

// cursorCol converts the screen cursor into a logical character index
// within the current row.
func (e *Editor) cursorCol() int {
	col := e.cursorX + e.startColumn - e.gutter
	if col < 0 {
		col = 0
	}
	return col
}

func (e *Editor) viewHeight() int {
	h := e.height - topBarHeight - bottomBarHeight
	if h < 0 {
		h = 0
	}
	return h
}

func (e *Editor) homeCursorX() {
	e.cursorX = e.gutter
	if e.startColumn != 0 {
		e.startColumn = 0
		e.markVisibleDirty()
	}
}

func (e *Editor) homeCursorY() {
	e.cursorY = topBarHeight
	if e.buf.ScrollTop() != 0 {
		e.buf.SetScrollTop(0)
		e.markVisibleDirty()
	}
}

// moveCursorX moves the cursor x columns along the current row, spilling
// into horizontal scroll at the window edges. In insert mode the cursor
// may rest one column past the last character.
func (e *Editor) moveCursorX(x int, insert bool) {
	if x > 0 {
		e.moveCursorRight(x, insert)
	} else if x < 0 {
		e.moveCursorLeft(-x)
	}
}

func (e *Editor) moveCursorRight(x int, insert bool) {
	lineLen := e.buf.Current().Len() - 1
	if insert {
		lineLen++
	}
	tillEnd := lineLen - e.cursorCol()
	if x > tillEnd {
		x = tillEnd
	}
	if x <= 0 {
		return
	}
	tillWindowEnd := e.width - e.cursorX - 1
	if x > tillWindowEnd {
		e.cursorX = e.width - 1
		e.startColumn += x - tillWindowEnd
		e.markVisibleDirty()
	} else {
		e.cursorX += x
	}
}

func (e *Editor) moveCursorLeft(x int) {
	tillWindowStart := e.cursorX - e.gutter
	if x > tillWindowStart {
		x -= tillWindowStart
		e.cursorX = e.gutter
	} else {
		e.cursorX -= x
		x = 0
	}
	if x > 0 {
		if x > e.startColumn {
			e.startColumn = 0
		} else {
			e.startColumn -= x
		}
		e.markVisibleDirty()
	}
}

// moveCursorY moves the cursor y screen rows, scrolling the document when
// the cursor would leave the writable band.
func (e *Editor) moveCursorY(y int) {
	prevTop := e.buf.ScrollTop()
	maxY := e.height - bottomBarHeight - topBarHeight
	e.cursorY += y
	if e.cursorY <= topBarHeight {
		e.buf.SetScrollTop(prevTop + e.cursorY - topBarHeight)
		e.cursorY = topBarHeight
	} else if e.cursorY > maxY {
		top := prevTop + e.cursorY - maxY
		e.cursorY = maxY
		maxTop := e.buf.Len() - e.viewHeight()
		if top > maxTop {
			top = maxTop
		}
		if top < 0 {
			top = 0
		}
		e.buf.SetScrollTop(top)
	}
	if e.buf.ScrollTop() != prevTop {
		e.markVisibleDirty()
	}
}

func (e *Editor) moveUp() {
	if e.buf.IsFirstRow() {
		return
	}
	e.moveCursorY(-1)
	e.buf.ScrollRows(-1)
	e.fixCursorPosition()
}

func (e *Editor) moveDown() {
	if e.buf.IsLastRow() {
		return
	}
	e.moveCursorY(1)
	e.buf.ScrollRows(1)
	e.fixCursorPosition()
}

func (e *Editor) moveToFirstNonblank() {
	e.homeCursorX()
	e.moveCursorX(e.buf.Current().OffsetToFirstNonblank(0), false)
}

func (e *Editor) moveToEnd() {
	e.moveCursorX(e.buf.Current().Len(), false)
}

func (e *Editor) moveToTop() {
	if e.buf.IsFirstRow() && e.buf.ScrollTop() == 0 {
		e.homeCursorY()
		e.fixCursorPosition()
		return
	}
	e.buf.ScrollToTop()
	e.homeCursorY()
	e.fixCursorPosition()
	e.markVisibleDirty()
}

func (e *Editor) moveToBottom() {
	if e.buf.IsLastRow() {
		return
	}
	linesToEnd := e.buf.Len() - e.buf.ScrollTop() - 1
	e.moveCursorY(linesToEnd)
	e.buf.ScrollRows(linesToEnd)
	e.fixCursorPosition()
}

// fixCursorPosition pulls the cursor back onto the row after a motion or
// edit left it past the last character.
func (e *Editor) fixCursorPosition() {
	cur := e.buf.Current()
	if cur == nil {
		return
	}
	if cur.Len() <= e.cursorCol() {
		e.homeCursorX()
		e.moveCursorX(cur.Len(), false)
	}
}

func (e *Editor) deleteChar() {
	cur := e.buf.Current()
	if cur.RemoveChars(e.cursorCol(), 1) > 0 {
		e.buf.Propagate(cur)
		e.modified = true
		e.fixCursorPosition()
	}
}

func (e *Editor) deleteLine() {
	if e.buf.RemoveCurrentRow() < 0 {
		e.moveCursorY(-1)
	}
	e.modified = true
	e.markVisibleDirty()
	e.fixCursorPosition()
}

func (e *Editor) deleteWord() {
	cur := e.buf.Current()
	off := cur.OffsetToNextWord(e.cursorCol())
	if off <= 0 {
		return
	}
	cur.RemoveChars(e.cursorCol(), off)
	e.buf.Propagate(cur)
	e.modified = true
	e.fixCursorPosition()
}

func (e *Editor) backspace() {
	cur := e.buf.Current()
	if e.cursorCol() > 0 {
		e.moveCursorX(-1, true)
		if cur.RemoveChars(e.cursorCol(), 1) > 0 {
			e.buf.Propagate(cur)
			e.modified = true
		}
		return
	}
	if e.buf.IsFirstRow() {
		return
	}
	chars := e.buf.JoinCurrentWithPrevious()
	e.moveCursorY(-1)
	joined := e.buf.Current()
	e.homeCursorX()
	e.moveCursorX(joined.Len()-chars, true)
	e.markVisibleDirty()
	e.modified = true
}

func (e *Editor) breakLine() {
	e.markVisibleDirty()
	e.buf.BreakCurrentLine(e.cursorCol())
	e.moveCursorY(1)
	e.homeCursorX()
	e.buf.ScrollRows(1)
	e.modified = true
}

func (e *Editor) insertTab() {
	cur := e.buf.Current()
	spaces := make([]rune, e.tabWidth)
	for i := range spaces {
		spaces[i] = ' '
	}
	if cur.InsertChars(e.cursorCol(), spaces) {
		e.buf.Propagate(cur)
		e.moveCursorX(e.tabWidth, true)
		e.modified = true
	}
}

// markVisibleDirty forces a repaint of every row inside the viewport.
func (e *Editor) markVisibleDirty() {
	row := e.buf.Row(e.buf.ScrollTop())
	for y := 0; y < e.viewHeight() && row != nil; y++ {
		row.MarkDirty()
		row = row.Next()
	}
}

// Invalidate marks the whole document dirty, typically after a resize.
func (e *Editor) Invalidate() {
	for r := e.buf.Head(); r != nil; r = r.Next() {
		r.MarkDirty()
	}
}
