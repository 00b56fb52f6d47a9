// Package editor implements the mode state machine that turns keystrokes
// into document mutations and screen updates.
package editor

import (
	"github.com/gdamore/tcell/v2"

	"github.com/rowkit/vid/internal/buffer"
	"github.com/rowkit/vid/internal/config"
)

type Mode int

const (
	ModeNavigate Mode = iota
	ModeCommandEntry
	ModeCommandExecuting
	ModeInsert
	ModeExiting
)

const (
	topBarHeight    = 1
	// one row for the command line, one for the status bar
	bottomBarHeight = 2
)

type Editor struct {
	buf *buffer.Buffer

	mode Mode

	// screen-space cursor; logical column is derived via cursorCol
	cursorX int
	cursorY int

	startColumn int // first visible character column (horizontal scroll)
	gutter      int // line-number margin width in cells
	width       int
	height      int

	tabWidth int

	seq    []rune // pending multi-key sequence (digit run, or g/d)
	repeat int    // extra repetitions for the next resolved command

	cmd        []rune // text typed after ':'
	statusText string
	errorText  string

	stickyEnd bool // keep tracking end-of-line on vertical motion
	modified  bool

	styles styleSet
}

func New(cfg config.Config) *Editor {
	tabWidth := cfg.Editor.TabWidth
	if tabWidth <= 0 {
		tabWidth = 4
	}
	e := &Editor{
		buf:      buffer.NewEmpty(),
		tabWidth: tabWidth,
		cursorY:  topBarHeight,
		gutter:   2,
		styles:   newStyles(cfg.Theme),
	}
	e.cursorX = e.gutter
	return e
}

// OpenFile replaces the document with the contents of path. A path that
// cannot be read yields an empty document (the buffer logs the failure).
func (e *Editor) OpenFile(path string) {
	e.buf = buffer.Load(path)
	e.mode = ModeNavigate
	e.cursorY = topBarHeight
	e.cursorX = e.gutter
	e.startColumn = 0
	e.seq = e.seq[:0]
	e.repeat = 0
	e.cmd = e.cmd[:0]
	e.statusText = ""
	e.errorText = ""
	e.stickyEnd = false
	e.modified = false
}

func (e *Editor) Buffer() *buffer.Buffer { return e.buf }
func (e *Editor) Mode() Mode             { return e.mode }

// HandleKey processes one keystroke to completion and reports whether
// the editor should exit.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	switch e.mode {
	case ModeInsert:
		e.handleInsert(ev)
	case ModeCommandEntry:
		e.handleCommandEntry(ev)
	case ModeExiting:
	default:
		e.handleNavigate(ev)
	}
	return e.mode == ModeExiting
}

func (e *Editor) handleNavigate(ev *tcell.EventKey) {
	if len(e.seq) > 0 && e.handleSequence(ev) {
		return
	}
	if ev.Key() == tcell.KeyRune && ev.Rune() == ':' {
		e.errorText = ""
		e.statusText = ""
		e.cmd = e.cmd[:0]
		e.mode = ModeCommandEntry
		return
	}
	repeat := e.repeat
	e.repeat = 0
	for i := 0; i <= repeat; i++ {
		e.navigateKey(ev)
	}
}

// handleSequence resolves the second key of a pending sequence. It
// returns false when the key ended a digit run and must itself be
// dispatched normally.
func (e *Editor) handleSequence(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape {
		e.seq = e.seq[:0]
		return true
	}
	if isDigitRun(e.seq) {
		if ev.Key() == tcell.KeyRune && ev.Rune() >= '0' && ev.Rune() <= '9' {
			e.seq = append(e.seq, ev.Rune())
			return true
		}
		e.repeat = digitRunValue(e.seq) - 1
		if e.repeat < 0 {
			e.repeat = 0
		}
		e.seq = e.seq[:0]
		return false
	}

	lead := e.seq[0]
	e.seq = e.seq[:0]
	if ev.Key() != tcell.KeyRune {
		return true
	}
	switch lead {
	case 'g':
		if ev.Rune() == 'g' {
			e.moveToTop()
		}
	case 'd':
		switch ev.Rune() {
		case 'd':
			e.deleteLine()
		case 'w':
			e.deleteWord()
		}
	}
	return true
}

func (e *Editor) navigateKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyLeft:
		e.stickyEnd = false
		e.moveCursorX(-1, false)
		return
	case tcell.KeyRight:
		e.stickyEnd = false
		e.moveCursorX(1, false)
		return
	case tcell.KeyDown:
		e.moveDown()
		return
	case tcell.KeyUp:
		e.moveUp()
		return
	case tcell.KeyEscape:
		e.seq = e.seq[:0]
		e.errorText = ""
		return
	}
	if ev.Key() != tcell.KeyRune {
		return
	}

	cur := e.buf.Current()
	switch r := ev.Rune(); r {
	case 'h':
		e.stickyEnd = false
		e.moveCursorX(-1, false)
	case 'l':
		e.stickyEnd = false
		e.moveCursorX(1, false)
	case 'j':
		e.moveDown()
	case 'k':
		e.moveUp()
	case '^':
		e.stickyEnd = false
		e.moveToFirstNonblank()
	case '$':
		e.moveToEnd()
		e.stickyEnd = true
	case 'G':
		e.stickyEnd = false
		e.moveToBottom()
	case 'w':
		e.stickyEnd = false
		e.moveCursorX(cur.OffsetToNextWord(e.cursorCol()), false)
	case 'b':
		e.stickyEnd = false
		e.moveCursorX(cur.OffsetToPrevWord(e.cursorCol()), false)
	case 'g', 'd':
		e.seq = []rune{r}
	case 'x':
		e.deleteChar()
	case 'i':
		e.stickyEnd = false
		e.mode = ModeInsert
	case 'a':
		e.stickyEnd = false
		e.mode = ModeInsert
		e.moveCursorX(1, true)
	default:
		if r >= '0' && r <= '9' {
			e.seq = append(e.seq, r)
		}
	}
}

func (e *Editor) handleInsert(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		e.mode = ModeNavigate
		// the cursor may sit one past the end after appending
		e.fixCursorPosition()
		return
	case tcell.KeyLeft:
		e.moveCursorX(-1, true)
		return
	case tcell.KeyRight:
		e.moveCursorX(1, true)
		return
	case tcell.KeyUp:
		e.moveUp()
		return
	case tcell.KeyDown:
		e.moveDown()
		return
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.backspace()
		return
	case tcell.KeyEnter:
		e.breakLine()
		return
	case tcell.KeyTab:
		e.insertTab()
		return
	}
	if ev.Key() == tcell.KeyRune {
		cur := e.buf.Current()
		if cur.InsertChars(e.cursorCol(), []rune{ev.Rune()}) {
			e.buf.Propagate(cur)
			e.moveCursorX(1, true)
			e.modified = true
		}
	}
}

func (e *Editor) handleCommandEntry(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		e.cmd = e.cmd[:0]
		e.mode = ModeNavigate
	case tcell.KeyEnter:
		e.mode = ModeCommandExecuting
		cmd := string(e.cmd)
		e.cmd = e.cmd[:0]
		e.executeCommand(cmd)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(e.cmd) > 0 {
			e.cmd = e.cmd[:len(e.cmd)-1]
		}
	default:
		if ev.Key() == tcell.KeyRune {
			e.cmd = append(e.cmd, ev.Rune())
		}
	}
}

func isDigitRun(seq []rune) bool {
	for _, r := range seq {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(seq) > 0
}

func digitRunValue(seq []rune) int {
	n := 0
	for _, r := range seq {
		n = n*10 + int(r-'0')
	}
	return n
}
