package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/rowkit/vid/internal/buffer"
	"github.com/rowkit/vid/internal/config"
	"github.com/rowkit/vid/internal/highlight"
)

type styleSet struct {
	main       tcell.Style
	status     tcell.Style
	command    tcell.Style
	errorLine  tcell.Style
	lineNumber tcell.Style
	token      [highlight.Count]tcell.Style
}

func newStyles(t config.Theme) styleSet {
	mainFg := parseColor(t.Foreground, tcell.ColorWhite)
	mainBg := parseColor(t.Background, tcell.ColorBlack)
	statusFg := parseColor(t.StatuslineForeground, tcell.ColorBlack)
	statusBg := parseColor(t.StatuslineBackground, tcell.ColorGray)
	commandFg := parseColor(t.CommandlineForeground, statusFg)
	commandBg := parseColor(t.CommandlineBackground, statusBg)
	errorFg := parseColor(t.ErrorForeground, tcell.ColorRed)
	lineNumberFg := parseColor(t.LineNumberForeground, tcell.ColorGray)

	main := tcell.StyleDefault.Foreground(mainFg).Background(mainBg)
	set := styleSet{
		main:       main,
		status:     tcell.StyleDefault.Foreground(statusFg).Background(statusBg),
		command:    tcell.StyleDefault.Foreground(commandFg).Background(commandBg),
		errorLine:  tcell.StyleDefault.Foreground(errorFg).Background(commandBg).Bold(true),
		lineNumber: tcell.StyleDefault.Foreground(lineNumberFg).Background(mainBg),
	}

	set.token[highlight.Normal] = main
	set.token[highlight.Keyword] = main.Foreground(parseColor(t.SyntaxKeyword, mainFg)).Bold(true)
	set.token[highlight.Keyword2] = main.Foreground(parseColor(t.SyntaxKeyword2, mainFg))
	set.token[highlight.Type] = main.Foreground(parseColor(t.SyntaxType, mainFg))
	set.token[highlight.String] = main.Foreground(parseColor(t.SyntaxString, mainFg))
	set.token[highlight.Comment] = main.Foreground(parseColor(t.SyntaxComment, mainFg)).Italic(true)
	set.token[highlight.Preprocessor] = main.Foreground(parseColor(t.SyntaxPreprocessor, mainFg))
	set.token[highlight.Digit] = main.Foreground(parseColor(t.SyntaxDigit, mainFg))
	set.token[highlight.Symbol] = main.Foreground(parseColor(t.SyntaxSymbol, mainFg))
	set.token[highlight.Symbol2] = main.Foreground(parseColor(t.SyntaxSymbol2, mainFg))
	return set
}

// Resize records the new screen dimensions, reclamps the cursor into the
// writable band and forces a full repaint.
func (e *Editor) Resize(w, h int) {
	e.width, e.height = w, h
	maxY := h - bottomBarHeight - topBarHeight
	if maxY < topBarHeight {
		maxY = topBarHeight
	}
	if e.cursorY > maxY {
		e.cursorY = maxY
	}
	if e.cursorY < topBarHeight {
		e.cursorY = topBarHeight
	}
	if e.cursorX >= w && w > 0 {
		e.cursorX = w - 1
	}
	if e.cursorX < e.gutter {
		e.cursorX = e.gutter
	}
	e.Invalidate()
}

// Render repaints the dirty portions of the screen. Rows whose dirty flag
// is clear are skipped.
func (e *Editor) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h < topBarHeight+bottomBarHeight+1 {
		return
	}
	if w != e.width || h != e.height {
		e.Resize(w, h)
	}
	if e.stickyEnd && e.mode == ModeNavigate {
		e.moveToEnd()
	}
	e.updateGutter()

	e.drawTopBar(s, w)

	top := e.buf.ScrollTop()
	row := e.buf.Row(top)
	for y := 0; y < e.viewHeight(); y++ {
		sy := y + topBarHeight
		if row == nil {
			clearLine(s, sy, w, e.styles.main)
			continue
		}
		if row.Dirty() {
			e.drawRow(s, sy, w, top+y+1, row)
			row.ClearDirty()
		}
		row = row.Next()
	}

	e.drawStatusBar(s, w, h-2)
	e.drawCommandLine(s, w, h-1)

	if e.mode == ModeCommandEntry {
		s.ShowCursor(len(e.cmd)+1, h-1)
	} else {
		s.ShowCursor(e.screenCursorX(), e.cursorY)
	}
	s.Show()
}

// screenCursorX converts the logical cursor column into a screen cell.
// Rows are drawn with display widths, so a double-width rune shifts
// every cell after it one column right of the plain rune count.
func (e *Editor) screenCursorX() int {
	text := e.buf.Current().Runes()
	col := e.cursorCol()
	if col > len(text) {
		col = len(text)
	}
	x := e.gutter
	for i := e.startColumn; i < col; i++ {
		x += runewidth.RuneWidth(text[i])
	}
	if e.width > 0 && x > e.width-1 {
		x = e.width - 1
	}
	return x
}

// updateGutter sizes the line-number margin to the largest visible line
// number plus one padding cell.
func (e *Editor) updateGutter() {
	g := len(strconv.Itoa(e.buf.ScrollTop()+e.viewHeight())) + 1
	if g == e.gutter {
		return
	}
	e.gutter = g
	if e.cursorX < g {
		e.cursorX = g
	}
	e.markVisibleDirty()
}

func (e *Editor) drawTopBar(s tcell.Screen, w int) {
	name := e.buf.Filename()
	if name == "" {
		name = "[no name]"
	}
	if e.modified {
		name += " *"
	}
	line := composeStatusLine(" "+name, "", w)
	for x, r := range line {
		s.SetContent(x, 0, r, nil, e.styles.status)
	}
}

func (e *Editor) drawRow(s tcell.Screen, y, w, lineNo int, row *buffer.Row) {
	number := strconv.Itoa(lineNo)
	x := 0
	for _, r := range number {
		if x >= e.gutter-1 || x >= w {
			break
		}
		s.SetContent(x, y, r, nil, e.styles.lineNumber)
		x++
	}
	for ; x < e.gutter && x < w; x++ {
		s.SetContent(x, y, ' ', nil, e.styles.lineNumber)
	}

	text := row.Runes()
	hl := row.Highlights()
	for i := e.startColumn; i < len(text); i++ {
		if x >= w {
			break
		}
		style := e.styles.main
		if i < len(hl) {
			style = e.styles.token[hl[i]]
		}
		s.SetContent(x, y, text[i], nil, style)
		x += runewidth.RuneWidth(text[i])
	}
	for ; x < w; x++ {
		s.SetContent(x, y, ' ', nil, e.styles.main)
	}
}

func (e *Editor) drawStatusBar(s tcell.Screen, w, y int) {
	name := e.buf.Filename()
	if name == "" {
		name = "[no name]"
	}
	if e.modified {
		name += "*"
	}
	left := fmt.Sprintf(" %s | %s", e.modeName(), name)
	if e.statusText != "" {
		left += " | " + e.statusText
	}
	line := e.buf.ScrollTop() + e.cursorY - topBarHeight + 1
	right := fmt.Sprintf("Ln %d, Col %d ", line, e.cursorCol()+1)
	for x, r := range composeStatusLine(left, right, w) {
		s.SetContent(x, y, r, nil, e.styles.status)
	}
}

func (e *Editor) drawCommandLine(s tcell.Screen, w, y int) {
	left := ""
	style := e.styles.command
	switch {
	case e.mode == ModeCommandEntry:
		left = ":" + string(e.cmd)
	case e.errorText != "":
		left = " " + e.errorText
		style = e.styles.errorLine
	}
	right := ""
	if len(e.seq) > 0 {
		right = string(e.seq) + " "
	}
	for x, r := range composeStatusLine(left, right, w) {
		s.SetContent(x, y, r, nil, style)
	}
}

func (e *Editor) modeName() string {
	switch e.mode {
	case ModeInsert:
		return "INSERT"
	case ModeCommandEntry, ModeCommandExecuting:
		return "COMMAND"
	case ModeExiting:
		return "EXITING"
	default:
		return "NAVIGATE"
	}
}

func clearLine(s tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

func composeStatusLine(left, right string, width int) []rune {
	if width <= 0 {
		return nil
	}
	leftRunes := []rune(left)
	rightRunes := []rune(right)
	if len(leftRunes)+len(rightRunes) > width {
		if len(rightRunes) >= width {
			rightRunes = rightRunes[len(rightRunes)-width:]
			leftRunes = nil
		} else {
			leftRunes = leftRunes[:width-len(rightRunes)]
		}
	}
	spaceCount := width - len(leftRunes) - len(rightRunes)
	if spaceCount < 0 {
		spaceCount = 0
	}
	line := make([]rune, 0, width)
	line = append(line, leftRunes...)
	for i := 0; i < spaceCount; i++ {
		line = append(line, ' ')
	}
	line = append(line, rightRunes...)
	return line
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
