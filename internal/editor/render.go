package editor

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/ivmaly/vted/internal/buffer"
)

// Render draws the visible window, the status bar and the message bar.
// It refreshes the cached viewport size from the screen, so the scroll
// offset is always computed against the real dimensions.
func (e *Editor) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	viewHeight := h - 2
	if viewHeight < 0 {
		viewHeight = 0
	}
	e.viewWidth = w
	e.viewHeight = viewHeight
	e.scroll()

	s.SetStyle(e.styleMain)
	s.Clear()

	for y := 0; y < viewHeight; y++ {
		idx := e.offset.Y + y
		if line := e.buf.Line(idx); line != nil {
			e.drawLine(s, y, w, line)
		} else if e.buf.IsEmpty() && y == viewHeight/3 {
			e.drawWelcome(s, y, w)
		} else {
			s.SetContent(0, y, '~', nil, e.styleFringe)
		}
	}

	statusY := h - 2
	msgY := h - 1
	if statusY >= 0 {
		e.renderStatusBar(s, w, statusY)
	}
	promptX := e.renderMessageBar(s, w, msgY)

	if e.mode == ModeSearch || e.mode == ModeSaveAs {
		s.SetCursorStyle(tcell.CursorStyleSteadyBar)
		s.ShowCursor(promptX, msgY)
		s.Show()
		return
	}
	cy := e.cursor.Y - e.offset.Y
	if cy < 0 || cy >= viewHeight {
		s.HideCursor()
		s.Show()
		return
	}
	cx := 0
	if line := e.buf.Line(e.cursor.Y); line != nil {
		cx = runewidth.StringWidth(line.Render(e.offset.X, e.cursor.X))
	}
	if cx >= w {
		cx = w - 1
	}
	s.SetCursorStyle(tcell.CursorStyleSteadyBlock)
	s.ShowCursor(cx, cy)
	s.Show()
}

// drawLine paints one buffer line cluster by cluster; a cluster's extra
// code points travel as combining runes so the terminal cell stays whole.
func (e *Editor) drawLine(s tcell.Screen, y, w int, line *buffer.Line) {
	text := line.Render(e.offset.X, e.offset.X+w)
	x := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		if x >= w {
			break
		}
		rs := g.Runes()
		var comb []rune
		if len(rs) > 1 {
			comb = rs[1:]
		}
		s.SetContent(x, y, rs[0], comb, e.styleMain)
		cw := runewidth.StringWidth(g.Str())
		if cw < 1 {
			cw = 1
		}
		x += cw
	}
}

func (e *Editor) drawWelcome(s tcell.Screen, y, w int) {
	msg := runewidth.Truncate(e.welcome, w, "")
	x := (w - runewidth.StringWidth(msg)) / 2
	if x < 0 {
		x = 0
	}
	for _, r := range msg {
		s.SetContent(x, y, r, nil, e.styleMain)
		x += runewidth.RuneWidth(r)
	}
}

func (e *Editor) renderStatusBar(s tcell.Screen, w, y int) {
	name := e.buf.Name()
	if name == "" {
		name = "[No Name]"
	}
	if len(name) > 20 {
		name = name[:20]
	}
	dirty := ""
	if e.buf.Dirty() {
		dirty = " (modified)"
	}
	mode := ""
	if e.mode == ModeLineMove {
		mode = "MOVE | "
	}
	left := fmt.Sprintf(" %s%s - %d lines%s", mode, name, e.buf.Len(), dirty)
	right := fmt.Sprintf("%d/%d ", e.cursor.Y+1, e.buf.Len())
	line := composeStatusLine(left, right, w)
	for x, r := range line {
		if x >= w {
			break
		}
		s.SetContent(x, y, r, nil, e.styleStatus)
	}
}

// renderMessageBar draws the prompt or the timed status message and
// returns the screen column where a prompt cursor belongs.
func (e *Editor) renderMessageBar(s tcell.Screen, w, y int) int {
	if y < 0 {
		return 0
	}
	clearLine(s, y, w, e.styleMsg)
	var text string
	switch e.mode {
	case ModeSearch:
		text = "Search: " + string(e.prompt)
	case ModeSaveAs:
		text = "Save as: " + string(e.prompt)
	default:
		if e.statusMessage != "" && time.Since(e.statusTime) < e.statusTimeout {
			text = e.statusMessage
		}
	}
	x := 0
	for _, r := range text {
		if x >= w {
			break
		}
		s.SetContent(x, y, r, nil, e.styleMsg)
		x += runewidth.RuneWidth(r)
	}
	return x
}

func clearLine(s tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

func composeStatusLine(left, right string, width int) []rune {
	lr := []rune(left)
	rr := []rune(right)
	if len(lr) > width {
		lr = lr[:width]
	}
	pad := width - len(lr) - len(rr)
	if pad < 0 {
		pad = 0
	}
	out := make([]rune, 0, width)
	out = append(out, lr...)
	for i := 0; i < pad; i++ {
		out = append(out, ' ')
	}
	out = append(out, rr...)
	if len(out) > width {
		out = out[:width]
	}
	return out
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	if name == "" {
		return fallback
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
