package editor

import (
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ivmaly/vted/internal/buffer"
	"github.com/ivmaly/vted/internal/config"
	"github.com/ivmaly/vted/internal/logger"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeLineMove
	ModeSearch
	ModeSaveAs
	ModeConfirmQuit
)

const helpMessage = "HELP: Ctrl-F = find | Ctrl-S = save | Ctrl-C = quit"

// Editor owns the buffer, cursor and viewport offset and applies one
// command at a time. Nothing else mutates them; rendering is read-only and
// happens strictly after a command finishes.
type Editor struct {
	buf    *buffer.Buffer
	cursor buffer.Position
	offset buffer.Position
	mode   Mode

	prompt []rune

	statusMessage string
	statusTime    time.Time
	statusTimeout time.Duration

	viewWidth  int
	viewHeight int

	welcome string

	styleMain   tcell.Style
	styleStatus tcell.Style
	styleMsg    tcell.Style
	styleFringe tcell.Style
}

func New(cfg config.Config) *Editor {
	mainFg := parseColor(cfg.Theme.Foreground, tcell.ColorWhite)
	mainBg := parseColor(cfg.Theme.Background, tcell.ColorBlack)
	statusFg := parseColor(cfg.Theme.StatuslineForeground, tcell.ColorBlack)
	statusBg := parseColor(cfg.Theme.StatuslineBackground, tcell.ColorGray)
	msgFg := parseColor(cfg.Theme.MessageForeground, mainFg)
	fringeFg := parseColor(cfg.Theme.FringeForeground, tcell.ColorGray)
	timeout := time.Duration(cfg.Editor.StatusTimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	e := &Editor{
		buf:           buffer.New("", nil),
		statusTimeout: timeout,
		welcome:       cfg.Editor.WelcomeMessage,
		styleMain:     tcell.StyleDefault.Foreground(mainFg).Background(mainBg),
		styleStatus:   tcell.StyleDefault.Foreground(statusFg).Background(statusBg),
		styleMsg:      tcell.StyleDefault.Foreground(msgFg).Background(mainBg),
		styleFringe:   tcell.StyleDefault.Foreground(fringeFg).Background(mainBg),
	}
	e.setStatus(helpMessage)
	return e
}

// Open replaces the buffer with the given initial lines.
func (e *Editor) Open(name string, lines []string) {
	e.buf = buffer.New(name, lines)
	e.cursor = buffer.Position{}
	e.offset = buffer.Position{}
	e.mode = ModeNormal
	e.prompt = nil
}

// OpenFile loads a file from disk into a fresh buffer.
func (e *Editor) OpenFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	e.Open(path, splitLines(data))
	logger.Info("opened file", "path", path, "lines", e.buf.Len())
	return nil
}

func (e *Editor) Buffer() *buffer.Buffer  { return e.buf }
func (e *Editor) Cursor() buffer.Position { return e.cursor }
func (e *Editor) Offset() buffer.Position { return e.offset }
func (e *Editor) Mode() Mode              { return e.mode }

// SetSize fixes the viewport dimensions used for paging and scrolling.
// Render refreshes them from the screen on every frame.
func (e *Editor) SetSize(width, height int) {
	e.viewWidth = width
	e.viewHeight = height
}

func (e *Editor) SetStatusMessage(msg string) {
	e.setStatus(msg)
}

func (e *Editor) setStatus(msg string) {
	e.statusMessage = msg
	e.statusTime = time.Now()
}

// Find exposes search to collaborators: the first match at or after the
// cursor line, or false. The cursor does not move.
func (e *Editor) Find(query string) (buffer.Position, bool) {
	return e.buf.Find(query, e.cursor)
}

// Save persists the buffer to the file named by the buffer.
func (e *Editor) Save() error {
	return e.buf.Persist(buffer.FileSink{Path: e.buf.Name()})
}

// Apply executes one command against the buffer and cursor, then re-clamps
// the cursor and scrolls the viewport. Out-of-range commands clamp or
// no-op; nothing here can fail.
func (e *Editor) Apply(cmd Command) {
	switch cmd.Kind {
	case CmdInsertChar:
		if cmd.Ch != "" && cmd.Ch != "\n" {
			e.buf.InsertChar(e.cursor, cmd.Ch)
			e.cursor = moveCursor(Right, e.buf, e.cursor, e.pageSize())
		}
	case CmdInsertNewline:
		e.buf.InsertChar(e.cursor, "\n")
		e.cursor = moveCursor(Right, e.buf, e.cursor, e.pageSize())
	case CmdDeleteForward:
		e.buf.DeleteChar(e.cursor)
	case CmdDeleteBackward:
		if e.cursor.X > 0 || e.cursor.Y > 0 {
			e.cursor = moveCursor(Left, e.buf, e.cursor, e.pageSize())
			e.buf.DeleteChar(e.cursor)
		}
	case CmdMove:
		if e.mode == ModeLineMove && (cmd.Dir == Up || cmd.Dir == Down) {
			e.moveLine(cmd.Dir)
		} else {
			e.cursor = moveCursor(cmd.Dir, e.buf, e.cursor, e.pageSize())
		}
	case CmdToggleLineMove:
		if e.mode == ModeLineMove {
			e.mode = ModeNormal
		} else if e.mode == ModeNormal {
			e.mode = ModeLineMove
		}
	case CmdMoveLine:
		e.moveLine(cmd.Dir)
	case CmdFind:
		e.findAndJump(cmd.Query)
	case CmdDeleteLine:
		e.buf.DeleteLine(e.cursor.Y)
		e.cursor.X = 0
	case CmdSetName:
		e.buf.SetName(cmd.Name)
	}
	e.cursor = clampCursor(e.buf, e.cursor)
	e.scroll()
}

// moveLine reorders the current line one step and moves the cursor along
// with it. Moves that would push the line off either end are ignored.
func (e *Editor) moveLine(dir Direction) {
	y := e.cursor.Y
	line := e.buf.Line(y)
	if line == nil {
		return
	}
	switch dir {
	case Up:
		if y == 0 {
			return
		}
		e.buf.DeleteLine(y)
		e.buf.InsertLine(line, y-1)
	case Down:
		if y+1 >= e.buf.Len() {
			return
		}
		e.buf.DeleteLine(y)
		e.buf.InsertLine(line, y+1)
	default:
		return
	}
	e.cursor = moveCursor(dir, e.buf, e.cursor, e.pageSize())
}

func (e *Editor) findAndJump(query string) {
	if query == "" {
		return
	}
	logger.Debug("search", "query", query)
	pos, ok := e.buf.Find(query, e.cursor)
	if !ok {
		e.setStatus("Not found: " + query)
		return
	}
	e.cursor = pos
}

func (e *Editor) pageSize() int {
	if e.viewHeight > 0 {
		return e.viewHeight
	}
	return 1
}

func (e *Editor) scroll() {
	e.offset = adjustViewport(e.cursor, e.offset, e.viewWidth, e.viewHeight)
}

// HandleKey decodes one terminal key event into commands and applies them.
// It returns true when the editor should quit.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	switch e.mode {
	case ModeSearch, ModeSaveAs:
		e.handlePrompt(ev)
		return false
	case ModeConfirmQuit:
		return e.handleConfirmQuit(ev)
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		if e.buf.Dirty() {
			e.mode = ModeConfirmQuit
			e.setStatus("Unsaved changes. Enter to quit, Esc to continue.")
			return false
		}
		return true
	case tcell.KeyCtrlS:
		e.save()
	case tcell.KeyCtrlF:
		e.mode = ModeSearch
		e.prompt = nil
	case tcell.KeyCtrlD:
		e.Apply(Command{Kind: CmdDeleteLine})
	case tcell.KeyCtrlX:
		e.Apply(Command{Kind: CmdToggleLineMove})
	case tcell.KeyEscape:
		if e.mode == ModeLineMove {
			e.Apply(Command{Kind: CmdToggleLineMove})
		}
	case tcell.KeyUp:
		e.Apply(Command{Kind: CmdMove, Dir: Up})
	case tcell.KeyDown:
		e.Apply(Command{Kind: CmdMove, Dir: Down})
	case tcell.KeyLeft:
		e.Apply(Command{Kind: CmdMove, Dir: Left})
	case tcell.KeyRight:
		e.Apply(Command{Kind: CmdMove, Dir: Right})
	case tcell.KeyPgUp:
		e.Apply(Command{Kind: CmdMove, Dir: PageUp})
	case tcell.KeyPgDn:
		e.Apply(Command{Kind: CmdMove, Dir: PageDown})
	case tcell.KeyHome:
		e.Apply(Command{Kind: CmdMove, Dir: Home})
	case tcell.KeyEnd:
		e.Apply(Command{Kind: CmdMove, Dir: End})
	case tcell.KeyEnter:
		e.Apply(Command{Kind: CmdInsertNewline})
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.Apply(Command{Kind: CmdDeleteBackward})
	case tcell.KeyDelete:
		e.Apply(Command{Kind: CmdDeleteForward})
	case tcell.KeyTab:
		e.Apply(Command{Kind: CmdInsertChar, Ch: "\t"})
	case tcell.KeyRune:
		e.Apply(Command{Kind: CmdInsertChar, Ch: string(ev.Rune())})
	}
	return false
}

func (e *Editor) handlePrompt(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		mode := e.mode
		e.mode = ModeNormal
		e.prompt = nil
		if mode == ModeSaveAs {
			e.setStatus("Save aborted")
		}
	case tcell.KeyEnter:
		text := string(e.prompt)
		mode := e.mode
		e.mode = ModeNormal
		e.prompt = nil
		switch mode {
		case ModeSearch:
			e.Apply(Command{Kind: CmdFind, Query: text})
		case ModeSaveAs:
			if text == "" {
				e.setStatus("Save aborted")
				return
			}
			e.Apply(Command{Kind: CmdSetName, Name: text})
			e.save()
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(e.prompt) > 0 {
			e.prompt = e.prompt[:len(e.prompt)-1]
		}
	case tcell.KeyRune:
		e.prompt = append(e.prompt, ev.Rune())
	}
}

func (e *Editor) handleConfirmQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEnter:
		return true
	case tcell.KeyEscape:
		e.mode = ModeNormal
		e.setStatus(helpMessage)
	}
	return false
}

func (e *Editor) save() {
	if e.buf.Name() == "" {
		e.mode = ModeSaveAs
		e.prompt = nil
		return
	}
	if err := e.Save(); err != nil {
		logger.Error("save failed", "name", e.buf.Name(), "err", err)
		e.setStatus("Error writing file: " + err.Error())
		return
	}
	logger.Info("saved", "name", e.buf.Name(), "lines", e.buf.Len())
	e.setStatus("File saved successfully")
}

func splitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	s := strings.TrimSuffix(string(data), "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
