package buffer

import (
	"os"
	"strings"
)

// Position addresses a point in a buffer: X is a grapheme column, Y a line
// index. Y == Len() is the valid append position past the last line.
type Position struct {
	X int
	Y int
}

// Sink receives buffer content during a persist. It reports failure, which
// is the only error a buffer operation can surface.
type Sink interface {
	WriteLines(lines []string) error
}

// Buffer is an ordered sequence of lines with an optional name and a dirty
// flag. Every mutating operation sets the flag; only a successful persist
// clears it. A buffer with zero lines is a valid state distinct from a
// buffer holding one empty line.
type Buffer struct {
	lines []*Line
	name  string
	dirty bool
}

// New builds a buffer from initial line contents. A nil slice yields an
// empty buffer.
func New(name string, lines []string) *Buffer {
	b := &Buffer{name: name}
	b.lines = make([]*Line, 0, len(lines))
	for _, text := range lines {
		b.lines = append(b.lines, NewLine(text))
	}
	return b
}

func (b *Buffer) Len() int {
	return len(b.lines)
}

func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 0
}

// Line returns the line at index i, or nil when out of range.
func (b *Buffer) Line(i int) *Line {
	if i < 0 || i >= len(b.lines) {
		return nil
	}
	return b.lines[i]
}

func (b *Buffer) Name() string {
	return b.name
}

func (b *Buffer) SetName(name string) {
	b.name = name
}

func (b *Buffer) Dirty() bool {
	return b.dirty
}

// InsertChar inserts one cluster at the given position. A newline splits
// the line there. at.Y == Len() appends a fresh line; positions past that
// are dropped silently, per the range-error contract.
func (b *Buffer) InsertChar(at Position, ch string) {
	if at.Y > len(b.lines) {
		return
	}
	if ch == "\n" {
		b.insertNewline(at)
		return
	}
	b.dirty = true
	if at.Y == len(b.lines) {
		line := NewLine("")
		line.Insert(0, ch)
		b.lines = append(b.lines, line)
		return
	}
	b.lines[at.Y].Insert(at.X, ch)
}

func (b *Buffer) insertNewline(at Position) {
	if at.Y > len(b.lines) {
		return
	}
	b.dirty = true
	if at.Y == len(b.lines) {
		b.lines = append(b.lines, NewLine(""))
		return
	}
	rest := b.lines[at.Y].Split(at.X)
	b.lines = append(b.lines, nil)
	copy(b.lines[at.Y+2:], b.lines[at.Y+1:])
	b.lines[at.Y+1] = rest
}

// DeleteChar removes the cluster at the given position. At the end of a
// line with a successor, the successor is merged into the current line
// instead.
func (b *Buffer) DeleteChar(at Position) {
	if at.Y >= len(b.lines) {
		return
	}
	line := b.lines[at.Y]
	if at.X == line.Len() && at.Y+1 < len(b.lines) {
		next := b.lines[at.Y+1]
		b.lines = append(b.lines[:at.Y+1], b.lines[at.Y+2:]...)
		line.Append(next)
		b.dirty = true
		return
	}
	if at.X >= line.Len() {
		return
	}
	line.Delete(at.X)
	b.dirty = true
}

// InsertLine places line at index, clamped to [0, Len()].
func (b *Buffer) InsertLine(line *Line, at int) {
	if line == nil {
		return
	}
	if at < 0 {
		at = 0
	}
	if at > len(b.lines) {
		at = len(b.lines)
	}
	b.lines = append(b.lines, nil)
	copy(b.lines[at+1:], b.lines[at:])
	b.lines[at] = line
	b.dirty = true
}

// DeleteLine removes the line at index; out of range is a no-op.
func (b *Buffer) DeleteLine(at int) {
	if at < 0 || at >= len(b.lines) {
		return
	}
	b.lines = append(b.lines[:at], b.lines[at+1:]...)
	b.dirty = true
}

// Find scans lines from from.Y onward for the first occurrence of query
// and returns its absolute position. The search is forward-only and does
// not wrap back to the start of the buffer.
func (b *Buffer) Find(query string, from Position) (Position, bool) {
	if query == "" {
		return Position{}, false
	}
	for y := from.Y; y < len(b.lines); y++ {
		if y < 0 {
			continue
		}
		if x, ok := b.lines[y].Find(query); ok {
			return Position{X: x, Y: y}, true
		}
	}
	return Position{}, false
}

// Persist writes every line, each terminated by a line break, to the sink.
// The dirty flag clears only when the sink reports success.
func (b *Buffer) Persist(sink Sink) error {
	lines := make([]string, len(b.lines))
	for i, line := range b.lines {
		lines[i] = line.String()
	}
	if err := sink.WriteLines(lines); err != nil {
		return err
	}
	b.dirty = false
	return nil
}

// FileSink persists buffer content to a file on disk.
type FileSink struct {
	Path string
}

func (s FileSink) WriteLines(lines []string) error {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return os.WriteFile(s.Path, []byte(sb.String()), 0o644)
}
