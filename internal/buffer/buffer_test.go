package buffer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func lineStrings(b *Buffer) []string {
	out := make([]string, b.Len())
	for i := 0; i < b.Len(); i++ {
		out[i] = b.Line(i).String()
	}
	return out
}

func equalLines(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestEmptyBufferDistinctFromEmptyLine(t *testing.T) {
	empty := New("", nil)
	if !empty.IsEmpty() || empty.Len() != 0 {
		t.Fatalf("empty buffer: len = %d, IsEmpty = %v", empty.Len(), empty.IsEmpty())
	}
	oneLine := New("", []string{""})
	if oneLine.IsEmpty() || oneLine.Len() != 1 {
		t.Fatalf("one empty line: len = %d, IsEmpty = %v", oneLine.Len(), oneLine.IsEmpty())
	}
	if empty.Line(0) != nil {
		t.Fatalf("empty buffer Line(0) != nil")
	}
}

func TestInsertCharIntoLine(t *testing.T) {
	b := New("", []string{"abc"})
	b.InsertChar(Position{X: 3, Y: 0}, "d")
	if got := b.Line(0).String(); got != "abcd" {
		t.Fatalf("line = %q, want %q", got, "abcd")
	}
	if !b.Dirty() {
		t.Fatalf("buffer not dirty after insert")
	}
}

func TestInsertCharAppendsNewLine(t *testing.T) {
	b := New("", []string{"abc"})
	b.InsertChar(Position{X: 0, Y: 1}, "x")
	if b.Len() != 2 {
		t.Fatalf("len = %d, want 2", b.Len())
	}
	if got := b.Line(1).String(); got != "x" {
		t.Fatalf("appended line = %q, want %q", got, "x")
	}
}

func TestInsertCharPastEndDropped(t *testing.T) {
	b := New("", []string{"abc"})
	b.InsertChar(Position{X: 0, Y: 5}, "x")
	if b.Len() != 1 || b.Dirty() {
		t.Fatalf("out-of-range insert mutated buffer: len = %d, dirty = %v", b.Len(), b.Dirty())
	}
}

func TestInsertNewlineSplitsLine(t *testing.T) {
	b := New("", []string{"hello", "tail"})
	b.InsertChar(Position{X: 2, Y: 0}, "\n")
	want := []string{"he", "llo", "tail"}
	if !equalLines(lineStrings(b), want) {
		t.Fatalf("lines = %q, want %q", lineStrings(b), want)
	}
}

func TestInsertNewlineAtAppendRow(t *testing.T) {
	b := New("", []string{"a"})
	b.InsertChar(Position{X: 0, Y: 1}, "\n")
	want := []string{"a", ""}
	if !equalLines(lineStrings(b), want) {
		t.Fatalf("lines = %q, want %q", lineStrings(b), want)
	}
}

func TestDeleteCharMergesLines(t *testing.T) {
	b := New("", []string{"ab", "cd"})
	b.DeleteChar(Position{X: 2, Y: 0})
	want := []string{"abcd"}
	if !equalLines(lineStrings(b), want) {
		t.Fatalf("lines = %q, want %q", lineStrings(b), want)
	}
	if !b.Dirty() {
		t.Fatalf("buffer not dirty after merge")
	}
}

func TestDeleteCharInLine(t *testing.T) {
	b := New("", []string{"abc"})
	b.DeleteChar(Position{X: 1, Y: 0})
	if got := b.Line(0).String(); got != "ac" {
		t.Fatalf("line = %q, want %q", got, "ac")
	}
}

func TestDeleteCharAtBufferEndNoop(t *testing.T) {
	b := New("", []string{"abc"})
	b.DeleteChar(Position{X: 3, Y: 0})
	b.DeleteChar(Position{X: 0, Y: 1})
	if !equalLines(lineStrings(b), []string{"abc"}) {
		t.Fatalf("lines = %q, want [abc]", lineStrings(b))
	}
	if b.Dirty() {
		t.Fatalf("no-op delete marked buffer dirty")
	}
}

func TestInsertDeleteLine(t *testing.T) {
	b := New("", []string{"one", "three"})
	b.InsertLine(NewLine("two"), 1)
	want := []string{"one", "two", "three"}
	if !equalLines(lineStrings(b), want) {
		t.Fatalf("lines = %q, want %q", lineStrings(b), want)
	}
	b.DeleteLine(0)
	want = []string{"two", "three"}
	if !equalLines(lineStrings(b), want) {
		t.Fatalf("lines = %q, want %q", lineStrings(b), want)
	}
	b.DeleteLine(5)
	if b.Len() != 2 {
		t.Fatalf("out-of-range DeleteLine changed len to %d", b.Len())
	}
}

func TestFind(t *testing.T) {
	b := New("", []string{"hello world", "foo bar"})
	pos, ok := b.Find("bar", Position{})
	if !ok || pos != (Position{X: 4, Y: 1}) {
		t.Fatalf("Find(bar) = %+v,%v, want {4 1},true", pos, ok)
	}
	if _, ok := b.Find("zzz", Position{}); ok {
		t.Fatalf("Find(zzz) found a match")
	}
}

func TestFindDoesNotWrap(t *testing.T) {
	b := New("", []string{"needle", "hay"})
	if _, ok := b.Find("needle", Position{Y: 1}); ok {
		t.Fatalf("search wrapped back before the anchor line")
	}
}

type failSink struct{}

func (failSink) WriteLines([]string) error { return errors.New("disk full") }

type captureSink struct {
	lines []string
}

func (s *captureSink) WriteLines(lines []string) error {
	s.lines = append([]string(nil), lines...)
	return nil
}

func TestPersistClearsDirtyOnSuccessOnly(t *testing.T) {
	b := New("", []string{"a", "b"})
	b.InsertChar(Position{X: 1, Y: 0}, "x")
	if !b.Dirty() {
		t.Fatalf("buffer not dirty before persist")
	}

	if err := b.Persist(failSink{}); err == nil {
		t.Fatalf("persist to failing sink did not error")
	}
	if !b.Dirty() {
		t.Fatalf("dirty flag cleared after failed persist")
	}

	sink := &captureSink{}
	if err := b.Persist(sink); err != nil {
		t.Fatalf("persist error: %v", err)
	}
	if b.Dirty() {
		t.Fatalf("dirty flag still set after successful persist")
	}
	if !equalLines(sink.lines, []string{"ax", "b"}) {
		t.Fatalf("sink lines = %q, want [ax b]", sink.lines)
	}
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	b := New(path, []string{"first", "second"})
	if err := b.Persist(FileSink{Path: path}); err != nil {
		t.Fatalf("persist error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "first\nsecond\n" {
		t.Fatalf("file = %q, want %q", data, "first\nsecond\n")
	}
}

func TestSetName(t *testing.T) {
	b := New("", nil)
	if b.Name() != "" {
		t.Fatalf("name = %q, want empty", b.Name())
	}
	b.SetName("notes.txt")
	if b.Name() != "notes.txt" {
		t.Fatalf("name = %q, want notes.txt", b.Name())
	}
}
