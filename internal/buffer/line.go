package buffer

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Line is a single editable line of text. All positions are indexed in
// grapheme clusters, so a multi-codepoint character is one unit and is
// never split by an edit. The cluster count is cached and recomputed after
// every content change.
type Line struct {
	text   string
	length int
}

func NewLine(text string) *Line {
	l := &Line{text: text}
	l.updateLen()
	return l
}

func (l *Line) String() string {
	return l.text
}

// Len returns the number of grapheme clusters in the line.
func (l *Line) Len() int {
	return l.length
}

func (l *Line) IsEmpty() bool {
	return l.length == 0
}

// Insert places cluster at the given grapheme position. Positions past the
// end append rather than fail.
func (l *Line) Insert(pos int, cluster string) {
	if pos < 0 {
		pos = 0
	}
	if pos >= l.length {
		l.text += cluster
	} else {
		var sb strings.Builder
		sb.Grow(len(l.text) + len(cluster))
		g := uniseg.NewGraphemes(l.text)
		idx := 0
		for g.Next() {
			if idx == pos {
				sb.WriteString(cluster)
			}
			sb.WriteString(g.Str())
			idx++
		}
		l.text = sb.String()
	}
	l.updateLen()
}

// Delete removes the cluster at pos. Positions at or past the end are a
// no-op, not an error.
func (l *Line) Delete(pos int) {
	if pos < 0 || pos >= l.length {
		return
	}
	var sb strings.Builder
	g := uniseg.NewGraphemes(l.text)
	idx := 0
	for g.Next() {
		if idx != pos {
			sb.WriteString(g.Str())
		}
		idx++
	}
	l.text = sb.String()
	l.updateLen()
}

// Split truncates the line to clusters [0, pos) and returns a new line
// holding clusters [pos, len).
func (l *Line) Split(pos int) *Line {
	if pos < 0 {
		pos = 0
	}
	var left, right strings.Builder
	g := uniseg.NewGraphemes(l.text)
	idx := 0
	for g.Next() {
		if idx < pos {
			left.WriteString(g.Str())
		} else {
			right.WriteString(g.Str())
		}
		idx++
	}
	l.text = left.String()
	l.updateLen()
	return NewLine(right.String())
}

// Append concatenates other's content onto l.
func (l *Line) Append(other *Line) {
	l.text += other.text
	l.updateLen()
}

// Find returns the grapheme index of the first occurrence of query, or
// false if absent. Matching runs over the underlying text; when the byte
// offset of a match does not land on a grapheme boundary the index of the
// enclosing cluster is reported, which is the inherited, ambiguous case.
func (l *Line) Find(query string) (int, bool) {
	if query == "" {
		return 0, false
	}
	byteOff := strings.Index(l.text, query)
	if byteOff < 0 {
		return 0, false
	}
	g := uniseg.NewGraphemes(l.text)
	idx := 0
	consumed := 0
	for g.Next() {
		if consumed >= byteOff {
			break
		}
		consumed += len(g.Str())
		if consumed > byteOff {
			// Match starts inside this cluster.
			break
		}
		idx++
	}
	return idx, true
}

// Render returns the visible clusters in [start, end), clipped to the line
// bounds. Tabs render as a single space; true tab-stop expansion is a
// deliberate simplification left out.
func (l *Line) Render(start, end int) string {
	if end > l.length {
		end = l.length
	}
	if start < 0 {
		start = 0
	}
	if start >= end {
		return ""
	}
	var sb strings.Builder
	g := uniseg.NewGraphemes(l.text)
	idx := 0
	for g.Next() {
		if idx >= end {
			break
		}
		if idx >= start {
			if g.Str() == "\t" {
				sb.WriteString(" ")
			} else {
				sb.WriteString(g.Str())
			}
		}
		idx++
	}
	return sb.String()
}

func (l *Line) updateLen() {
	l.length = uniseg.GraphemeClusterCount(l.text)
}
