package editor

import "github.com/ivmaly/vted/internal/buffer"

// moveCursor computes the cursor position after one movement over buf.
// It never mutates anything; out-of-range results are clamped. The cursor
// may rest at y == buf.Len(), the append row past the last line.
func moveCursor(dir Direction, buf *buffer.Buffer, cur buffer.Position, pageSize int) buffer.Position {
	x, y := cur.X, cur.Y
	height := buf.Len()
	width := 0
	if line := buf.Line(y); line != nil {
		width = line.Len()
	}
	switch dir {
	case Up:
		if y > 0 {
			y--
		}
	case Down:
		if y < height {
			y++
		}
	case Left:
		if x > 0 {
			x--
		} else if y > 0 {
			y--
			if line := buf.Line(y); line != nil {
				x = line.Len()
			} else {
				x = 0
			}
		}
	case Right:
		if x < width {
			x++
		} else if y < height {
			y++
			x = 0
		}
	case PageUp:
		if y > pageSize {
			y -= pageSize
		} else {
			y = 0
		}
	case PageDown:
		if y+pageSize < height {
			y += pageSize
		} else {
			y = height
		}
	case Home:
		x = 0
	case End:
		x = width
	}
	// Never leave x past the end of the destination line.
	if line := buf.Line(y); line != nil {
		if x > line.Len() {
			x = line.Len()
		}
	} else {
		x = 0
	}
	return buffer.Position{X: x, Y: y}
}

// clampCursor re-clamps a cursor against the current buffer shape, used
// after every mutation so cursor and buffer never disagree.
func clampCursor(buf *buffer.Buffer, cur buffer.Position) buffer.Position {
	if cur.Y < 0 {
		cur.Y = 0
	}
	if cur.Y > buf.Len() {
		cur.Y = buf.Len()
	}
	if cur.X < 0 {
		cur.X = 0
	}
	if line := buf.Line(cur.Y); line != nil {
		if cur.X > line.Len() {
			cur.X = line.Len()
		}
	} else {
		cur.X = 0
	}
	return cur
}

// adjustViewport slides the viewport offset the minimal distance needed to
// keep the cursor inside a width x height window. Applying it again with
// the same inputs returns the same offset.
func adjustViewport(cur, off buffer.Position, width, height int) buffer.Position {
	if height > 0 {
		if cur.Y < off.Y {
			off.Y = cur.Y
		} else if cur.Y >= off.Y+height {
			off.Y = cur.Y - height + 1
		}
	}
	if width > 0 {
		if cur.X < off.X {
			off.X = cur.X
		} else if cur.X >= off.X+width {
			off.X = cur.X - width + 1
		}
	}
	return off
}
