package backend

import (
	"fmt"
	"strings"

	"github.com/dshills/termframe/internal/renderer/buffer"
	"github.com/dshills/termframe/internal/renderer/core"
)

// TestBackend is an in-memory Backend for tests. It keeps a cell grid the
// size of the pretend terminal, emulates scrollback for AppendLines, and
// records enough bookkeeping (cursor, draw calls, scrolled-off rows) for
// assertions.
type TestBackend struct {
	width, height int
	cells         []core.Cell
	cursor        core.Position
	cursorHidden  bool
	scrollback    [][]core.Cell
	drawCalls     int
}

// NewTestBackend creates a test backend with the given dimensions.
func NewTestBackend(width, height int) *TestBackend {
	tb := &TestBackend{width: width, height: height}
	tb.cells = makeBlankRowMajor(width, height)
	return tb
}

func makeBlankRowMajor(width, height int) []core.Cell {
	cells := make([]core.Cell, width*height)
	for i := range cells {
		cells[i] = core.EmptyCell()
	}
	return cells
}

// Draw applies cell updates to the in-memory grid.
func (tb *TestBackend) Draw(updates []buffer.Update) error {
	tb.drawCalls++
	for _, u := range updates {
		if u.X < 0 || u.X >= tb.width || u.Y < 0 || u.Y >= tb.height {
			return fmt.Errorf("testbackend: draw at (%d, %d) outside %dx%d", u.X, u.Y, tb.width, tb.height)
		}
		tb.cells[u.Y*tb.width+u.X] = *u.Cell
		tb.cursor = core.Position{X: u.X, Y: u.Y}
	}
	return nil
}

// HideCursor marks the cursor invisible.
func (tb *TestBackend) HideCursor() error {
	tb.cursorHidden = true
	return nil
}

// ShowCursor marks the cursor visible.
func (tb *TestBackend) ShowCursor() error {
	tb.cursorHidden = false
	return nil
}

// GetCursorPosition reports the tracked cursor position.
func (tb *TestBackend) GetCursorPosition() (core.Position, error) {
	return tb.cursor, nil
}

// SetCursorPosition moves the tracked cursor.
func (tb *TestBackend) SetCursorPosition(pos core.Position) error {
	tb.cursor = pos
	return nil
}

// Size reports the configured dimensions.
func (tb *TestBackend) Size() (core.Size, error) {
	return core.Size{Width: tb.width, Height: tb.height}, nil
}

// ClearRegion erases part of the grid relative to the cursor.
func (tb *TestBackend) ClearRegion(clear ClearType) error {
	idx := tb.cursor.Y*tb.width + tb.cursor.X
	var from, to int
	switch clear {
	case ClearAll:
		from, to = 0, len(tb.cells)
	case ClearAfterCursor:
		from, to = idx, len(tb.cells)
	case ClearBeforeCursor:
		from, to = 0, idx+1
	case ClearCurrentLine:
		from, to = tb.cursor.Y*tb.width, (tb.cursor.Y+1)*tb.width
	case ClearUntilNewLine:
		from, to = idx, (tb.cursor.Y+1)*tb.width
	default:
		return fmt.Errorf("testbackend: unknown clear type %d", clear)
	}
	for i := from; i < to && i < len(tb.cells); i++ {
		tb.cells[i].Reset()
	}
	return nil
}

// AppendLines emulates n newlines emitted at the cursor row: the cursor
// moves down, and once it sits on the bottom row every further newline
// scrolls the top row into the scrollback.
func (tb *TestBackend) AppendLines(n int) error {
	for i := 0; i < n; i++ {
		tb.cursor.X = 0
		if tb.cursor.Y < tb.height-1 {
			tb.cursor.Y++
			continue
		}
		top := make([]core.Cell, tb.width)
		copy(top, tb.cells[:tb.width])
		tb.scrollback = append(tb.scrollback, top)
		copy(tb.cells, tb.cells[tb.width:])
		for j := len(tb.cells) - tb.width; j < len(tb.cells); j++ {
			tb.cells[j].Reset()
		}
	}
	return nil
}

// Flush is a no-op for the in-memory backend.
func (tb *TestBackend) Flush() error {
	return nil
}

// Resize changes the pretend terminal size, clearing the grid.
func (tb *TestBackend) Resize(width, height int) {
	tb.width = width
	tb.height = height
	tb.cells = makeBlankRowMajor(width, height)
}

// CellAt returns the cell at (x, y) for assertions.
func (tb *TestBackend) CellAt(x, y int) core.Cell {
	if x < 0 || x >= tb.width || y < 0 || y >= tb.height {
		return core.EmptyCell()
	}
	return tb.cells[y*tb.width+x]
}

// Row returns the visible symbols of row y joined into a string.
func (tb *TestBackend) Row(y int) string {
	var sb strings.Builder
	for x := 0; x < tb.width; x++ {
		c := tb.CellAt(x, y)
		if c.Skip {
			continue
		}
		sb.WriteString(c.Symbol)
	}
	return sb.String()
}

// String renders the whole grid, one row per line.
func (tb *TestBackend) String() string {
	rows := make([]string, tb.height)
	for y := 0; y < tb.height; y++ {
		rows[y] = tb.Row(y)
	}
	return strings.Join(rows, "\n")
}

// CursorHidden reports whether the cursor is currently hidden.
func (tb *TestBackend) CursorHidden() bool {
	return tb.cursorHidden
}

// DrawCalls returns how many times Draw has been invoked.
func (tb *TestBackend) DrawCalls() int {
	return tb.drawCalls
}

// Scrollback returns the rows scrolled off the top, oldest first.
func (tb *TestBackend) Scrollback() [][]core.Cell {
	return tb.scrollback
}

// ScrollbackRow renders scrollback row i as a string.
func (tb *TestBackend) ScrollbackRow(i int) string {
	if i < 0 || i >= len(tb.scrollback) {
		return ""
	}
	var sb strings.Builder
	for _, c := range tb.scrollback[i] {
		if c.Skip {
			continue
		}
		sb.WriteString(c.Symbol)
	}
	return sb.String()
}
