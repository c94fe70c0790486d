package buffer

import "github.com/dshills/termframe/internal/renderer/core"

// Update is one cell change produced by Diff: draw Cell at (X, Y).
type Update struct {
	X, Y int
	Cell *core.Cell
}

// Diff compares this buffer (the previously displayed frame) against next
// (the frame about to be displayed) and returns the cells that must be
// redrawn, in row-major ascending order. Consumers may rely on the
// monotonic (x, y) traversal to elide cursor moves for adjacent runs.
//
// Wide glyphs need care in two directions. A glyph's trailing columns are
// never reported on their own: skip-marked cells are suppressed outright,
// and the column counter toSkip suppresses whatever a multi-column symbol
// overlaps. In the other direction, when either frame had a multi-column
// symbol at a position, the cells it covered are invalidated so that a
// narrow glyph replacing a wide one repaints the stale trailing columns.
//
// An unchanged cell is never emitted (outside wide-glyph invalidation).
// Cursor-move elision for short gaps happens on the write side, not by
// re-emitting unchanged runs here.
func (b *Buffer) Diff(next *Buffer) []Update {
	prev := b.content
	curr := next.content
	n := min(len(prev), len(curr))

	var updates []Update
	invalidated := 0
	toSkip := 0
	for i := 0; i < n; i++ {
		cell := &curr[i]
		if !cell.Skip && (invalidated > 0 || !cell.Equals(prev[i])) && toSkip == 0 {
			x, y := next.posOf(i)
			updates = append(updates, Update{X: x, Y: y, Cell: cell})
		}
		currWidth := cell.Width()
		toSkip = max(currWidth-1, 0)
		affected := max(currWidth, prev[i].Width())
		invalidated = max(affected, invalidated) - 1
		if invalidated < 0 {
			invalidated = 0
		}
	}
	return updates
}

// Apply plays a list of updates onto the buffer. Positions outside the
// buffer's area are ignored; the primary use is reconstructing a frame
// from a diff in tests and test backends.
func (b *Buffer) Apply(updates []Update) {
	for _, u := range updates {
		if !b.area.Contains(core.Position{X: u.X, Y: u.Y}) {
			continue
		}
		b.content[b.index(u.X, u.Y)] = *u.Cell
	}
}
