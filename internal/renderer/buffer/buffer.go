// Package buffer implements the cell-grid buffer the rendering pipeline
// draws into, and the diff between two buffers that drives minimal terminal
// updates.
package buffer

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/dshills/termframe/internal/renderer/core"
)

// Buffer is a rectangular grid of cells covering a region of the terminal.
//
// The content slice is row-major and always exactly area.Width*area.Height
// cells long. A Buffer is exclusively owned by its holder; render callbacks
// borrow mutable access for the duration of a single frame only.
type Buffer struct {
	area    core.Rect
	content []core.Cell
}

// Empty allocates a buffer covering the given area, filled with blank
// default cells.
func Empty(area core.Rect) *Buffer {
	return Filled(area, core.EmptyCell())
}

// Filled allocates a buffer covering the given area with every cell set to
// the given cell.
func Filled(area core.Rect, cell core.Cell) *Buffer {
	size := area.Area()
	if size < 0 {
		size = 0
	}
	content := make([]core.Cell, size)
	for i := range content {
		content[i] = cell
	}
	return &Buffer{area: area, content: content}
}

// Area returns the region this buffer covers.
func (b *Buffer) Area() core.Rect {
	return b.area
}

// Content returns the row-major cell slice. Intended for diffing and tests;
// mutating it directly bypasses skip-cell bookkeeping.
func (b *Buffer) Content() []core.Cell {
	return b.content
}

// index converts grid coordinates to a content offset. Coordinates outside
// the buffer's area are a programming error and panic.
func (b *Buffer) index(x, y int) int {
	if !b.area.Contains(core.Position{X: x, Y: y}) {
		panic(fmt.Sprintf("buffer: position (%d, %d) outside area %s", x, y, b.area))
	}
	return (y-b.area.Y)*b.area.Width + (x - b.area.X)
}

// posOf converts a content offset back to grid coordinates.
func (b *Buffer) posOf(i int) (x, y int) {
	return b.area.X + i%b.area.Width, b.area.Y + i/b.area.Width
}

// CellAt returns a mutable handle to the cell at (x, y). Out-of-bounds
// positions panic; callers must stay inside Area.
func (b *Buffer) CellAt(x, y int) *core.Cell {
	return &b.content[b.index(x, y)]
}

// SetCell overwrites the cell at (x, y).
func (b *Buffer) SetCell(x, y int, cell core.Cell) {
	b.content[b.index(x, y)] = cell
}

// SetString writes a string starting at (x, y) and returns the column after
// the last glyph written. Content overflowing the right edge of the buffer
// is truncated at the boundary. Wide glyphs mark their continuation columns
// as skip cells.
func (b *Buffer) SetString(x, y int, s string, style core.Style) int {
	return b.SetStringN(x, y, s, b.area.Right()-x, style)
}

// SetStringN writes at most maxWidth columns of a string starting at
// (x, y). Iteration is by grapheme cluster, so combining sequences land in
// a single cell. A wide glyph that would straddle the limit or the right
// edge is dropped entirely rather than split.
func (b *Buffer) SetStringN(x, y int, s string, maxWidth int, style core.Style) int {
	remaining := min(maxWidth, b.area.Right()-x)
	graphemes := uniseg.NewGraphemes(s)
	for graphemes.Next() {
		symbol := graphemes.Str()
		width := runewidth.StringWidth(symbol)
		if width == 0 {
			continue
		}
		if width > remaining {
			break
		}
		b.content[b.index(x, y)] = core.NewStyledCell(symbol, style)
		for i := 1; i < width; i++ {
			b.content[b.index(x+i, y)] = core.SkipCell(style)
		}
		x += width
		remaining -= width
	}
	return x
}

// Fill overwrites every cell in the intersection of rect and the buffer's
// area with the given cell.
func (b *Buffer) Fill(rect core.Rect, cell core.Cell) {
	region := b.area.Intersection(rect)
	for y := region.Top(); y < region.Bottom(); y++ {
		for x := region.Left(); x < region.Right(); x++ {
			b.content[b.index(x, y)] = cell
		}
	}
}

// SetStyle applies a style to every cell in the intersection of rect and
// the buffer's area, leaving symbols untouched.
func (b *Buffer) SetStyle(rect core.Rect, style core.Style) {
	region := b.area.Intersection(rect)
	for y := region.Top(); y < region.Bottom(); y++ {
		for x := region.Left(); x < region.Right(); x++ {
			b.content[b.index(x, y)].Style = style
		}
	}
}

// Reset restores every cell to the default blank state in place. The area
// is unchanged.
func (b *Buffer) Reset() {
	for i := range b.content {
		b.content[i].Reset()
	}
}

// Resize rewrites the buffer for a new area. All cells come out default;
// content is never partially copied between mismatched geometries, since a
// misaligned copy would scramble rows. Callers are expected to repaint
// fully after a resize.
func (b *Buffer) Resize(area core.Rect) {
	size := area.Area()
	if size < 0 {
		size = 0
	}
	if cap(b.content) >= size {
		b.content = b.content[:size]
	} else {
		b.content = make([]core.Cell, size)
	}
	b.area = area
	b.Reset()
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	content := make([]core.Cell, len(b.content))
	copy(content, b.content)
	return &Buffer{area: b.area, content: content}
}

// Equals returns true if two buffers cover the same area with identical
// cells.
func (b *Buffer) Equals(other *Buffer) bool {
	if b.area != other.area || len(b.content) != len(other.content) {
		return false
	}
	for i := range b.content {
		if !b.content[i].Equals(other.content[i]) {
			return false
		}
	}
	return true
}
