// Package core provides the shared value types for the rendering pipeline:
// geometry (Position, Size, Rect), colors, text attributes, styles and the
// Cell type that buffers are built from. It sits below every other renderer
// package and imports none of them, which keeps the dependency graph acyclic.
package core

import "fmt"

// Position is a coordinate in the terminal grid. The origin (0, 0) is the
// top-left corner.
type Position struct {
	X, Y int
}

// NewPosition creates a position from x and y coordinates.
func NewPosition(x, y int) Position {
	return Position{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Size is a width and height in terminal cells.
type Size struct {
	Width, Height int
}

// String returns a string representation of the size.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Rect is a rectangular region of the terminal grid. Rects are transient
// values: they are recomputed on every resize and never persisted.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect creates a rect from a position and dimensions.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectFromSize creates a rect anchored at the origin with the given size.
func RectFromSize(size Size) Rect {
	return Rect{Width: size.Width, Height: size.Height}
}

// Left returns the leftmost column of the rect.
func (r Rect) Left() int { return r.X }

// Right returns the first column past the right edge of the rect.
func (r Rect) Right() int { return r.X + r.Width }

// Top returns the topmost row of the rect.
func (r Rect) Top() int { return r.Y }

// Bottom returns the first row past the bottom edge of the rect.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Area returns the number of cells covered by the rect.
func (r Rect) Area() int { return r.Width * r.Height }

// IsEmpty returns true if the rect covers no cells.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Position returns the top-left corner of the rect.
func (r Rect) Position() Position {
	return Position{X: r.X, Y: r.Y}
}

// Size returns the dimensions of the rect.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Contains returns true if the given position lies inside the rect.
func (r Rect) Contains(p Position) bool {
	return p.X >= r.Left() && p.X < r.Right() && p.Y >= r.Top() && p.Y < r.Bottom()
}

// Intersection returns the overlapping region of two rects. The result is
// empty if the rects do not overlap.
func (r Rect) Intersection(other Rect) Rect {
	x1 := max(r.Left(), other.Left())
	y1 := max(r.Top(), other.Top())
	x2 := min(r.Right(), other.Right())
	y2 := min(r.Bottom(), other.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Intersects returns true if the two rects share at least one cell.
func (r Rect) Intersects(other Rect) bool {
	return !r.Intersection(other).IsEmpty()
}

// String returns a string representation of the rect.
func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}
