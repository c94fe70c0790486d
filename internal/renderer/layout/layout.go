// Package layout splits rectangular areas into regions using a list of
// constraints. It replaces ad hoc rect arithmetic in render callbacks:
// describe the rows or columns you want and let Split hand back the
// areas.
package layout

import (
	"fmt"
	"sync"

	"github.com/dshills/termframe/internal/renderer/core"
)

// Direction selects the axis a layout splits along.
type Direction int

const (
	// Vertical stacks regions top to bottom.
	Vertical Direction = iota
	// Horizontal places regions left to right.
	Horizontal
)

// ConstraintKind discriminates Constraint values.
type ConstraintKind int

const (
	// KindLength is an exact size in cells.
	KindLength ConstraintKind = iota
	// KindPercentage is a share of the total, in percent.
	KindPercentage
	// KindRatio is a share of the total as a fraction.
	KindRatio
	// KindMin is a lower bound that absorbs leftover space.
	KindMin
	// KindMax is an upper bound.
	KindMax
)

// Constraint describes the desired size of one region.
type Constraint struct {
	kind ConstraintKind
	// value holds the size for Length/Min/Max and the percentage for
	// Percentage.
	value int
	// num and den hold the fraction for Ratio.
	num, den int
}

// Length requests exactly n cells.
func Length(n int) Constraint {
	return Constraint{kind: KindLength, value: n}
}

// Percentage requests p percent of the area, truncated.
func Percentage(p int) Constraint {
	return Constraint{kind: KindPercentage, value: p}
}

// Ratio requests num/den of the area, truncated.
func Ratio(num, den int) Constraint {
	return Constraint{kind: KindRatio, num: num, den: den}
}

// Min requests at least n cells. Leftover space flows into Min regions.
func Min(n int) Constraint {
	return Constraint{kind: KindMin, value: n}
}

// Max requests at most n cells.
func Max(n int) Constraint {
	return Constraint{kind: KindMax, value: n}
}

// Kind returns the constraint's kind.
func (c Constraint) Kind() ConstraintKind {
	return c.kind
}

// String returns a string representation of the constraint.
func (c Constraint) String() string {
	switch c.kind {
	case KindLength:
		return fmt.Sprintf("Length(%d)", c.value)
	case KindPercentage:
		return fmt.Sprintf("Percentage(%d)", c.value)
	case KindRatio:
		return fmt.Sprintf("Ratio(%d, %d)", c.num, c.den)
	case KindMin:
		return fmt.Sprintf("Min(%d)", c.value)
	case KindMax:
		return fmt.Sprintf("Max(%d)", c.value)
	default:
		return "Unknown"
	}
}

// apply resolves the constraint against the total length of the axis.
func (c Constraint) apply(total int) int {
	switch c.kind {
	case KindLength:
		return min(c.value, total)
	case KindPercentage:
		return total * c.value / 100
	case KindRatio:
		if c.den == 0 {
			return 0
		}
		return total * c.num / c.den
	case KindMin:
		return min(c.value, total)
	case KindMax:
		return min(c.value, total)
	default:
		return 0
	}
}

// Layout describes how to split an area. Split results are cached per
// area, so calling Split every frame with a stable layout is cheap.
type Layout struct {
	direction   Direction
	margin      int
	constraints []Constraint

	mu    sync.Mutex
	cache map[core.Rect][]core.Rect
}

// New creates a layout splitting along direction with the given
// constraints, one region per constraint.
func New(direction Direction, constraints ...Constraint) *Layout {
	return &Layout{
		direction:   direction,
		constraints: constraints,
		cache:       make(map[core.Rect][]core.Rect),
	}
}

// Margin sets a uniform margin inside the area before splitting.
func (l *Layout) Margin(m int) *Layout {
	if m >= 0 {
		l.margin = m
	}
	return l
}

// Split divides the area into one region per constraint. Regions are
// adjacent, in order, and together cover the inner area exactly;
// leftover space goes to the first Min constraint, or the last region
// when there is none.
func (l *Layout) Split(area core.Rect) []core.Rect {
	l.mu.Lock()
	if cached, ok := l.cache[area]; ok {
		l.mu.Unlock()
		return cached
	}
	l.mu.Unlock()

	regions := l.split(area)

	l.mu.Lock()
	l.cache[area] = regions
	l.mu.Unlock()
	return regions
}

func (l *Layout) split(area core.Rect) []core.Rect {
	inner := area
	if l.margin > 0 {
		inner = core.NewRect(
			area.X+l.margin,
			area.Y+l.margin,
			max(0, area.Width-2*l.margin),
			max(0, area.Height-2*l.margin),
		)
	}

	total := inner.Height
	if l.direction == Horizontal {
		total = inner.Width
	}

	sizes := make([]int, len(l.constraints))
	remaining := total
	for i, c := range l.constraints {
		size := min(c.apply(total), remaining)
		sizes[i] = size
		remaining -= size
	}

	if remaining > 0 && len(sizes) > 0 {
		grow := len(sizes) - 1
		for i, c := range l.constraints {
			if c.kind == KindMin {
				grow = i
				break
			}
		}
		sizes[grow] += remaining
	}

	regions := make([]core.Rect, len(sizes))
	offset := 0
	for i, size := range sizes {
		if l.direction == Horizontal {
			regions[i] = core.NewRect(inner.X+offset, inner.Y, size, inner.Height)
		} else {
			regions[i] = core.NewRect(inner.X, inner.Y+offset, inner.Width, size)
		}
		offset += size
	}
	return regions
}
