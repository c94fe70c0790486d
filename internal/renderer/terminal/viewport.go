package terminal

import (
	"fmt"

	"github.com/dshills/termframe/internal/renderer/core"
)

// ViewportKind identifies the placement strategy of a terminal's viewport.
type ViewportKind int

const (
	// ViewportFullscreen tracks the backend's full area on every resize.
	ViewportFullscreen ViewportKind = iota
	// ViewportInline anchors a fixed-height region near the cursor row,
	// cooperating with the scrollback instead of taking over the screen.
	ViewportInline
	// ViewportFixed pins the viewport to a caller-supplied rect that never
	// changes automatically.
	ViewportFixed
)

// Viewport selects where the live drawing region sits on the screen.
// A Terminal is bound to exactly one viewport for its whole lifetime.
type Viewport struct {
	kind   ViewportKind
	height int       // inline only
	area   core.Rect // fixed only
}

// Fullscreen returns a viewport covering the whole backend area.
func Fullscreen() Viewport {
	return Viewport{kind: ViewportFullscreen}
}

// Inline returns a viewport of the given height anchored near the cursor.
func Inline(height int) Viewport {
	return Viewport{kind: ViewportInline, height: height}
}

// Fixed returns a viewport pinned to the given area.
func Fixed(area core.Rect) Viewport {
	return Viewport{kind: ViewportFixed, area: area}
}

// Kind returns the viewport's placement strategy.
func (v Viewport) Kind() ViewportKind {
	return v.kind
}

// String returns a string representation of the viewport.
func (v Viewport) String() string {
	switch v.kind {
	case ViewportFullscreen:
		return "fullscreen"
	case ViewportInline:
		return fmt.Sprintf("inline(%d)", v.height)
	case ViewportFixed:
		return fmt.Sprintf("fixed(%s)", v.area)
	default:
		return "unknown"
	}
}
