// Package backend defines the abstract sink the rendering pipeline plays
// buffer diffs against, plus the concrete implementations shipped with the
// module: an ANSI escape-sequence backend over an io.Writer, a tcell
// adapter, and an in-memory TestBackend.
//
// The Terminal orchestrator depends only on the Backend interface; any
// implementation satisfying it is interchangeable. Operations fail with the
// underlying I/O error and are never retried at this layer.
package backend

import (
	"github.com/dshills/termframe/internal/renderer/buffer"
	"github.com/dshills/termframe/internal/renderer/core"
)

// ClearType selects which portion of the screen a ClearRegion call erases.
type ClearType int

const (
	// ClearAll clears the whole screen.
	ClearAll ClearType = iota
	// ClearAfterCursor clears from the cursor to the end of the screen.
	ClearAfterCursor
	// ClearBeforeCursor clears from the start of the screen to the cursor.
	ClearBeforeCursor
	// ClearCurrentLine clears the line the cursor is on.
	ClearCurrentLine
	// ClearUntilNewLine clears from the cursor to the end of the line.
	ClearUntilNewLine
)

// String returns the clear type name.
func (c ClearType) String() string {
	switch c {
	case ClearAll:
		return "all"
	case ClearAfterCursor:
		return "after-cursor"
	case ClearBeforeCursor:
		return "before-cursor"
	case ClearCurrentLine:
		return "current-line"
	case ClearUntilNewLine:
		return "until-newline"
	default:
		return "unknown"
	}
}

// Backend is the terminal-control surface the Terminal draws through.
//
// Draw receives cell updates in row-major ascending order and may rely on
// that to elide cursor movement between adjacent cells. All methods are
// synchronous and block until the underlying transport accepts the output.
type Backend interface {
	// Draw writes a list of cell updates to the terminal.
	Draw(updates []buffer.Update) error

	// HideCursor makes the cursor invisible.
	HideCursor() error

	// ShowCursor makes the cursor visible.
	ShowCursor() error

	// GetCursorPosition reports the current cursor position.
	GetCursorPosition() (core.Position, error)

	// SetCursorPosition moves the cursor.
	SetCursorPosition(pos core.Position) error

	// Size reports the terminal dimensions.
	Size() (core.Size, error)

	// ClearRegion erases part of the screen relative to the cursor.
	ClearRegion(clear ClearType) error

	// AppendLines emits n newlines at the bottom of the screen, scrolling
	// content up into the scrollback. Used for inline viewport placement.
	AppendLines(n int) error

	// Flush pushes any buffered output to the terminal.
	Flush() error
}
