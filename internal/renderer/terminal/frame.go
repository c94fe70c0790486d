package terminal

import (
	"github.com/dshills/termframe/internal/renderer/buffer"
	"github.com/dshills/termframe/internal/renderer/core"
)

// Frame is the handle a render callback draws through. It borrows the
// terminal's current buffer for the duration of one draw call; callbacks
// must not retain it afterwards.
//
// The callback is expected to repaint every cell it is responsible for:
// only buffer-level diffs reach the backend, so anything left unwritten
// keeps last frame's content.
type Frame struct {
	buf       *buffer.Buffer
	area      core.Rect
	cursorPos *core.Position
	count     uint64
}

// Area returns the viewport area available for rendering.
func (f *Frame) Area() core.Rect {
	return f.area
}

// Buffer returns the buffer to render into.
func (f *Frame) Buffer() *buffer.Buffer {
	return f.buf
}

// SetCursorPosition requests that the cursor be shown at the given
// position after the frame is flushed. Without a request the cursor stays
// hidden for the frame.
func (f *Frame) SetCursorPosition(pos core.Position) {
	f.cursorPos = &pos
}

// Count returns the number of frames rendered before this one. It wraps
// around on overflow, which makes it suitable for driving animations but
// not for counting total work.
func (f *Frame) Count() uint64 {
	return f.count
}
