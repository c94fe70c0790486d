// Package terminal owns the drawing lifecycle of the rendering pipeline:
// double-buffered frames, viewport geometry, cursor bookkeeping and the
// draw -> diff -> flush -> swap cycle played against an abstract backend.
//
// A Terminal is single-threaded by design. Draw calls must be serialized
// by the caller; there is no internal locking because there is no
// concurrent access. Render callbacks run to completion before any backend
// I/O is issued for the frame.
package terminal

import (
	"fmt"
	"os"

	"github.com/dshills/termframe/internal/renderer/backend"
	"github.com/dshills/termframe/internal/renderer/buffer"
	"github.com/dshills/termframe/internal/renderer/core"
)

// Options configures a Terminal at construction.
type Options struct {
	// Viewport selects the placement strategy. The zero value is a
	// fullscreen viewport.
	Viewport Viewport
}

// Terminal drives a Backend with minimal updates computed by diffing two
// buffers: the previously displayed frame and the one being drawn. After
// each flush the buffers swap roles.
type Terminal struct {
	backend backend.Backend

	// buffers hold the previous and current draw results; current indexes
	// the one being written to.
	buffers [2]*buffer.Buffer
	current int

	hiddenCursor bool

	viewport     Viewport
	viewportArea core.Rect

	// lastKnownArea is the backend area observed at the previous draw,
	// used to detect resizes.
	lastKnownArea core.Rect

	// lastKnownCursorPos anchors inline viewport recomputation on resize.
	lastKnownCursorPos core.Position

	frameCount uint64
}

// New creates a Terminal with a fullscreen viewport.
func New(b backend.Backend) (*Terminal, error) {
	return NewWithOptions(b, Options{Viewport: Fullscreen()})
}

// NewWithOptions creates a Terminal bound to the given viewport. The
// viewport cannot be changed afterwards.
func NewWithOptions(b backend.Backend, opts Options) (*Terminal, error) {
	viewport := opts.Viewport

	var area core.Rect
	switch viewport.kind {
	case ViewportFullscreen, ViewportInline:
		size, err := b.Size()
		if err != nil {
			return nil, fmt.Errorf("querying backend size: %w", err)
		}
		area = core.RectFromSize(size)
	case ViewportFixed:
		area = viewport.area
	}

	viewportArea := area
	cursorPos := core.Position{}
	switch viewport.kind {
	case ViewportInline:
		var err error
		viewportArea, cursorPos, err = computeInlineSize(b, viewport.height, area.Size(), 0)
		if err != nil {
			return nil, err
		}
	case ViewportFixed:
		cursorPos = area.Position()
	}

	return &Terminal{
		backend:            b,
		buffers:            [2]*buffer.Buffer{buffer.Empty(viewportArea), buffer.Empty(viewportArea)},
		current:            0,
		viewport:           viewport,
		viewportArea:       viewportArea,
		lastKnownArea:      area,
		lastKnownCursorPos: cursorPos,
	}, nil
}

// Backend returns the backend the terminal draws through.
func (t *Terminal) Backend() backend.Backend {
	return t.backend
}

// Viewport returns the viewport the terminal was constructed with.
func (t *Terminal) Viewport() Viewport {
	return t.viewport
}

// ViewportArea returns the current live drawing region.
func (t *Terminal) ViewportArea() core.Rect {
	return t.viewportArea
}

// GetFrame returns a frame handle bound to the current buffer.
func (t *Terminal) GetFrame() *Frame {
	return &Frame{
		buf:   t.currentBuffer(),
		area:  t.viewportArea,
		count: t.frameCount,
	}
}

func (t *Terminal) currentBuffer() *buffer.Buffer {
	return t.buffers[t.current]
}

func (t *Terminal) previousBuffer() *buffer.Buffer {
	return t.buffers[1-t.current]
}

// Flush diffs the previous buffer against the current one and sends the
// changes to the backend. An empty diff issues no draw call at all.
func (t *Terminal) Flush() error {
	updates := t.previousBuffer().Diff(t.currentBuffer())
	if len(updates) == 0 {
		return nil
	}
	last := updates[len(updates)-1]
	t.lastKnownCursorPos = core.Position{X: last.X, Y: last.Y}
	return t.backend.Draw(updates)
}

// Draw renders a single frame: autoresize, run the render callback against
// the current buffer, flush the diff, apply the cursor request, swap
// buffers and advance the frame count.
//
// The callback must fully repaint every cell it claims responsibility for,
// since only buffer-level diffs are written out.
func (t *Terminal) Draw(render func(*Frame)) error {
	return t.TryDraw(func(f *Frame) error {
		render(f)
		return nil
	})
}

// TryDraw is Draw with a fallible render callback. A callback error aborts
// the frame before any buffer writes reach the backend; the terminal state
// is left as it was and the error is returned.
func (t *Terminal) TryDraw(render func(*Frame) error) error {
	if err := t.autoresize(); err != nil {
		return err
	}

	frame := t.GetFrame()
	if err := render(frame); err != nil {
		return err
	}

	// The cursor request has to outlive the frame, which is dropped before
	// the flush touches the backend.
	cursorPos := frame.cursorPos

	if err := t.Flush(); err != nil {
		return err
	}

	if cursorPos == nil {
		if err := t.HideCursor(); err != nil {
			return err
		}
	} else {
		if err := t.ShowCursor(); err != nil {
			return err
		}
		if err := t.SetCursorPosition(*cursorPos); err != nil {
			return err
		}
	}

	t.swapBuffers()

	if err := t.backend.Flush(); err != nil {
		return err
	}

	t.frameCount++ // wraps around; overflow is not an error
	return nil
}

// autoresize queries the backend size and resizes if it changed since the
// last draw. Fixed viewports never autoresize.
func (t *Terminal) autoresize() error {
	if t.viewport.kind == ViewportFixed {
		return nil
	}
	size, err := t.backend.Size()
	if err != nil {
		return err
	}
	area := core.RectFromSize(size)
	if area != t.lastKnownArea {
		return t.Resize(area)
	}
	return nil
}

// Resize recomputes the viewport for a new backend area, resizes both
// buffers and forces a full clear so the next draw repaints everything.
func (t *Terminal) Resize(area core.Rect) error {
	next := area
	switch t.viewport.kind {
	case ViewportInline:
		offset := t.lastKnownCursorPos.Y - t.viewportArea.Top()
		if offset < 0 {
			offset = 0
		}
		var err error
		next, _, err = computeInlineSize(t.backend, t.viewport.height, area.Size(), offset)
		if err != nil {
			return err
		}
	case ViewportFixed:
		next = t.viewport.area
	}
	t.setViewportArea(next)
	if err := t.Clear(); err != nil {
		return err
	}
	t.lastKnownArea = area
	return nil
}

func (t *Terminal) setViewportArea(area core.Rect) {
	t.buffers[0].Resize(area)
	t.buffers[1].Resize(area)
	t.viewportArea = area
}

// Clear erases the viewport's portion of the screen and resets the
// previous buffer so the next flush redraws every cell.
func (t *Terminal) Clear() error {
	switch t.viewport.kind {
	case ViewportFullscreen:
		if err := t.backend.ClearRegion(backend.ClearAll); err != nil {
			return err
		}
	case ViewportInline:
		if err := t.backend.SetCursorPosition(t.viewportArea.Position()); err != nil {
			return err
		}
		if err := t.backend.ClearRegion(backend.ClearAfterCursor); err != nil {
			return err
		}
	case ViewportFixed:
		for y := t.viewportArea.Top(); y < t.viewportArea.Bottom(); y++ {
			if err := t.backend.SetCursorPosition(core.Position{X: 0, Y: y}); err != nil {
				return err
			}
			if err := t.backend.ClearRegion(backend.ClearAfterCursor); err != nil {
				return err
			}
		}
	}
	t.previousBuffer().Reset()
	return nil
}

// swapBuffers resets the buffer about to become current so stale content
// never leaks into the next frame, then flips the index.
func (t *Terminal) swapBuffers() {
	t.previousBuffer().Reset()
	t.current = 1 - t.current
}

// HideCursor hides the cursor.
func (t *Terminal) HideCursor() error {
	if err := t.backend.HideCursor(); err != nil {
		return err
	}
	t.hiddenCursor = true
	return nil
}

// ShowCursor shows the cursor.
func (t *Terminal) ShowCursor() error {
	if err := t.backend.ShowCursor(); err != nil {
		return err
	}
	t.hiddenCursor = false
	return nil
}

// GetCursorPosition queries the backend for the cursor position.
func (t *Terminal) GetCursorPosition() (core.Position, error) {
	return t.backend.GetCursorPosition()
}

// SetCursorPosition moves the cursor and records the position for inline
// viewport bookkeeping.
func (t *Terminal) SetCursorPosition(pos core.Position) error {
	if err := t.backend.SetCursorPosition(pos); err != nil {
		return err
	}
	t.lastKnownCursorPos = pos
	return nil
}

// Size queries the backend's current dimensions.
func (t *Terminal) Size() (core.Size, error) {
	return t.backend.Size()
}

// FrameCount returns the number of completed frames, wrapping on overflow.
func (t *Terminal) FrameCount() uint64 {
	return t.frameCount
}

// Close restores the cursor if the terminal hid it. A failure to restore
// is reported to stderr rather than returned: teardown must complete
// regardless.
func (t *Terminal) Close() {
	if !t.hiddenCursor {
		return
	}
	if err := t.ShowCursor(); err != nil {
		fmt.Fprintf(os.Stderr, "termframe: failed to show the cursor: %v\n", err)
	}
}

// InsertBefore renders content of the given height into a throwaway buffer
// and pushes it onto the screen above the current inline viewport, using
// the scrollback for anything that no longer fits. It is a no-op for
// fullscreen and fixed viewports.
//
// When the content plus the viewport exceed the screen height the content
// is drawn in screenfuls, scrolling between rounds. The scroll amount per
// round satisfies four constraints: it is non-negative, never exceeds what
// has already been drawn (no blank scrollback lines), leaves room to draw
// the next chunk, and never opens a gap taller than the viewport at the
// bottom of the screen.
func (t *Terminal) InsertBefore(height int, render func(*buffer.Buffer)) error {
	if t.viewport.kind != ViewportInline {
		return nil
	}

	area := core.NewRect(0, 0, t.viewportArea.Width, height)
	buf := buffer.Empty(area)
	render(buf)
	cells := buf.Content()

	drawnHeight := t.viewportArea.Top()
	bufferHeight := height
	viewportHeight := t.viewportArea.Height
	screenHeight := t.lastKnownArea.Height

	for bufferHeight+viewportHeight > screenHeight {
		toDraw := min(bufferHeight, screenHeight)
		scroll := max(0, drawnHeight+toDraw-screenHeight)
		if err := t.scrollUp(scroll); err != nil {
			return err
		}
		var err error
		cells, err = t.drawLines(drawnHeight-scroll, toDraw, cells)
		if err != nil {
			return err
		}
		drawnHeight += toDraw - scroll
		bufferHeight -= toDraw
	}

	// Enough room remains for the rest of the content plus the viewport,
	// but existing text may still need to scroll so the viewport ends
	// anchored at the bottom region of the screen.
	scroll := max(0, drawnHeight+bufferHeight+viewportHeight-screenHeight)
	if err := t.scrollUp(scroll); err != nil {
		return err
	}
	if _, err := t.drawLines(drawnHeight-scroll, bufferHeight, cells); err != nil {
		return err
	}
	drawnHeight += bufferHeight - scroll

	t.setViewportArea(core.Rect{
		X:      t.viewportArea.X,
		Y:      drawnHeight,
		Width:  t.viewportArea.Width,
		Height: t.viewportArea.Height,
	})

	// Clearing the viewport (and only the viewport) prevents stale glyphs
	// from showing through the next diff; the inserted content needed no
	// clear because the buffer it came from is not sparse.
	return t.Clear()
}

// drawLines draws the given number of rows from cells at a vertical
// offset and returns the unused remainder of the slice.
func (t *Terminal) drawLines(yOffset, linesToDraw int, cells []core.Cell) ([]core.Cell, error) {
	if linesToDraw <= 0 {
		return cells, nil
	}
	width := t.lastKnownArea.Width
	count := width * linesToDraw
	toDraw, remainder := cells[:count], cells[count:]

	updates := make([]buffer.Update, 0, count)
	for i := range toDraw {
		updates = append(updates, buffer.Update{
			X:    i % width,
			Y:    yOffset + i/width,
			Cell: &toDraw[i],
		})
	}
	if err := t.backend.Draw(updates); err != nil {
		return nil, err
	}
	return remainder, t.backend.Flush()
}

// scrollUp scrolls the whole screen up by moving the cursor to the bottom
// row and appending lines.
func (t *Terminal) scrollUp(lines int) error {
	if lines <= 0 {
		return nil
	}
	bottom := max(0, t.lastKnownArea.Height-1)
	if err := t.SetCursorPosition(core.Position{X: 0, Y: bottom}); err != nil {
		return err
	}
	return t.backend.AppendLines(lines)
}

// computeInlineSize places an inline viewport of the desired height at the
// backend's cursor row, appending blank lines below the cursor so the
// viewport fits without clearing existing scrollback. When resizing, the
// offset of the cursor inside the previous viewport keeps the anchor row
// stable. The returned viewport never extends past the bottom of the
// screen.
func computeInlineSize(b backend.Backend, height int, size core.Size, offsetInPreviousViewport int) (core.Rect, core.Position, error) {
	pos, err := b.GetCursorPosition()
	if err != nil {
		return core.Rect{}, core.Position{}, fmt.Errorf("querying cursor position: %w", err)
	}
	row := pos.Y

	maxHeight := min(size.Height, height)
	linesAfterCursor := max(0, height-offsetInPreviousViewport-1)

	if err := b.AppendLines(linesAfterCursor); err != nil {
		return core.Rect{}, core.Position{}, err
	}

	availableLines := max(0, size.Height-row-1)
	if missing := linesAfterCursor - availableLines; missing > 0 {
		row = max(0, row-missing)
	}
	row = max(0, row-offsetInPreviousViewport)

	return core.Rect{X: 0, Y: row, Width: size.Width, Height: maxHeight}, pos, nil
}
