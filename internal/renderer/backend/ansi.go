package backend

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dshills/termframe/internal/renderer/buffer"
	"github.com/dshills/termframe/internal/renderer/core"
)

// ErrNotTerminal is returned for operations that need a real terminal
// (size or cursor queries) when the backend is attached to a plain writer.
var ErrNotTerminal = errors.New("backend: not attached to a terminal")

// Pre-allocated escape sequence fragments (avoid allocations during render).
var (
	csiCursorPos   = []byte("\x1b[") // followed by row;colH
	csiCursorHide  = []byte("\x1b[?25l")
	csiCursorShow  = []byte("\x1b[?25h")
	csiCursorQuery = []byte("\x1b[6n")
	csiReset       = []byte("\x1b[0m")
	csiDefaultUl   = []byte("\x1b[59m")

	csiClearAll       = []byte("\x1b[2J")
	csiClearAfter     = []byte("\x1b[0J")
	csiClearBefore    = []byte("\x1b[1J")
	csiClearLine      = []byte("\x1b[2K")
	csiClearToLineEnd = []byte("\x1b[0K")

	csiFg256     = []byte("\x1b[38;5;")
	csiBg256     = []byte("\x1b[48;5;")
	csiFgRGB     = []byte("\x1b[38;2;")
	csiBgRGB     = []byte("\x1b[48;2;")
	csiUlRGB     = []byte("\x1b[58;2;")
	csiUl256     = []byte("\x1b[58;5;")
	csiDefaultFg = []byte("\x1b[39m")
	csiDefaultBg = []byte("\x1b[49m")
)

// SGR codes for turning attributes on and off.
var attrOn = []struct {
	attr core.Attribute
	code int
}{
	{core.AttrBold, 1},
	{core.AttrDim, 2},
	{core.AttrItalic, 3},
	{core.AttrUnderline, 4},
	{core.AttrSlowBlink, 5},
	{core.AttrRapidBlink, 6},
	{core.AttrReverse, 7},
	{core.AttrStrikethrough, 9},
}

// ANSIBackend renders through raw escape sequences written to an io.Writer.
// Output is buffered; nothing reaches the terminal until Flush (or the
// bufio buffer fills).
//
// When constructed over a real TTY it can also query the terminal size and
// cursor position and toggle raw mode. Cursor queries require raw mode to
// be active, since the reply arrives on the input stream.
type ANSIBackend struct {
	out       *bufio.Writer
	outFd     int      // -1 when output is not a terminal
	tty       *os.File // input side for cursor queries; nil when unavailable
	rawState  *term.State
	fixedSize *core.Size
}

// NewANSI creates an ANSI backend over an arbitrary writer. If out is a
// terminal file, size queries work; cursor queries need NewANSITTY.
func NewANSI(out io.Writer) *ANSIBackend {
	b := &ANSIBackend{out: bufio.NewWriterSize(out, 1<<16), outFd: -1}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b.outFd = int(f.Fd())
	}
	return b
}

// NewANSITTY creates an ANSI backend bound to a terminal's output and input
// files (typically stdout and stdin). The input side is used only to read
// cursor position reports.
func NewANSITTY(out, in *os.File) *ANSIBackend {
	b := NewANSI(out)
	b.tty = in
	return b
}

// SetFixedSize pins the reported terminal size, for use over writers that
// are not terminals (tests, pipes).
func (b *ANSIBackend) SetFixedSize(size core.Size) {
	b.fixedSize = &size
}

// EnterRawMode puts the attached TTY into raw mode. Required before
// GetCursorPosition can read the terminal's reply.
func (b *ANSIBackend) EnterRawMode() error {
	if b.tty == nil {
		return ErrNotTerminal
	}
	state, err := term.MakeRaw(int(b.tty.Fd()))
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	b.rawState = state
	return nil
}

// ExitRawMode restores the TTY state saved by EnterRawMode.
func (b *ANSIBackend) ExitRawMode() error {
	if b.rawState == nil {
		return nil
	}
	err := term.Restore(int(b.tty.Fd()), b.rawState)
	b.rawState = nil
	if err != nil {
		return fmt.Errorf("restoring terminal mode: %w", err)
	}
	return nil
}

// Draw writes cell updates as escape sequences. Because updates arrive in
// row-major ascending order, a cell immediately to the right of the
// previous one needs no cursor move; style changes are emitted as minimal
// SGR diffs against the running state.
func (b *ANSIBackend) Draw(updates []buffer.Update) error {
	fg, bg, ul := core.ColorDefault, core.ColorDefault, core.ColorDefault
	attrs := core.AttrNone
	lastX, lastY := -2, -2

	for i := range updates {
		u := &updates[i]
		if u.Y != lastY || u.X != lastX+1 {
			writeCursorPos(b.out, u.X, u.Y)
		}
		lastX, lastY = u.X, u.Y

		style := u.Cell.Style
		if style.Attributes != attrs {
			writeAttrDiff(b.out, attrs, style.Attributes)
			attrs = style.Attributes
		}
		if !style.Foreground.Equals(fg) {
			writeColor(b.out, style.Foreground, csiFgRGB, csiFg256, csiDefaultFg)
			fg = style.Foreground
		}
		if !style.Background.Equals(bg) {
			writeColor(b.out, style.Background, csiBgRGB, csiBg256, csiDefaultBg)
			bg = style.Background
		}
		if !style.Underline.Equals(ul) {
			writeColor(b.out, style.Underline, csiUlRGB, csiUl256, csiDefaultUl)
			ul = style.Underline
		}
		b.out.WriteString(u.Cell.Symbol)
	}

	b.out.Write(csiReset)
	_, err := b.out.Write(csiDefaultUl)
	return err
}

// HideCursor makes the cursor invisible.
func (b *ANSIBackend) HideCursor() error {
	_, err := b.out.Write(csiCursorHide)
	return err
}

// ShowCursor makes the cursor visible.
func (b *ANSIBackend) ShowCursor() error {
	_, err := b.out.Write(csiCursorShow)
	return err
}

// GetCursorPosition asks the terminal for the cursor position with a DSR
// query and parses the reply from the input stream. The TTY must be in raw
// mode or the reply will be held by the line discipline.
func (b *ANSIBackend) GetCursorPosition() (core.Position, error) {
	if b.tty == nil {
		return core.Position{}, ErrNotTerminal
	}
	if _, err := b.out.Write(csiCursorQuery); err != nil {
		return core.Position{}, err
	}
	if err := b.out.Flush(); err != nil {
		return core.Position{}, err
	}

	// Reply is ESC [ row ; col R, possibly preceded by pending input.
	var reply [64]byte
	n := 0
	for n < len(reply) {
		m, err := b.tty.Read(reply[n : n+1])
		if err != nil {
			return core.Position{}, fmt.Errorf("reading cursor report: %w", err)
		}
		if m == 0 {
			continue
		}
		if reply[n] == 'R' {
			n++
			break
		}
		n++
	}
	start := bytes.LastIndexByte(reply[:n], 0x1b)
	if start < 0 {
		return core.Position{}, fmt.Errorf("malformed cursor report %q", reply[:n])
	}
	var row, col int
	if _, err := fmt.Sscanf(string(reply[start:n]), "\x1b[%d;%dR", &row, &col); err != nil {
		return core.Position{}, fmt.Errorf("malformed cursor report %q", reply[start:n])
	}
	return core.Position{X: col - 1, Y: row - 1}, nil
}

// SetCursorPosition moves the cursor.
func (b *ANSIBackend) SetCursorPosition(pos core.Position) error {
	writeCursorPos(b.out, pos.X, pos.Y)
	return b.out.Flush()
}

// Size reports the terminal dimensions, or the pinned size for non-TTY
// writers.
func (b *ANSIBackend) Size() (core.Size, error) {
	if b.fixedSize != nil {
		return *b.fixedSize, nil
	}
	if b.outFd < 0 {
		return core.Size{}, ErrNotTerminal
	}
	w, h, err := term.GetSize(b.outFd)
	if err != nil {
		return core.Size{}, fmt.Errorf("querying terminal size: %w", err)
	}
	return core.Size{Width: w, Height: h}, nil
}

// ClearRegion erases part of the screen relative to the cursor.
func (b *ANSIBackend) ClearRegion(clear ClearType) error {
	var seq []byte
	switch clear {
	case ClearAll:
		seq = csiClearAll
	case ClearAfterCursor:
		seq = csiClearAfter
	case ClearBeforeCursor:
		seq = csiClearBefore
	case ClearCurrentLine:
		seq = csiClearLine
	case ClearUntilNewLine:
		seq = csiClearToLineEnd
	default:
		return fmt.Errorf("unknown clear type %d", clear)
	}
	_, err := b.out.Write(seq)
	return err
}

// AppendLines emits n newlines; with the cursor on the bottom row each one
// scrolls the screen up, preserving scrollback.
func (b *ANSIBackend) AppendLines(n int) error {
	for i := 0; i < n; i++ {
		if err := b.out.WriteByte('\n'); err != nil {
			return err
		}
	}
	return b.out.Flush()
}

// Flush pushes buffered output to the terminal.
func (b *ANSIBackend) Flush() error {
	return b.out.Flush()
}

// writeInt writes a small non-negative integer without allocation.
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	w.Write(buf[i:])
}

// writeCursorPos writes a cursor positioning sequence (0-indexed input).
func writeCursorPos(w *bufio.Writer, x, y int) {
	w.Write(csiCursorPos)
	writeInt(w, y+1)
	w.WriteByte(';')
	writeInt(w, x+1)
	w.WriteByte('H')
}

// writeColor writes the escape sequence selecting a color, given the RGB
// and indexed prefixes and the reset-to-default sequence for that slot.
func writeColor(w *bufio.Writer, c core.Color, rgbPrefix, idxPrefix, def []byte) {
	switch {
	case c.IsDefault():
		w.Write(def)
	case c.Indexed:
		w.Write(idxPrefix)
		writeInt(w, int(c.R))
		w.WriteByte('m')
	default:
		w.Write(rgbPrefix)
		writeInt(w, int(c.R))
		w.WriteByte(';')
		writeInt(w, int(c.G))
		w.WriteByte(';')
		writeInt(w, int(c.B))
		w.WriteByte('m')
	}
}

// writeSGR writes a single numeric SGR sequence.
func writeSGR(w *bufio.Writer, code int) {
	w.Write(csiCursorPos) // same "\x1b[" prefix
	writeInt(w, code)
	w.WriteByte('m')
}

// writeAttrDiff emits the minimal SGR changes to move from one attribute
// set to another. Turning off bold or dim shares SGR 22 (normal intensity),
// so whichever of the two survives must be re-applied afterwards.
func writeAttrDiff(w *bufio.Writer, from, to core.Attribute) {
	removed := from.Removed(to)
	added := from.Added(to)

	if removed.Has(core.AttrReverse) {
		writeSGR(w, 27)
	}
	if removed.Has(core.AttrBold) || removed.Has(core.AttrDim) {
		writeSGR(w, 22)
		// SGR 22 clears both intensities; restore the surviving one. The
		// added loop below covers attributes newly present in to.
		if to.Has(core.AttrBold) && !added.Has(core.AttrBold) {
			writeSGR(w, 1)
		}
		if to.Has(core.AttrDim) && !added.Has(core.AttrDim) {
			writeSGR(w, 2)
		}
	}
	if removed.Has(core.AttrItalic) {
		writeSGR(w, 23)
	}
	if removed.Has(core.AttrUnderline) {
		writeSGR(w, 24)
	}
	if removed.Has(core.AttrSlowBlink) || removed.Has(core.AttrRapidBlink) {
		writeSGR(w, 25)
	}
	if removed.Has(core.AttrStrikethrough) {
		writeSGR(w, 29)
	}

	for _, on := range attrOn {
		if added.Has(on.attr) {
			writeSGR(w, on.code)
		}
	}
}
