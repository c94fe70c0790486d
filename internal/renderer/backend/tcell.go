package backend

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/termframe/internal/renderer/buffer"
	"github.com/dshills/termframe/internal/renderer/core"
)

// TcellBackend implements Backend over a tcell.Screen.
//
// tcell owns the physical terminal completely, so a few contract points are
// emulated: the cursor position is tracked locally (tcell has no query),
// and AppendLines shifts the screen content up in place since the alternate
// screen has no scrollback. Inline viewports work, but scrolled-off rows
// are lost rather than preserved; the ANSI backend is the better fit when
// scrollback matters.
type TcellBackend struct {
	screen       tcell.Screen
	cursor       core.Position
	cursorHidden bool
}

// NewTcell creates a tcell-backed backend. Init must be called before use.
func NewTcell() (*TcellBackend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating tcell screen: %w", err)
	}
	return &TcellBackend{screen: screen}, nil
}

// NewTcellFromScreen wraps an existing screen, such as a simulation screen
// in tests.
func NewTcellFromScreen(screen tcell.Screen) *TcellBackend {
	return &TcellBackend{screen: screen}
}

// Init initializes the underlying screen. Must be called before drawing.
func (t *TcellBackend) Init() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("initializing tcell screen: %w", err)
	}
	return nil
}

// Fini releases the screen and restores the terminal.
func (t *TcellBackend) Fini() {
	t.screen.Fini()
}

// Screen exposes the wrapped screen for event polling by the application.
func (t *TcellBackend) Screen() tcell.Screen {
	return t.screen
}

// Draw applies cell updates to the screen's back buffer.
func (t *TcellBackend) Draw(updates []buffer.Update) error {
	for _, u := range updates {
		t.setCell(u.X, u.Y, *u.Cell)
		t.cursor = core.Position{X: u.X, Y: u.Y}
	}
	return nil
}

func (t *TcellBackend) setCell(x, y int, cell core.Cell) {
	runes := []rune(cell.Symbol)
	if len(runes) == 0 {
		runes = []rune{' '}
	}
	t.screen.SetContent(x, y, runes[0], runes[1:], convertStyle(cell.Style))
}

// HideCursor makes the cursor invisible.
func (t *TcellBackend) HideCursor() error {
	t.cursorHidden = true
	t.screen.HideCursor()
	return nil
}

// ShowCursor makes the cursor visible at its tracked position.
func (t *TcellBackend) ShowCursor() error {
	t.cursorHidden = false
	t.screen.ShowCursor(t.cursor.X, t.cursor.Y)
	return nil
}

// GetCursorPosition reports the locally tracked cursor position.
func (t *TcellBackend) GetCursorPosition() (core.Position, error) {
	return t.cursor, nil
}

// SetCursorPosition moves the cursor.
func (t *TcellBackend) SetCursorPosition(pos core.Position) error {
	t.cursor = pos
	if !t.cursorHidden {
		t.screen.ShowCursor(pos.X, pos.Y)
	}
	return nil
}

// Size reports the screen dimensions.
func (t *TcellBackend) Size() (core.Size, error) {
	w, h := t.screen.Size()
	return core.Size{Width: w, Height: h}, nil
}

// ClearRegion erases part of the screen relative to the tracked cursor.
func (t *TcellBackend) ClearRegion(clear ClearType) error {
	w, h, err := t.dims()
	if err != nil {
		return err
	}
	idx := t.cursor.Y*w + t.cursor.X
	var from, to int
	switch clear {
	case ClearAll:
		from, to = 0, w*h
	case ClearAfterCursor:
		from, to = idx, w*h
	case ClearBeforeCursor:
		from, to = 0, idx+1
	case ClearCurrentLine:
		from, to = t.cursor.Y*w, (t.cursor.Y+1)*w
	case ClearUntilNewLine:
		from, to = idx, (t.cursor.Y+1)*w
	default:
		return fmt.Errorf("unknown clear type %d", clear)
	}
	for i := from; i < to && i < w*h; i++ {
		t.screen.SetContent(i%w, i/w, ' ', nil, tcell.StyleDefault)
	}
	return nil
}

// AppendLines scrolls the screen content up by n rows. The freed rows at
// the bottom come out blank; rows shifted past the top are discarded.
func (t *TcellBackend) AppendLines(n int) error {
	w, h, err := t.dims()
	if err != nil {
		return err
	}
	if n > h {
		n = h
	}
	for y := 0; y < h-n; y++ {
		for x := 0; x < w; x++ {
			mainc, combc, style, _ := t.screen.GetContent(x, y+n)
			t.screen.SetContent(x, y, mainc, combc, style)
		}
	}
	for y := h - n; y < h; y++ {
		for x := 0; x < w; x++ {
			t.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
	t.cursor = core.Position{X: 0, Y: h - 1}
	return nil
}

func (t *TcellBackend) dims() (int, int, error) {
	w, h := t.screen.Size()
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("tcell screen has no size")
	}
	return w, h, nil
}

// Flush synchronizes the screen's back buffer with the display.
func (t *TcellBackend) Flush() error {
	t.screen.Show()
	return nil
}

// convertStyle converts a core style to a tcell style.
func convertStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault

	if !s.Foreground.IsDefault() {
		style = style.Foreground(convertColor(s.Foreground))
	}
	if !s.Background.IsDefault() {
		style = style.Background(convertColor(s.Background))
	}

	if s.Attributes.Has(core.AttrBold) {
		style = style.Bold(true)
	}
	if s.Attributes.Has(core.AttrDim) {
		style = style.Dim(true)
	}
	if s.Attributes.Has(core.AttrItalic) {
		style = style.Italic(true)
	}
	if s.Attributes.Has(core.AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attributes.Has(core.AttrSlowBlink) || s.Attributes.Has(core.AttrRapidBlink) {
		style = style.Blink(true)
	}
	if s.Attributes.Has(core.AttrReverse) {
		style = style.Reverse(true)
	}
	if s.Attributes.Has(core.AttrStrikethrough) {
		style = style.StrikeThrough(true)
	}

	return style
}

// convertColor converts a core color to a tcell color.
func convertColor(c core.Color) tcell.Color {
	if c.Indexed {
		return tcell.PaletteColor(int(c.R))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
