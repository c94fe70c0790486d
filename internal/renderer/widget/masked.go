package widget

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/termframe/internal/renderer/buffer"
	"github.com/dshills/termframe/internal/renderer/core"
)

// Masked wraps a string that must never reach the screen in the clear,
// such as a password being typed. Rendering and String substitute the
// mask character for every rune; Raw exposes the underlying value for
// the code that actually needs it.
type Masked struct {
	inner string
	mask  rune
	style core.Style
}

// NewMasked wraps s so it displays as repetitions of mask.
func NewMasked(s string, mask rune) *Masked {
	return &Masked{inner: s, mask: mask, style: core.DefaultStyle()}
}

// Style sets the style used when rendering.
func (m *Masked) Style(style core.Style) *Masked {
	m.style = style
	return m
}

// MaskChar returns the masking character.
func (m *Masked) MaskChar() rune {
	return m.mask
}

// Raw returns the unmasked value.
func (m *Masked) Raw() string {
	return m.inner
}

// Value returns the masked form, one mask character per rune.
func (m *Masked) Value() string {
	return strings.Repeat(string(m.mask), utf8.RuneCountInString(m.inner))
}

// String returns the masked form, so accidental logging leaks nothing.
func (m *Masked) String() string {
	return m.Value()
}

// Render draws the masked value on the first row of the area, truncated
// to the area width.
func (m *Masked) Render(area core.Rect, buf *buffer.Buffer) {
	if area.Height < 1 {
		return
	}
	buf.SetStringN(area.Left(), area.Top(), m.Value(), area.Width, m.style)
}
