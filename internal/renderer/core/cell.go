package core

import "github.com/mattn/go-runewidth"

// Cell represents a single terminal cell's renderable state.
//
// The symbol is a grapheme cluster, not a single rune: combining marks and
// emoji sequences occupy one cell (or two for wide glyphs) but may be
// several runes long. A cell's symbol is never empty except for skip cells,
// which mark the trailing columns of a wide glyph and must not be redrawn
// independently.
type Cell struct {
	// Symbol is the grapheme cluster displayed in this cell.
	Symbol string

	// Style is the visual style for this cell.
	Style Style

	// Skip marks this cell as a continuation column of a wide glyph.
	// The glyph itself lives in the preceding non-skip cell.
	Skip bool
}

// EmptyCell returns a blank cell with the default style.
func EmptyCell() Cell {
	return Cell{Symbol: " ", Style: DefaultStyle()}
}

// NewCell creates a cell with the given symbol and the default style.
func NewCell(symbol string) Cell {
	return Cell{Symbol: symbol, Style: DefaultStyle()}
}

// NewStyledCell creates a cell with the given symbol and style.
func NewStyledCell(symbol string, style Style) Cell {
	return Cell{Symbol: symbol, Style: style}
}

// SkipCell returns a continuation cell for the trailing column of a wide
// glyph, carrying the owning glyph's style.
func SkipCell(style Style) Cell {
	return Cell{Symbol: " ", Style: style, Skip: true}
}

// WithStyle returns a copy of the cell with the given style.
func (c Cell) WithStyle(style Style) Cell {
	c.Style = style
	return c
}

// WithSymbol returns a copy of the cell with the given symbol.
func (c Cell) WithSymbol(symbol string) Cell {
	c.Symbol = symbol
	c.Skip = false
	return c
}

// Width returns the number of columns the cell's symbol occupies.
func (c Cell) Width() int {
	return runewidth.StringWidth(c.Symbol)
}

// IsBlank returns true if the cell shows nothing but background.
func (c Cell) IsBlank() bool {
	return c.Symbol == " " || c.Symbol == ""
}

// Reset restores the cell to the default blank state in place.
func (c *Cell) Reset() {
	c.Symbol = " "
	c.Style = DefaultStyle()
	c.Skip = false
}

// Equals returns true if two cells render identically.
func (c Cell) Equals(other Cell) bool {
	return c.Symbol == other.Symbol &&
		c.Skip == other.Skip &&
		c.Style.Equals(other.Style)
}
