package buffer

import (
	"testing"

	"github.com/dshills/termframe/internal/renderer/core"
)

func TestEmpty(t *testing.T) {
	b := Empty(core.NewRect(0, 0, 10, 4))

	if b.Area() != core.NewRect(0, 0, 10, 4) {
		t.Errorf("area = %v", b.Area())
	}
	if len(b.Content()) != 40 {
		t.Fatalf("content length = %d, want 40", len(b.Content()))
	}
	for i, c := range b.Content() {
		if !c.Equals(core.EmptyCell()) {
			t.Fatalf("cell %d not default: %+v", i, c)
		}
	}
}

func TestCellAtOffsetArea(t *testing.T) {
	// Buffers over fixed viewports do not start at the origin.
	b := Empty(core.NewRect(5, 3, 4, 2))

	b.CellAt(5, 3).Symbol = "a"
	b.CellAt(8, 4).Symbol = "z"

	if b.Content()[0].Symbol != "a" {
		t.Error("top-left of offset area should map to index 0")
	}
	if b.Content()[7].Symbol != "z" {
		t.Error("bottom-right of offset area should map to the last index")
	}
}

func TestCellAtOutOfBoundsPanics(t *testing.T) {
	tests := map[string]core.Position{
		"left of area":  {X: -1, Y: 0},
		"right of area": {X: 10, Y: 0},
		"below area":    {X: 0, Y: 4},
	}

	for name, pos := range tests {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("CellAt(%d, %d) should panic", pos.X, pos.Y)
				}
			}()
			Empty(core.NewRect(0, 0, 10, 4)).CellAt(pos.X, pos.Y)
		})
	}
}

func TestSetString(t *testing.T) {
	b := Empty(core.NewRect(0, 0, 10, 1))
	style := core.DefaultStyle().WithForeground(core.ColorRed)

	next := b.SetString(0, 0, "hello", style)

	if next != 5 {
		t.Errorf("next column = %d, want 5", next)
	}
	for i, want := range []string{"h", "e", "l", "l", "o"} {
		got := b.CellAt(i, 0)
		if got.Symbol != want {
			t.Errorf("cell %d symbol = %q, want %q", i, got.Symbol, want)
		}
		if !got.Style.Equals(style) {
			t.Errorf("cell %d style = %+v", i, got.Style)
		}
	}
	if b.CellAt(5, 0).Symbol != " " {
		t.Error("cells past the string should stay blank")
	}
}

func TestSetStringTruncatesAtRightEdge(t *testing.T) {
	b := Empty(core.NewRect(0, 0, 5, 1))

	next := b.SetString(3, 0, "abcdef", core.DefaultStyle())

	if next != 5 {
		t.Errorf("next column = %d, want 5", next)
	}
	if b.CellAt(3, 0).Symbol != "a" || b.CellAt(4, 0).Symbol != "b" {
		t.Error("string should be truncated at the buffer boundary")
	}
}

func TestSetStringWideGlyph(t *testing.T) {
	b := Empty(core.NewRect(0, 0, 6, 1))

	next := b.SetString(0, 0, "日本", core.DefaultStyle())

	if next != 4 {
		t.Errorf("next column = %d, want 4", next)
	}
	if b.CellAt(0, 0).Symbol != "日" {
		t.Errorf("cell 0 = %q", b.CellAt(0, 0).Symbol)
	}
	if !b.CellAt(1, 0).Skip {
		t.Error("column after a wide glyph should be a skip cell")
	}
	if b.CellAt(2, 0).Symbol != "本" || !b.CellAt(3, 0).Skip {
		t.Error("second wide glyph should occupy columns 2-3")
	}
}

func TestSetStringWideGlyphDoesNotStraddleEdge(t *testing.T) {
	b := Empty(core.NewRect(0, 0, 3, 1))

	b.SetString(0, 0, "a日", core.DefaultStyle())

	// The wide glyph needs columns 1-2 and fits; a third would not.
	if b.CellAt(1, 0).Symbol != "日" || !b.CellAt(2, 0).Skip {
		t.Fatal("wide glyph should fit in the remaining two columns")
	}

	b2 := Empty(core.NewRect(0, 0, 2, 1))
	b2.SetString(0, 0, "a日", core.DefaultStyle())
	if b2.CellAt(1, 0).Symbol != " " {
		t.Error("a wide glyph that cannot fully fit should be dropped, not split")
	}
}

func TestSetStringCombiningMark(t *testing.T) {
	b := Empty(core.NewRect(0, 0, 5, 1))

	next := b.SetString(0, 0, "éx", core.DefaultStyle())

	if next != 2 {
		t.Errorf("next column = %d, want 2", next)
	}
	if b.CellAt(0, 0).Symbol != "é" {
		t.Errorf("combining sequence should stay in one cell, got %q", b.CellAt(0, 0).Symbol)
	}
	if b.CellAt(1, 0).Symbol != "x" {
		t.Errorf("cell 1 = %q", b.CellAt(1, 0).Symbol)
	}
}

func TestSetStringN(t *testing.T) {
	b := Empty(core.NewRect(0, 0, 10, 1))

	next := b.SetStringN(0, 0, "abcdef", 3, core.DefaultStyle())

	if next != 3 {
		t.Errorf("next column = %d, want 3", next)
	}
	if b.CellAt(3, 0).Symbol != " " {
		t.Error("SetStringN should stop at the width limit")
	}
}

func TestFillRespectsArea(t *testing.T) {
	b := Empty(core.NewRect(0, 0, 5, 5))
	cell := core.NewCell("#")

	b.Fill(core.NewRect(3, 3, 10, 10), cell)

	if !b.CellAt(4, 4).Equals(cell) {
		t.Error("cells inside the intersection should be filled")
	}
	if b.CellAt(2, 2).Equals(cell) {
		t.Error("cells outside the fill rect should be untouched")
	}
}

func TestReset(t *testing.T) {
	b := Empty(core.NewRect(0, 0, 4, 2))
	b.SetString(0, 0, "日本", core.DefaultStyle().Bold())

	b.Reset()

	if !b.Equals(Empty(core.NewRect(0, 0, 4, 2))) {
		t.Error("reset buffer should equal a fresh empty buffer")
	}
}

func TestResizeDiscardsContent(t *testing.T) {
	tests := map[string]core.Rect{
		"grow":   core.NewRect(0, 0, 12, 6),
		"shrink": core.NewRect(0, 0, 3, 2),
		"move":   core.NewRect(4, 4, 8, 4),
	}

	for name, area := range tests {
		t.Run(name, func(t *testing.T) {
			b := Empty(core.NewRect(0, 0, 8, 4))
			b.SetString(0, 0, "stale", core.DefaultStyle())

			b.Resize(area)

			if b.Area() != area {
				t.Errorf("area = %v, want %v", b.Area(), area)
			}
			if len(b.Content()) != area.Area() {
				t.Fatalf("content length = %d, want %d", len(b.Content()), area.Area())
			}
			for i, c := range b.Content() {
				if !c.Equals(core.EmptyCell()) {
					t.Fatalf("cell %d holds stale content after resize: %+v", i, c)
				}
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := Empty(core.NewRect(0, 0, 4, 1))
	b.SetString(0, 0, "ab", core.DefaultStyle())

	clone := b.Clone()
	clone.CellAt(0, 0).Symbol = "z"

	if b.CellAt(0, 0).Symbol != "a" {
		t.Error("mutating a clone should not affect the original")
	}
	if !b.Equals(b.Clone()) {
		t.Error("a fresh clone should equal its source")
	}
}
