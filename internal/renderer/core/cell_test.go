package core

import "testing"

func TestEmptyCell(t *testing.T) {
	c := EmptyCell()

	if c.Symbol != " " {
		t.Errorf("empty cell symbol = %q, want a blank", c.Symbol)
	}
	if c.Skip {
		t.Error("empty cell should not be a skip cell")
	}
	if !c.Style.Equals(DefaultStyle()) {
		t.Errorf("empty cell style = %+v", c.Style)
	}
}

func TestCellWidth(t *testing.T) {
	tests := map[string]struct {
		symbol string
		want   int
	}{
		"ascii":           {"a", 1},
		"blank":           {" ", 1},
		"cjk":             {"日", 2},
		"combining mark":  {"é", 1},
		"fullwidth latin": {"Ａ", 2},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := NewCell(tt.symbol).Width(); got != tt.want {
				t.Errorf("Width(%q) = %d, want %d", tt.symbol, got, tt.want)
			}
		})
	}
}

func TestCellReset(t *testing.T) {
	c := NewStyledCell("日", DefaultStyle().WithForeground(ColorRed))
	c.Skip = true

	c.Reset()

	if !c.Equals(EmptyCell()) {
		t.Errorf("reset cell = %+v, want empty", c)
	}
}

func TestCellEquals(t *testing.T) {
	red := DefaultStyle().WithForeground(ColorRed)

	tests := map[string]struct {
		a, b Cell
		want bool
	}{
		"identical":       {NewCell("a"), NewCell("a"), true},
		"symbol differs":  {NewCell("a"), NewCell("b"), false},
		"style differs":   {NewCell("a"), NewStyledCell("a", red), false},
		"skip differs":    {EmptyCell(), SkipCell(DefaultStyle()), false},
		"skip same style": {SkipCell(red), SkipCell(red), true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.a.Equals(tt.b); got != tt.want {
				t.Errorf("Equals() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCellWithSymbolClearsSkip(t *testing.T) {
	c := SkipCell(DefaultStyle()).WithSymbol("x")
	if c.Skip {
		t.Error("WithSymbol should clear the skip marker")
	}
	if c.Symbol != "x" {
		t.Errorf("symbol = %q", c.Symbol)
	}
}
