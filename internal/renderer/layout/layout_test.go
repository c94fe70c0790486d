package layout

import (
	"testing"

	"github.com/dshills/termframe/internal/renderer/core"
)

func TestSplitVertical(t *testing.T) {
	tests := map[string]struct {
		constraints []Constraint
		area        core.Rect
		want        []core.Rect
	}{
		"length and min": {
			[]Constraint{Length(3), Min(0)},
			core.NewRect(0, 0, 10, 10),
			[]core.Rect{
				core.NewRect(0, 0, 10, 3),
				core.NewRect(0, 3, 10, 7),
			},
		},
		"two halves": {
			[]Constraint{Percentage(50), Percentage(50)},
			core.NewRect(0, 0, 10, 10),
			[]core.Rect{
				core.NewRect(0, 0, 10, 5),
				core.NewRect(0, 5, 10, 5),
			},
		},
		"thirds by ratio": {
			[]Constraint{Ratio(1, 3), Ratio(1, 3), Ratio(1, 3)},
			core.NewRect(0, 0, 10, 9),
			[]core.Rect{
				core.NewRect(0, 0, 10, 3),
				core.NewRect(0, 3, 10, 3),
				core.NewRect(0, 6, 10, 3),
			},
		},
		"leftover flows to min": {
			[]Constraint{Min(1), Length(2)},
			core.NewRect(0, 0, 10, 8),
			[]core.Rect{
				core.NewRect(0, 0, 10, 6),
				core.NewRect(0, 6, 10, 2),
			},
		},
		"leftover flows to last without min": {
			[]Constraint{Length(2), Length(2)},
			core.NewRect(0, 0, 10, 7),
			[]core.Rect{
				core.NewRect(0, 0, 10, 2),
				core.NewRect(0, 2, 10, 5),
			},
		},
		"max clamps": {
			[]Constraint{Max(3), Min(0)},
			core.NewRect(0, 0, 10, 10),
			[]core.Rect{
				core.NewRect(0, 0, 10, 3),
				core.NewRect(0, 3, 10, 7),
			},
		},
		"oversized length clamps to area": {
			[]Constraint{Length(20)},
			core.NewRect(0, 0, 10, 5),
			[]core.Rect{
				core.NewRect(0, 0, 10, 5),
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := New(Vertical, tt.constraints...).Split(tt.area)
			if len(got) != len(tt.want) {
				t.Fatalf("regions = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("region %d = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitHorizontal(t *testing.T) {
	got := New(Horizontal, Length(4), Min(0)).Split(core.NewRect(0, 0, 10, 3))

	want := []core.Rect{
		core.NewRect(0, 0, 4, 3),
		core.NewRect(4, 0, 6, 3),
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("region %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSplitCoversInnerAreaExactly(t *testing.T) {
	area := core.NewRect(2, 3, 17, 11)
	got := New(Vertical, Percentage(33), Ratio(1, 4), Min(0)).Split(area)

	sum := 0
	for _, r := range got {
		if r.Width != area.Width {
			t.Errorf("region width = %d, want %d", r.Width, area.Width)
		}
		sum += r.Height
	}
	if sum != area.Height {
		t.Errorf("heights sum to %d, want %d", sum, area.Height)
	}
	if got[0].Top() != area.Top() {
		t.Errorf("first region top = %d, want %d", got[0].Top(), area.Top())
	}
}

func TestSplitMargin(t *testing.T) {
	got := New(Vertical, Min(0)).Margin(1).Split(core.NewRect(0, 0, 10, 10))

	if got[0] != core.NewRect(1, 1, 8, 8) {
		t.Errorf("region = %s, want the area inset by 1", got[0])
	}
}

func TestSplitCachesByArea(t *testing.T) {
	l := New(Vertical, Length(1), Min(0))
	area := core.NewRect(0, 0, 10, 10)

	first := l.Split(area)
	second := l.Split(area)

	if &first[0] != &second[0] {
		t.Error("repeated splits of the same area should return the cached slice")
	}

	other := l.Split(core.NewRect(0, 0, 10, 5))
	if other[1].Height != 4 {
		t.Errorf("new area should compute fresh regions, got %s", other[1])
	}
}

func TestConstraintString(t *testing.T) {
	tests := map[Constraint]string{
		Length(3):      "Length(3)",
		Percentage(50): "Percentage(50)",
		Ratio(1, 3):    "Ratio(1, 3)",
		Min(2):         "Min(2)",
		Max(7):         "Max(7)",
	}
	for c, want := range tests {
		if got := c.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
