package widget

import (
	"github.com/dshills/termframe/internal/renderer/buffer"
	"github.com/dshills/termframe/internal/renderer/core"
)

// BarSet holds the glyphs used to draw fractional bar heights, from a
// full block down to an empty cell in eighths.
type BarSet struct {
	Full          string
	SevenEighths  string
	ThreeQuarters string
	FiveEighths   string
	Half          string
	ThreeEighths  string
	OneQuarter    string
	OneEighth     string
	Empty         string
}

// NineLevels uses the Unicode lower-block glyphs for eighth-cell
// resolution.
var NineLevels = BarSet{
	Full:          "█",
	SevenEighths:  "▇",
	ThreeQuarters: "▆",
	FiveEighths:   "▅",
	Half:          "▄",
	ThreeEighths:  "▃",
	OneQuarter:    "▂",
	OneEighth:     "▁",
	Empty:         " ",
}

// ThreeLevels draws with half-cell resolution only, for terminals whose
// fonts render the eighth blocks unevenly.
var ThreeLevels = BarSet{
	Full:          "█",
	SevenEighths:  "█",
	ThreeQuarters: "█",
	FiveEighths:   "▄",
	Half:          "▄",
	ThreeEighths:  "▄",
	OneQuarter:    " ",
	OneEighth:     " ",
	Empty:         " ",
}

// RenderDirection selects which side of the area the first data point
// lands on.
type RenderDirection int

const (
	// LeftToRight places data[0] in the leftmost column.
	LeftToRight RenderDirection = iota
	// RightToLeft places data[0] in the rightmost column, so the newest
	// sample of a rolling series hugs the right edge.
	RightToLeft
)

// Sparkline renders a data series as a row (or several rows) of bars
// with eighth-cell vertical resolution.
type Sparkline struct {
	style     core.Style
	data      []uint64
	max       uint64
	hasMax    bool
	barSet    BarSet
	direction RenderDirection
}

// NewSparkline returns a sparkline with the nine-level bar set and no
// data.
func NewSparkline() *Sparkline {
	return &Sparkline{style: core.DefaultStyle(), barSet: NineLevels}
}

// Data sets the series to display. Samples beyond the area width are
// ignored.
func (s *Sparkline) Data(data []uint64) *Sparkline {
	s.data = data
	return s
}

// Max pins the value that maps to a full-height bar. Without it the
// maximum of the data set is used.
func (s *Sparkline) Max(max uint64) *Sparkline {
	s.max = max
	s.hasMax = true
	return s
}

// Style sets the style applied to every bar cell.
func (s *Sparkline) Style(style core.Style) *Sparkline {
	s.style = style
	return s
}

// BarSet replaces the glyph set used for the bars.
func (s *Sparkline) BarSet(set BarSet) *Sparkline {
	s.barSet = set
	return s
}

// Direction sets the render direction.
func (s *Sparkline) Direction(d RenderDirection) *Sparkline {
	s.direction = d
	return s
}

// Render draws the sparkline into the area. A zero maximum draws every
// bar as empty rather than dividing by zero.
func (s *Sparkline) Render(area core.Rect, buf *buffer.Buffer) {
	if area.Height < 1 {
		return
	}

	max := s.max
	if !s.hasMax {
		max = 1
		for _, v := range s.data {
			if v > max {
				max = v
			}
		}
	}

	count := min(area.Width, len(s.data))
	scaled := make([]uint64, count)
	for i := 0; i < count; i++ {
		if max > 0 {
			scaled[i] = s.data[i] * uint64(area.Height) * 8 / max
		}
	}

	for j := area.Height - 1; j >= 0; j-- {
		for i, d := range scaled {
			var symbol string
			switch d {
			case 0:
				symbol = s.barSet.Empty
			case 1:
				symbol = s.barSet.OneEighth
			case 2:
				symbol = s.barSet.OneQuarter
			case 3:
				symbol = s.barSet.ThreeEighths
			case 4:
				symbol = s.barSet.Half
			case 5:
				symbol = s.barSet.FiveEighths
			case 6:
				symbol = s.barSet.ThreeQuarters
			case 7:
				symbol = s.barSet.SevenEighths
			default:
				symbol = s.barSet.Full
			}

			var x int
			switch s.direction {
			case RightToLeft:
				x = area.Right() - i - 1
			default:
				x = area.Left() + i
			}
			buf.SetCell(x, area.Top()+j, core.NewStyledCell(symbol, s.style))

			if d > 8 {
				scaled[i] = d - 8
			} else {
				scaled[i] = 0
			}
		}
	}
}
