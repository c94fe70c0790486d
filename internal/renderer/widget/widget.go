// Package widget provides small self-contained components that render
// into a buffer region. Widgets are stateless value types configured with
// a fluent builder; drawing them twice with the same inputs produces the
// same cells.
package widget

import (
	"github.com/dshills/termframe/internal/renderer/buffer"
	"github.com/dshills/termframe/internal/renderer/core"
)

// Widget renders itself into the given area of a buffer. Implementations
// must not write outside the area.
type Widget interface {
	Render(area core.Rect, buf *buffer.Buffer)
}
