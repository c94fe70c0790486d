// Package renderer is the umbrella for the cell-grid rendering pipeline.
//
// The pipeline is split into focused packages:
//   - core: geometry, colors, styles and the Cell type shared by everything
//   - buffer: the double-buffered cell grid and the minimal diff between frames
//   - backend: output targets (raw ANSI, tcell, an in-memory test backend)
//   - terminal: the draw lifecycle, viewport placement and cursor handling
//   - layout: constraint-based splitting of areas into regions
//   - widget: self-contained components that render into a buffer region
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│       Terminal (draw lifecycle)         │
//	├─────────────────────────────────────────┤
//	│  Buffer x2 │ Diff │ Layout │ Widgets    │
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│  ANSI │ tcell │ TestBackend             │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	b, _ := backend.NewANSI(os.Stdout)
//	term, _ := terminal.New(b)
//	term.Draw(func(f *terminal.Frame) {
//		f.Buffer().SetString(0, 0, "hello", core.DefaultStyle())
//	})
package renderer
