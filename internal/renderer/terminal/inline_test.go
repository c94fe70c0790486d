package terminal

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dshills/termframe/internal/renderer/backend"
	"github.com/dshills/termframe/internal/renderer/buffer"
	"github.com/dshills/termframe/internal/renderer/core"
)

func newInlineTerminal(t *testing.T, tb *backend.TestBackend, height int) *Terminal {
	t.Helper()
	term, err := NewWithOptions(tb, Options{Viewport: Inline(height)})
	if err != nil {
		t.Fatalf("new inline terminal: %v", err)
	}
	return term
}

func TestInlineViewportAtCursorRow(t *testing.T) {
	tb := backend.NewTestBackend(80, 24)
	tb.SetCursorPosition(core.Position{X: 0, Y: 20})

	term := newInlineTerminal(t, tb, 3)

	if got := term.ViewportArea(); got != core.NewRect(0, 20, 80, 3) {
		t.Errorf("viewport = %s, want 80x3 at row 20", got)
	}
	if len(tb.Scrollback()) != 0 {
		t.Errorf("placing the viewport should not scroll, scrollback = %d rows", len(tb.Scrollback()))
	}
}

func TestInlineViewportNearBottomScrolls(t *testing.T) {
	tb := backend.NewTestBackend(80, 24)
	tb.SetCursorPosition(core.Position{X: 0, Y: 23})

	term := newInlineTerminal(t, tb, 3)

	// Two lines scroll off so the viewport fits below the cursor row.
	if len(tb.Scrollback()) != 2 {
		t.Errorf("scrollback = %d rows, want 2", len(tb.Scrollback()))
	}
	if got := term.ViewportArea(); got != core.NewRect(0, 21, 80, 3) {
		t.Errorf("viewport = %s, want 80x3 at row 21", got)
	}
}

func TestInlineViewportTallerThanScreen(t *testing.T) {
	tb := backend.NewTestBackend(40, 5)

	term := newInlineTerminal(t, tb, 8)

	if got := term.ViewportArea().Height; got != 5 {
		t.Errorf("viewport height = %d, want clamped to the screen", got)
	}
	if got := term.ViewportArea().Top(); got != 0 {
		t.Errorf("viewport top = %d, want 0", got)
	}
}

func TestInlineDrawRendersAtViewportRows(t *testing.T) {
	tb := backend.NewTestBackend(20, 10)
	tb.SetCursorPosition(core.Position{X: 0, Y: 4})

	term := newInlineTerminal(t, tb, 2)

	err := term.Draw(func(f *Frame) {
		area := f.Area()
		f.Buffer().SetString(area.Left(), area.Top(), "status", core.DefaultStyle())
		f.Buffer().SetString(area.Left(), area.Top()+1, "detail", core.DefaultStyle())
	})
	if err != nil {
		t.Fatalf("draw: %v", err)
	}

	if got := strings.TrimRight(tb.Row(4), " "); got != "status" {
		t.Errorf("row 4 = %q", got)
	}
	if got := strings.TrimRight(tb.Row(5), " "); got != "detail" {
		t.Errorf("row 5 = %q", got)
	}
}

func TestInsertBeforeThatFits(t *testing.T) {
	tb := backend.NewTestBackend(10, 6)
	term := newInlineTerminal(t, tb, 2)

	err := term.InsertBefore(1, func(buf *buffer.Buffer) {
		buf.SetString(0, 0, "hello", core.DefaultStyle())
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if got := strings.TrimRight(tb.Row(0), " "); got != "hello" {
		t.Errorf("row 0 = %q, want the inserted line", got)
	}
	if got := term.ViewportArea().Top(); got != 1 {
		t.Errorf("viewport top = %d, want 1", got)
	}
	if len(tb.Scrollback()) != 0 {
		t.Errorf("nothing should scroll, scrollback = %d rows", len(tb.Scrollback()))
	}
}

func TestInsertBeforeTallerThanScreen(t *testing.T) {
	tb := backend.NewTestBackend(10, 6)
	term := newInlineTerminal(t, tb, 2)

	err := term.InsertBefore(10, func(buf *buffer.Buffer) {
		for i := 0; i < 10; i++ {
			buf.SetString(0, i, fmt.Sprintf("line %d", i+1), core.DefaultStyle())
		}
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	// The first six lines scroll off the top, in order.
	if len(tb.Scrollback()) != 6 {
		t.Fatalf("scrollback = %d rows, want 6", len(tb.Scrollback()))
	}
	for i := 0; i < 6; i++ {
		want := fmt.Sprintf("line %d", i+1)
		if got := strings.TrimRight(tb.ScrollbackRow(i), " "); got != want {
			t.Errorf("scrollback row %d = %q, want %q", i, got, want)
		}
	}

	// The last four fill the screen above the repositioned viewport.
	for i := 0; i < 4; i++ {
		want := fmt.Sprintf("line %d", i+7)
		if got := strings.TrimRight(tb.Row(i), " "); got != want {
			t.Errorf("row %d = %q, want %q", i, got, want)
		}
	}
	if got := term.ViewportArea(); got != core.NewRect(0, 4, 10, 2) {
		t.Errorf("viewport = %s, want 10x2 at row 4", got)
	}
}

func TestInsertBeforeRepaintsViewportAfterward(t *testing.T) {
	tb := backend.NewTestBackend(10, 6)
	term := newInlineTerminal(t, tb, 2)

	render := func(f *Frame) {
		f.Buffer().SetString(f.Area().Left(), f.Area().Top(), "status", core.DefaultStyle())
	}
	if err := term.Draw(render); err != nil {
		t.Fatalf("draw: %v", err)
	}

	if err := term.InsertBefore(2, func(buf *buffer.Buffer) {
		buf.SetString(0, 0, "log a", core.DefaultStyle())
		buf.SetString(0, 1, "log b", core.DefaultStyle())
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := term.Draw(render); err != nil {
		t.Fatalf("redraw: %v", err)
	}

	if got := strings.TrimRight(tb.Row(0), " "); got != "log a" {
		t.Errorf("row 0 = %q", got)
	}
	if got := strings.TrimRight(tb.Row(1), " "); got != "log b" {
		t.Errorf("row 1 = %q", got)
	}
	if got := strings.TrimRight(tb.Row(2), " "); got != "status" {
		t.Errorf("row 2 = %q, want the viewport content below the insert", got)
	}
}

func TestInsertBeforeIgnoredOutsideInline(t *testing.T) {
	tb := backend.NewTestBackend(10, 6)
	term, err := New(tb)
	if err != nil {
		t.Fatalf("new terminal: %v", err)
	}

	called := false
	if err := term.InsertBefore(2, func(buf *buffer.Buffer) { called = true }); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if called {
		t.Error("fullscreen terminals should not run the insert callback")
	}
	if tb.DrawCalls() != 0 {
		t.Errorf("draw calls = %d, want 0", tb.DrawCalls())
	}
}
