package widget

import (
	"fmt"
	"testing"

	"github.com/dshills/termframe/internal/renderer/buffer"
	"github.com/dshills/termframe/internal/renderer/core"
)

func TestMaskedValue(t *testing.T) {
	tests := map[string]struct {
		input string
		mask  rune
		want  string
	}{
		"ascii":     {"12345", 'x', "xxxxx"},
		"empty":     {"", '*', ""},
		"multibyte": {"héllo", '*', "*****"},
		"star mask": {"secret", '•', "••••••"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m := NewMasked(tt.input, tt.mask)
			if got := m.Value(); got != tt.want {
				t.Errorf("Value() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMaskedStringHidesContents(t *testing.T) {
	m := NewMasked("12345", 'x')

	if got := fmt.Sprintf("%v", m); got != "xxxxx" {
		t.Errorf("formatted value = %q, the raw string must not leak", got)
	}
	if m.Raw() != "12345" {
		t.Errorf("Raw() = %q", m.Raw())
	}
	if m.MaskChar() != 'x' {
		t.Errorf("MaskChar() = %q", m.MaskChar())
	}
}

func TestMaskedRender(t *testing.T) {
	m := NewMasked("hunter2", '*')
	buf := buffer.Empty(core.NewRect(0, 0, 10, 1))

	m.Render(core.NewRect(0, 0, 10, 1), buf)

	if got := rowString(buf, 0); got != "*******   " {
		t.Errorf("row = %q", got)
	}
}

func TestMaskedRenderTruncates(t *testing.T) {
	m := NewMasked("longpassword", '*')
	buf := buffer.Empty(core.NewRect(0, 0, 5, 1))

	m.Render(core.NewRect(0, 0, 5, 1), buf)

	if got := rowString(buf, 0); got != "*****" {
		t.Errorf("row = %q, want the mask clipped to the area", got)
	}
}
