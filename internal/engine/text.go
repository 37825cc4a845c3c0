package engine

import (
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// FontSize is the size text shapes are laid out and drawn at.
const FontSize = 18.0

// CaretBlinkInterval is how long the caret stays in each blink phase.
const CaretBlinkInterval = 500 * time.Millisecond

// TextMeasurer reports the horizontal advance of a string. text.Face
// satisfies it.
type TextMeasurer interface {
	Advance(s string) float64
}

// FixedAdvance measures every rune as the same width.
type FixedAdvance float64

func (f FixedAdvance) Advance(s string) float64 {
	return float64(f) * float64(utf8.RuneCountInString(s))
}

var (
	defaultFaceOnce sync.Once
	defaultFace     text.Face
)

// DefaultFace returns the embedded Go Regular face at FontSize. It is
// loaded once and shared.
func DefaultFace() text.Face {
	defaultFaceOnce.Do(func() {
		source, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			slog.Error("load default font", "error", err)
			return
		}
		defaultFace = source.Face(FontSize)
	})
	return defaultFace
}

// DefaultMeasurer returns the measurer used when none is supplied.
func DefaultMeasurer() TextMeasurer {
	if f := DefaultFace(); f != nil {
		return f
	}
	return FixedAdvance(FontSize / 2)
}

func measure(m TextMeasurer, s string) float64 {
	if s == "" {
		return 0
	}
	if m == nil {
		m = DefaultMeasurer()
	}
	return m.Advance(s)
}

// CaretIndexAt returns the rune index a click at clickX lands on for text
// starting at xStart. A click past the midpoint of a character places the
// caret after it.
func CaretIndexAt(m TextMeasurer, s string, xStart, clickX float64) int {
	target := max(0, clickX-xStart)
	acc := 0.0
	i := 0
	for _, r := range s {
		w := measure(m, string(r))
		if acc+w/2 >= target {
			return i
		}
		acc += w
		i++
	}
	return i
}

// CaretVisible reports whether the caret is in its visible blink phase
// after elapsed time in the editing session.
func CaretVisible(elapsed time.Duration) bool {
	if elapsed < 0 {
		return true
	}
	return (elapsed/CaretBlinkInterval)%2 == 0
}

// splitAtRune splits s at rune index i, clamped to [0, len].
func splitAtRune(s string, i int) (string, string) {
	if i <= 0 {
		return "", s
	}
	n := 0
	for byteIdx := range s {
		if n == i {
			return s[:byteIdx], s[byteIdx:]
		}
		n++
	}
	return s, ""
}
