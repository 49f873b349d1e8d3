package conv

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-roomir/dsp/window"
)

// FadeOut multiplies the last n samples of x in place by the falling half
// of a Hann window, ending at zero. n is clamped to len(x).
func FadeOut(x []float64, n int) {
	n = min(n, len(x))
	if n <= 0 {
		return
	}

	vecmath.MulBlockInPlace(x[len(x)-n:], window.Falling(window.TypeHann, n))
}
