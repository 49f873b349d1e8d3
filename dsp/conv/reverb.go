package conv

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Reverb applies an impulse response to dry audio.
type Reverb struct {
	// Mix is the wet share of the output in [0, 1]. 0 returns the dry
	// signal padded to the wet length.
	Mix float64
	// Peak, when positive, normalizes the output to this peak magnitude.
	Peak float64
	// FadeOut, when positive, fades the last FadeOut samples of the impulse
	// response to zero before convolving. The caller's slice is not
	// modified.
	FadeOut int
}

// Apply returns (1-Mix)*dry + Mix*(dry*ir), of length
// len(dry) + len(ir) - 1.
func (r Reverb) Apply(dry, ir []float64) ([]float64, error) {
	if r.Mix < 0 || r.Mix > 1 {
		return nil, fmt.Errorf("%w: %f", ErrInvalidMix, r.Mix)
	}

	if r.FadeOut > 0 {
		ir = append([]float64(nil), ir...)
		FadeOut(ir, r.FadeOut)
	}

	out, err := Convolve(dry, ir)
	if err != nil {
		return nil, err
	}

	vecmath.ScaleBlockInPlace(out, r.Mix)

	scaledDry := make([]float64, len(dry))
	vecmath.ScaleBlock(scaledDry, dry, 1-r.Mix)
	vecmath.AddBlockInPlace(out[:len(dry)], scaledDry)

	if r.Peak > 0 {
		Normalize(out, r.Peak)
	}
	return out, nil
}
