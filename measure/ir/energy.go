package ir

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// floorDB is reported for Schroeder samples with no remaining energy.
const floorDB = -200

// profile is the squared response with its running sum.
type profile struct {
	energy []float64
	// cumulative[i] is the energy of samples [0, i).
	cumulative []float64
}

func newProfile(ir []float64) profile {
	p := profile{
		energy:     make([]float64, len(ir)),
		cumulative: make([]float64, len(ir)+1),
	}
	vecmath.MulBlock(p.energy, ir, ir)

	for i, e := range p.energy {
		p.cumulative[i+1] = p.cumulative[i] + e
	}
	return p
}

func (p profile) total() float64 { return p.cumulative[len(p.energy)] }

// before returns the energy of the first n samples, clamped to the
// response length.
func (p profile) before(n int) float64 {
	return p.cumulative[min(max(n, 0), len(p.energy))]
}

// schroeder returns 10*log10(E(t..end) / E(0..end)) for every sample.
func (p profile) schroeder() []float64 {
	out := make([]float64, len(p.energy))

	// Summing backward keeps the late tail accurate where prefix differences
	// would cancel.
	var remaining float64
	for i := len(p.energy) - 1; i >= 0; i-- {
		remaining += p.energy[i]
		out[i] = remaining
	}

	total := out[0]
	if total <= 0 {
		return out
	}

	for i, v := range out {
		if v <= 0 {
			out[i] = floorDB
			continue
		}
		out[i] = 10 * math.Log10(v/total)
	}
	return out
}

func (p profile) definition(boundary int) float64 {
	if boundary <= 0 {
		return 0
	}
	if boundary >= len(p.energy) {
		return 1
	}

	total := p.total()
	if total <= 0 {
		return 0
	}
	return p.before(boundary) / total
}

func (p profile) clarity(boundary int) float64 {
	if boundary <= 0 {
		return math.Inf(-1)
	}
	if boundary >= len(p.energy) {
		return math.Inf(1)
	}

	early := p.before(boundary)
	late := p.total() - early
	switch {
	case late <= 0:
		return math.Inf(1)
	case early <= 0:
		return math.Inf(-1)
	}
	return 10 * math.Log10(early/late)
}

// centroid returns the energy-weighted mean sample index.
func (p profile) centroid() float64 {
	var weighted float64
	for i, e := range p.energy {
		weighted += float64(i) * e
	}

	total := p.total()
	if total <= 0 {
		return 0
	}
	return weighted / total
}
