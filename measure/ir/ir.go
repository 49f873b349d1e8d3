package ir

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Errors returned by the analyzer.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrInvalidTime       = errors.New("ir: time must be positive")
	ErrNoDecay           = errors.New("ir: insufficient decay for RT calculation")
)

// onsetRatio is the fraction of the peak magnitude that marks the onset.
const onsetRatio = 0.1

// Metrics holds the analysis of one impulse response.
type Metrics struct {
	RT60       float64 // reverberation time in seconds, T30 or else T20
	EDT        float64 // early decay time in seconds
	T20        float64 // -5 to -25 dB fit, extrapolated to 60 dB
	T30        float64 // -5 to -35 dB fit, extrapolated to 60 dB
	C50        float64 // dB
	C80        float64 // dB
	D50        float64 // ratio in [0, 1]
	D80        float64 // ratio in [0, 1]
	CenterTime float64 // seconds after the peak

	PeakIndex  int     // sample index of the absolute maximum
	Peak       float64 // |h| at PeakIndex
	OnsetIndex int     // first sample reaching 10% of Peak
	Energy     float64 // sum of h²
	Duration   time.Duration
}

// Analyzer computes Metrics at a fixed sample rate.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer returns an Analyzer for sampleRate Hz.
func NewAnalyzer(sampleRate float64) (*Analyzer, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}
	return &Analyzer{SampleRate: sampleRate}, nil
}

func (a *Analyzer) check(ir []float64) error {
	if len(ir) == 0 {
		return ErrEmptyIR
	}
	if !(a.SampleRate > 0) {
		return ErrInvalidSampleRate
	}
	return nil
}

// Analyze computes all metrics. Time-based parameters are measured from
// the peak.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if err := a.check(ir); err != nil {
		return Metrics{}, err
	}

	peakIdx, peak := findPeak(ir)
	whole := newProfile(ir)
	tail := newProfile(ir[peakIdx:])
	decay := tail.schroeder()

	m := Metrics{
		EDT:        fitDecay(decay, 0, -10, a.SampleRate),
		T20:        fitDecay(decay, -5, -25, a.SampleRate),
		T30:        fitDecay(decay, -5, -35, a.SampleRate),
		C50:        tail.clarity(a.samplesAt(50)),
		C80:        tail.clarity(a.samplesAt(80)),
		D50:        tail.definition(a.samplesAt(50)),
		D80:        tail.definition(a.samplesAt(80)),
		CenterTime: tail.centroid() / a.SampleRate,
		PeakIndex:  peakIdx,
		Peak:       peak,
		OnsetIndex: findOnset(ir, peak*onsetRatio),
		Energy:     whole.total(),
		Duration:   time.Duration(float64(len(ir)) / a.SampleRate * float64(time.Second)),
	}

	m.RT60 = m.T30
	if m.RT60 == 0 {
		m.RT60 = m.T20
	}

	return m, nil
}

// SchroederIntegral returns the normalized backward energy integral of ir
// in dB. Samples with no remaining energy are floored at -200 dB.
func (a *Analyzer) SchroederIntegral(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}
	return newProfile(ir).schroeder(), nil
}

// RT60 returns the reverberation time from T30, or T20 when the response
// does not decay by 35 dB.
func (a *Analyzer) RT60(ir []float64) (float64, error) {
	if err := a.check(ir); err != nil {
		return 0, err
	}

	decay := newProfile(ir).schroeder()
	if rt := fitDecay(decay, -5, -35, a.SampleRate); rt > 0 {
		return rt, nil
	}
	if rt := fitDecay(decay, -5, -25, a.SampleRate); rt > 0 {
		return rt, nil
	}
	return 0, ErrNoDecay
}

// Definition returns the share of energy arriving within ms milliseconds.
func (a *Analyzer) Definition(ir []float64, ms float64) (float64, error) {
	if err := a.checkTime(ir, ms); err != nil {
		return 0, err
	}
	return newProfile(ir).definition(a.samplesAt(ms)), nil
}

// Clarity returns the early-to-late energy ratio at ms milliseconds in dB.
func (a *Analyzer) Clarity(ir []float64, ms float64) (float64, error) {
	if err := a.checkTime(ir, ms); err != nil {
		return 0, err
	}
	return newProfile(ir).clarity(a.samplesAt(ms)), nil
}

// CenterTime returns the energy centroid in seconds.
func (a *Analyzer) CenterTime(ir []float64) (float64, error) {
	if err := a.check(ir); err != nil {
		return 0, err
	}
	return newProfile(ir).centroid() / a.SampleRate, nil
}

func (a *Analyzer) checkTime(ir []float64, ms float64) error {
	if err := a.check(ir); err != nil {
		return err
	}
	if !(ms > 0) {
		return fmt.Errorf("%w: %f ms", ErrInvalidTime, ms)
	}
	return nil
}

func (a *Analyzer) samplesAt(ms float64) int {
	return int(math.Round(ms * 0.001 * a.SampleRate))
}

// findPeak returns the first index of the absolute maximum and its
// magnitude.
func findPeak(ir []float64) (int, float64) {
	idx, peak := 0, 0.0
	for i, v := range ir {
		if av := math.Abs(v); av > peak {
			idx, peak = i, av
		}
	}
	return idx, peak
}

func findOnset(ir []float64, threshold float64) int {
	for i, v := range ir {
		if math.Abs(v) >= threshold {
			return i
		}
	}
	return 0
}
