package render

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-roomir/acoustic/tracer"
	"github.com/cwbudde/algo-roomir/dsp/dynamics"
	"github.com/cwbudde/algo-roomir/dsp/impulse"
)

// PathPlaceholder in Settings.OutputPath is replaced by the microphone
// index.
const PathPlaceholder = "#"

// ErrInvalidSettings wraps every validation failure of Settings.
var ErrInvalidSettings = errors.New("render: invalid settings")

// Settings configures a render.
type Settings struct {
	MaxBounces int `json:"max_bounces"`
	// Samples is the number of rays traced per microphone and speaker.
	Samples int `json:"samples"`

	SpeedOfSound float32 `json:"speed_of_sound"`

	CompressorGain      float64 `json:"compressor_gain"`
	CompressorThreshold float64 `json:"compressor_threshold"`
	CompressorRelease   float64 `json:"compressor_release"`

	SampleRate int    `json:"sample_rate"`
	OutputPath string `json:"output_path"`

	// Workers bounds the number of concurrent traces. 0 uses GOMAXPROCS.
	Workers int    `json:"workers"`
	Seed    uint64 `json:"seed"`

	Deposit     string `json:"deposit"`
	Attenuation string `json:"attenuation"`
}

// DefaultSettings returns the default render settings.
func DefaultSettings() Settings {
	return Settings{
		MaxBounces:          512,
		Samples:             1024,
		SpeedOfSound:        tracer.SpeedOfSoundInAir,
		CompressorGain:      1.0,
		CompressorThreshold: dynamics.DefaultThreshold,
		CompressorRelease:   dynamics.DefaultRelease,
		SampleRate:          48000,
		OutputPath:          "impulse_response_#.wav",
		Deposit:             impulse.DepositSigned.String(),
		Attenuation:         tracer.AttenuationNone.String(),
	}
}

// Validate checks every field.
func (s Settings) Validate() error {
	if _, err := s.TracerConfig(); err != nil {
		return err
	}
	if err := s.Compressor().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	if _, err := impulse.ParseDeposit(s.Deposit); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	switch {
	case s.Samples <= 0:
		return fmt.Errorf("%w: samples must be positive, got %d", ErrInvalidSettings, s.Samples)
	case s.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidSettings, s.SampleRate)
	case s.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidSettings, s.Workers)
	case s.CompressorGain < 0 || math.IsNaN(s.CompressorGain) || math.IsInf(s.CompressorGain, 0):
		return fmt.Errorf("%w: gain must be finite and not negative, got %f", ErrInvalidSettings, s.CompressorGain)
	case s.OutputPath == "":
		return fmt.Errorf("%w: empty output path", ErrInvalidSettings)
	}
	return nil
}

// TracerConfig returns the tracer configuration these settings imply.
func (s Settings) TracerConfig() (tracer.Config, error) {
	att, err := tracer.ParseAttenuation(s.Attenuation)
	if err != nil {
		return tracer.Config{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	cfg := tracer.DefaultConfig()
	cfg.SpeedOfSound = s.SpeedOfSound
	cfg.MaxBounces = s.MaxBounces
	cfg.Attenuation = att
	if err := cfg.Validate(); err != nil {
		return tracer.Config{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return cfg, nil
}

// Compressor returns the limiter configuration these settings imply.
func (s Settings) Compressor() dynamics.Compressor {
	return dynamics.Compressor{
		SampleRate: float64(s.SampleRate),
		Threshold:  s.CompressorThreshold,
		Release:    s.CompressorRelease,
	}
}

// OutputPathFor returns OutputPath with every PathPlaceholder replaced by
// index.
func (s Settings) OutputPathFor(index int) string {
	return strings.ReplaceAll(s.OutputPath, PathPlaceholder, strconv.Itoa(index))
}
