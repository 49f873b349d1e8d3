package render

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cwbudde/algo-roomir/acoustic/tracer"
	"github.com/cwbudde/algo-roomir/dsp/dynamics"
)

func TestDefaultSettings(t *testing.T) {
	want := Settings{
		MaxBounces:          512,
		Samples:             1024,
		SpeedOfSound:        343,
		CompressorGain:      1,
		CompressorThreshold: 0.8,
		CompressorRelease:   2,
		SampleRate:          48000,
		OutputPath:          "impulse_response_#.wav",
		Deposit:             "signed",
		Attenuation:         "none",
	}
	if diff := cmp.Diff(want, DefaultSettings()); diff != "" {
		t.Fatalf("DefaultSettings() mismatch (-want +got):\n%s", diff)
	}
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"zero samples", func(s *Settings) { s.Samples = 0 }},
		{"zero sample rate", func(s *Settings) { s.SampleRate = 0 }},
		{"negative bounces", func(s *Settings) { s.MaxBounces = -1 }},
		{"zero speed", func(s *Settings) { s.SpeedOfSound = 0 }},
		{"negative workers", func(s *Settings) { s.Workers = -2 }},
		{"nan gain", func(s *Settings) { s.CompressorGain = math.NaN() }},
		{"negative threshold", func(s *Settings) { s.CompressorThreshold = -1 }},
		{"negative release", func(s *Settings) { s.CompressorRelease = -1 }},
		{"empty path", func(s *Settings) { s.OutputPath = "" }},
		{"unknown deposit", func(s *Settings) { s.Deposit = "tri" }},
		{"unknown attenuation", func(s *Settings) { s.Attenuation = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			if err := s.Validate(); !errors.Is(err, ErrInvalidSettings) {
				t.Fatalf("Validate() error = %v, want %v", err, ErrInvalidSettings)
			}
		})
	}
}

func TestSettingsConversions(t *testing.T) {
	s := DefaultSettings()
	s.MaxBounces = 7
	s.SpeedOfSound = 300
	s.Attenuation = "physical"

	cfg, err := s.TracerConfig()
	if err != nil {
		t.Fatalf("TracerConfig() error = %v", err)
	}
	if cfg.MaxBounces != 7 || cfg.SpeedOfSound != 300 || cfg.Attenuation != tracer.AttenuationPhysical || cfg.RecordRays {
		t.Fatalf("TracerConfig() = %+v", cfg)
	}

	want := dynamics.Compressor{SampleRate: 48000, Threshold: 0.8, Release: 2}
	if got := s.Compressor(); got != want {
		t.Fatalf("Compressor() = %+v, want %+v", got, want)
	}
}

func TestOutputPathFor(t *testing.T) {
	tests := []struct {
		path  string
		index int
		want  string
	}{
		{"impulse_response_#.wav", 3, "impulse_response_3.wav"},
		{"out/#/ir_#.wav", 12, "out/12/ir_12.wav"},
		{"fixed.wav", 1, "fixed.wav"},
	}
	for _, tt := range tests {
		s := Settings{OutputPath: tt.path}
		if got := s.OutputPathFor(tt.index); got != tt.want {
			t.Errorf("OutputPathFor(%q, %d) = %q, want %q", tt.path, tt.index, got, tt.want)
		}
	}
}
