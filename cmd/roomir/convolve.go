package main

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-roomir/dsp/conv"
	"github.com/cwbudde/algo-roomir/internal/wavio"
)

type convolveCmd struct {
	Dry    string `arg:"" type:"existingfile" help:"Dry recording (WAV)."`
	IR     string `arg:"" name:"ir" type:"existingfile" help:"Impulse response (WAV)."`
	Output string `arg:"" help:"Output path (32-bit float WAV)."`

	Mix     float64 `default:"1.0" help:"Wet share of the output in [0, 1]."`
	Peak    float64 `default:"0.95" help:"Normalize the output to this peak; 0 disables."`
	FadeOut int     `name:"fade-out" default:"0" help:"Fade the last N impulse response samples to zero."`
}

func (c *convolveCmd) Run(log *slog.Logger) error {
	dry, dryRate, err := wavio.ReadFile(c.Dry)
	if err != nil {
		return err
	}
	ir, irRate, err := wavio.ReadFile(c.IR)
	if err != nil {
		return err
	}
	if dryRate != irRate {
		return fmt.Errorf("sample rates differ: %s is %d Hz, %s is %d Hz", c.Dry, dryRate, c.IR, irRate)
	}

	log.Debug("convolving", "dry", len(dry), "ir", len(ir), "rate", dryRate)

	out, err := conv.Reverb{Mix: c.Mix, Peak: c.Peak, FadeOut: c.FadeOut}.Apply(dry, ir)
	if err != nil {
		return err
	}

	if err := wavio.WriteFile(c.Output, out, dryRate); err != nil {
		return err
	}
	log.Info("wrote convolved audio", "path", c.Output, "samples", len(out))
	return nil
}
