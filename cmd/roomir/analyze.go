package main

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/cwbudde/algo-roomir/internal/wavio"
	"github.com/cwbudde/algo-roomir/measure/ir"
)

type analyzeCmd struct {
	Files []string `arg:"" type:"existingfile" help:"Impulse responses (WAV)."`
}

func (c *analyzeCmd) Run(log *slog.Logger, stdout io.Writer) error {
	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "File\tSamples\tPeak\tRT60 [s]\tEDT [s]\tC50 [dB]\tC80 [dB]\tD50\tTs [ms]\n")
	fmt.Fprintf(tw, "----\t-------\t----\t--------\t-------\t--------\t--------\t---\t-------\n")

	failed := 0
	for _, path := range c.Files {
		samples, rate, err := wavio.ReadFile(path)
		if err != nil {
			log.Error("reading impulse response", "path", path, "error", err)
			failed++
			continue
		}

		a, err := ir.NewAnalyzer(float64(rate))
		if err != nil {
			log.Error("analyzing impulse response", "path", path, "error", err)
			failed++
			continue
		}
		m, err := a.Analyze(samples)
		if err != nil {
			log.Error("analyzing impulse response", "path", path, "error", err)
			failed++
			continue
		}

		fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.3f\t%.3f\t%.2f\t%.2f\t%.3f\t%.1f\n",
			path, len(samples), m.Peak, m.RT60, m.EDT, m.C50, m.C80, m.D50, m.CenterTime*1000)
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(c.Files))
	}
	return nil
}
