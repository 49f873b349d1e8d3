// Command roomir renders 2D room impulse responses by acoustic ray tracing.
//
// Usage:
//
//	roomir render [flags] <scene.json>
//	roomir trace [flags] <scene.json>
//	roomir convolve [flags] <dry.wav> <ir.wav> <out.wav>
//	roomir analyze <ir.wav> ...
//
// Examples:
//
//	roomir render room.json --samples 4096 --output out/ir_#.wav
//	roomir trace room.json --angle 30 --max-bounces 4 > rays.json
//	roomir convolve guitar.wav out/ir_0.wav wet.wav --mix 0.4
//	roomir analyze out/ir_*.wav
//
// Flag defaults can be supplied as JSON with --config, or from
// ~/.config/roomir.json, keyed by flag name.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

type cli struct {
	Config   kong.ConfigFlag `help:"JSON file with flag defaults."`
	LogLevel slog.Level      `name:"log-level" default:"info" help:"Minimum log level (debug, info, warn, error)."`

	Render   renderCmd   `cmd:"" help:"Render one impulse response per microphone."`
	Trace    traceCmd    `cmd:"" help:"Trace a single recorded ray and print it as JSON."`
	Convolve convolveCmd `cmd:"" help:"Apply an impulse response to a dry recording."`
	Analyze  analyzeCmd  `cmd:"" help:"Print room acoustic metrics of impulse responses."`
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("roomir"),
		kong.Description("2D acoustic ray tracer and impulse response renderer."),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, "~/.config/roomir.json"),
		kong.BindTo(os.Stdout, (*io.Writer)(nil)),
	)

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel}))

	if err := ctx.Run(log); err != nil {
		log.Error("command failed", "command", ctx.Command(), "error", err)
		os.Exit(1)
	}
}
