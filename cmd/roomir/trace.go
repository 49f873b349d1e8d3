package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-roomir/acoustic/geom"
	"github.com/cwbudde/algo-roomir/acoustic/space"
	"github.com/cwbudde/algo-roomir/acoustic/tracer"
)

var errIndexOutOfRange = errors.New("index out of range")

type traceCmd struct {
	Scene string `arg:"" type:"existingfile" help:"Scene description (JSON)."`

	Microphone   int     `default:"0" help:"Microphone index."`
	Speaker      int     `default:"0" help:"Speaker index."`
	Angle        float64 `default:"0" help:"Initial direction in degrees, counterclockwise from +x."`
	MaxBounces   int     `name:"max-bounces" default:"16" help:"Maximal reflections."`
	SpeedOfSound float32 `name:"speed-of-sound" default:"343" help:"Speed of sound in scene units per second."`
	Attenuation  string  `enum:"none,physical" default:"none" help:"Loudness model (none, physical)."`
}

type tracedRay struct {
	Purpose   string    `json:"purpose"`
	Start     geom.Vec2 `json:"start"`
	Direction geom.Vec2 `json:"direction"`
	Hit       geom.Vec2 `json:"hit"`
	Length    float32   `json:"length"`
}

type traceOutput struct {
	Termination string           `json:"termination"`
	Bounces     int              `json:"bounces"`
	Distance    float32          `json:"distance"`
	Responses   []space.Response `json:"responses"`
	Rays        []tracedRay      `json:"rays"`
}

func (c *traceCmd) Run(log *slog.Logger, stdout io.Writer) error {
	s, err := space.Load(c.Scene)
	if err != nil {
		return err
	}
	if c.Microphone < 0 || c.Microphone >= s.NumMicrophones() {
		return fmt.Errorf("microphone %d: %w [0, %d)", c.Microphone, errIndexOutOfRange, s.NumMicrophones())
	}
	if c.Speaker < 0 || c.Speaker >= s.NumSpeakers() {
		return fmt.Errorf("speaker %d: %w [0, %d)", c.Speaker, errIndexOutOfRange, s.NumSpeakers())
	}

	att, err := tracer.ParseAttenuation(c.Attenuation)
	if err != nil {
		return err
	}

	cfg := tracer.DefaultConfig()
	cfg.MaxBounces = c.MaxBounces
	cfg.SpeedOfSound = c.SpeedOfSound
	cfg.Attenuation = att
	cfg.RecordRays = true

	tr, err := tracer.New(s, cfg, tracer.WithLogger(log))
	if err != nil {
		return err
	}

	dir := geom.FromAngle(float32(c.Angle * math.Pi / 180))
	rec := tr.PerformTrace(space.MicrophoneIndex(c.Microphone), space.SpeakerIndex(c.Speaker), dir)

	out := traceOutput{
		Termination: rec.Termination.String(),
		Bounces:     rec.Bounces,
		Distance:    rec.Distance,
		Responses:   rec.Responses,
		Rays:        make([]tracedRay, len(rec.Rays)),
	}
	bounces := 0
	for i, r := range rec.Rays {
		if r.Purpose.IsBounce() {
			bounces++
		}
		out.Rays[i] = tracedRay{
			Purpose:   r.Purpose.String(),
			Start:     r.Ray.Start,
			Direction: r.Ray.Direction,
			Hit:       r.Hit.Position,
			Length:    r.Hit.RayLength,
		}
	}

	log.Debug("trace recorded", "rays", len(rec.Rays), "bounce_rays", bounces, "responses", len(rec.Responses))

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
