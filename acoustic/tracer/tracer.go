package tracer

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/cwbudde/algo-roomir/acoustic/geom"
	"github.com/cwbudde/algo-roomir/acoustic/space"
)

// Tracer traces rays through a Space.
type Tracer struct {
	space  *space.Space
	config Config
	log    *slog.Logger
}

// Option configures a Tracer.
type Option func(*Tracer)

// WithLogger sets the diagnostics sink. A nil logger discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracer) {
		if l != nil {
			t.log = l
		}
	}
}

// New returns a Tracer over s. The Space must not be modified while the
// Tracer is in use.
func New(s *space.Space, config Config, opts ...Option) (*Tracer, error) {
	if s == nil {
		return nil, ErrNilSpace
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	t := &Tracer{
		space:  s,
		config: config,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t, nil
}

// Config returns the tracer configuration.
func (t *Tracer) Config() Config { return t.config }

// PerformTrace traces a single ray from microphone toward direction and
// collects every path that reaches speaker.
//
// direction must be normalized; with any other length the distances, and
// therefore the arrival times, are wrong. Out-of-range handles panic.
func (t *Tracer) PerformTrace(microphone space.MicrophoneIndex, speaker space.SpeakerIndex, direction geom.Vec2) Recording {
	var started time.Time
	debug := t.log.Enabled(context.Background(), slog.LevelDebug)
	if debug {
		started = time.Now()
	}

	mic := t.space.Microphone(microphone)
	spk := t.space.Speaker(speaker)

	rec := Recording{Termination: Exhausted}
	ray := geom.Ray{Start: mic.Position, Direction: direction}
	reflectance := float32(1)
	offset := t.config.spawnOffset()

	for i := 0; i <= t.config.MaxBounces; i++ {
		if trace, ok := t.traceToSpeaker(ray.Start, spk); ok {
			if t.config.RecordRays {
				rec.Rays = append(rec.Rays, RecordedRay{
					Purpose: PurposeTrace,
					Ray:     trace.ray,
					Hit:     geom.RayHit{Position: spk.Position, RayLength: trace.distance},
				})
			}

			// A microphone placed exactly on the speaker has no arrival time.
			if total := rec.Distance + trace.distance; total > 0 {
				rec.Responses = append(rec.Responses, space.Response{
					Time:     total / t.config.SpeedOfSound,
					Loudness: t.loudness(spk, reflectance, total),
					Bounces:  i,
				})
			}
		}

		hit, ok := t.traceToWalls(ray)
		if !ok {
			rec.Termination = Absorbed
			break
		}

		if t.config.RecordRays {
			rec.Rays = append(rec.Rays, RecordedRay{
				Purpose: PurposeBounce,
				Ray:     ray,
				Hit:     hit.ray,
			})
		}

		wall := t.space.Wall(hit.wall)
		reflected := wall.Reflect(ray.Direction)
		ray = geom.Ray{
			Start:     hit.ray.Position.Add(reflected.Mul(offset)),
			Direction: reflected,
		}
		rec.Distance += hit.ray.RayLength
		rec.Bounces++
		if t.config.Attenuation == AttenuationPhysical {
			reflectance *= t.space.Material(wall.Material).Diffuse
		}
	}

	// Path lengths grow with every bounce, but the spawn offset can reorder
	// arrivals that are a fraction of a millimetre apart.
	slices.SortStableFunc(rec.Responses, func(a, b space.Response) int {
		return cmp.Compare(a.Time, b.Time)
	})

	if debug {
		t.log.Debug("trace finished",
			slog.Int("microphone", int(microphone)),
			slog.Int("speaker", int(speaker)),
			slog.Int("responses", len(rec.Responses)),
			slog.Int("bounces", rec.Bounces),
			slog.String("termination", rec.Termination.String()),
			slog.Duration("elapsed", time.Since(started)),
		)
	}

	return rec
}

func (t *Tracer) loudness(spk space.Speaker, reflectance, distance float32) float32 {
	switch t.config.Attenuation {
	case AttenuationPhysical:
		return spk.Power * reflectance / max(distance, MinAttenuationDistance)
	case AttenuationNone:
		return 1
	default:
		panic(fmt.Sprintf("tracer: unknown attenuation %d", t.config.Attenuation))
	}
}

type wallHit struct {
	ray  geom.RayHit
	wall space.WallIndex
}

// traceToWalls returns the nearest wall hit by ray. On equal distances the
// wall added first wins.
func (t *Tracer) traceToWalls(ray geom.Ray) (wallHit, bool) {
	var (
		closest wallHit
		found   bool
	)
	for i, w := range t.space.Walls() {
		hit, ok := geom.Cast(ray, w.Segment())
		if !ok {
			continue
		}
		if !found || hit.RayLength < closest.ray.RayLength {
			closest = wallHit{ray: hit, wall: space.WallIndex(i)}
			found = true
		}
	}
	return closest, found
}

type speakerTrace struct {
	ray      geom.Ray
	distance float32
}

// traceToSpeaker reports whether the speaker is visible from start, that is
// whether no wall is closer along the line toward it than the speaker itself.
func (t *Tracer) traceToSpeaker(start geom.Vec2, spk space.Speaker) (speakerTrace, bool) {
	toSpeaker := spk.Position.Sub(start)
	distance := toSpeaker.Len()
	if distance == 0 {
		return speakerTrace{ray: geom.Ray{Start: start}}, true
	}

	trace := speakerTrace{
		ray:      geom.Ray{Start: start, Direction: toSpeaker.Mul(1 / distance)},
		distance: distance,
	}
	if hit, ok := t.traceToWalls(trace.ray); ok && hit.ray.RayLength < distance {
		return speakerTrace{}, false
	}
	return trace, true
}
