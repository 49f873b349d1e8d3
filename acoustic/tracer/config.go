package tracer

import (
	"errors"
	"fmt"
	"math"
)

const (
	// SpeedOfSoundInAir is the speed of sound in dry air at 20 °C, in m/s.
	SpeedOfSoundInAir float32 = 343.0

	// DefaultSpawnOffset is how far a reflected ray is moved along its new
	// direction before being cast again, so it does not re-hit the wall it
	// just left.
	DefaultSpawnOffset float32 = 1e-3

	// MinAttenuationDistance is the distance below which inverse-distance
	// attenuation stops growing.
	MinAttenuationDistance float32 = 1.0
)

// Errors returned by New.
var (
	ErrNilSpace            = errors.New("tracer: space is nil")
	ErrInvalidSpeedOfSound = errors.New("tracer: speed of sound must be positive and finite")
	ErrInvalidMaxBounces   = errors.New("tracer: max bounces must not be negative")
	ErrInvalidSpawnOffset  = errors.New("tracer: spawn offset must be positive and finite")
)

// Attenuation selects how the loudness of a response is computed.
type Attenuation int

const (
	// AttenuationNone gives every response unit loudness. Only the phase
	// (applied downstream from the bounce count) distinguishes arrivals.
	AttenuationNone Attenuation = iota

	// AttenuationPhysical scales by speaker power, by the product of the
	// diffuse coefficients of every wall hit along the path and by the
	// inverse of the travelled distance.
	AttenuationPhysical
)

func (a Attenuation) String() string {
	switch a {
	case AttenuationNone:
		return "none"
	case AttenuationPhysical:
		return "physical"
	default:
		return fmt.Sprintf("Attenuation(%d)", int(a))
	}
}

// ParseAttenuation parses the String form of an Attenuation.
func ParseAttenuation(s string) (Attenuation, error) {
	switch s {
	case "", "none":
		return AttenuationNone, nil
	case "physical":
		return AttenuationPhysical, nil
	default:
		return 0, fmt.Errorf("tracer: unknown attenuation %q", s)
	}
}

// Config controls a Tracer.
type Config struct {
	// SpeedOfSound in m/s (scene units per second).
	SpeedOfSound float32

	// MaxBounces is the maximal number of wall reflections a response can
	// have. The tracer iterates MaxBounces+1 times.
	MaxBounces int

	// RecordRays collects every cast segment into Recording.Rays. It has no
	// effect on responses and costs nothing when disabled.
	RecordRays bool

	Attenuation Attenuation

	// SpawnOffset overrides DefaultSpawnOffset when positive.
	SpawnOffset float32
}

// DefaultConfig returns the configuration used by the renderer by default.
func DefaultConfig() Config {
	return Config{
		SpeedOfSound: SpeedOfSoundInAir,
		MaxBounces:   512,
		Attenuation:  AttenuationNone,
		SpawnOffset:  DefaultSpawnOffset,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	speed := float64(c.SpeedOfSound)
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSpeedOfSound, c.SpeedOfSound)
	}
	if c.MaxBounces < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxBounces, c.MaxBounces)
	}
	offset := float64(c.SpawnOffset)
	if offset < 0 || math.IsNaN(offset) || math.IsInf(offset, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSpawnOffset, c.SpawnOffset)
	}
	return nil
}

func (c Config) spawnOffset() float32 {
	if c.SpawnOffset > 0 {
		return c.SpawnOffset
	}
	return DefaultSpawnOffset
}
