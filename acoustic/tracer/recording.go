package tracer

import (
	"github.com/cwbudde/algo-roomir/acoustic/geom"
	"github.com/cwbudde/algo-roomir/acoustic/space"
)

// Purpose tells what a recorded ray was cast for.
type Purpose int

const (
	// PurposeBounce rays search for the next wall.
	PurposeBounce Purpose = iota
	// PurposeTrace rays check line of sight to the speaker.
	PurposeTrace
)

func (p Purpose) String() string {
	if p == PurposeTrace {
		return "trace"
	}
	return "bounce"
}

// IsBounce reports whether p is PurposeBounce.
func (p Purpose) IsBounce() bool { return p == PurposeBounce }

// RecordedRay is one cast segment, kept for visualization.
type RecordedRay struct {
	Purpose Purpose
	Ray     geom.Ray
	Hit     geom.RayHit // for trace rays, the speaker position and distance
}

// Termination is the terminal state of a trace.
type Termination int

const (
	// Exhausted means the bounce budget was used up.
	Exhausted Termination = iota
	// Absorbed means the ray left the room without hitting a wall.
	Absorbed
)

func (t Termination) String() string {
	if t == Absorbed {
		return "absorbed"
	}
	return "exhausted"
}

// Recording is the output of one trace.
type Recording struct {
	// Responses sorted by ascending time.
	Responses []space.Response
	// Rays in cast order; nil unless Config.RecordRays is set.
	Rays []RecordedRay

	Termination Termination
	// Bounces is the number of walls hit.
	Bounces int
	// Distance is the total length travelled along bounce segments.
	Distance float32
}
