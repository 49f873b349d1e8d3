package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// ParallelEpsilon is the per-component tolerance used when comparing the
	// normalized ray direction against the normalized segment direction.
	// Directions closer than this are treated as parallel and never hit.
	ParallelEpsilon float32 = 1e-9

	// DegenerateEpsilon is the squared length below which a segment or ray
	// direction is considered zero-length.
	DegenerateEpsilon float32 = 1e-12
)

// Vec2 is a single-precision 2D vector.
type Vec2 = mgl32.Vec2

// Segment is a directed line segment from A to B.
type Segment struct {
	A Vec2
	B Vec2
}

// Ray is a half-line starting at Start and extending along Direction.
//
// Direction does not have to be normalized on construction, but RayHit
// lengths are only distances when it is.
type Ray struct {
	Start     Vec2
	Direction Vec2
}

// RayHit is the result of a successful Cast.
type RayHit struct {
	Position  Vec2
	RayLength float32 // parametric distance along the ray
}

// Direction returns B - A.
func (s Segment) Direction() Vec2 {
	return s.B.Sub(s.A)
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float32 {
	return s.Direction().Len()
}

// Degenerate reports whether the segment has (near) zero length.
func (s Segment) Degenerate() bool {
	d := s.Direction()
	return d.Dot(d) < DegenerateEpsilon
}

// Midpoint returns the point halfway between A and B.
func (s Segment) Midpoint() Vec2 {
	return s.A.Add(s.B).Mul(0.5)
}

// Normal returns the unit normal of the segment, obtained by rotating the
// normalized A→B direction by +90°. The winding of the segment therefore
// decides which side the normal points to. ok is false for degenerate
// segments, whose normal is undefined.
func (s Segment) Normal() (n Vec2, ok bool) {
	if s.Degenerate() {
		return Vec2{}, false
	}
	d := s.Direction().Normalize()
	return Vec2{-d.Y(), d.X()}, true
}

// At returns the point Start + Direction*t.
func (r Ray) At(t float32) Vec2 {
	return r.Start.Add(r.Direction.Mul(t))
}

// Cast intersects the ray with a segment.
//
// It returns false when the ray runs parallel to the segment, when the
// intersection lies behind the ray origin, when it falls outside the
// segment's [0, 1] parametric range, or when either the segment or the ray
// direction is degenerate.
func Cast(ray Ray, seg Segment) (RayHit, bool) {
	segDir := seg.Direction()
	if segDir.Dot(segDir) < DegenerateEpsilon || ray.Direction.Dot(ray.Direction) < DegenerateEpsilon {
		return RayHit{}, false
	}

	if approxEqual(ray.Direction.Normalize(), segDir.Normalize(), ParallelEpsilon) {
		return RayHit{}, false
	}

	denom := Cross(ray.Direction, segDir)
	if denom == 0 {
		// Anti-parallel or collinear.
		return RayHit{}, false
	}

	offset := seg.A.Sub(ray.Start)
	t1 := Cross(offset, segDir) / denom
	t2 := Cross(offset, ray.Direction) / denom

	// Written as negated ranges so NaN never produces a hit.
	if !(t1 >= 0) || !(t2 >= 0 && t2 <= 1) {
		return RayHit{}, false
	}

	return RayHit{
		Position:  ray.At(t1),
		RayLength: t1,
	}, true
}

// Reflect mirrors direction d about the unit normal n: d - 2(d·n)n.
func Reflect(d, n Vec2) Vec2 {
	return d.Sub(n.Mul(2 * d.Dot(n)))
}

// Cross returns the z component of the 3D cross product of a and b.
func Cross(a, b Vec2) float32 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// FromAngle returns the unit vector at angle radians from the +X axis.
func FromAngle(angle float32) Vec2 {
	s, c := math.Sincos(float64(angle))
	return Vec2{float32(c), float32(s)}
}

func approxEqual(a, b Vec2, eps float32) bool {
	return mgl32.Abs(a.X()-b.X()) <= eps && mgl32.Abs(a.Y()-b.Y()) <= eps
}
