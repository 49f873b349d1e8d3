// Package geom provides the 2D primitives used by the acoustic tracer:
// line segments, rays, ray/segment intersection and specular reflection.
//
// All geometry is single precision. Vectors are [mgl32.Vec2] values so the
// package composes with the rest of the go-gl/mathgl ecosystem.
//
// # Tolerances
//
// Near-equality checks use the exported [ParallelEpsilon] and
// [DegenerateEpsilon] constants rather than literals inside the
// intersection code, so boundary behaviour can be checked exactly in tests.
package geom
