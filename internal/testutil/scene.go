package testutil

import (
	"github.com/cwbudde/algo-roomir/acoustic/geom"
	"github.com/cwbudde/algo-roomir/acoustic/space"
)

// SquareRoom returns a size×size room with its corner at the origin, one
// default material, a unit-power speaker at (0.2·size, size/2) and a
// microphone at (0.8·size, size/2).
func SquareRoom(size float32) *space.Space {
	s := space.New()
	m := s.AddMaterial(space.DefaultMaterial())
	s.AddWalls(space.Box(geom.Vec2{0, 0}, geom.Vec2{size, size}, m)...)
	s.AddSpeaker(space.Speaker{Position: geom.Vec2{0.2 * size, size / 2}, Power: 1})
	s.AddMicrophone(space.Microphone{Position: geom.Vec2{0.8 * size, size / 2}})
	return s
}
