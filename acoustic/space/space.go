package space

import (
	"fmt"

	"github.com/cwbudde/algo-roomir/acoustic/geom"
)

// Handles into the collections of a Space.
type (
	WallIndex       int
	MaterialIndex   int
	SpeakerIndex    int
	MicrophoneIndex int
)

// Material describes how a wall treats sound.
type Material struct {
	// Diffuse is how much of the incoming sound the wall sends back, in [0, 1].
	Diffuse float32 `json:"diffuse"`
	// Roughness is how much the wall scatters sound, in [0, 1]. Descriptive
	// only; scattering is not modelled.
	Roughness float32 `json:"roughness"`
}

// DefaultMaterial returns a fully reflective, perfectly smooth material.
func DefaultMaterial() Material {
	return Material{Diffuse: 1, Roughness: 0}
}

// Wall is a directed segment made of a material. The winding of Start→End
// determines the direction of its normal.
type Wall struct {
	Start    geom.Vec2
	End      geom.Vec2
	Material MaterialIndex
}

// Segment returns the wall as a line segment.
func (w Wall) Segment() geom.Segment {
	return geom.Segment{A: w.Start, B: w.End}
}

// Normal returns the unit normal of the wall. ok is false for zero-length
// walls.
func (w Wall) Normal() (geom.Vec2, bool) {
	return w.Segment().Normal()
}

// Reflect mirrors direction d off the wall. Zero-length walls are never hit
// by the tracer, so for them d is returned unchanged.
func (w Wall) Reflect(d geom.Vec2) geom.Vec2 {
	n, ok := w.Normal()
	if !ok {
		return d
	}
	return geom.Reflect(d, n)
}

// Speaker is a sound source.
type Speaker struct {
	Position geom.Vec2
	Power    float32
}

// Microphone is a receiver; every traced ray starts at a microphone.
type Microphone struct {
	Position geom.Vec2
}

// Space is a room: walls, their materials, speakers and microphones.
// The zero value is an empty room ready for use.
type Space struct {
	walls       []Wall
	materials   []Material
	speakers    []Speaker
	microphones []Microphone
}

// New returns an empty Space.
func New() *Space {
	return &Space{}
}

// AddWall appends a wall and returns its handle.
func (s *Space) AddWall(w Wall) WallIndex {
	s.walls = append(s.walls, w)
	return WallIndex(len(s.walls) - 1)
}

// AddWalls appends walls in order and returns the handle of each.
func (s *Space) AddWalls(walls ...Wall) []WallIndex {
	indices := make([]WallIndex, len(walls))
	for i, w := range walls {
		indices[i] = s.AddWall(w)
	}
	return indices
}

// AddMaterial appends a material and returns its handle.
func (s *Space) AddMaterial(m Material) MaterialIndex {
	s.materials = append(s.materials, m)
	return MaterialIndex(len(s.materials) - 1)
}

// AddSpeaker appends a speaker and returns its handle.
func (s *Space) AddSpeaker(sp Speaker) SpeakerIndex {
	s.speakers = append(s.speakers, sp)
	return SpeakerIndex(len(s.speakers) - 1)
}

// AddMicrophone appends a microphone and returns its handle.
func (s *Space) AddMicrophone(m Microphone) MicrophoneIndex {
	s.microphones = append(s.microphones, m)
	return MicrophoneIndex(len(s.microphones) - 1)
}

// Wall returns the wall for handle i. It panics if i is out of range.
func (s *Space) Wall(i WallIndex) Wall {
	if int(i) < 0 || int(i) >= len(s.walls) {
		panic(fmt.Sprintf("space: wall index %d out of range [0, %d)", i, len(s.walls)))
	}
	return s.walls[i]
}

// Material returns the material for handle i. It panics if i is out of range.
func (s *Space) Material(i MaterialIndex) Material {
	if int(i) < 0 || int(i) >= len(s.materials) {
		panic(fmt.Sprintf("space: material index %d out of range [0, %d)", i, len(s.materials)))
	}
	return s.materials[i]
}

// Speaker returns the speaker for handle i. It panics if i is out of range.
func (s *Space) Speaker(i SpeakerIndex) Speaker {
	if int(i) < 0 || int(i) >= len(s.speakers) {
		panic(fmt.Sprintf("space: speaker index %d out of range [0, %d)", i, len(s.speakers)))
	}
	return s.speakers[i]
}

// Microphone returns the microphone for handle i. It panics if i is out of
// range.
func (s *Space) Microphone(i MicrophoneIndex) Microphone {
	if int(i) < 0 || int(i) >= len(s.microphones) {
		panic(fmt.Sprintf("space: microphone index %d out of range [0, %d)", i, len(s.microphones)))
	}
	return s.microphones[i]
}

// Walls returns the walls in insertion order. The slice must not be modified.
func (s *Space) Walls() []Wall { return s.walls }

// NumWalls returns the number of walls.
func (s *Space) NumWalls() int { return len(s.walls) }

// NumMaterials returns the number of materials.
func (s *Space) NumMaterials() int { return len(s.materials) }

// NumSpeakers returns the number of speakers.
func (s *Space) NumSpeakers() int { return len(s.speakers) }

// NumMicrophones returns the number of microphones.
func (s *Space) NumMicrophones() int { return len(s.microphones) }

// Box returns the four walls of an axis-aligned rectangle with its corner at
// position, wound counter-clockwise in a y-up frame.
func Box(position, size geom.Vec2, material MaterialIndex) []Wall {
	x := geom.Vec2{size.X(), 0}
	y := geom.Vec2{0, size.Y()}
	return []Wall{
		{Start: position, End: position.Add(x), Material: material},
		{Start: position.Add(x), End: position.Add(size), Material: material},
		{Start: position.Add(size), End: position.Add(y), Material: material},
		{Start: position.Add(y), End: position, Material: material},
	}
}
