package space

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-roomir/acoustic/geom"
)

// Errors returned when decoding scene files.
var (
	ErrUnknownMaterial = errors.New("space: unknown material")
	ErrDegenerateWall  = errors.New("space: zero-length wall")
)

// File is the JSON form of a Space.
//
//	{
//	  "materials":   [{"diffuse": 1, "roughness": 0}],
//	  "boxes":       [{"position": [0, 0], "size": [10, 10], "material": 0}],
//	  "walls":       [{"start": [0, 0], "end": [10, 0], "material": 0}],
//	  "speakers":    [{"position": [2, 5], "power": 1}],
//	  "microphones": [{"position": [8, 5]}]
//	}
//
// When no materials are listed a default material is created at index 0.
// Boxes are expanded into walls before the explicit walls.
type File struct {
	Materials   []Material       `json:"materials,omitempty"`
	Boxes       []BoxFile        `json:"boxes,omitempty"`
	Walls       []WallFile       `json:"walls,omitempty"`
	Speakers    []SpeakerFile    `json:"speakers,omitempty"`
	Microphones []MicrophoneFile `json:"microphones,omitempty"`
}

// BoxFile is a rectangular room outline, expanded with Box.
type BoxFile struct {
	Position geom.Vec2 `json:"position"`
	Size     geom.Vec2 `json:"size"`
	Material int       `json:"material"`
}

// WallFile is a single wall from Start to End.
type WallFile struct {
	Start    geom.Vec2 `json:"start"`
	End      geom.Vec2 `json:"end"`
	Material int       `json:"material"`
}

// SpeakerFile is a sound source.
type SpeakerFile struct {
	Position geom.Vec2 `json:"position"`
	Power    *float32  `json:"power,omitempty"` // defaults to 1
}

// MicrophoneFile is a listening position.
type MicrophoneFile struct {
	Position geom.Vec2 `json:"position"`
}

// Load reads a scene file from path.
func Load(path string) (*Space, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode reads a JSON scene from r.
func Decode(r io.Reader) (*Space, error) {
	var file File
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("space: decoding scene: %w", err)
	}
	return file.Space()
}

// Space builds a Space from the file, validating material references and
// rejecting zero-length walls, including those of boxes with a zero side.
func (f File) Space() (*Space, error) {
	s := New()

	materials := f.Materials
	if len(materials) == 0 {
		materials = []Material{DefaultMaterial()}
	}
	for _, m := range materials {
		s.AddMaterial(m)
	}

	material := func(i int) (MaterialIndex, error) {
		if i < 0 || i >= s.NumMaterials() {
			return 0, fmt.Errorf("%w: %d", ErrUnknownMaterial, i)
		}
		return MaterialIndex(i), nil
	}

	for i, b := range f.Boxes {
		m, err := material(b.Material)
		if err != nil {
			return nil, fmt.Errorf("box %d: %w", i, err)
		}
		walls := Box(b.Position, b.Size, m)
		for _, w := range walls {
			if w.Segment().Degenerate() {
				return nil, fmt.Errorf("box %d: %w", i, ErrDegenerateWall)
			}
		}
		s.AddWalls(walls...)
	}

	for i, w := range f.Walls {
		m, err := material(w.Material)
		if err != nil {
			return nil, fmt.Errorf("wall %d: %w", i, err)
		}
		wall := Wall{Start: w.Start, End: w.End, Material: m}
		if wall.Segment().Degenerate() {
			return nil, fmt.Errorf("wall %d: %w", i, ErrDegenerateWall)
		}
		s.AddWall(wall)
	}

	for _, sp := range f.Speakers {
		power := float32(1)
		if sp.Power != nil {
			power = *sp.Power
		}
		s.AddSpeaker(Speaker{Position: sp.Position, Power: power})
	}

	for _, m := range f.Microphones {
		s.AddMicrophone(Microphone{Position: m.Position})
	}

	return s, nil
}
