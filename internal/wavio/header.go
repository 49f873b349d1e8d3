package wavio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// WAVE format tags.
const (
	formatPCM   uint16 = 1
	formatFloat uint16 = 3
)

var (
	ErrNotWAV        = errors.New("wavio: not a RIFF/WAVE file")
	ErrNoData        = errors.New("wavio: missing fmt or data chunk")
	ErrUnsupported   = errors.New("wavio: unsupported sample format")
	ErrInvalidRate   = errors.New("wavio: sample rate must be positive")
	ErrInvalidFormat = errors.New("wavio: invalid PCM precision")
)

// floatHeader is the canonical 44-byte header of a float WAV file.
type floatHeader struct {
	RIFF          [4]byte
	RIFFSize      uint32
	WAVE          [4]byte
	FmtID         [4]byte
	FmtSize       uint32
	FormatTag     uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataID        [4]byte
	DataSize      uint32
}

func newFloatHeader(sampleRate, samples int) floatHeader {
	const bytesPerSample = 4

	dataSize := uint32(samples * bytesPerSample)
	h := floatHeader{
		RIFFSize:      36 + dataSize,
		FmtSize:       16,
		FormatTag:     formatFloat,
		Channels:      1,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * bytesPerSample),
		BlockAlign:    bytesPerSample,
		BitsPerSample: 8 * bytesPerSample,
		DataSize:      dataSize,
	}
	copy(h.RIFF[:], "RIFF")
	copy(h.WAVE[:], "WAVE")
	copy(h.FmtID[:], "fmt ")
	copy(h.DataID[:], "data")
	return h
}

// fmtChunk is the common part of a "fmt " chunk.
type fmtChunk struct {
	FormatTag     uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

type chunkHeader struct {
	ID   [4]byte
	Size uint32
}

// scan walks the RIFF chunks of r and returns the format and the size of
// the data chunk, leaving r positioned at the start of the sample data.
func scan(r io.Reader) (fmtChunk, uint32, error) {
	var riff struct {
		RIFF [4]byte
		Size uint32
		WAVE [4]byte
	}
	if err := binary.Read(r, binary.LittleEndian, &riff); err != nil {
		return fmtChunk{}, 0, fmt.Errorf("%w: %w", ErrNotWAV, err)
	}
	if string(riff.RIFF[:]) != "RIFF" || string(riff.WAVE[:]) != "WAVE" {
		return fmtChunk{}, 0, ErrNotWAV
	}

	var (
		format  fmtChunk
		haveFmt bool
	)
	for {
		var ch chunkHeader
		if err := binary.Read(r, binary.LittleEndian, &ch); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return fmtChunk{}, 0, ErrNoData
			}
			return fmtChunk{}, 0, err
		}

		switch string(ch.ID[:]) {
		case "fmt ":
			if ch.Size < 16 {
				return fmtChunk{}, 0, fmt.Errorf("%w: fmt chunk of %d bytes", ErrNotWAV, ch.Size)
			}
			if err := binary.Read(r, binary.LittleEndian, &format); err != nil {
				return fmtChunk{}, 0, err
			}
			haveFmt = true
			if err := skip(r, int64(ch.Size)-16); err != nil {
				return fmtChunk{}, 0, err
			}
		case "data":
			if !haveFmt {
				return fmtChunk{}, 0, ErrNoData
			}
			return format, ch.Size, nil
		default:
			if err := skip(r, int64(ch.Size)); err != nil {
				return fmtChunk{}, 0, err
			}
		}

		// Chunks are padded to even sizes.
		if ch.Size%2 == 1 && string(ch.ID[:]) != "data" {
			if err := skip(r, 1); err != nil {
				return fmtChunk{}, 0, err
			}
		}
	}
}

func skip(r io.Reader, n int64) error {
	if n <= 0 {
		return nil
	}
	_, err := io.CopyN(io.Discard, r, n)
	return err
}
