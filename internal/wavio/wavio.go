package wavio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

// WriteFloat32 writes samples as a mono 32-bit float WAV stream.
func WriteFloat32(w io.Writer, samples []float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRate, sampleRate)
	}

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, newFloatHeader(sampleRate, len(samples))); err != nil {
		return fmt.Errorf("wavio: write header: %w", err)
	}

	if len(samples) > 0 {
		narrowed := make([]float32, len(samples))
		for i, v := range samples {
			narrowed[i] = float32(v)
		}
		if err := binary.Write(bw, binary.LittleEndian, narrowed); err != nil {
			return fmt.Errorf("wavio: write samples: %w", err)
		}
	}

	return bw.Flush()
}

// WriteFile creates path and writes samples to it with WriteFloat32.
func WriteFile(path string, samples []float64, sampleRate int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return WriteFloat32(f, samples, sampleRate)
}

// WritePCM writes samples as mono integer PCM with precision bytes per
// sample (1, 2 or 3). Samples are clipped to [-1, 1].
func WritePCM(w io.WriteSeeker, samples []float64, sampleRate, precision int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRate, sampleRate)
	}
	if precision < 1 || precision > 3 {
		return fmt.Errorf("%w: %d bytes", ErrInvalidFormat, precision)
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 1,
		Precision:   precision,
	}
	if err := wav.Encode(w, newStreamer(samples), format); err != nil {
		return fmt.Errorf("wavio: encode PCM: %w", err)
	}
	return nil
}

// WritePCMFile creates path and writes samples to it with WritePCM.
func WritePCMFile(path string, samples []float64, sampleRate, precision int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return WritePCM(f, samples, sampleRate, precision)
}

// Read decodes a WAV stream into mono samples. Multi-channel audio is
// averaged. Float files must be 32-bit; integer PCM is decoded with beep.
func Read(r io.ReadSeeker) ([]float64, int, error) {
	format, size, err := scan(r)
	if err != nil {
		return nil, 0, err
	}

	switch format.FormatTag {
	case formatFloat:
		return readFloat32(r, format, size)
	case formatPCM:
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, 0, fmt.Errorf("wavio: %w", err)
		}
		return readPCM(r)
	default:
		return nil, 0, fmt.Errorf("%w: format tag %d", ErrUnsupported, format.FormatTag)
	}
}

// ReadFile opens path and decodes it with Read.
func ReadFile(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("wavio: %w", err)
	}
	defer f.Close()

	return Read(f)
}

func readFloat32(r io.Reader, format fmtChunk, size uint32) ([]float64, int, error) {
	if format.BitsPerSample != 32 || format.Channels == 0 {
		return nil, 0, fmt.Errorf("%w: %d-bit float, %d channels", ErrUnsupported, format.BitsPerSample, format.Channels)
	}

	channels := int(format.Channels)
	frames := int(size) / (4 * channels)

	if frames == 0 {
		return []float64{}, int(format.SampleRate), nil
	}

	raw := make([]float32, frames*channels)
	if err := binary.Read(bufio.NewReader(r), binary.LittleEndian, raw); err != nil {
		return nil, 0, fmt.Errorf("wavio: read samples: %w", err)
	}

	out := make([]float64, frames)
	for i := range out {
		var sum float64
		for c := range channels {
			sum += float64(raw[i*channels+c])
		}
		out[i] = sum / float64(channels)
	}
	return out, int(format.SampleRate), nil
}

func readPCM(r io.Reader) ([]float64, int, error) {
	stream, format, err := wav.Decode(r)
	if err != nil {
		return nil, 0, fmt.Errorf("wavio: decode PCM: %w", err)
	}
	defer stream.Close()

	var (
		out   []float64
		block = make([][2]float64, 512)
		scale = pcmScale(format.Precision)
	)
	for {
		n, ok := stream.Stream(block)
		for _, frame := range block[:n] {
			if format.NumChannels == 1 {
				out = append(out, frame[0]*scale)
				continue
			}
			out = append(out, (frame[0]+frame[1])/2*scale)
		}
		if !ok {
			break
		}
	}
	if err := stream.Err(); err != nil {
		return nil, 0, fmt.Errorf("wavio: decode PCM: %w", err)
	}

	return out, int(format.SampleRate), nil
}

// pcmScale undoes beep's wav decoder, which divides signed 16 and 24-bit
// samples by 2^16-1 and 2^24-1 instead of 2^15 and 2^23.
func pcmScale(precision int) float64 {
	switch precision {
	case 2:
		return (1<<16 - 1) / float64(1<<15)
	case 3:
		return (1<<24 - 1) / float64(1<<23)
	default:
		return 1
	}
}

// newStreamer plays samples once on both channels.
func newStreamer(samples []float64) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(buf [][2]float64) (int, bool) {
		if pos >= len(samples) {
			return 0, false
		}
		n := 0
		for n < len(buf) && pos < len(samples) {
			v := max(-1, min(1, samples[pos]))
			buf[n] = [2]float64{v, v}
			n++
			pos++
		}
		return n, true
	})
}
