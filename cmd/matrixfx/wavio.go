package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var errUnsupportedWAV = errors.New("unsupported WAV file")

const decodeChunkFrames = 4096

// pcmAudio is a decoded file: one float32 slice per channel in [-1, 1).
type pcmAudio struct {
	SampleRate int
	BitDepth   int
	Channels   [][]float32
}

// Frames returns the per-channel length.
func (p *pcmAudio) Frames() int {
	if len(p.Channels) == 0 {
		return 0
	}
	return len(p.Channels[0])
}

func sampleScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16:
		return 1 << 15, nil
	case 24:
		return 1 << 23, nil
	case 32:
		return 1 << 31, nil
	default:
		return 0, fmt.Errorf("%w: bit depth %d", errUnsupportedWAV, bitDepth)
	}
}

func readWAV(path string) (*pcmAudio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	p, err := decodeWAV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func decodeWAV(r io.ReadSeeker) (*pcmAudio, error) {
	decoder := wav.NewDecoder(r)
	decoder.ReadInfo()
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%w: not a valid WAV stream", errUnsupportedWAV)
	}

	scale, err := sampleScale(int(decoder.BitDepth))
	if err != nil {
		return nil, err
	}

	chans := int(decoder.NumChans)
	if chans < 1 {
		return nil, fmt.Errorf("%w: %d channels", errUnsupportedWAV, chans)
	}

	out := &pcmAudio{
		SampleRate: int(decoder.SampleRate),
		BitDepth:   int(decoder.BitDepth),
		Channels:   make([][]float32, chans),
	}

	buf := &audio.IntBuffer{
		Data:   make([]int, decodeChunkFrames*chans),
		Format: &audio.Format{SampleRate: out.SampleRate, NumChannels: chans},
	}

	for {
		n, err := decoder.PCMBuffer(buf)
		if err != nil {
			return nil, fmt.Errorf("decode PCM: %w", err)
		}
		if n == 0 {
			break
		}

		for i, s := range buf.Data[:n] {
			ch := i % chans
			out.Channels[ch] = append(out.Channels[ch], float32(float64(s)/scale))
		}
	}

	return out, nil
}

func writeWAV(path string, p *pcmAudio) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	if err := encodeWAV(f, p); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	return f.Close()
}

func encodeWAV(w io.WriteSeeker, p *pcmAudio) error {
	scale, err := sampleScale(p.BitDepth)
	if err != nil {
		return err
	}

	chans := len(p.Channels)
	frames := p.Frames()
	data := make([]int, frames*chans)

	peak := scale - 1
	for ch, samples := range p.Channels {
		for i, v := range samples[:frames] {
			if math.IsNaN(float64(v)) {
				continue
			}
			s := math.Round(float64(v) * scale)
			data[i*chans+ch] = int(math.Max(-scale, math.Min(peak, s)))
		}
	}

	enc := wav.NewEncoder(w, p.SampleRate, p.BitDepth, chans, 1)
	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{SampleRate: p.SampleRate, NumChannels: chans},
		SourceBitDepth: p.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode PCM: %w", err)
	}

	return enc.Close()
}
