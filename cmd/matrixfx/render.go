package main

import (
	"context"
	"fmt"

	"github.com/cwbudde/matrixfx/dsp/lockfree"
	"github.com/cwbudde/matrixfx/plugin"
)

const defaultBlockSize = 512

// processor is the part of the plugin processors the renderer drives.
type processor interface {
	Activate(sampleRate float64, maxFrames, channels int) error
	Process(outputs, inputs [][]float32, frames int)
	SetParam(id plugin.ParamID, value float64) error
}

type tappedProcessor interface {
	processor
	Tap() *lockfree.Queue[float32]
	TapDropped() uint64
}

type paramValue struct {
	id    plugin.ParamID
	value float64
}

func setParams(p processor, values []paramValue) error {
	for _, v := range values {
		if err := p.SetParam(v.id, v.value); err != nil {
			return fmt.Errorf("set parameter %d: %w", v.id, err)
		}
	}
	return nil
}

// renderer walks a decoded file block by block through an activated
// processor.
type renderer struct {
	in        *pcmAudio
	out       *pcmAudio
	blockSize int

	ins, outs [][]float32
}

func newRenderer(p processor, in *pcmAudio, blockSize int) (*renderer, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("block size must be > 0: %d", blockSize)
	}

	chans := len(in.Channels)
	if err := p.Activate(float64(in.SampleRate), blockSize, chans); err != nil {
		return nil, fmt.Errorf("activate: %w", err)
	}

	out := &pcmAudio{
		SampleRate: in.SampleRate,
		BitDepth:   in.BitDepth,
		Channels:   make([][]float32, chans),
	}
	for ch := range out.Channels {
		out.Channels[ch] = make([]float32, in.Frames())
	}

	return &renderer{
		in:        in,
		out:       out,
		blockSize: blockSize,
		ins:       make([][]float32, chans),
		outs:      make([][]float32, chans),
	}, nil
}

// block processes the block starting at off and returns its length.
func (r *renderer) block(p processor, off int) int {
	n := min(r.blockSize, r.in.Frames()-off)
	for ch := range r.ins {
		r.ins[ch] = r.in.Channels[ch][off : off+n]
		r.outs[ch] = r.out.Channels[ch][off : off+n]
	}
	p.Process(r.outs, r.ins, n)
	return n
}

// render runs the whole file through p.
func render(ctx context.Context, p processor, in *pcmAudio, blockSize int) (*pcmAudio, error) {
	r, err := newRenderer(p, in, blockSize)
	if err != nil {
		return nil, err
	}

	for off := 0; off < in.Frames(); {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		off += r.block(p, off)
	}

	return r.out, nil
}

func renderFile(ctx context.Context, a *app, p processor, inPath, outPath string, blockSize int) error {
	in, err := readWAV(inPath)
	if err != nil {
		return err
	}
	a.log.Debug("decoded input",
		"path", inPath,
		"sample_rate", in.SampleRate,
		"bit_depth", in.BitDepth,
		"channels", len(in.Channels),
		"frames", in.Frames())

	out, err := render(ctx, p, in, blockSize)
	if err != nil {
		return err
	}

	if err := writeWAV(outPath, out); err != nil {
		return err
	}
	a.log.Info("rendered", "input", inPath, "output", outPath, "frames", out.Frames())

	return nil
}
