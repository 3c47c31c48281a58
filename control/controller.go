// Package control drives the parameter registry once per audio/control block
// and forwards the simulation vector to the synthesis engine.
package control

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-dss/dss"
	"github.com/cwbudde/algo-dss/hw"
	"github.com/cwbudde/algo-dss/params"
)

// Sink receives the simulation vector whenever it changes.
type Sink interface {
	SetParameters(p dss.SimulationParameters)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(p dss.SimulationParameters)

func (f SinkFunc) SetParameters(p dss.SimulationParameters) { f(p) }

// FramePolicy picks which frame of a block the inputs are sampled at.
type FramePolicy int

const (
	FrameFirst FramePolicy = iota
	FrameLast
)

// Stats counts processed blocks and sink updates.
type Stats struct {
	Blocks  int
	Updates int
}

// Controller reads every parameter once per block and pushes the vector to
// the sink on the first block and whenever a simulation parameter's raw
// reading has moved past its read threshold since the last push. Slow moves
// therefore accumulate until they are reported.
type Controller struct {
	params *params.Parameters
	sink   Sink
	frame  FramePolicy
	stats  Stats

	// Raw readings at the last push, in simulation vector order.
	sent [dss.NumParameters]float32
}

// NewController wires a registry to a sink. A nil sink only tracks state.
func NewController(p *params.Parameters, sink Sink) *Controller {
	if p == nil {
		panic("control: nil parameter registry")
	}
	return &Controller{params: p, sink: sink}
}

// SetFramePolicy selects the sampled frame.
func (c *Controller) SetFramePolicy(f FramePolicy) {
	c.frame = f
}

// Params exposes the registry.
func (c *Controller) Params() *params.Parameters { return c.params }

// Stats returns the counters.
func (c *Controller) Stats() Stats { return c.stats }

// ProcessBlock samples ctx and reports whether the sink was updated.
func (c *Controller) ProcessBlock(ctx hw.Context) bool {
	frame := 0
	if c.frame == FrameLast {
		frame = ctx.AnalogFrames() - 1
	}
	c.params.Read(ctx, frame)
	first := c.stats.Blocks == 0
	c.stats.Blocks++
	if !first && !c.drifted() {
		return false
	}
	c.remember()
	c.stats.Updates++
	if c.sink != nil {
		c.sink.SetParameters(c.params.DSSParameters())
	}
	return true
}

// drifted reports whether any simulation input moved past its threshold
// relative to the last push.
func (c *Controller) drifted() bool {
	for i, name := range params.CanonicalOrder() {
		in := c.params.Get(name).Input()
		d := in.CurrentValue() - c.sent[i]
		if d < 0 {
			d = -d
		}
		if d > in.ReadThreshold() {
			return true
		}
	}
	return false
}

func (c *Controller) remember() {
	for i, name := range params.CanonicalOrder() {
		c.sent[i] = c.params.Get(name).Input().CurrentValue()
	}
}

// Replay feeds a recorded capture through the controller in blocks of
// blockFrames, stopping early when ctx is cancelled.
func (c *Controller) Replay(ctx context.Context, rec *hw.Capture, blockFrames int) error {
	if rec == nil {
		return fmt.Errorf("nil capture")
	}
	if blockFrames < 1 {
		return fmt.Errorf("block size must be >= 1, got %d", blockFrames)
	}
	channels := rec.NumChannels()
	if channels < hw.DefaultAnalogChannels {
		channels = hw.DefaultAnalogChannels
	}
	blk := hw.NewBlock(blockFrames, channels)
	n := rec.NumBlocks(blockFrames)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec.CopyBlock(i, blk)
		c.ProcessBlock(blk)
	}
	return nil
}
