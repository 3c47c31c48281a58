// Package hw describes the per-block hardware context the control layer reads
// analog samples from, plus in-memory and recorded implementations of it.
package hw

import "fmt"

// DefaultAnalogChannels matches the eight analog inputs of the target board.
const DefaultAnalogChannels = 8

// Context exposes the raw analog input buffer of one audio/control block.
type Context interface {
	AnalogInChannels() int
	AnalogFrames() int
	// AnalogRead returns the raw normalized sample of channel at frame.
	AnalogRead(frame int, channel int) float32
}

// Block is an interleaved analog buffer laid out as frame*channels + channel.
type Block struct {
	channels int
	frames   int
	data     []float32
}

// NewBlock allocates a zeroed block.
func NewBlock(frames int, channels int) *Block {
	if frames < 1 || channels < 1 {
		panic(fmt.Sprintf("hw: invalid block shape %d frames x %d channels", frames, channels))
	}
	return &Block{
		channels: channels,
		frames:   frames,
		data:     make([]float32, frames*channels),
	}
}

func (b *Block) AnalogInChannels() int { return b.channels }

func (b *Block) AnalogFrames() int { return b.frames }

func (b *Block) AnalogRead(frame int, channel int) float32 {
	return b.data[frame*b.channels+channel]
}

// Set writes one sample.
func (b *Block) Set(frame int, channel int, v float32) {
	b.data[frame*b.channels+channel] = v
}

// Fill writes v into every frame of channel.
func (b *Block) Fill(channel int, v float32) {
	for f := 0; f < b.frames; f++ {
		b.data[f*b.channels+channel] = v
	}
}

// Data exposes the interleaved backing buffer.
func (b *Block) Data() []float32 {
	return b.data
}
