package hw

import (
	"fmt"

	"github.com/cwbudde/algo-dss/internal/wavio"
)

// Capture is a recorded analog session, one slice per channel at the analog rate.
type Capture struct {
	sampleRate int
	channels   [][]float32
	frames     int
}

// NewCapture wraps per-channel sample slices. All channels must have equal length.
func NewCapture(channels [][]float32, sampleRate int) (*Capture, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("capture has no channels")
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid capture sample-rate: %d", sampleRate)
	}
	frames := len(channels[0])
	for c, ch := range channels {
		if len(ch) != frames {
			return nil, fmt.Errorf("capture channel %d has %d frames, want %d", c, len(ch), frames)
		}
	}
	if frames == 0 {
		return nil, fmt.Errorf("capture is empty")
	}
	return &Capture{sampleRate: sampleRate, channels: channels, frames: frames}, nil
}

// LoadCapture decodes a multichannel WAV recording and resamples it to analogRate.
// analogRate <= 0 keeps the file rate.
func LoadCapture(path string, analogRate int) (*Capture, error) {
	raw, fileRate, err := wavio.ReadChannels(path)
	if err != nil {
		return nil, err
	}
	if analogRate <= 0 {
		analogRate = fileRate
	}
	channels := make([][]float32, len(raw))
	for c, in := range raw {
		res, err := wavio.ResampleIfNeeded(in, fileRate, analogRate)
		if err != nil {
			return nil, fmt.Errorf("resample channel %d: %w", c, err)
		}
		channels[c] = make([]float32, len(res))
		for i, v := range res {
			channels[c][i] = float32(v)
		}
	}
	// Resamplers may differ by a sample between channels.
	n := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) < n {
			n = len(ch)
		}
	}
	for c := range channels {
		channels[c] = channels[c][:n]
	}
	return NewCapture(channels, analogRate)
}

func (c *Capture) SampleRate() int { return c.sampleRate }

func (c *Capture) Frames() int { return c.frames }

func (c *Capture) NumChannels() int { return len(c.channels) }

// Channel returns the samples of channel i.
func (c *Capture) Channel(i int) []float32 {
	return c.channels[i]
}

// NumBlocks reports how many blocks of blockFrames cover the capture; the last
// block may be partial.
func (c *Capture) NumBlocks(blockFrames int) int {
	if blockFrames < 1 {
		return 0
	}
	return (c.frames + blockFrames - 1) / blockFrames
}

// CopyBlock fills dst with block i. Frames past the end of the capture hold the
// last recorded sample, channels the capture lacks read as zero.
func (c *Capture) CopyBlock(i int, dst *Block) {
	start := i * dst.frames
	if i < 0 || start >= c.frames {
		panic(fmt.Sprintf("hw: block %d out of range (%d frames per block, %d frames)", i, dst.frames, c.frames))
	}
	for ch := 0; ch < dst.channels; ch++ {
		if ch >= len(c.channels) {
			dst.Fill(ch, 0)
			continue
		}
		src := c.channels[ch]
		for f := 0; f < dst.frames; f++ {
			pos := start + f
			if pos >= c.frames {
				pos = c.frames - 1
			}
			dst.data[f*dst.channels+ch] = src[pos]
		}
	}
}
