// Package analysis estimates sensor noise from recorded analog captures.
package analysis

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/window"
	algofft "github.com/cwbudde/algo-fft"
)

// MinReadThreshold is the smallest threshold SuggestThreshold returns.
const MinReadThreshold = 0.001

// DefaultFFTSize is the frame length used by the capture tools.
const DefaultFFTSize = 1024

// JitterRMS estimates the RMS of the broadband noise riding on a slowly moving
// control signal. Hann-windowed frames with 50% overlap are transformed and the
// upper half of the spectrum, where hand movement has no energy, is scaled back
// to a white-noise variance.
func JitterRMS(samples []float64, fftSize int) (float64, error) {
	if fftSize < 16 || fftSize%4 != 0 {
		return 0, fmt.Errorf("fft size must be a multiple of 4 and >= 16, got %d", fftSize)
	}
	if len(samples) < fftSize {
		return 0, fmt.Errorf("need at least %d samples, got %d", fftSize, len(samples))
	}
	plan, err := algofft.NewPlanReal64(fftSize)
	if err != nil {
		return 0, fmt.Errorf("fft plan: %w", err)
	}

	hann := window.Generate(window.TypeHann, fftSize)
	var wPow float64
	for _, w := range hann {
		wPow += w * w
	}

	buf := make([]float64, fftSize)
	spec := make([]complex128, fftSize/2+1)
	lo, hi := fftSize/4, fftSize/2
	hop := fftSize / 2

	var sum float64
	frames := 0
	for pos := 0; pos+fftSize <= len(samples); pos += hop {
		frame := samples[pos : pos+fftSize]
		var mean float64
		for _, v := range frame {
			mean += v
		}
		mean /= float64(fftSize)
		for i, v := range frame {
			buf[i] = (v - mean) * hann[i]
		}
		plan.Forward(spec, buf)

		var p float64
		for k := lo; k < hi; k++ {
			re, im := real(spec[k]), imag(spec[k])
			p += re*re + im*im
		}
		sum += p / (float64(hi-lo) * wPow)
		frames++
	}
	v := sum / float64(frames)
	if !isFinite(v) || v < 0 {
		return 0, fmt.Errorf("non-finite jitter estimate")
	}
	return math.Sqrt(v), nil
}

// SuggestThreshold turns a jitter RMS into a read threshold that rejects
// roughly 99.7% of noise-only steps.
func SuggestThreshold(rms float64) float32 {
	t := float32(3 * rms)
	if !(t >= MinReadThreshold) {
		return MinReadThreshold
	}
	return t
}

// ChannelJitter runs JitterRMS on every channel.
func ChannelJitter(channels [][]float32, fftSize int) ([]float64, error) {
	out := make([]float64, len(channels))
	tmp := []float64(nil)
	for c, ch := range channels {
		if cap(tmp) < len(ch) {
			tmp = make([]float64, len(ch))
		}
		tmp = tmp[:len(ch)]
		for i, v := range ch {
			tmp[i] = float64(v)
		}
		rms, err := JitterRMS(tmp, fftSize)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", c, err)
		}
		out[c] = rms
	}
	return out, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
