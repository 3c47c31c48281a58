package hw

import (
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design"
)

// Smoother is a second-order lowpass modelling the RC stage in front of the
// analog converter. Process does not allocate.
type Smoother struct {
	section *biquad.Section
}

// NewSmoother designs a lowpass with the given cutoff and Q.
func NewSmoother(cutoffHz float64, sampleRate int, q float64) (*Smoother, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample-rate: %d", sampleRate)
	}
	if cutoffHz <= 0 || cutoffHz >= float64(sampleRate)/2 {
		return nil, fmt.Errorf("cutoff %.2f Hz outside (0, %d)", cutoffHz, sampleRate/2)
	}
	if q <= 0 {
		return nil, fmt.Errorf("q must be > 0, got %g", q)
	}
	return &Smoother{section: biquad.NewSection(design.Lowpass(cutoffHz, q, float64(sampleRate)))}, nil
}

// Process filters one sample.
func (s *Smoother) Process(x float64) float64 {
	return s.section.ProcessSample(x)
}

// Prime sets the state as if v had been applied forever, so the first
// outputs do not ramp up from zero.
func (s *Smoother) Prime(v float64) {
	c := s.section.Coefficients
	// Transposed direct form II steady state for unity DC gain: y = x = v.
	s.section.SetState([2]float64{v * (1 - c.B0), v * (c.B2 - c.A2)})
}

func (s *Smoother) Reset() { s.section.Reset() }

// Smooth lowpass-filters every channel in place. Each channel is primed with
// its first sample; a zero-started filter would drag calibration minima to 0.
func (c *Capture) Smooth(cutoffHz float64, q float64) error {
	s, err := NewSmoother(cutoffHz, c.sampleRate, q)
	if err != nil {
		return err
	}
	for _, ch := range c.channels {
		s.Prime(float64(ch[0]))
		for i, v := range ch {
			ch[i] = float32(s.Process(float64(v)))
		}
	}
	return nil
}
