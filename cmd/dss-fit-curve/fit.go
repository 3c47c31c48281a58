package main

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dss/dss"
	"github.com/cwbudde/algo-dss/params"
	"github.com/cwbudde/algo-dss/sensor"
)

// curveFit scores a Pitch exponent for the length control by how far the
// first partial of the discretized stiff string strays from a target sweep.
type curveFit struct {
	base   dss.SimulationParameters
	rng    sensor.Range
	k      float64
	points int
	target string

	f0 float64
	f1 float64
}

func newCurveFit(base dss.SimulationParameters, rng sensor.Range, sampleRate int, points int, target string) (*curveFit, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample-rate %d", sampleRate)
	}
	if points < 2 {
		return nil, fmt.Errorf("need at least 2 points, got %d", points)
	}
	if rng.Min() <= 0 {
		return nil, fmt.Errorf("length range must be positive, got [%g,%g]", rng.Low, rng.High)
	}
	switch target {
	case "exp", "lin":
	default:
		return nil, fmt.Errorf("unknown target %q", target)
	}
	f := &curveFit{base: base, rng: rng, k: 1 / float64(sampleRate), points: points, target: target}

	var err error
	if f.f0, err = f.partialAt(float64(rng.Low)); err != nil {
		return nil, err
	}
	if f.f1, err = f.partialAt(float64(rng.High)); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *curveFit) partialAt(length float64) (float64, error) {
	p := f.base
	p.L = float32(length)
	partials, err := p.Partials(f.k, 1)
	if err != nil {
		return 0, fmt.Errorf("L=%g: %w", length, err)
	}
	return partials[0], nil
}

// targetAt is the desired fundamental at control position t. Endpoints match
// the string's own pitch at both ends of the length range.
func (f *curveFit) targetAt(t float64) float64 {
	if f.target == "lin" {
		return f.f0 + (f.f1-f.f0)*t
	}
	return f.f0 * math.Pow(f.f1/f.f0, t)
}

// errorCents returns the RMS pitch error in cents over evenly spaced positions.
func (f *curveFit) errorCents(exponent float64) (float64, error) {
	b := params.PitchBehaviour(float32(exponent))
	var sum float64
	for i := 0; i < f.points; i++ {
		t := float64(i) / float64(f.points-1)
		got, err := f.partialAt(float64(b.Apply(float32(t), f.rng)))
		if err != nil {
			return 0, err
		}
		c := 1200 * math.Log2(got/f.targetAt(t))
		sum += c * c
	}
	return math.Sqrt(sum / float64(f.points)), nil
}

// exponentFromNorm maps a normalized search coordinate onto [lo,hi] on a log scale.
func exponentFromNorm(x float64, lo float64, hi float64) float64 {
	x = math.Min(1, math.Max(0, x))
	return lo * math.Pow(hi/lo, x)
}
