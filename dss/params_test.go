package dss

import (
	"math"
	"testing"
)

func defaultString() SimulationParameters {
	return SimulationParameters{
		L:      1.0,
		Rho:    7850,
		R:      0.0005,
		T:      300,
		E:      2e11,
		Sigma0: 1.0,
		Sigma1: 0.005,
	}
}

func TestVectorUsesCanonicalOrder(t *testing.T) {
	p := SimulationParameters{L: 1, Rho: 2, R: 3, T: 4, E: 5, Sigma0: 6, Sigma1: 7}
	v := p.Vector()
	for i, x := range v {
		if x != float32(i+1) {
			t.Fatalf("field %d out of order: %v", i, v)
		}
	}
	if FromVector(v) != p {
		t.Fatalf("FromVector does not invert Vector: %+v", FromVector(v))
	}
}

func TestValidate(t *testing.T) {
	if err := defaultString().Validate(); err != nil {
		t.Fatalf("default string rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(p *SimulationParameters)
	}{
		{"zero length", func(p *SimulationParameters) { p.L = 0 }},
		{"negative density", func(p *SimulationParameters) { p.Rho = -1 }},
		{"zero radius", func(p *SimulationParameters) { p.R = 0 }},
		{"NaN tension", func(p *SimulationParameters) { p.T = float32(math.NaN()) }},
		{"infinite modulus", func(p *SimulationParameters) { p.E = float32(math.Inf(1)) }},
		{"negative sigma0", func(p *SimulationParameters) { p.Sigma0 = -0.1 }},
		{"negative sigma1", func(p *SimulationParameters) { p.Sigma1 = -0.001 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := defaultString()
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Fatalf("expected validation error for %+v", p)
			}
		})
	}

	p := defaultString()
	p.Sigma0 = 0
	p.Sigma1 = 0
	if err := p.Validate(); err != nil {
		t.Fatalf("zero damping should be valid: %v", err)
	}
}

func TestDerivedQuantities(t *testing.T) {
	p := defaultString()
	c := p.WaveSpeed()
	if math.Abs(c-220.6) > 0.5 {
		t.Fatalf("unexpected wave speed: %f", c)
	}
	if math.Abs(p.Fundamental()-c/2) > 1e-9 {
		t.Fatalf("fundamental should be c/2L: %f", p.Fundamental())
	}
	kappa := p.Stiffness()
	if math.Abs(kappa-1.2617) > 0.01 {
		t.Fatalf("unexpected stiffness: %f", kappa)
	}

	const k = 1.0 / 44100.0
	h := p.GridSpacing(k)
	if h <= c*k {
		t.Fatalf("stable spacing %f must exceed c*k=%f for a stiff damped string", h, c*k)
	}
	n := p.GridPoints(k)
	if n < 100 || n > 300 {
		t.Fatalf("unexpected grid size: %d", n)
	}
}

func TestStifferStringNeedsCoarserGrid(t *testing.T) {
	const k = 1.0 / 44100.0
	soft := defaultString()
	soft.E = 5e9
	stiff := defaultString()
	stiff.E = 4e11
	if stiff.GridSpacing(k) <= soft.GridSpacing(k) {
		t.Fatalf("expected larger stable spacing for stiffer string: stiff=%g soft=%g", stiff.GridSpacing(k), soft.GridSpacing(k))
	}
}

func TestPartialsApproachHarmonicSeriesForFlexibleString(t *testing.T) {
	p := defaultString()
	p.E = 1
	p.Sigma1 = 0
	partials, err := p.Partials(1.0/44100.0, 5)
	if err != nil {
		t.Fatalf("Partials: %v", err)
	}
	if len(partials) != 5 {
		t.Fatalf("expected 5 partials, got %d", len(partials))
	}
	f0 := p.Fundamental()
	for i, f := range partials {
		want := float64(i+1) * f0
		if math.Abs(f-want)/want > 0.02 {
			t.Fatalf("partial %d: got=%f want~%f", i+1, f, want)
		}
	}
}

func TestPartialsAreInharmonicForStiffString(t *testing.T) {
	p := defaultString()
	p.E = 4e11
	p.R = 0.001
	p.T = 150
	partials, err := p.Partials(1.0/44100.0, 12)
	if err != nil {
		t.Fatalf("Partials: %v", err)
	}
	for i := 1; i < len(partials); i++ {
		if partials[i] <= partials[i-1] {
			t.Fatalf("partials not increasing at %d: %f <= %f", i, partials[i], partials[i-1])
		}
	}
	ratio := partials[11] / partials[0]
	if ratio <= 12 {
		t.Fatalf("expected stretched partials for stiff string, got ratio %f", ratio)
	}
}

func TestPartialsRejectsBadInput(t *testing.T) {
	p := defaultString()
	if _, err := p.Partials(0, 4); err == nil {
		t.Fatalf("expected error for zero time step")
	}
	if _, err := p.Partials(1.0/44100.0, 0); err == nil {
		t.Fatalf("expected error for zero partial count")
	}
	bad := p
	bad.T = 0
	if _, err := bad.Partials(1.0/44100.0, 4); err == nil {
		t.Fatalf("expected validation error")
	}
}
