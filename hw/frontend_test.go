package hw

import (
	"math"
	"testing"
)

func TestSmootherPassesDCWithoutRamp(t *testing.T) {
	s, err := NewSmoother(200, 22050, math.Sqrt2/2)
	if err != nil {
		t.Fatalf("NewSmoother: %v", err)
	}
	s.Prime(0.42)
	for i := 0; i < 1000; i++ {
		if y := s.Process(0.42); math.Abs(y-0.42) > 1e-9 {
			t.Fatalf("primed DC drifted at sample %d: %f", i, y)
		}
	}
}

func TestSmootherAttenuatesJitter(t *testing.T) {
	s, err := NewSmoother(50, 22050, math.Sqrt2/2)
	if err != nil {
		t.Fatalf("NewSmoother: %v", err)
	}
	var peak float64
	for i := 0; i < 4000; i++ {
		x := 0.01
		if i%2 == 1 {
			x = -0.01
		}
		y := s.Process(x)
		if i > 2000 {
			peak = math.Max(peak, math.Abs(y))
		}
	}
	if peak > 0.0001 {
		t.Fatalf("Nyquist jitter should be strongly attenuated, residual %f", peak)
	}
}

func TestSmootherResetClearsState(t *testing.T) {
	s, err := NewSmoother(100, 22050, math.Sqrt2/2)
	if err != nil {
		t.Fatalf("NewSmoother: %v", err)
	}
	s.Prime(0.9)
	s.Reset()
	if y := s.Process(0); y != 0 {
		t.Fatalf("reset filter should output 0 for silent input, got %g", y)
	}
}

func TestNewSmootherRejectsBadDesign(t *testing.T) {
	tests := []struct {
		name   string
		cutoff float64
		sr     int
		q      float64
	}{
		{"zero cutoff", 0, 22050, 0.7},
		{"above nyquist", 12000, 22050, 0.7},
		{"zero rate", 50, 0, 0.7},
		{"zero q", 50, 22050, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSmoother(tt.cutoff, tt.sr, tt.q); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestCaptureSmoothKeepsBounds(t *testing.T) {
	ch := make([]float32, 2000)
	for i := range ch {
		ch[i] = 0.2
		if i >= 1000 {
			ch[i] = 0.8
		}
	}
	rec, err := NewCapture([][]float32{ch}, 22050)
	if err != nil {
		t.Fatalf("NewCapture: %v", err)
	}
	if err := rec.Smooth(100, math.Sqrt2/2); err != nil {
		t.Fatalf("Smooth: %v", err)
	}
	got := rec.Channel(0)
	if math.Abs(float64(got[0]-0.2)) > 1e-5 {
		t.Fatalf("first sample should stay at the primed level, got %f", got[0])
	}
	if got[1000] > 0.25 {
		t.Fatalf("step should be smoothed, got %f right after the edge", got[1000])
	}
	if math.Abs(float64(got[1999]-0.8)) > 1e-3 {
		t.Fatalf("filter should settle at the new level, got %f", got[1999])
	}
}
