// Package dss defines the parameter vector consumed by the dynamic stiff-string
// simulation and the physical quantities derived from it.
package dss

import (
	"fmt"
	"math"

	pdefd "github.com/cwbudde/algo-pde/fd"
	pdepoisson "github.com/cwbudde/algo-pde/poisson"
)

// NumParameters is the length of the simulation parameter vector.
const NumParameters = 7

// SimulationParameters holds the physical constants of the string.
// Field order is the order the simulation expects: L, rho, r, T, E, sigma0, sigma1.
type SimulationParameters struct {
	L      float32 // length [m]
	Rho    float32 // material density [kg/m^3]
	R      float32 // radius [m]
	T      float32 // tension [N]
	E      float32 // Young's modulus [Pa]
	Sigma0 float32 // frequency-independent damping [1/s]
	Sigma1 float32 // frequency-dependent damping [m^2/s]
}

// Vector packs the fields in canonical order.
func (p SimulationParameters) Vector() [NumParameters]float32 {
	return [NumParameters]float32{p.L, p.Rho, p.R, p.T, p.E, p.Sigma0, p.Sigma1}
}

// FromVector unpacks a canonical-order vector.
func FromVector(v [NumParameters]float32) SimulationParameters {
	return SimulationParameters{
		L:      v[0],
		Rho:    v[1],
		R:      v[2],
		T:      v[3],
		E:      v[4],
		Sigma0: v[5],
		Sigma1: v[6],
	}
}

// Validate reports parameters the simulation cannot run with.
func (p SimulationParameters) Validate() error {
	names := [NumParameters]string{"L", "rho", "r", "T", "E", "sigma0", "sigma1"}
	for i, v := range p.Vector() {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return fmt.Errorf("%s is not finite: %v", names[i], v)
		}
		if i < 5 && v <= 0 {
			return fmt.Errorf("%s must be > 0, got %g", names[i], v)
		}
		if i >= 5 && v < 0 {
			return fmt.Errorf("%s must be >= 0, got %g", names[i], v)
		}
	}
	return nil
}

// Area is the string cross-section.
func (p SimulationParameters) Area() float64 {
	r := float64(p.R)
	return math.Pi * r * r
}

// Inertia is the area moment of inertia of a circular cross-section.
func (p SimulationParameters) Inertia() float64 {
	r := float64(p.R)
	return math.Pi * r * r * r * r / 4
}

// WaveSpeed is c = sqrt(T / (rho A)).
func (p SimulationParameters) WaveSpeed() float64 {
	return math.Sqrt(float64(p.T) / (float64(p.Rho) * p.Area()))
}

// Stiffness is kappa = sqrt(E I / (rho A)).
func (p SimulationParameters) Stiffness() float64 {
	return math.Sqrt(float64(p.E) * p.Inertia() / (float64(p.Rho) * p.Area()))
}

// Fundamental is the ideal-string fundamental c / 2L in Hz.
func (p SimulationParameters) Fundamental() float64 {
	return p.WaveSpeed() / (2 * float64(p.L))
}

// GridSpacing returns the smallest stable grid spacing for time step k.
func (p SimulationParameters) GridSpacing(k float64) float64 {
	c := p.WaveSpeed()
	kappa := p.Stiffness()
	a := c*c*k*k + 4*float64(p.Sigma1)*k
	return math.Sqrt((a + math.Sqrt(a*a+16*kappa*kappa*k*k)) / 2)
}

// GridPoints returns the number of intervals the string is divided into at time step k.
func (p SimulationParameters) GridPoints(k float64) int {
	h := p.GridSpacing(k)
	if h <= 0 || math.IsNaN(h) {
		return 0
	}
	return int(math.Floor(float64(p.L) / h))
}

// Partials returns the first n modal frequencies in Hz of the spatially
// discretized stiff string with simply supported ends at time step k.
func (p SimulationParameters) Partials(k float64, n int) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, fmt.Errorf("time step must be > 0, got %g", k)
	}
	if n < 1 {
		return nil, fmt.Errorf("partial count must be >= 1, got %d", n)
	}
	intervals := p.GridPoints(k)
	if intervals < 2 {
		return nil, fmt.Errorf("string too short for time step %g: %d grid intervals", k, intervals)
	}
	interior := intervals - 1
	if n > interior {
		n = interior
	}
	h := float64(p.L) / float64(intervals)
	lambda := pdefd.Eigenvalues(interior, h, pdepoisson.Dirichlet)

	c := p.WaveSpeed()
	kappa := p.Stiffness()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		l := lambda[i]
		out[i] = math.Sqrt(c*c*l+kappa*kappa*l*l) / (2 * math.Pi)
	}
	return out, nil
}
