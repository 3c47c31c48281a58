package params

import (
	"fmt"

	"github.com/cwbudde/algo-dss/dss"
	"github.com/cwbudde/algo-dss/hw"
	"github.com/cwbudde/algo-dss/sensor"
)

// Config holds one spec per parameter, indexed by Name.
type Config [NumNames]Spec

// DefaultConfig returns the tuned literal parameter table.
func DefaultConfig() Config {
	cal := sensor.DefaultCalibration()
	spec := func(name Name, value float32, lo float32, hi float32, b Behaviour) Spec {
		return Spec{
			Name:          name,
			Value:         value,
			Range:         sensor.Range{Low: lo, High: hi},
			Behaviour:     b,
			ReadThreshold: sensor.DefaultReadThreshold,
			Calibration:   cal,
		}
	}
	return Config{
		L: spec(L, 1.0, 0.5, 4.0, PitchBehaviour(1)),
		// Reversed so raising the control raises pitch.
		Rho: spec(Rho, 7850.0, 15700.0, 1962.5, LinearBehaviour()),
		R:   spec(R, 0.0005, 0.001, 0.0005, LinearBehaviour()),
		T:   spec(T, 300.0, 150.0, 1200.0, LinearBehaviour()),
		// Softer strings need finer grids than one block can compute.
		E:      spec(E, 200000000000.0, 5000000000.0, 400000000000.0, LinearBehaviour()),
		Sigma0: spec(Sigma0, 1.0, 0.0, 8.0, LinearBehaviour()),
		// Upper bound reaches pizzicato-like damping.
		Sigma1: spec(Sigma1, 0.005, 0.0002, 0.04, LinearBehaviour()),
		Loc:    spec(Loc, -1.0, 0.0, 1.0, LinearBehaviour()),
	}
}

// Parameters is the fixed registry of every controllable quantity.
type Parameters struct {
	params [NumNames]Parameter
}

// New builds the registry from DefaultConfig.
func New() *Parameters {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig builds the registry from cfg. Every entry must carry the name
// of its slot; a mismatch panics.
func NewWithConfig(cfg Config) *Parameters {
	p := &Parameters{}
	for i := range cfg {
		if cfg[i].Name != Name(i) {
			panic(fmt.Sprintf("params: config slot %s holds spec for %s", Name(i), cfg[i].Name))
		}
		p.params[i] = NewParameter(cfg[i])
	}
	return p
}

// Get returns the parameter for name. Unknown names panic.
func (p *Parameters) Get(name Name) *Parameter {
	if !name.Valid() {
		panic(fmt.Sprintf("params: no parameter %s", name))
	}
	return &p.params[name]
}

// Read samples every parameter's analog input at frame.
func (p *Parameters) Read(ctx hw.Context, frame int) {
	for i := range p.params {
		p.params[i].Read(ctx, frame)
	}
}

// Changed reports whether any parameter of the simulation vector moved on the
// last read.
func (p *Parameters) Changed() bool {
	for i := range p.params {
		if p.params[i].id >= 0 && p.params[i].HasChanged() {
			return true
		}
	}
	return false
}

// DSSParameters packs the current values of the simulation vector in
// canonical order. It does not read hardware.
func (p *Parameters) DSSParameters() dss.SimulationParameters {
	var v [dss.NumParameters]float32
	for _, name := range canonicalOrder {
		param := &p.params[name]
		if param.id < 0 {
			panic(fmt.Sprintf("params: %s missing from simulation vector", name))
		}
		v[param.id] = param.Value()
	}
	return dss.FromVector(v)
}
