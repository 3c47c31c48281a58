package params

import (
	"fmt"

	"github.com/cwbudde/algo-dss/hw"
	"github.com/cwbudde/algo-dss/sensor"
)

// Spec is the static configuration of one parameter.
type Spec struct {
	Name          Name
	Value         float32 // reported until the first read
	Range         sensor.Range
	Behaviour     Behaviour
	ReadThreshold float32
	Calibration   sensor.Calibration
}

// Parameter is a physical quantity driven by its own analog input.
type Parameter struct {
	name      Name
	value     float32
	rng       sensor.Range
	id        int
	behaviour Behaviour
	input     sensor.AnalogInput
}

// NewParameter builds a parameter and its analog input from spec.
// An unknown name panics.
func NewParameter(spec Spec) Parameter {
	if !spec.Name.Valid() {
		panic(fmt.Sprintf("params: unknown parameter name %d", int(spec.Name)))
	}
	return Parameter{
		name:      spec.Name,
		value:     spec.Value,
		rng:       spec.Range,
		id:        CanonicalID(spec.Name),
		behaviour: spec.Behaviour,
		input: sensor.New(sensor.Config{
			Channel:       spec.Name.Channel(),
			Range:         spec.Range,
			ReadThreshold: spec.ReadThreshold,
			Calibration:   spec.Calibration,
		}),
	}
}

// Read samples the parameter's analog input.
func (p *Parameter) Read(ctx hw.Context, frame int) {
	p.input.Read(ctx, frame)
}

// Value returns the physical value: the configured initial value until the
// input has been read, then the input's position shaped by the behaviour.
func (p *Parameter) Value() float32 {
	if p.input.Reads() == 0 {
		return p.value
	}
	if p.behaviour.Kind == Linear {
		return p.input.CurrentValueMapped()
	}
	return p.behaviour.Apply(p.input.Position(), p.rng)
}

// HasChanged reports whether the last read moved past the input's threshold.
func (p *Parameter) HasChanged() bool { return p.input.HasChanged() }

// Input exposes the owned analog input for diagnostics and calibration control.
func (p *Parameter) Input() *sensor.AnalogInput { return &p.input }

func (p *Parameter) Name() Name { return p.name }

// ID is the position in the simulation vector, -1 when not part of it.
func (p *Parameter) ID() int { return p.id }

func (p *Parameter) Range() sensor.Range { return p.rng }

func (p *Parameter) Behaviour() Behaviour { return p.behaviour }

func (p *Parameter) Channel() int { return p.input.Channel() }

// InitialValue is the value reported before the first read.
func (p *Parameter) InitialValue() float32 { return p.value }
