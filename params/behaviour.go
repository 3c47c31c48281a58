package params

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-approx"

	"github.com/cwbudde/algo-dss/sensor"
)

// BehaviourKind selects the response curve between sensor position and value.
type BehaviourKind uint8

const (
	// Linear maps position straight into the range.
	Linear BehaviourKind = iota
	// Pitch interpolates geometrically so equal sensor travel gives equal
	// ratios, after shaping the position with t^Exponent.
	Pitch
	// Correction applies a power taper t^Exponent before linear mapping.
	Correction
	// Spray applies the inverse taper 1-(1-t)^Exponent, spreading resolution
	// towards the top of the range.
	Spray
)

var behaviourNames = [...]string{"linear", "pitch", "correction", "spray"}

func (k BehaviourKind) String() string {
	if int(k) >= len(behaviourNames) {
		return fmt.Sprintf("BehaviourKind(%d)", k)
	}
	return behaviourNames[k]
}

// ParseBehaviourKind resolves a case-insensitive behaviour name.
func ParseBehaviourKind(s string) (BehaviourKind, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for i, name := range behaviourNames {
		if name == v {
			return BehaviourKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown behaviour %q (valid: linear, pitch, correction, spray)", s)
}

// Behaviour is a response curve and its shaping exponent.
// Exponents <= 0 behave as 1.
type Behaviour struct {
	Kind     BehaviourKind
	Exponent float32
}

func LinearBehaviour() Behaviour { return Behaviour{Kind: Linear, Exponent: 1} }

func PitchBehaviour(exponent float32) Behaviour {
	return Behaviour{Kind: Pitch, Exponent: exponent}
}

func CorrectionBehaviour(exponent float32) Behaviour {
	return Behaviour{Kind: Correction, Exponent: exponent}
}

func SprayBehaviour(exponent float32) Behaviour {
	return Behaviour{Kind: Spray, Exponent: exponent}
}

// Apply maps position t in [0,1] into rng. The result is monotonic in t and
// stays within the range.
func (b Behaviour) Apply(t float32, rng sensor.Range) float32 {
	if t < 0 || t != t {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	e := b.Exponent
	if e <= 0 {
		e = 1
	}
	switch b.Kind {
	case Pitch:
		te := powf(t, e)
		if te <= 0 || te >= 1 || rng.Low*rng.High <= 0 {
			return rng.Lerp(te)
		}
		logRatio := float32(math.Log(float64(rng.High / rng.Low)))
		return rng.Clamp(rng.Low * approx.FastExp(te*logRatio))
	case Correction:
		return rng.Lerp(powf(t, e))
	case Spray:
		return rng.Lerp(1 - powf(1-t, e))
	default:
		return rng.Lerp(t)
	}
}

func powf(x float32, e float32) float32 {
	if e == 1 {
		return x
	}
	return float32(math.Pow(float64(x), float64(e)))
}
