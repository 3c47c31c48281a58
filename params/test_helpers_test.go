package params

import (
	"testing"

	"github.com/cwbudde/algo-dss/hw"
	"github.com/cwbudde/algo-dss/sensor"
)

// blockWith returns a one-frame block holding raw[c] on channel c.
func blockWith(raw [NumNames]float32) *hw.Block {
	b := hw.NewBlock(1, hw.DefaultAnalogChannels)
	for c, v := range raw {
		b.Set(0, c, v)
	}
	return b
}

// calibrateUnit freezes every input of p at raw bounds [0,1].
func calibrateUnit(p *Parameters) {
	for n := Name(0); int(n) < NumNames; n++ {
		p.Get(n).Input().SetBounds(0, 1)
	}
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}

func within(got float32, want float32, relTol float32) bool {
	d := got - want
	if d < 0 {
		d = -d
	}
	w := want
	if w < 0 {
		w = -w
	}
	return d <= relTol*w
}

func unitRange() sensor.Range { return sensor.Range{Low: 0, High: 1} }
