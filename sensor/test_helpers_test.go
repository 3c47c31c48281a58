package sensor

import (
	"testing"

	"github.com/cwbudde/algo-dss/hw"
)

// readRaw feeds a single raw sample to a through a one-frame block.
func readRaw(t *testing.T, a *AnalogInput, v float32) {
	t.Helper()
	b := hw.NewBlock(1, a.Channel()+1)
	b.Set(0, a.Channel(), v)
	a.Read(b, 0)
}

func xorshift32(state *uint32) uint32 {
	x := *state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	*state = x
	return x
}

// randomRaw returns a pseudo-random value in [lo, hi).
func randomRaw(state *uint32, lo float32, hi float32) float32 {
	u := float32(xorshift32(state)>>8) / float32(1<<24)
	return lo + u*(hi-lo)
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

func approxEqual(a float32, b float32, tol float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}
