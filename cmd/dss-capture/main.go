package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/cwbudde/algo-dss/hw"
	"github.com/cwbudde/algo-dss/internal/wavio"
)

func main() {
	output := flag.String("output", "capture.wav", "Output capture WAV path")
	duration := flag.Float64("duration", 4.0, "Capture length in seconds")
	sampleRate := flag.Int("sample-rate", 22050, "Analog sample rate in Hz")
	channels := flag.Int("channels", hw.DefaultAnalogChannels, "Number of analog channels")
	jitter := flag.Float64("jitter", 0.002, "Gaussian sensor noise RMS")
	seed := flag.Int64("seed", 1, "Noise seed")
	flag.Parse()

	if *sampleRate <= 0 {
		die("invalid -sample-rate %d", *sampleRate)
	}
	if *channels < 1 {
		die("invalid -channels %d", *channels)
	}
	if *jitter < 0 {
		die("invalid -jitter %g", *jitter)
	}
	frames := int(float64(*sampleRate) * (*duration))
	if frames < 1 {
		die("duration %.3fs yields no frames", *duration)
	}

	data := synthesize(*channels, frames, *sampleRate, *jitter, *seed)
	if err := wavio.WriteChannels(*output, data, *sampleRate); err != nil {
		die("failed to write capture: %v", err)
	}
	fmt.Printf("Wrote %d channels x %d frames (%.2fs at %d Hz, jitter %.4f) to %s\n",
		*channels, frames, float64(frames)/float64(*sampleRate), *sampleRate, *jitter, *output)
}

// sweepRange returns the raw sub-range a simulated pot covers on channel c.
// Real pots rarely reach the rails, and each one stops short differently.
func sweepRange(c int) (float64, float64) {
	lo := 0.04 + 0.015*float64(c%5)
	hi := 0.96 - 0.02*float64(c%4)
	return lo, hi
}

// synthesize builds triangle sweeps with per-channel period and phase plus
// gaussian jitter, clipped to [0,1].
func synthesize(numChannels int, frames int, sampleRate int, jitter float64, seed int64) [][]float32 {
	rng := rand.New(rand.NewSource(seed))
	out := make([][]float32, numChannels)
	seconds := float64(frames) / float64(sampleRate)
	for c := range out {
		lo, hi := sweepRange(c)
		period := seconds / float64(1+c%3)
		phase := 0.125 * float64(c)
		out[c] = make([]float32, frames)
		for i := range out[c] {
			t := float64(i) / float64(sampleRate)
			u := math.Mod(t/period+phase, 1.0)
			tri := 1 - math.Abs(2*u-1)
			v := lo + (hi-lo)*tri + jitter*rng.NormFloat64()
			out[c][i] = float32(math.Min(1, math.Max(0, v)))
		}
	}
	return out
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
