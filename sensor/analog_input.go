// Package sensor turns raw analog samples into calibrated values in a physical range.
//
// An AnalogInput owns one hardware channel. Every control block the scheduler
// calls Read with the block's hardware context; while calibrating, the input
// learns the observed extremes of the raw signal and later maps readings from
// that interval into its target range. Reads never allocate and never fail:
// invalid channels and frames are programming errors and panic, numeric edge
// cases clamp or fall back to the range's low bound.
package sensor

import (
	"fmt"
	"math"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"

	"github.com/cwbudde/algo-dss/hw"
)

// DefaultReadThreshold is the raw delta a reading must exceed to count as a change.
const DefaultReadThreshold = float32(0.005)

// Range is a physical target interval. Low > High encodes an inverted mapping.
type Range struct {
	Low  float32
	High float32
}

// Min returns the smaller bound.
func (r Range) Min() float32 { return minf(r.Low, r.High) }

// Max returns the larger bound.
func (r Range) Max() float32 { return maxf(r.Low, r.High) }

// Reversed reports whether increasing input maps to decreasing output.
func (r Range) Reversed() bool { return r.Low > r.High }

// Lerp maps t in [0,1] linearly from Low to High, clamped to the range.
// The endpoints are returned exactly.
func (r Range) Lerp(t float32) float32 {
	if t <= 0 {
		return r.Low
	}
	if t >= 1 {
		return r.High
	}
	return r.Clamp(r.Low + t*(r.High-r.Low))
}

// Clamp limits v to [Min, Max].
func (r Range) Clamp(v float32) float32 {
	return clampf(v, r.Min(), r.Max())
}

// Config describes one analog input.
type Config struct {
	Channel       int
	Range         Range
	ReadThreshold float32
	Calibration   Calibration
}

// AnalogInput is one calibrated hardware channel.
type AnalogInput struct {
	channel       int
	valueRange    Range
	readThreshold float32

	currentValue float32
	hasChanged   bool

	calibrate bool
	minValue  float32
	maxValue  float32
	policy    Calibration
	progress  calibrationProgress
	reads     int
}

// NewAnalogInput creates an auto-calibrating input with the default threshold and policy.
func NewAnalogInput(channel int, valueRange Range) AnalogInput {
	return New(Config{
		Channel:       channel,
		Range:         valueRange,
		ReadThreshold: DefaultReadThreshold,
		Calibration:   DefaultCalibration(),
	})
}

// New creates an input from cfg. A negative channel or threshold panics.
func New(cfg Config) AnalogInput {
	if cfg.Channel < 0 {
		panic(fmt.Sprintf("sensor: invalid analog channel %d", cfg.Channel))
	}
	if cfg.ReadThreshold < 0 || !isFinite(cfg.ReadThreshold) {
		panic(fmt.Sprintf("sensor: invalid read threshold %g on channel %d", cfg.ReadThreshold, cfg.Channel))
	}
	return AnalogInput{
		channel:       cfg.Channel,
		valueRange:    cfg.Range,
		readThreshold: cfg.ReadThreshold,
		calibrate:     true,
		policy:        cfg.Calibration,
	}
}

// Read pulls the raw sample for the input's channel at frame and updates
// calibration and change state.
func (a *AnalogInput) Read(ctx hw.Context, frame int) {
	if a.channel >= ctx.AnalogInChannels() {
		panic(fmt.Sprintf("sensor: channel %d out of range (%d analog inputs)", a.channel, ctx.AnalogInChannels()))
	}
	if frame < 0 || frame >= ctx.AnalogFrames() {
		panic(fmt.Sprintf("sensor: frame %d out of range (%d analog frames)", frame, ctx.AnalogFrames()))
	}

	v := float32(dspcore.FlushDenormals(float64(ctx.AnalogRead(frame, a.channel))))
	if a.calibrate && isFinite(v) {
		a.observe(v)
	}
	a.reads++

	delta := v - a.currentValue
	if delta < 0 {
		delta = -delta
	}
	a.hasChanged = delta > a.readThreshold
	a.currentValue = v
}

func (a *AnalogInput) observe(v float32) {
	widened := float32(0)
	if a.progress.observed == 0 {
		a.minValue = v
		a.maxValue = v
	} else {
		if v < a.minValue {
			widened += a.minValue - v
			a.minValue = v
		}
		if v > a.maxValue {
			widened += v - a.maxValue
			a.maxValue = v
		}
	}
	if a.progress.step(a.policy, widened, a.maxValue-a.minValue) {
		a.calibrate = false
	}
}

// CurrentValue returns the last raw reading.
func (a *AnalogInput) CurrentValue() float32 { return a.currentValue }

// HasChanged reports whether the last read moved by more than the read threshold.
func (a *AnalogInput) HasChanged() bool { return a.hasChanged }

// Position returns the last reading's place in the calibrated interval, in [0,1].
// A degenerate interval yields 0.
func (a *AnalogInput) Position() float32 {
	span := a.maxValue - a.minValue
	if span <= 0 {
		return 0
	}
	t := (a.currentValue - a.minValue) / span
	if !isFinite(t) {
		return 0
	}
	return clampf(t, 0, 1)
}

// CurrentValueMapped rescales the last reading from the calibrated interval into
// the target range. The result always lies within the range; a degenerate
// interval returns the range's low bound.
func (a *AnalogInput) CurrentValueMapped() float32 {
	if a.maxValue-a.minValue <= 0 {
		return a.valueRange.Low
	}
	return a.valueRange.Lerp(a.Position())
}

// ValueRange returns the calibrated raw bounds, not the physical range.
func (a *AnalogInput) ValueRange() (float32, float32) {
	return a.minValue, a.maxValue
}

// TargetRange returns the physical range readings are mapped into.
func (a *AnalogInput) TargetRange() Range { return a.valueRange }

func (a *AnalogInput) Channel() int { return a.channel }

func (a *AnalogInput) ReadThreshold() float32 { return a.readThreshold }

// Calibrating reports whether the bounds are still being learned.
func (a *AnalogInput) Calibrating() bool { return a.calibrate }

// Reads counts completed reads.
func (a *AnalogInput) Reads() int { return a.reads }

// SetBounds freezes the calibrated interval at [lo, hi] and stops calibration.
func (a *AnalogInput) SetBounds(lo float32, hi float32) {
	if lo > hi {
		lo, hi = hi, lo
	}
	a.minValue = lo
	a.maxValue = hi
	a.calibrate = false
}

// Recalibrate discards the learned bounds and starts a new calibration phase.
func (a *AnalogInput) Recalibrate() {
	a.minValue = 0
	a.maxValue = 0
	a.progress = calibrationProgress{}
	a.calibrate = true
}

func isFinite(x float32) bool {
	return !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0)
}

func maxf(a float32, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a float32, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
