package sensor

// Calibration decides when an input stops learning its raw bounds.
//
// Learning stops once the observed span is at least MinSpan and either Reads
// observations have been made or the bounds have widened by no more than
// Epsilon for StableReads consecutive observations. Zero Reads and StableReads
// never stop, so the bounds keep widening for the input's lifetime.
//
// Mapping is live during calibration. A control nobody has touched yet spans
// only its sensor noise, and that noise is stretched across the whole target
// range until the control is moved end to end: a resting E knob may swing
// between its bounds. Callers that cannot tolerate this should hold the
// parameter's initial value while Calibrating is true, or freeze known bounds
// with SetBounds.
type Calibration struct {
	Reads       int
	StableReads int
	Epsilon     float32
	MinSpan     float32
}

// DefaultCalibration learns for 4096 reads, about three seconds of 16-frame
// blocks at a 22.05 kHz analog rate.
func DefaultCalibration() Calibration {
	return Calibration{
		Reads:       4096,
		StableReads: 0,
		Epsilon:     1e-4,
		MinSpan:     0.05,
	}
}

type calibrationProgress struct {
	observed int
	stable   int
}

// step records one observation and reports whether calibration has converged.
func (p *calibrationProgress) step(c Calibration, widened float32, span float32) bool {
	p.observed++
	if widened > c.Epsilon {
		p.stable = 0
	} else {
		p.stable++
	}
	if span < c.MinSpan {
		return false
	}
	if c.Reads > 0 && p.observed >= c.Reads {
		return true
	}
	return c.StableReads > 0 && p.stable >= c.StableReads
}
