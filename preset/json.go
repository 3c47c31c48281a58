package preset

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/cwbudde/algo-dss/params"
	"github.com/cwbudde/algo-dss/sensor"
)

// File is the JSON schema for control-layer presets.
type File struct {
	Calibration *CalibrationSetting         `json:"calibration,omitempty"`
	Parameters  map[string]ParameterSetting `json:"parameters,omitempty"`
}

// CalibrationSetting overrides the calibration policy of every input.
type CalibrationSetting struct {
	Reads       *int     `json:"reads,omitempty"`
	StableReads *int     `json:"stable_reads,omitempty"`
	Epsilon     *float32 `json:"epsilon,omitempty"`
	MinSpan     *float32 `json:"min_span,omitempty"`
}

// ParameterSetting is a partial override for one parameter.
type ParameterSetting struct {
	Value         *float32    `json:"value,omitempty"`
	Range         *[2]float32 `json:"range,omitempty"`
	Behaviour     *string     `json:"behaviour,omitempty"`
	Exponent      *float32    `json:"exponent,omitempty"`
	ReadThreshold *float32    `json:"read_threshold,omitempty"`
}

// LoadJSON loads a preset file and applies it on top of the default table.
func LoadJSON(path string) (params.Config, error) {
	cfg := params.DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := ApplyFile(&cfg, &f); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ApplyFile applies a parsed preset onto an existing config.
func ApplyFile(dst *params.Config, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination config")
	}
	if f == nil {
		return nil
	}

	if c := f.Calibration; c != nil {
		for i := range dst {
			if err := applyCalibration(&dst[i].Calibration, c); err != nil {
				return err
			}
		}
	}

	keys := make([]string, 0, len(f.Parameters))
	for k := range f.Parameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		name, ok := params.ParseName(k)
		if !ok {
			return fmt.Errorf("unknown parameter %q", k)
		}
		if err := applyParameter(&dst[name], f.Parameters[k]); err != nil {
			return fmt.Errorf("parameters.%s: %w", k, err)
		}
	}
	return nil
}

func applyCalibration(dst *sensor.Calibration, c *CalibrationSetting) error {
	if c.Reads != nil {
		if *c.Reads < 0 {
			return fmt.Errorf("calibration.reads must be >= 0")
		}
		dst.Reads = *c.Reads
	}
	if c.StableReads != nil {
		if *c.StableReads < 0 {
			return fmt.Errorf("calibration.stable_reads must be >= 0")
		}
		dst.StableReads = *c.StableReads
	}
	if c.Epsilon != nil {
		if !finite(*c.Epsilon) || *c.Epsilon < 0 {
			return fmt.Errorf("calibration.epsilon must be >= 0")
		}
		dst.Epsilon = *c.Epsilon
	}
	if c.MinSpan != nil {
		if !finite(*c.MinSpan) || *c.MinSpan < 0 {
			return fmt.Errorf("calibration.min_span must be >= 0")
		}
		dst.MinSpan = *c.MinSpan
	}
	return nil
}

func applyParameter(dst *params.Spec, s ParameterSetting) error {
	if s.Value != nil {
		if !finite(*s.Value) {
			return fmt.Errorf("value must be finite")
		}
		dst.Value = *s.Value
	}
	if s.Range != nil {
		lo, hi := s.Range[0], s.Range[1]
		if !finite(lo) || !finite(hi) {
			return fmt.Errorf("range must be finite")
		}
		if lo == hi {
			return fmt.Errorf("range must not be empty")
		}
		dst.Range = sensor.Range{Low: lo, High: hi}
	}
	if s.Behaviour != nil {
		kind, err := params.ParseBehaviourKind(*s.Behaviour)
		if err != nil {
			return err
		}
		dst.Behaviour.Kind = kind
		if dst.Behaviour.Exponent <= 0 {
			dst.Behaviour.Exponent = 1
		}
	}
	if s.Exponent != nil {
		if !finite(*s.Exponent) || *s.Exponent <= 0 {
			return fmt.Errorf("exponent must be > 0")
		}
		dst.Behaviour.Exponent = *s.Exponent
	}
	if s.ReadThreshold != nil {
		if !finite(*s.ReadThreshold) || *s.ReadThreshold < 0 {
			return fmt.Errorf("read_threshold must be >= 0")
		}
		dst.ReadThreshold = *s.ReadThreshold
	}
	return nil
}

// WriteJSON writes f with stable indentation, creating parent directories.
func WriteJSON(path string, f *File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}

func finite(x float32) bool {
	return !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0)
}
