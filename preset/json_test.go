package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-dss/params"
	"github.com/cwbudde/algo-dss/sensor"
)

func writePreset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preset.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}
	return path
}

func TestLoadJSONAppliesCalibrationAndParameters(t *testing.T) {
	path := writePreset(t, `{
  "calibration": {"reads": 2048, "stable_reads": 256, "min_span": 0.1},
  "parameters": {
    "sigma1": {"range": [0.0002, 0.08], "behaviour": "correction", "exponent": 2},
    "rho": {"read_threshold": 0.01},
    "loc": {"value": 0.5}
  }
}`)

	cfg, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	for i := range cfg {
		c := cfg[i].Calibration
		if c.Reads != 2048 || c.StableReads != 256 || c.MinSpan != 0.1 {
			t.Fatalf("%s: calibration not applied: %+v", cfg[i].Name, c)
		}
		if c.Epsilon != sensor.DefaultCalibration().Epsilon {
			t.Fatalf("%s: untouched epsilon changed: %f", cfg[i].Name, c.Epsilon)
		}
	}

	s1 := cfg[params.Sigma1]
	if s1.Range != (sensor.Range{Low: 0.0002, High: 0.08}) {
		t.Fatalf("sigma1 range mismatch: %+v", s1.Range)
	}
	if s1.Behaviour != params.CorrectionBehaviour(2) {
		t.Fatalf("sigma1 behaviour mismatch: %+v", s1.Behaviour)
	}
	if s1.Value != 0.005 {
		t.Fatalf("sigma1 value should keep default, got %f", s1.Value)
	}
	if cfg[params.Rho].ReadThreshold != 0.01 {
		t.Fatalf("rho threshold mismatch: %f", cfg[params.Rho].ReadThreshold)
	}
	if cfg[params.Loc].Value != 0.5 {
		t.Fatalf("loc value mismatch: %f", cfg[params.Loc].Value)
	}
	gotL := cfg[params.L]
	gotL.Calibration = sensor.DefaultCalibration()
	if gotL != params.DefaultConfig()[params.L] {
		t.Fatalf("L changed beyond calibration: %+v", cfg[params.L])
	}

	reg := params.NewWithConfig(cfg)
	if reg.Get(params.Loc).Value() != 0.5 {
		t.Fatalf("registry did not pick up loc override")
	}
}

func TestBehaviourWithoutExponentKeepsValidExponent(t *testing.T) {
	cfg := params.DefaultConfig()
	cfg[params.T].Behaviour = params.Behaviour{}
	name := "spray"
	if err := ApplyFile(&cfg, &File{Parameters: map[string]ParameterSetting{"T": {Behaviour: &name}}}); err != nil {
		t.Fatalf("ApplyFile: %v", err)
	}
	if cfg[params.T].Behaviour != params.SprayBehaviour(1) {
		t.Fatalf("expected spray(1), got %+v", cfg[params.T].Behaviour)
	}
}

func TestLoadJSONRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown parameter", `{"parameters": {"kappa": {"value": 1}}}`},
		{"unknown behaviour", `{"parameters": {"L": {"behaviour": "wobble"}}}`},
		{"empty range", `{"parameters": {"T": {"range": [300, 300]}}}`},
		{"zero exponent", `{"parameters": {"L": {"exponent": 0}}}`},
		{"negative threshold", `{"parameters": {"E": {"read_threshold": -0.1}}}`},
		{"negative reads", `{"calibration": {"reads": -1}}`},
		{"negative min span", `{"calibration": {"min_span": -0.5}}`},
		{"malformed json", `{"parameters": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadJSON(writePreset(t, tt.content)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadJSONMissingFile(t *testing.T) {
	if _, err := LoadJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing preset")
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	exp := float32(1.35)
	kind := "pitch"
	path := filepath.Join(t.TempDir(), "out", "fit.json")
	if err := WriteJSON(path, &File{Parameters: map[string]ParameterSetting{
		"L": {Behaviour: &kind, Exponent: &exp},
	}}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	cfg, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if cfg[params.L].Behaviour != params.PitchBehaviour(1.35) {
		t.Fatalf("round trip mismatch: %+v", cfg[params.L].Behaviour)
	}
}
