package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cwbudde/algo-dss/analysis"
	"github.com/cwbudde/algo-dss/control"
	"github.com/cwbudde/algo-dss/dss"
	"github.com/cwbudde/algo-dss/params"
	"github.com/pterm/pterm"
)

type trajectoryRow struct {
	block int
	frame int
	p     dss.SimulationParameters
}

// trajectory collects every vector the controller emitted.
type trajectory struct {
	rows []trajectoryRow
}

func (t *trajectory) add(block int, frame int, p dss.SimulationParameters) {
	t.rows = append(t.rows, trajectoryRow{block: block, frame: frame, p: p})
}

// sampledFrame is the capture frame the controller read for block.
func sampledFrame(block int, blockFrames int, policy control.FramePolicy) int {
	frame := block * blockFrames
	if policy == control.FrameLast {
		frame += blockFrames - 1
	}
	return frame
}

func (t *trajectory) writeCSV(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"block", "frame"}
	for _, n := range params.CanonicalOrder() {
		header = append(header, n.String())
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range t.rows {
		rec := []string{strconv.Itoa(r.block), strconv.Itoa(r.frame)}
		for _, v := range r.p.Vector() {
			rec = append(rec, strconv.FormatFloat(float64(v), 'g', -1, 32))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func parameterTable(reg *params.Parameters) pterm.TableData {
	data := pterm.TableData{{"Name", "Channel", "Raw min", "Raw max", "Calibrating", "Reads", "Value"}}
	for n := params.Name(0); int(n) < params.NumNames; n++ {
		p := reg.Get(n)
		in := p.Input()
		lo, hi := in.ValueRange()
		data = append(data, []string{
			n.String(),
			strconv.Itoa(p.Channel()),
			fmt.Sprintf("%.4f", lo),
			fmt.Sprintf("%.4f", hi),
			strconv.FormatBool(in.Calibrating()),
			strconv.Itoa(in.Reads()),
			fmt.Sprintf("%g", p.Value()),
		})
	}
	return data
}

func stillCalibrating(reg *params.Parameters) int {
	n := 0
	for name := params.Name(0); int(name) < params.NumNames; name++ {
		if reg.Get(name).Input().Calibrating() {
			n++
		}
	}
	return n
}

// jitterTable lists per-channel noise next to the configured threshold.
// Channels without a parameter are reported with "-".
func jitterTable(reg *params.Parameters, rms []float64) pterm.TableData {
	data := pterm.TableData{{"Channel", "Name", "Jitter RMS", "Suggested", "Configured"}}
	for c, v := range rms {
		name, configured := "-", "-"
		if c < params.NumNames {
			n := params.Name(c)
			name = n.String()
			configured = fmt.Sprintf("%.4f", reg.Get(n).Input().ReadThreshold())
		}
		data = append(data, []string{
			strconv.Itoa(c),
			name,
			fmt.Sprintf("%.5f", v),
			fmt.Sprintf("%.4f", analysis.SuggestThreshold(v)),
			configured,
		})
	}
	return data
}
