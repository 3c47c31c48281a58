package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"

	"github.com/cwbudde/algo-dss/analysis"
	"github.com/cwbudde/algo-dss/control"
	"github.com/cwbudde/algo-dss/dss"
	"github.com/cwbudde/algo-dss/hw"
	"github.com/cwbudde/algo-dss/params"
	"github.com/cwbudde/algo-dss/preset"
	"github.com/pterm/pterm"
)

func main() {
	capturePath := flag.String("capture", "capture.wav", "Multichannel capture WAV path")
	presetPath := flag.String("preset", "", "Optional preset JSON overriding the default parameter table")
	blockFrames := flag.Int("block", 16, "Analog frames per control block")
	analogRate := flag.Int("analog-rate", 0, "Resample capture to this analog rate in Hz (0 keeps the file rate)")
	smoothHz := flag.Float64("smooth-hz", 0, "Optional front-end lowpass cutoff in Hz applied before replay (0 disables)")
	frameLast := flag.Bool("frame-last", false, "Sample the last frame of each block instead of the first")
	csvPath := flag.String("csv", "", "Optional CSV path for every emitted simulation vector")
	jitter := flag.Bool("jitter", false, "Report per-channel jitter and suggested read thresholds")
	fftSize := flag.Int("fft-size", analysis.DefaultFFTSize, "FFT frame length for -jitter")
	flag.Parse()

	cfg := params.DefaultConfig()
	if *presetPath != "" {
		var err error
		cfg, err = preset.LoadJSON(*presetPath)
		if err != nil {
			die("Error loading preset %q: %v", *presetPath, err)
		}
	}

	rec, err := hw.LoadCapture(*capturePath, *analogRate)
	if err != nil {
		die("failed to load capture: %v", err)
	}
	if *smoothHz > 0 {
		if err := rec.Smooth(*smoothHz, math.Sqrt2/2); err != nil {
			die("invalid -smooth-hz: %v", err)
		}
	}
	if rec.NumChannels() < params.NumNames {
		pterm.Warning.Printf("capture has %d channels, %d parameters expected; missing channels read 0\n",
			rec.NumChannels(), params.NumNames)
	}
	pterm.Info.Printf("Replaying %s: %d channels, %d frames at %d Hz, block %d\n",
		*capturePath, rec.NumChannels(), rec.Frames(), rec.SampleRate(), *blockFrames)

	reg := params.NewWithConfig(cfg)
	policy := control.FrameFirst
	if *frameLast {
		policy = control.FrameLast
	}
	var traj trajectory
	var ctrl *control.Controller
	ctrl = control.NewController(reg, control.SinkFunc(func(p dss.SimulationParameters) {
		block := ctrl.Stats().Blocks - 1
		traj.add(block, sampledFrame(block, *blockFrames, policy), p)
	}))
	ctrl.SetFramePolicy(policy)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := ctrl.Replay(ctx, rec, *blockFrames); err != nil {
		die("replay stopped: %v", err)
	}

	st := ctrl.Stats()
	fmt.Printf("Processed %d blocks, %d simulation updates\n", st.Blocks, st.Updates)
	if err := pterm.DefaultTable.WithHasHeader().WithData(parameterTable(reg)).Render(); err != nil {
		die("render table: %v", err)
	}
	if n := stillCalibrating(reg); n > 0 {
		pterm.Warning.Printf("%d inputs are still calibrating; move every control through its full travel\n", n)
	}

	final := reg.DSSParameters()
	if err := final.Validate(); err != nil {
		pterm.Error.Printf("final vector is not simulatable: %v\n", err)
	} else {
		fmt.Printf("Final vector %v  f0=%.2f Hz\n", final.Vector(), final.Fundamental())
	}

	if *csvPath != "" {
		if err := traj.writeCSV(*csvPath); err != nil {
			die("failed to write csv: %v", err)
		}
		pterm.Success.Printf("Wrote %d updates to %s\n", len(traj.rows), *csvPath)
	}

	if *jitter {
		channels := make([][]float32, rec.NumChannels())
		for c := range channels {
			channels[c] = rec.Channel(c)
		}
		rms, err := analysis.ChannelJitter(channels, *fftSize)
		if err != nil {
			die("jitter analysis: %v", err)
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(jitterTable(reg, rms)).Render(); err != nil {
			die("render table: %v", err)
		}
	}
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
