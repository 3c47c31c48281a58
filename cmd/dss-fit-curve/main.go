package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/cwbudde/algo-dss/params"
	"github.com/cwbudde/algo-dss/preset"
	"github.com/cwbudde/algo-dss/sensor"
	"github.com/cwbudde/mayfly"
)

func main() {
	presetPath := flag.String("preset", "", "Optional preset JSON for the fixed string parameters")
	low := flag.Float64("low", 0, "Length range low in m (0 uses the preset)")
	high := flag.Float64("high", 0, "Length range high in m (0 uses the preset)")
	target := flag.String("target", "exp", "Target sweep: exp (equal-tempered) or lin (linear in Hz)")
	sampleRate := flag.Int("sample-rate", 44100, "Simulation sample rate in Hz")
	points := flag.Int("points", 33, "Control positions scored per candidate")
	minExp := flag.Float64("min-exp", 0.25, "Smallest exponent searched")
	maxExp := flag.Float64("max-exp", 4.0, "Largest exponent searched")
	maxEvals := flag.Int("evals", 400, "Maximum objective evaluations")
	mayflyVariant := flag.String("mayfly-variant", "desma", "Mayfly variant: ma|desma|olce|eobbma|gsasma|mpma|aoblmoa")
	mayflyPop := flag.Int("mayfly-pop", 8, "Male and female population size per Mayfly run")
	mayflyRoundEvals := flag.Int("mayfly-round-evals", 120, "Target eval budget per Mayfly round")
	seed := flag.Int64("seed", 1, "Random seed")
	outputPreset := flag.String("output-preset", "", "Optional path to write a preset with the fitted L curve")
	flag.Parse()

	if *mayflyPop < 2 {
		*mayflyPop = 2
	}
	if *mayflyRoundEvals < *mayflyPop*2 {
		*mayflyRoundEvals = *mayflyPop * 2
	}
	if *minExp <= 0 || *maxExp <= *minExp {
		die("invalid exponent bounds [%g,%g]", *minExp, *maxExp)
	}

	cfg := params.DefaultConfig()
	if *presetPath != "" {
		var err error
		cfg, err = preset.LoadJSON(*presetPath)
		if err != nil {
			die("Error loading preset %q: %v", *presetPath, err)
		}
	}
	rng := cfg[params.L].Range
	if *low > 0 {
		rng.Low = float32(*low)
	}
	if *high > 0 {
		rng.High = float32(*high)
	}
	base := params.NewWithConfig(cfg).DSSParameters()

	fit, err := newCurveFit(base, rng, *sampleRate, *points, strings.ToLower(*target))
	if err != nil {
		die("invalid fit setup: %v", err)
	}
	fmt.Printf("Fitting L pitch curve over [%g,%g] m: f0 %.2f Hz -> %.2f Hz, target=%s\n",
		rng.Low, rng.High, fit.f0, fit.f1, fit.target)

	bestExp := 1.0
	bestErr, err := fit.errorCents(bestExp)
	if err != nil {
		die("initial evaluation failed: %v", err)
	}
	fmt.Printf("Initial exponent=%.4f error=%.3f cents\n", bestExp, bestErr)

	start := time.Now()
	evals := 1
	round := 0
	for evals < *maxEvals {
		round++
		budget := minInt(*mayflyRoundEvals, *maxEvals-evals)
		iters := maxInt(1, budget/(2*(*mayflyPop)))

		mcfg, err := exponentSearch(strings.ToLower(*mayflyVariant), *mayflyPop, iters)
		if err != nil {
			die("invalid mayfly variant: %v", err)
		}
		mcfg.Rand = rand.New(rand.NewSource(*seed + int64(round)*7919))
		mcfg.ObjectiveFunc = func(pos []float64) float64 {
			if evals >= *maxEvals {
				return bestErr + 1.0
			}
			e := exponentFromNorm(pos[0], *minExp, *maxExp)
			cents, err := fit.errorCents(e)
			evals++
			if err != nil {
				return bestErr + 100.0
			}
			if cents < bestErr {
				bestErr = cents
				bestExp = e
				fmt.Printf("Improved eval=%d exponent=%.4f error=%.3f cents\n", evals, bestExp, bestErr)
			}
			return cents
		}

		if err := searchRound(mcfg); err != nil {
			fmt.Fprintf(os.Stderr, "mayfly round %d failed: %v\n", round, err)
			// A failing variant would loop forever without consuming evals.
			break
		}
	}

	fmt.Printf("Done evals=%d rounds=%d elapsed=%.1fs exponent=%.4f error=%.3f cents\n",
		evals, round, time.Since(start).Seconds(), bestExp, bestErr)

	if *outputPreset != "" {
		if err := preset.WriteJSON(*outputPreset, fittedPreset(rng, bestExp)); err != nil {
			die("failed to write preset: %v", err)
		}
		fmt.Printf("Wrote %s\n", *outputPreset)
	}
}

// fittedPreset captures the fitted curve as a partial preset for the L input.
func fittedPreset(rng sensor.Range, exponent float64) *preset.File {
	kind := params.Pitch.String()
	e := float32(exponent)
	r := [2]float32{rng.Low, rng.High}
	return &preset.File{Parameters: map[string]preset.ParameterSetting{
		params.L.String(): {Range: &r, Behaviour: &kind, Exponent: &e},
	}}
}

var mayflyVariants = map[string]func() *mayfly.Config{
	"ma":      mayfly.NewDefaultConfig,
	"desma":   mayfly.NewDESMAConfig,
	"olce":    mayfly.NewOLCEConfig,
	"eobbma":  mayfly.NewEOBBMAConfig,
	"gsasma":  mayfly.NewGSASMAConfig,
	"mpma":    mayfly.NewMPMAConfig,
	"aoblmoa": mayfly.NewAOBLMOAConfig,
}

// exponentSearch configures one Mayfly round over the normalized exponent axis.
func exponentSearch(variant string, pop int, iters int) (*mayfly.Config, error) {
	newConfig, ok := mayflyVariants[variant]
	if !ok {
		names := make([]string, 0, len(mayflyVariants))
		for k := range mayflyVariants {
			names = append(names, k)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unsupported variant %q (want one of %s)", variant, strings.Join(names, ", "))
	}
	cfg := newConfig()
	cfg.ProblemSize = 1
	cfg.LowerBound, cfg.UpperBound = 0, 1
	cfg.MaxIterations = iters
	cfg.NPop, cfg.NPopF = pop, pop
	cfg.NC = 2 * pop
	cfg.NM = maxInt(1, int(math.Round(0.05*float64(pop))))
	return cfg, nil
}

// searchRound runs one round; optimizer panics are reported as errors.
func searchRound(cfg *mayfly.Config) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mayfly panic: %v", r)
		}
	}()
	_, err = mayfly.Optimize(cfg)
	return err
}

func minInt(a int, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a int, b int) int {
	if a > b {
		return a
	}
	return b
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
