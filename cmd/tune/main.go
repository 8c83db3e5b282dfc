// Package main tunes the positional correction parameters with CMA-ES,
// scoring resting penetration and jitter over a set of settling scenarios.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/rigid/config"
)

// EvalRecord is one row of the evaluation log.
type EvalRecord struct {
	Eval        int     `csv:"eval"`
	Fitness     float64 `csv:"fitness"`
	Percent     float64 `csv:"correction_percent"`
	Slop        float64 `csv:"correction_slop"`
	Penetration float64 `csv:"rest_penetration"`
	Speed       float64 `csv:"rest_speed"`
	Failed      int     `csv:"failed_scenarios"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	ticks := flag.Int("ticks", 600, "Simulation ticks per scenario run")
	maxEvals := flag.Int("max-evals", 100, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	scenarios, err := loadScenarios()
	if err != nil {
		log.Fatalf("failed to load scenarios: %v", err)
	}

	params := NewParamVector()
	evaluator := NewFitnessEvaluator(params, int32(*ticks), scenarios, baseCfg)

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	popSize := *population
	if popSize == 0 {
		// Auto-size: 4 + floor(3*ln(n))
		popSize = 4 + int(3*math.Log(float64(dim)))
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // scenarios already run in parallel
	}

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := math.Inf(1)
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			// Clamp to get the values actually used
			clamped := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(clamped)
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			results := evaluator.LastResults()
			rec := EvalRecord{
				Eval:        evalCount,
				Fitness:     fitness,
				Percent:     clamped[0],
				Slop:        clamped[1],
				Penetration: results["rest"].penetration,
				Speed:       results["rest"].speed,
			}
			for _, r := range results {
				if r.failed {
					rec.Failed++
				}
			}
			if err := writeRecord(logFile, rec, evalCount == 1); err != nil {
				log.Printf("failed to log evaluation: %v", err)
			}

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(*maxEvals-evalCount) * avgPerEval
			fmt.Printf("Eval %d/%d: fitness=%.5f percent=%.3f slop=%.4f (best=%.5f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, fitness, clamped[0], clamped[1], bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	fmt.Printf("Starting CMA-ES tuning with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Scenarios per evaluation: %d, ticks per run: %d\n", len(scenarioNames), *ticks)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	// Use best params found (may be from any evaluation, not just final)
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.5f\n", bestFitness)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Path, bestParams[i])
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}

// writeRecord appends one row to the log, with the header on the first row.
func writeRecord(f *os.File, rec EvalRecord, header bool) error {
	rows := []EvalRecord{rec}
	if header {
		return gocsv.Marshal(rows, f)
	}
	return gocsv.MarshalWithoutHeaders(rows, f)
}
