// Package main provides a performance benchmarking tool for the motionchart CLI.
// It generates synthetic datasets of growing size, measures execution times of
// each command against them, treats the first successful run as cold and
// averages the rest as warm, and writes the results as CSV.
//
// Prerequisites:
// - motionchart binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory to write generated datasets and frames into
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset  string
	Command  string
	ColdTime string
	WarmTime string
}

// DatasetShape describes one generated dataset.
type DatasetShape struct {
	Name     string
	Slices   int
	Entities int
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir string
	Timeout time.Duration
	Runs    int
	Shapes  []DatasetShape
}

// benchCommand is one command line run against every dataset.
type benchCommand struct {
	Name string
	Args func(datasetPath, framesDir string) []string
}

var commands = []benchCommand{
	{Name: "inspect", Args: func(p, _ string) []string { return []string{"inspect", p, "--output", "json"} }},
	{Name: "render", Args: func(p, _ string) []string { return []string{"render", p, "--output", "svg"} }},
	{Name: "play", Args: func(p, dir string) []string {
		return []string{"play", p, "--interval", "10ms", "--output", "svg", "--frames-dir", dir}
	}},
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir: os.Args[1],
		Timeout: 5 * time.Minute,
		Runs:    4,
		Shapes: []DatasetShape{
			{Name: "small", Slices: 10, Entities: 20},
			{Name: "medium", Slices: 60, Entities: 200},
			{Name: "large", Slices: 200, Entities: 1000},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the motionchart binary exists and the work dir is usable.
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("motionchart"); err != nil {
		return fmt.Errorf("motionchart binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// generateDataset writes a dataset where every entity drifts along a smooth path.
func generateDataset(dir string, shape DatasetShape) (string, error) {
	categories := []string{"asia", "europe", "africa", "americas", "oceania"}
	data := make(map[string][]map[string]any, shape.Slices)
	for s := range shape.Slices {
		key := strconv.Itoa(1900 + s)
		records := make([]map[string]any, 0, shape.Entities)
		for e := range shape.Entities {
			phase := float64(e) / float64(shape.Entities)
			growth := float64(s) / float64(max(shape.Slices-1, 1))
			records = append(records, map[string]any{
				"id":         fmt.Sprintf("E%04d", e),
				"label":      fmt.Sprintf("Entity %d", e),
				"xMetric":    math.Round(500 * math.Pow(100, phase*0.5+growth*0.5)),
				"yMetric":    40 + 40*growth*(0.5+0.5*math.Sin(phase*math.Pi)),
				"sizeMetric": math.Round(1e6 * (1 + 1000*phase) * (1 + growth)),
				"category":   categories[e%len(categories)],
			})
		}
		data[key] = records
	}

	path := filepath.Join(dir, shape.Name+".json")
	b, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, b, 0o644)
}

// runBenchmarks executes all benchmark commands across the generated datasets
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, %d runs\n",
		len(config.Shapes), config.Timeout, config.Runs)

	for _, shape := range config.Shapes {
		fmt.Printf("Benchmarking %s (%d slices x %d entities)\n", shape.Name, shape.Slices, shape.Entities)
		datasetPath, err := generateDataset(config.WorkDir, shape)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", shape.Name, err)
		}
		for _, c := range commands {
			results = append(results, runBenchmarkSuite(config, shape.Name, datasetPath, c))
		}
	}

	return results, nil
}

// runBenchmarkSuite runs one command repeatedly against one dataset
func runBenchmarkSuite(config BenchmarkConfig, name, datasetPath string, c benchCommand) BenchmarkResult {
	fmt.Printf("  %s (%d runs)\n", c.Name, config.Runs)

	coldTime, warmTimes := runBenchmark(config, datasetPath, c)

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}
	warmAvg := "TIMEOUT"
	if len(warmTimes) > 0 {
		var sum float64
		for _, t := range warmTimes {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(warmTimes)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:  name,
		Command:  c.Name,
		ColdTime: coldTimeStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes a motionchart command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, datasetPath string, c benchCommand) (coldTime float64, warmTimes []float64) {
	var times []float64
	for run := 1; run <= config.Runs; run++ {
		framesDir, err := os.MkdirTemp(config.WorkDir, "frames-*")
		if err != nil {
			continue
		}

		start := time.Now()
		cmd := exec.Command("motionchart", c.Args(datasetPath, framesDir)...)
		cmd.Env = append(os.Environ(), "MOTIONCHART_COLOR=no")

		done := make(chan error, 1)
		go func() {
			_, cmdErr := cmd.Output()
			done <- cmdErr
		}()

		select {
		case cmdErr := <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
		_ = os.RemoveAll(framesDir)
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/motionchart_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"dataset", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, c := range commands {
		fmt.Printf("%s:\n", c.Name)
		for _, result := range results {
			if result.Command == c.Name {
				fmt.Printf("  %-8s: Cold: %s, Warm: %s\n", result.Dataset, result.ColdTime, result.WarmTime)
			}
		}
	}
}
