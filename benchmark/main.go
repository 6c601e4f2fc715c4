// Package main provides a performance benchmarking tool for the rvss CLI.
// It generates vector files of increasing size, scores each of them with
// `rvss batch` several times, treating the first successful run as cold and
// averaging the rest as warm, and writes a CSV for performance analysis.
//
// Prerequisites:
// - rvss binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where vector files and the history database are created
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// sampleVectors cycles through every built-in system, including one invalid vector.
var sampleVectors = []string{
	"RVSS:1.0/AV:AN/AC:L/PR:N/UI:N/Y:O/S:U/C:N/I:L/A:N/H:H",
	"CVSS:3.0/AV:A/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H",
	"CVSS:2.0/AV:L/AC:M/Au:N/C:N/I:P/A:C/E:POC/RL:W/RC:UR/CDP:LM/TD:H/CR:M/IR:L/AR:H",
	"CVSS:3.0/AV:L/AC:L/PR:H/UI:R/S:U/C:H/I:N/A:H/MPR:N",
	"CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H",
	"AV:N/AC:L/Au:N/C:C/I:C/A:C",
	"CVSS:3.1/AV:Z",
}

// BenchmarkResult holds the result of a benchmark run (no-history average, cold run and average of warm runs).
type BenchmarkResult struct {
	Vectors       int
	Workers       int
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	Workers       []int
	NoHistoryRuns int
	HistoryRuns   int
	Sizes         []int
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:       os.Args[1],
		Timeout:       5 * time.Minute,
		Workers:       []int{1, 4, 14},
		NoHistoryRuns: 3,
		HistoryRuns:   4,
		Sizes:         []int{1_000, 10_000, 100_000},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the rvss binary and the work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("rvss"); err != nil {
		return fmt.Errorf("rvss binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work dir %s: %w", config.WorkDir, err)
	}
	return nil
}

// writeVectorFile writes n vectors to a file in the work directory and returns its path
func writeVectorFile(config BenchmarkConfig, n int) (string, error) {
	var b strings.Builder
	b.WriteString("# generated by the rvss benchmark\n")
	for i := range n {
		b.WriteString(sampleVectors[i%len(sampleVectors)])
		b.WriteByte('\n')
	}
	path := filepath.Join(config.WorkDir, fmt.Sprintf("vectors_%d.vec", n))
	return path, os.WriteFile(path, []byte(b.String()), 0o644)
}

// runBenchmarks executes all benchmark suites across configured sizes and worker counts
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d sizes, %v timeout, workers %v, no-history: %d runs, history: %d runs\n",
		len(config.Sizes), config.Timeout, config.Workers, config.NoHistoryRuns, config.HistoryRuns)

	for _, size := range config.Sizes {
		path, err := writeVectorFile(config, size)
		if err != nil {
			fmt.Printf("Skipping %d vectors: %v\n", size, err)
			continue
		}
		for _, workers := range config.Workers {
			results = append(results, runBenchmarkSuite(config, path, size, workers))
		}
	}

	return results
}

// runBenchmarkSuite runs both no-history and history benchmarks for one file
func runBenchmarkSuite(config BenchmarkConfig, path string, size, workers int) BenchmarkResult {
	fmt.Printf("Running batch on %d vectors with %d workers\n", size, workers)

	// Helper to run a benchmark phase
	runPhase := func(record bool, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, path, workers, record, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-history runs
	_, noHistoryAvg := runPhase(false, config.NoHistoryRuns, "No-history")

	// Phase 2: Runs recorded in a SQLite history store
	coldTime, warmAvg := runPhase(true, config.HistoryRuns, "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Vectors:       size,
		Workers:       workers,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes rvss batch multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, path string, workers int, record bool, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{"batch", path, "--workers", fmt.Sprint(workers), "--limit", "10", "--color", "no"}
	if record {
		args = append(args, "--record", "--history-backend", "sqlite",
			"--history-db-connect", filepath.Join(config.WorkDir, "history.db"))
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("rvss", args...)

		done := make(chan bool, 1)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Scored") &&
		strings.Contains(outputStr, "with") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/rvss_benchmark_%s.csv", timestamp)

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

	// Write header
	if err := writer.Write([]string{"vectors", "workers", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		row := []string{fmt.Sprint(result.Vectors), fmt.Sprint(result.Workers), result.NoHistoryTime, result.ColdTime, result.WarmTime}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %7d vectors, %2d workers: No-history: %s, Cold: %s, Warm: %s\n",
			result.Vectors, result.Workers, result.NoHistoryTime, result.ColdTime, result.WarmTime)
	}
}
