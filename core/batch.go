package core

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/huangsam/rvss/core/algo"
	"github.com/huangsam/rvss/internal/contract"
	"github.com/huangsam/rvss/internal/outwriter"
	"github.com/huangsam/rvss/internal/telemetry"
	"github.com/huangsam/rvss/schema"
)

// vectorLine is a vector read from a batch file together with its location.
type vectorLine struct {
	Source string
	Text   string
}

// ExecuteBatch scores every vector in the files matched by the given glob patterns.
// Files hold one vector per line; blank lines and lines starting with '#' are skipped.
func ExecuteBatch(ctx context.Context, cfg *contract.Config, reg *Registry, store contract.HistoryStore, args []string) error {
	if len(args) == 0 {
		return errors.New("at least one file pattern is required")
	}
	start := time.Now()

	files, err := expandPatterns(args)
	if err != nil {
		return err
	}

	var lines []vectorLine
	for _, f := range files {
		fileLines, err := readVectors(f)
		if err != nil {
			return err
		}
		lines = append(lines, fileLines...)
	}
	if len(lines) == 0 {
		return fmt.Errorf("no vectors found in %d files", len(files))
	}

	texts := make([]string, len(lines))
	sources := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
		sources[i] = l.Source
	}
	results, err := scoreAll(ctx, cfg, reg, texts, sources)
	if err != nil {
		return err
	}

	recordRun(cfg, store, "batch", start, results)
	if cfg.MetricsFile != "" {
		if err := writeBatchMetrics(cfg.MetricsFile, results, len(files), time.Since(start)); err != nil {
			contract.LogWarn("Failed to write metrics file", err)
		}
	}

	ranked := algo.RankResults(results, cfg.ResultLimit)
	return outwriter.NewOutWriter().WriteScores(ranked, cfg, time.Since(start))
}

// expandPatterns resolves doublestar patterns to a sorted, de-duplicated file list.
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no vector files matched %s", strings.Join(patterns, ", "))
	}
	slices.Sort(files)
	return files, nil
}

// readVectors reads the vectors of one batch file.
func readVectors(path string) ([]vectorLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var lines []vectorLine
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, vectorLine{Source: fmt.Sprintf("%s:%d", path, lineNo), Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}

// scoreAll scores vectors on a pool of cfg.Workers goroutines. Results keep
// the input order. sources, when given, fills the Source field of each result.
func scoreAll(ctx context.Context, cfg *contract.Config, reg *Registry, vectors, sources []string) ([]schema.ScoreResult, error) {
	results := make([]schema.ScoreResult, len(vectors))
	indexCh := make(chan int, len(vectors))
	var wg sync.WaitGroup

	// Start worker pool
	for range max(cfg.Workers, 1) {
		wg.Go(func() {
			for i := range indexCh {
				if ctx.Err() != nil {
					continue
				}
				results[i] = reg.Score(vectors[i], cfg.Explain)
				if sources != nil {
					results[i].Source = sources[i]
				}
			}
		})
	}

	for i := range vectors {
		indexCh <- i
	}
	close(indexCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scoring interrupted: %w", err)
	}
	return results, nil
}

// writeBatchMetrics writes the Prometheus textfile for a finished batch.
func writeBatchMetrics(path string, results []schema.ScoreResult, files int, duration time.Duration) error {
	m := telemetry.NewMetrics()
	for _, res := range results {
		m.Observe(res)
	}
	m.ObserveBatch(files, duration)
	if err := m.WriteToTextfile(path); err != nil {
		return err
	}
	totals, err := m.Totals()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stderr, "📈 Wrote metrics for %d vectors (%d failed) to %s\n",
		totals[telemetry.OutcomeScored]+totals[telemetry.OutcomeFailed], totals[telemetry.OutcomeFailed], path)
	return nil
}
