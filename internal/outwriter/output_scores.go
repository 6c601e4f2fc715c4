package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/rvss/internal/contract"
	"github.com/huangsam/rvss/internal/parquet"
	"github.com/huangsam/rvss/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteScoreResults outputs scored vectors, dispatching based on the output format configured.
func WriteScoreResults(results []schema.ScoreResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut, schema.YAMLOut:
		if err := writeStructured(cfg, results); err != nil {
			return fmt.Errorf("error writing %s output: %w", cfg.Output, err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoresCSV(w, results, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		rows, err := parquet.ConvertScoreResults(results, time.Now())
		if err != nil {
			return err
		}
		if err := parquet.WriteScoresParquet(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		_, _ = fmt.Fprintf(stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoresTable(w, results, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
	return nil
}

// scoreCells returns the Base, Temporal and Environmental cells of a result.
// User-defined systems show their result in the Base cell.
func scoreCells(r schema.ScoreResult, fmtFloat func(float64) string) (string, string, string) {
	switch {
	case r.Error != "":
		return "-", "-", "-"
	case r.Custom != nil:
		return formatCustom(r.Custom, fmtFloat), "-", "-"
	default:
		return fmtFloat(r.Base), fmtFloat(r.Temporal), fmtFloat(r.Environmental)
	}
}

// writeScoresTable generates and writes the human-readable table.
func writeScoresTable(w io.Writer, results []schema.ScoreResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"#", "Vector", "System", "Base", "Temporal", "Env", "Severity"}
	if cfg.Explain {
		headers = append(headers, "Explain")
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := GetMaxTableVectorWidth(cfg)
	var data [][]string
	failed := 0
	for i, r := range results {
		vector := r.Vector
		severity := severityLabel(cfg, r.Severity)
		if r.Error != "" {
			vector = r.Source
			severity = "Error"
			failed++
		}
		base, temporal, env := scoreCells(r, fmtFloat)
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateVector(vector, maxWidth),
			r.System,
			base,
			temporal,
			env,
			severity,
		}
		if cfg.Explain {
			row = append(row, formatBreakdown(r.Breakdown))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for i, r := range results {
		if r.Error == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "  #%d %s: %s\n", i+1, r.Source, r.Error); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Scored %d vectors (%d failed) in %v with %d workers. History backend: %s\n",
		len(results), failed, duration, cfg.Workers, cfg.HistoryBackend); err != nil {
		return err
	}
	return nil
}

// writeScoresCSV writes scored vectors in CSV format.
func writeScoresCSV(w io.Writer, results []schema.ScoreResult, fmtFloat func(float64) string) error {
	header := []string{"rank", "vector", "system", "base", "temporal", "environmental", "severity", "custom", "breakdown", "error"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, r := range results {
			vector := r.Vector
			if vector == "" {
				vector = r.Source
			}
			custom := ""
			if r.Custom != nil {
				custom = formatCustom(r.Custom, fmtFloat)
			}
			base, temporal, env := "", "", ""
			if r.Error == "" && r.Custom == nil {
				base, temporal, env = fmtFloat(r.Base), fmtFloat(r.Temporal), fmtFloat(r.Environmental)
			}
			rec := []string{
				strconv.Itoa(i + 1),
				vector,
				r.System,
				base,
				temporal,
				env,
				string(r.Severity),
				custom,
				formatBreakdown(r.Breakdown),
				r.Error,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
