package history

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/rvss/internal/contract"
	"github.com/huangsam/rvss/internal/parquet"
)

// Export writes all runs and scores of store to Parquet files next to outputFile.
// It returns the paths it wrote.
func Export(store contract.HistoryStore, outputFile string, w io.Writer) ([]string, error) {
	if outputFile == "" {
		return nil, errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return nil, errors.New("no history data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total scores: %d\n", status.TotalScores)

	runs, err := store.GetAllRuns()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve runs: %w", err)
	}
	scores, err := store.GetAllScores()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve scores: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquet.ConvertRunRecords(runs), runsFile); err != nil {
		return nil, fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(runs), runsFile)

	scoresFile := outputFile + ".scores.parquet"
	if err := parquet.WriteScoresParquet(parquet.ConvertScoreRecords(scores), scoresFile); err != nil {
		return nil, fmt.Errorf("failed to write scores: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d scores to: %s\n", len(scores), scoresFile)

	return []string{runsFile, scoresFile}, nil
}
