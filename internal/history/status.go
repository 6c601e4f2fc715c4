package history

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/huangsam/rvss/schema"
)

// PrintStatus prints history status information.
func PrintStatus(w io.Writer, status schema.HistoryStatus) {
	_, _ = fmt.Fprintf(w, "History Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		_, _ = fmt.Fprintf(w, "Last Run ID: %s\n", status.LastRunID)
		_, _ = fmt.Fprintf(w, "Last Run: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Oldest Run: %s\n", status.OldestRunTime.Format("2006-01-02 15:04:05"))
	}
	_, _ = fmt.Fprintf(w, "Total Scores: %d\n", status.TotalScores)
	if len(status.SystemCounts) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w, "Scores by System:")
	for _, name := range slices.Sorted(maps.Keys(status.SystemCounts)) {
		_, _ = fmt.Fprintf(w, "  %s: %d\n", name, status.SystemCounts[name])
	}
}
