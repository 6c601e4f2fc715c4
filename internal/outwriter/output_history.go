package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/rvss/internal/contract"
	"github.com/huangsam/rvss/internal/history"
	"github.com/huangsam/rvss/schema"
)

// WriteHistoryStatus outputs the history store status.
func (ow *OutWriter) WriteHistoryStatus(status schema.HistoryStatus, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut, schema.YAMLOut:
		return writeStructured(cfg, status)
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			history.PrintStatus(w, status)
			return nil
		}, "Wrote status")
	default:
		return fmt.Errorf("history status supports text, json, yaml output (received %s)", cfg.Output)
	}
}
