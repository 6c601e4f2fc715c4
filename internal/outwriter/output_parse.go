package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/rvss/internal/contract"
	"github.com/huangsam/rvss/schema"
	"github.com/olekukonko/tablewriter"
)

// WriteParseResult outputs a parsed vector, dispatching based on the output format configured.
func WriteParseResult(result schema.ParseResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut, schema.YAMLOut:
		return writeStructured(cfg, result)
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricRowsCSV(w, result.Metrics)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported for scores")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeParseTable(w, result, fmtFloat)
		}, "Wrote table")
	}
}

func writeParseTable(w io.Writer, result schema.ParseResult, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "System: %s\nCanonical: %s\n", result.System, result.Canonical); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Code", "Metric", "Group", "Value", "Weight", "Default"})

	var data [][]string
	for _, m := range result.Metrics {
		def := ""
		if m.Default {
			def = "yes"
		}
		data = append(data, []string{
			m.Code,
			m.Title,
			string(m.Group),
			fmt.Sprintf("%s (%s)", m.ValueTitle, m.Token),
			fmtFloat(m.Weight),
			def,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeMetricRowsCSV writes resolved metrics in CSV format.
// Weights keep full precision since they are formula inputs.
func writeMetricRowsCSV(w io.Writer, rows []schema.MetricRow) error {
	header := []string{"code", "name", "title", "group", "token", "value", "weight", "default"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, m := range rows {
			rec := []string{
				m.Code,
				m.Name,
				m.Title,
				string(m.Group),
				m.Token,
				m.ValueTitle,
				strconv.FormatFloat(m.Weight, 'f', -1, 64),
				strconv.FormatBool(m.Default),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
