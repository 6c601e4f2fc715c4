package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/rvss/internal/contract"
	"github.com/huangsam/rvss/schema"
	"gopkg.in/yaml.v3"
)

// stderr receives status lines about written files.
var stderr io.Writer = os.Stderr

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeYAML is a generic YAML encoder with the same indentation as writeJSON.
func writeYAML(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// writeStructured writes data as JSON or YAML depending on the output mode.
func writeStructured(cfg *contract.Config, data any) error {
	if cfg.Output == schema.YAMLOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, data)
		}, "Wrote YAML")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, data)
	}, "Wrote JSON")
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, intFmt
}

// severityLabel picks the colored or plain label depending on cfg.
func severityLabel(cfg *contract.Config, sev schema.Severity) string {
	if cfg.UseColors {
		return contract.GetColorLabel(sev)
	}
	return contract.GetPlainLabel(sev)
}

// formatCustom renders the result of a user-defined system.
func formatCustom(v any, fmtFloat func(float64) string) string {
	switch c := v.(type) {
	case float64:
		return fmtFloat(c)
	case int:
		return fmt.Sprintf("%d", c)
	case string:
		return c
	default:
		b, err := json.Marshal(c)
		if err != nil {
			return fmt.Sprint(c)
		}
		return string(b)
	}
}

// formatBreakdown renders breakdown entries as "key=value" pairs in key order.
// Values are unrounded intermediates, so they keep four decimals.
func formatBreakdown(b schema.Breakdown) string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, string(k))
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + strconv.FormatFloat(b[schema.BreakdownKey(k)], 'f', 4, 64)
	}
	return strings.Join(parts, " ")
}
