package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/huangsam/rvss/internal/contract"
	"github.com/huangsam/rvss/schema"
	"github.com/olekukonko/tablewriter"
)

// WriteSystemInfos outputs the registered systems, dispatching based on the output format configured.
func WriteSystemInfos(systems []schema.SystemInfo, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut, schema.YAMLOut:
		return writeStructured(cfg, systems)
	case schema.CSVOut:
		header := []string{"name", "prefix", "legacy", "builtin", "metrics", "groups"}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, s := range systems {
					rec := []string{
						s.Name,
						s.Prefix,
						strconv.FormatBool(s.Legacy),
						strconv.FormatBool(s.Builtin),
						strconv.Itoa(s.Metrics),
						joinGroups(s.Groups, "|"),
					}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported for scores")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			table := tablewriter.NewWriter(w)
			table.Header([]string{"Name", "Prefix", "Metrics", "Groups", "Source"})
			var data [][]string
			for _, s := range systems {
				prefix := s.Prefix
				if s.Legacy {
					prefix += " (optional)"
				}
				source := "plugin"
				if s.Builtin {
					source = "builtin"
				}
				data = append(data, []string{s.Name, prefix, strconv.Itoa(s.Metrics), joinGroups(s.Groups, ", "), source})
			}
			if err := table.Bulk(data); err != nil {
				return err
			}
			return table.Render()
		}, "Wrote table")
	}
}

// WriteSystemDescription outputs the metric enumeration of a system.
func WriteSystemDescription(desc schema.SystemDescription, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut, schema.YAMLOut:
		return writeStructured(cfg, desc)
	case schema.CSVOut:
		header := []string{"code", "name", "title", "group", "token", "value", "weight", "default"}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, m := range desc.Schema {
					for _, v := range m.Values {
						rec := []string{
							m.Code, m.Name, m.Title, string(m.Group), v.Token, v.Title,
							strconv.FormatFloat(v.Weight, 'f', -1, 64),
							strconv.FormatBool(v.Token == m.Default),
						}
						if err := cw.Write(rec); err != nil {
							return err
						}
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported for scores")
	}

	md := DescriptionMarkdown(desc)
	if !cfg.Markdown {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			_, err := io.WriteString(w, md)
			return err
		}, "Wrote markdown")
	}

	style := glamour.WithStandardStyle("notty")
	if cfg.UseColors && cfg.OutputFile == "" {
		style = glamour.WithAutoStyle()
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(terminalWidth(cfg)))
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		_, err := io.WriteString(w, out)
		return err
	}, "Wrote description")
}

// DescriptionMarkdown renders a system description as a markdown document
// with one table per metric group.
func DescriptionMarkdown(desc schema.SystemDescription) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", desc.Name)
	prefix := desc.Prefix
	if desc.Legacy {
		prefix += " (optional)"
	}
	fmt.Fprintf(&b, "Prefix: `%s`\n", prefix)

	for _, g := range desc.Groups {
		fmt.Fprintf(&b, "\n## %s\n\n", strings.ToUpper(string(g[:1]))+string(g[1:]))
		b.WriteString("| Code | Metric | Values | Default |\n")
		b.WriteString("|------|--------|--------|---------|\n")
		for _, m := range desc.Schema {
			if m.Group != g {
				continue
			}
			values := make([]string, len(m.Values))
			for i, v := range m.Values {
				values[i] = fmt.Sprintf("%s=%s (%s)", v.Token, v.Title, strconv.FormatFloat(v.Weight, 'f', -1, 64))
			}
			def := m.Default
			if def == "" {
				def = "required"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", m.Code, m.Title, strings.Join(values, ", "), def)
		}
	}
	return b.String()
}

func joinGroups(groups []schema.Group, sep string) string {
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = string(g)
	}
	return strings.Join(parts, sep)
}
