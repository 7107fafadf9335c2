// Package report renders scan listings as a table, JSON, YAML or plain
// lines, optionally into a compressed file.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/bamsammich/ezscan/internal/attr"
	"github.com/bamsammich/ezscan/internal/stats"
)

// Record is one listed entry.
type Record struct {
	Modified time.Time `json:"modified" yaml:"modified"`
	Path     string    `json:"path" yaml:"path"`
	Dest     string    `json:"dest,omitempty" yaml:"dest,omitempty"`
	Attrs    string    `json:"attrs" yaml:"attrs"`
	Shape    string    `json:"shape" yaml:"shape"`
	Change   string    `json:"change,omitempty" yaml:"change,omitempty"`
	Size     uint64    `json:"size" yaml:"size"`
	Dir      bool      `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// FromEntry builds a Record for the entry found at path.
func FromEntry(path, dest string, e *attr.Entry) Record {
	return Record{
		Path:     path,
		Dest:     dest,
		Attrs:    e.Attrs(),
		Shape:    e.Filtered.String(),
		Size:     e.Size,
		Modified: e.Modified,
		Dir:      e.IsDir,
	}
}

// Format selects the listing renderer.
type Format int

const (
	Table Format = iota
	JSON
	YAML
	Plain
)

var formatNames = [...]string{
	Table: "table",
	JSON:  "json",
	YAML:  "yaml",
	Plain: "plain",
}

func (f Format) String() string {
	if f >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "unknown"
}

// Formats lists the accepted format names.
func Formats() []string {
	return formatNames[:]
}

// ParseFormat maps a name to a Format, case-insensitively.
func ParseFormat(s string) (Format, error) {
	for i, name := range formatNames {
		if strings.EqualFold(s, name) {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("unknown format %q (want one of %s)", s, strings.Join(formatNames[:], ", "))
}

// Write renders recs to w.
func Write(w io.Writer, f Format, recs []Record) error {
	switch f {
	case Table:
		return writeTable(w, recs)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if recs == nil {
			recs = []Record{}
		}
		return enc.Encode(recs)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(recs); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case Plain:
		return writePlain(w, recs)
	default:
		return fmt.Errorf("unknown format %d", f)
	}
}

func writeTable(w io.Writer, recs []Record) error {
	withDest := false
	var total uint64
	for _, r := range recs {
		withDest = withDest || r.Dest != ""
		total += r.Size
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Color.Row = text.Colors{text.Reset}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})

	header := table.Row{"Attrs", "Size", "Date", "Time", "Path"}
	if withDest {
		header = append(header, "Destination")
	}
	t.AppendHeader(header)

	for _, r := range recs {
		row := table.Row{r.Attrs, r.Size, FormatDate(r.Modified), FormatTime(r.Modified), r.Path}
		if withDest {
			row = append(row, r.Dest)
		}
		t.AppendRow(row)
	}
	t.AppendFooter(table.Row{
		fmt.Sprintf("%d entries", len(recs)),
		stats.FormatBytes(int64(total)),
	})
	t.Render()
	return nil
}

// writePlain writes one directory-listing style line per record:
// attributes, size, date, time and path.
func writePlain(w io.Writer, recs []Record) error {
	for _, r := range recs {
		line := fmt.Sprintf("%s %12d %s %s  %s", r.Attrs, r.Size, FormatDate(r.Modified), FormatTime(r.Modified), r.Path)
		if r.Dest != "" {
			line += " -> " + r.Dest
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// FormatDate renders the listing date column.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "----------"
	}
	return t.Format(time.DateOnly)
}

// FormatTime renders the listing time column.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.Format("15:04")
}
