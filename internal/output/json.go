// Package output serializes a converted registry into its JSON artifacts:
// one combined document, or one file per table plus a summary index.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sqj/internal/core"
)

// SummaryFileName is the name of the index file written in separate mode.
const SummaryFileName = "_summary.json"

// Metadata describes one conversion run.
type Metadata struct {
	GeneratedAt  string `json:"generatedAt"`
	TotalTables  int    `json:"totalTables"`
	TotalRecords int    `json:"totalRecords"`
}

type combinedPayload struct {
	Metadata Metadata       `json:"metadata"`
	Tables   *core.Registry `json:"tables"`
}

type tablePayload struct {
	TableName   string                  `json:"tableName"`
	Columns     []core.ColumnDefinition `json:"columns"`
	RecordCount int                     `json:"recordCount"`
	GeneratedAt string                  `json:"generatedAt"`
	Data        []core.Record           `json:"data"`
}

type summaryPayload struct {
	GeneratedAt  string         `json:"generatedAt"`
	TotalTables  int            `json:"totalTables"`
	TotalRecords int            `json:"totalRecords"`
	Tables       []summaryTable `json:"tables"`
}

type summaryTable struct {
	Name        string `json:"name"`
	RecordCount int    `json:"recordCount"`
	FileName    string `json:"fileName"`
}

// Writer produces the JSON artifacts for a registry.
type Writer struct {
	compact bool
	now     func() time.Time
}

// NewWriter creates a writer. With compact set, documents are emitted
// without indentation.
func NewWriter(compact bool) *Writer {
	return &Writer{compact: compact, now: time.Now}
}

// Combined renders the whole registry as one JSON document with run
// metadata, tables keyed by name in registry order.
func (w *Writer) Combined(reg *core.Registry) (string, error) {
	payload := combinedPayload{
		Metadata: Metadata{
			GeneratedAt:  w.timestamp(),
			TotalTables:  reg.Len(),
			TotalRecords: reg.TotalRecords(),
		},
		Tables: reg,
	}
	return w.marshal(payload)
}

// WriteCombined writes the combined document to the given file.
func (w *Writer) WriteCombined(reg *core.Registry, path string) error {
	doc, err := w.Combined(reg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to write combined output: %w", err)
	}
	return nil
}

// WriteSeparate writes one <tableName>.json per table into dir, plus a
// _summary.json index. The directory is created if missing.
func (w *Writer) WriteSeparate(reg *core.Registry, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	generatedAt := w.timestamp()
	summary := summaryPayload{
		GeneratedAt:  generatedAt,
		TotalTables:  reg.Len(),
		TotalRecords: reg.TotalRecords(),
		Tables:       []summaryTable{},
	}

	for _, t := range reg.Tables() {
		fileName := tableFileName(t.TableName)
		doc, err := w.marshal(tablePayload{
			TableName:   t.TableName,
			Columns:     t.Columns,
			RecordCount: len(t.Data),
			GeneratedAt: generatedAt,
			Data:        t.Data,
		})
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, fileName), []byte(doc), 0644); err != nil {
			return fmt.Errorf("failed to write table output: %w", err)
		}
		summary.Tables = append(summary.Tables, summaryTable{
			Name:        t.TableName,
			RecordCount: len(t.Data),
			FileName:    fileName,
		})
	}

	doc, err := w.marshal(summary)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, SummaryFileName), []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to write summary output: %w", err)
	}
	return nil
}

func (w *Writer) marshal(payload any) (string, error) {
	var b []byte
	var err error
	if w.compact {
		b, err = json.Marshal(payload)
	} else {
		b, err = json.MarshalIndent(payload, "", "  ")
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode output: %w", err)
	}
	return string(b) + "\n", nil
}

func (w *Writer) timestamp() string {
	return w.now().UTC().Format(time.RFC3339)
}

// tableFileName maps a table name to its output file, replacing path
// separators so a hostile name cannot escape the output directory.
func tableFileName(name string) string {
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	return name + ".json"
}
