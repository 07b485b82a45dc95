// Package report writes finished analysis reports to their sinks: the
// console echo and the persisted per-run JSON file.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"webPerfAnalyzerGO/internal/models"
)

// Writer outputs an analysis report to some destination.
// Implementations report the number of bytes written.
type Writer interface {
	Write(report *models.AnalysisReport) (int, error)
}

// JSONWriter emits the report as pretty-printed JSON to an io.Writer.
// The console echo uses two-space indentation.
type JSONWriter struct {
	output io.Writer
	prefix string
	indent string
}

// NewJSONWriter creates a JSONWriter with the given indentation
func NewJSONWriter(output io.Writer, prefix, indent string) *JSONWriter {
	return &JSONWriter{output: output, prefix: prefix, indent: indent}
}

// Write marshals the report and writes it followed by a newline
func (w *JSONWriter) Write(report *models.AnalysisReport) (int, error) {
	data, err := json.MarshalIndent(report, w.prefix, w.indent)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal report: %w", err)
	}
	return w.output.Write(append(data, '\n'))
}

// FileWriter persists each report to its own file in the configured
// directory, named with the Unix timestamp at write time. Files use
// four-space indentation, are never overwritten, and are never read
// back.
type FileWriter struct {
	dir string
	now func() time.Time

	lastPath string
}

// NewFileWriter creates a FileWriter targeting the given directory
func NewFileWriter(dir string) *FileWriter {
	return &FileWriter{dir: dir, now: time.Now}
}

// Write persists the report to a new timestamped file
func (w *FileWriter) Write(report *models.AnalysisReport) (int, error) {
	data, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal report: %w", err)
	}

	path := filepath.Join(w.dir, fmt.Sprintf("analysis_results_%d.json", w.now().Unix()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to create report file: %w", err)
	}

	n, err := f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("failed to write report file: %w", err)
	}

	w.lastPath = path
	return n, nil
}

// Path returns the location of the most recently written report file
func (w *FileWriter) Path() string {
	return w.lastPath
}

// MultiWriter fans a report out to several Writers, stopping on the
// first error. It exists because our Writer writes reports, not raw
// bytes, so io.MultiWriter does not fit.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers
func (m *MultiWriter) Write(report *models.AnalysisReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
