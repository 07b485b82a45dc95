package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webPerfAnalyzerGO/internal/models"
)

func sampleReport() *models.AnalysisReport {
	ttfb := 0.123
	return &models.AnalysisReport{
		URL:             "https://example.com",
		Timestamp:       time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC),
		TTFB:            &ttfb,
		Recommendations: []models.Recommendation{},
	}
}

func TestJSONWriterConsoleIndent(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(&buf, "", "  ")

	n, err := w.Write(sampleReport())
	require.NoError(t, err)
	assert.Equal(t, buf.Len(), n)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "{\n  \"url\""), "console output uses 2-space indent")
	assert.True(t, strings.HasSuffix(out, "}\n"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "https://example.com", decoded["url"])
}

func TestFileWriter(t *testing.T) {
	dir := t.TempDir()
	w := NewFileWriter(dir)
	fixed := time.Unix(1767351845, 0)
	w.now = func() time.Time { return fixed }

	_, err := w.Write(sampleReport())
	require.NoError(t, err)

	wantPath := filepath.Join(dir, fmt.Sprintf("analysis_results_%d.json", fixed.Unix()))
	assert.Equal(t, wantPath, w.Path())

	data, err := os.ReadFile(wantPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n    \"url\""), "file output uses 4-space indent")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "https://example.com", decoded["url"])
}

// A second write at the same timestamp must not overwrite the first
func TestFileWriterNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	w := NewFileWriter(dir)
	w.now = func() time.Time { return time.Unix(1767351845, 0) }

	_, err := w.Write(sampleReport())
	require.NoError(t, err)

	_, err = w.Write(sampleReport())
	require.Error(t, err)
}

func TestMultiWriterFansOut(t *testing.T) {
	var a, b bytes.Buffer
	mw := NewMultiWriter(NewJSONWriter(&a, "", "  "), NewJSONWriter(&b, "", "    "))

	total, err := mw.Write(sampleReport())
	require.NoError(t, err)
	assert.Equal(t, a.Len()+b.Len(), total)
	assert.NotEmpty(t, a.String())
	assert.NotEmpty(t, b.String())
}

// The serialized report always carries the full fixed key set, with
// failed probes surfacing as explicit nulls rather than missing keys
func TestReportKeySet(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(&buf, "", "  ")
	_, err := w.Write(&models.AnalysisReport{
		URL:             "https://example.com",
		Timestamp:       time.Now(),
		Recommendations: []models.Recommendation{},
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	want := []string{"url", "timestamp", "ttfb", "response_time", "ssl_info", "headers", "web_vitals", "network", "recommendations"}
	assert.Len(t, decoded, len(want))
	for _, key := range want {
		assert.Contains(t, decoded, key)
	}
	assert.Nil(t, decoded["ttfb"])
	assert.Nil(t, decoded["ssl_info"])
}
