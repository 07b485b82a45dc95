package analysis_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webPerfAnalyzerGO/internal/config"
	"webPerfAnalyzerGO/internal/probe"
)

// createTestServer serves a small page with deliberately incomplete
// headers: no Cache-Control and no HSTS
func createTestServer() *httptest.Server {
	page := []byte(`<!DOCTYPE html>
<html>
<head>
	<title>Test Page</title>
	<link rel="stylesheet" href="/style.css">
	<script src="/app.js"></script>
</head>
<body>
	<h1>Test Page</h1>
	<img src="/logo.png">
</body>
</html>`)

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", "test-server")
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		if r.Method != http.MethodHead {
			w.Write(page)
		}
	}))
}

func getTestAnalyzer() *probe.Analyzer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.AnalyzerConfig{
		RequestTimeout: 5 * time.Second,
		UserAgent:      "WebPerfAnalyzer-Test/1.0",
	}
	browser := config.BrowserConfig{Disabled: true}
	mode := probe.DetectCapability(context.Background(), browser, logger)
	return probe.New(cfg, browser, mode, logger)
}

func TestRunCompleteAnalysisBasicMode(t *testing.T) {
	server := createTestServer()
	defer server.Close()

	a := getTestAnalyzer()
	report := a.RunCompleteAnalysis(context.Background(), server.URL)
	require.NotNil(t, report)

	assert.Equal(t, server.URL, report.URL)
	assert.False(t, report.Timestamp.IsZero())

	// Timing probes succeed against the live server
	require.NotNil(t, report.TTFB)
	require.NotNil(t, report.ResponseTime)

	// Plain-HTTP target: the TLS probe fails and surfaces as nil
	assert.Nil(t, report.SSLInfo)

	// Headers collected; absent ones are nil, not errors
	require.NotNil(t, report.Headers)
	require.NotNil(t, report.Headers.Server)
	assert.Equal(t, "test-server", *report.Headers.Server)
	assert.Nil(t, report.Headers.CacheControl)
	assert.Nil(t, report.Headers.SecurityHeaders.StrictTransportSecurity)

	// Basic mode: web vitals skipped, network has the basic shape
	assert.Nil(t, report.WebVitals)
	require.NotNil(t, report.Network)
	for key := range report.Network.ResourceTypes {
		assert.Contains(t, []string{"scripts", "stylesheets", "images"}, key)
	}
	assert.Equal(t, 1, report.Network.ResourceTypes["scripts"])
	assert.Equal(t, 1, report.Network.ResourceTypes["stylesheets"])
	assert.Equal(t, 1, report.Network.ResourceTypes["images"])
	assert.Equal(t, 4, report.Network.TotalRequests)
	require.NotNil(t, report.Network.PageSize)

	// SSL absence, missing Cache-Control, and missing HSTS all flagged
	var issues []string
	for _, rec := range report.Recommendations {
		issues = append(issues, rec.Issue)
	}
	assert.Contains(t, issues, "SSL Certificate Issues")
	assert.Contains(t, issues, "Missing Cache Control")
	assert.Contains(t, issues, "Missing HSTS Header")
}

// Even when every probe fails, the report keeps its full key set with
// nulls in place of results
func TestRunCompleteAnalysisAllProbesFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := server.URL
	server.Close()

	a := getTestAnalyzer()
	report := a.RunCompleteAnalysis(context.Background(), deadURL)
	require.NotNil(t, report)

	assert.Equal(t, deadURL, report.URL)
	assert.False(t, report.Timestamp.IsZero())
	assert.Nil(t, report.TTFB)
	assert.Nil(t, report.ResponseTime)
	assert.Nil(t, report.SSLInfo)
	assert.Nil(t, report.Headers)
	assert.Nil(t, report.WebVitals)
	assert.Nil(t, report.Network)

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	want := []string{"url", "timestamp", "ttfb", "response_time", "ssl_info", "headers", "web_vitals", "network", "recommendations"}
	assert.Len(t, decoded, len(want))
	for _, key := range want {
		assert.Contains(t, decoded, key)
	}

	// Only the TLS rule treats absence as a finding
	require.Len(t, report.Recommendations, 1)
	assert.Equal(t, "SSL Certificate Issues", report.Recommendations[0].Issue)
}

func TestRunCompleteAnalysisSchemeDefault(t *testing.T) {
	a := getTestAnalyzer()
	report := a.RunCompleteAnalysis(context.Background(), "//unreachable.invalid")
	require.NotNil(t, report)
	assert.Equal(t, "https://unreachable.invalid", report.URL)
}
