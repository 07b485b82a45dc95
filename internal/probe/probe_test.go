package probe

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webPerfAnalyzerGO/internal/config"
)

func testAnalyzer(mode Mode) *Analyzer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.AnalyzerConfig{
		RequestTimeout: 5 * time.Second,
		UserAgent:      "WebPerfAnalyzer-Test/1.0",
	}
	return New(cfg, config.BrowserConfig{Disabled: true}, mode, logger)
}

// deadServerURL returns the URL of a server that is already closed, so
// every request against it fails
func deadServerURL(t *testing.T) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()
	return url
}

func TestMeasureTTFB(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	a := testAnalyzer(ModeBasic)
	ttfb := a.MeasureTTFB(context.Background(), server.URL)

	require.NotNil(t, ttfb)
	assert.Greater(t, *ttfb, 0.0)
	assert.Less(t, *ttfb, 5.0)
}

func TestMeasureTTFBUnreachable(t *testing.T) {
	a := testAnalyzer(ModeBasic)
	assert.Nil(t, a.MeasureTTFB(context.Background(), deadServerURL(t)))
}

func TestMeasureResponseTime(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	a := testAnalyzer(ModeBasic)
	rt := a.MeasureResponseTime(context.Background(), server.URL)

	require.NotNil(t, rt)
	assert.Greater(t, *rt, 0.0)
}

func TestMeasureResponseTimeUnreachable(t *testing.T) {
	a := testAnalyzer(ModeBasic)
	assert.Nil(t, a.MeasureResponseTime(context.Background(), deadServerURL(t)))
}

func TestInspectHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.Header().Set("Server", "test-server")
		w.Header().Set("Content-Type", "text/html")
		w.Header().Set("Cache-Control", "max-age=600")
		w.Header().Set("X-Frame-Options", "DENY")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	a := testAnalyzer(ModeBasic)
	snapshot := a.InspectHeaders(context.Background(), server.URL)

	require.NotNil(t, snapshot)
	require.NotNil(t, snapshot.Server)
	assert.Equal(t, "test-server", *snapshot.Server)
	require.NotNil(t, snapshot.CacheControl)
	assert.Equal(t, "max-age=600", *snapshot.CacheControl)
	require.NotNil(t, snapshot.SecurityHeaders.XFrameOptions)
	assert.Equal(t, "DENY", *snapshot.SecurityHeaders.XFrameOptions)

	// Absent headers map to nil, not to an error
	assert.Nil(t, snapshot.SecurityHeaders.StrictTransportSecurity)
	assert.Nil(t, snapshot.SecurityHeaders.XContentTypeOptions)
	assert.Nil(t, snapshot.SecurityHeaders.ContentSecurityPolicy)
}

func TestInspectHeadersUnreachable(t *testing.T) {
	a := testAnalyzer(ModeBasic)
	assert.Nil(t, a.InspectHeaders(context.Background(), deadServerURL(t)))
}

func TestAnalyzeNetworkBasic(t *testing.T) {
	page := []byte(`<!DOCTYPE html>
<html>
<head>
	<title>Resource Count</title>
	<link rel="stylesheet" href="/main.css">
	<link rel="icon" href="/favicon.ico">
	<script src="/a.js"></script>
	<script src="/b.js"></script>
</head>
<body>
	<img src="/one.png">
	<img src="/two.png">
	<script>console.log("inline");</script>
</body>
</html>
`)
	// Pad the body to exactly 4096 bytes
	require.LessOrEqual(t, len(page), 4096)
	body := append(page, bytes.Repeat([]byte(" "), 4096-len(page))...)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(body)
	}))
	defer server.Close()

	a := testAnalyzer(ModeBasic)
	analysis := a.AnalyzeNetwork(context.Background(), server.URL)

	require.NotNil(t, analysis)
	assert.Equal(t, map[string]int{
		"scripts":     3,
		"stylesheets": 1,
		"images":      2,
	}, analysis.ResourceTypes)
	assert.Equal(t, 7, analysis.TotalRequests)
	require.NotNil(t, analysis.PageSize)
	assert.Equal(t, int64(4096), *analysis.PageSize)
	require.NotNil(t, analysis.ContentType)
	assert.Equal(t, "text/html; charset=utf-8", *analysis.ContentType)
	assert.Nil(t, analysis.SlowResources)
}

func TestAnalyzeNetworkBasicUnreachable(t *testing.T) {
	a := testAnalyzer(ModeBasic)
	assert.Nil(t, a.AnalyzeNetwork(context.Background(), deadServerURL(t)))
}

func TestMeasureWebVitalsSkippedInBasicMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	a := testAnalyzer(ModeBasic)
	assert.Nil(t, a.MeasureWebVitals(context.Background(), server.URL))
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"scheme preserved", "http://example.com", "http://example.com"},
		{"missing scheme defaults to https", "//example.com/page", "https://example.com/page"},
		{"unparseable returned unchanged", "http://bad url \x7f", "http://bad url \x7f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeURL(tt.in))
		})
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "rich", ModeRich.String())
	assert.Equal(t, "basic", ModeBasic.String())
}

func TestDetectCapabilityDisabled(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mode := DetectCapability(context.Background(), config.BrowserConfig{Disabled: true}, logger)
	assert.Equal(t, ModeBasic, mode)
}
