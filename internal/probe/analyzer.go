package probe

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"webPerfAnalyzerGO/internal/config"
	"webPerfAnalyzerGO/internal/models"
	"webPerfAnalyzerGO/internal/recommend"
)

// Analyzer runs the probe pipeline against a single URL. Probes share
// the HTTP client and configuration but no per-run state; each probe
// catches its own errors and reports absence as nil.
type Analyzer struct {
	client  *http.Client
	config  config.AnalyzerConfig
	browser config.BrowserConfig
	mode    Mode
	logger  *slog.Logger
}

// New creates a new Analyzer running in the given mode
func New(cfg config.AnalyzerConfig, browser config.BrowserConfig, mode Mode, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		config:  cfg,
		browser: browser,
		mode:    mode,
		logger:  logger,
	}
}

// Mode returns the analysis mode the Analyzer was built with
func (a *Analyzer) Mode() Mode {
	return a.mode
}

// RunCompleteAnalysis runs every probe in a fixed sequence and returns
// one report. A failed probe leaves its field nil; the run itself never
// fails and the report always carries the URL, the timestamp, and all
// probe fields. There are no retries, no parallelism, and no deadline
// across the whole run; each probe is governed only by the client's
// own request timeout.
func (a *Analyzer) RunCompleteAnalysis(ctx context.Context, urlStr string) *models.AnalysisReport {
	urlStr = normalizeURL(urlStr)
	a.logger.Info("Starting complete analysis", "url", urlStr, "mode", a.mode.String())

	report := &models.AnalysisReport{
		URL:       urlStr,
		Timestamp: time.Now(),
	}

	report.TTFB = a.MeasureTTFB(ctx, urlStr)
	report.ResponseTime = a.MeasureResponseTime(ctx, urlStr)
	report.SSLInfo = a.InspectTLS(ctx, urlStr)
	report.Headers = a.InspectHeaders(ctx, urlStr)
	report.WebVitals = a.MeasureWebVitals(ctx, urlStr)
	report.Network = a.AnalyzeNetwork(ctx, urlStr)
	report.Recommendations = recommend.Evaluate(report)

	a.logger.Info("Analysis complete", "url", urlStr, "recommendations", len(report.Recommendations))
	return report
}

// normalizeURL defaults a missing scheme to https. An unparseable URL
// is returned unchanged; every probe will fail on it individually and
// the report ends up with all probe fields nil.
func normalizeURL(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return urlStr
	}
	if parsed.Scheme == "" {
		parsed.Scheme = "https"
		return parsed.String()
	}
	return urlStr
}
