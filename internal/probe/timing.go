package probe

import (
	"context"
	"io"
	"net/http"
	"net/http/httptrace"
	"time"
)

// MeasureTTFB issues a GET request and reports the time until the first
// response byte, in seconds, as observed by the HTTP client's own trace
// hooks. Returns nil on any failure.
func (a *Analyzer) MeasureTTFB(ctx context.Context, urlStr string) *float64 {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		a.logger.Error("Error measuring TTFB", "url", urlStr, "error", err)
		return nil
	}
	req.Header.Set("User-Agent", a.config.UserAgent)

	var start time.Time
	var ttfb time.Duration
	trace := &httptrace.ClientTrace{
		GotFirstResponseByte: func() {
			ttfb = time.Since(start)
		},
	}
	req = req.WithContext(httptrace.WithClientTrace(req.Context(), trace))

	start = time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("Error measuring TTFB", "url", urlStr, "error", err)
		return nil
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	seconds := ttfb.Seconds()
	return &seconds
}

// MeasureResponseTime issues a second, independent GET request and
// reports the wall-clock time to full body receipt, in seconds. It is
// deliberately a separate request from the TTFB probe; no connection
// reuse is assumed between the two, so each incurs its own round trip.
func (a *Analyzer) MeasureResponseTime(ctx context.Context, urlStr string) *float64 {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		a.logger.Error("Error measuring response time", "url", urlStr, "error", err)
		return nil
	}
	req.Header.Set("User-Agent", a.config.UserAgent)

	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("Error measuring response time", "url", urlStr, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		a.logger.Error("Error measuring response time", "url", urlStr, "error", err)
		return nil
	}

	seconds := time.Since(start).Seconds()
	return &seconds
}
