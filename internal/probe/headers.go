package probe

import (
	"context"
	"net/http"

	"webPerfAnalyzerGO/internal/models"
)

// InspectHeaders issues a HEAD request and snapshots the interesting
// response headers. A header absent from the response maps to nil in
// the snapshot, never to an error; the probe itself only fails when the
// request does.
func (a *Analyzer) InspectHeaders(ctx context.Context, urlStr string) *models.HeaderSnapshot {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, urlStr, nil)
	if err != nil {
		a.logger.Error("Error checking headers", "url", urlStr, "error", err)
		return nil
	}
	req.Header.Set("User-Agent", a.config.UserAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("Error checking headers", "url", urlStr, "error", err)
		return nil
	}
	defer resp.Body.Close()

	return &models.HeaderSnapshot{
		Server:        headerValue(resp.Header, "Server"),
		ContentType:   headerValue(resp.Header, "Content-Type"),
		ContentLength: headerValue(resp.Header, "Content-Length"),
		CacheControl:  headerValue(resp.Header, "Cache-Control"),
		SecurityHeaders: models.SecurityHeaders{
			StrictTransportSecurity: headerValue(resp.Header, "Strict-Transport-Security"),
			XContentTypeOptions:     headerValue(resp.Header, "X-Content-Type-Options"),
			XFrameOptions:           headerValue(resp.Header, "X-Frame-Options"),
			ContentSecurityPolicy:   headerValue(resp.Header, "Content-Security-Policy"),
		},
	}
}

// headerValue returns the header's value, or nil when the header is not
// present in the response at all
func headerValue(h http.Header, key string) *string {
	if _, ok := h[http.CanonicalHeaderKey(key)]; !ok {
		return nil
	}
	v := h.Get(key)
	return &v
}
