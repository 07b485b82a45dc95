// Package recommend scores a finished analysis report against a static
// rule set and produces advisory findings.
package recommend

import "webPerfAnalyzerGO/internal/models"

// rule pairs a predicate with the advisory it produces when it fires
type rule struct {
	applies        func(*models.AnalysisReport) bool
	issue          string
	recommendation string
}

// rules are evaluated in order and fire independently; none suppresses
// another. The header and web-vitals rules skip silently when their
// probe collected nothing; the TLS rule is the one place where absence
// itself is the finding, whatever the reason for the absence.
var rules = []rule{
	{
		applies: func(r *models.AnalysisReport) bool {
			return r.TTFB != nil && *r.TTFB > 0.5
		},
		issue:          "High Time to First Byte",
		recommendation: "Optimize server response time, consider caching or CDN usage",
	},
	{
		applies: func(r *models.AnalysisReport) bool {
			return r.SSLInfo == nil
		},
		issue:          "SSL Certificate Issues",
		recommendation: "Ensure proper SSL certificate installation and configuration",
	},
	{
		applies: func(r *models.AnalysisReport) bool {
			return r.Headers != nil && r.Headers.CacheControl == nil
		},
		issue:          "Missing Cache Control",
		recommendation: "Implement proper cache control headers",
	},
	{
		applies: func(r *models.AnalysisReport) bool {
			return r.Headers != nil && r.Headers.SecurityHeaders.StrictTransportSecurity == nil
		},
		issue:          "Missing HSTS Header",
		recommendation: "Implement HTTP Strict Transport Security",
	},
	{
		applies: func(r *models.AnalysisReport) bool {
			return r.WebVitals != nil &&
				r.WebVitals.FirstContentfulPaint != nil &&
				*r.WebVitals.FirstContentfulPaint > 2000
		},
		issue:          "Slow First Contentful Paint",
		recommendation: "Optimize critical rendering path, implement lazy loading",
	},
}

// Evaluate applies every rule to the report and returns the findings in
// rule order. It is pure and deterministic; the result is never nil.
func Evaluate(report *models.AnalysisReport) []models.Recommendation {
	recommendations := []models.Recommendation{}
	for _, r := range rules {
		if r.applies(report) {
			recommendations = append(recommendations, models.Recommendation{
				Issue:          r.issue,
				Recommendation: r.recommendation,
			})
		}
	}
	return recommendations
}
