package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnalysisRequest represents the request to analyze a URL
type AnalysisRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// AnalysisReport represents the result of one complete analysis run.
// Every probe field is a pointer: nil means the probe failed or was
// unsupported in the current mode, never that the run crashed.
type AnalysisReport struct {
	ID              primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	URL             string             `json:"url" bson:"url"`
	Timestamp       time.Time          `json:"timestamp" bson:"timestamp"`
	TTFB            *float64           `json:"ttfb" bson:"ttfb"`
	ResponseTime    *float64           `json:"response_time" bson:"response_time"`
	SSLInfo         *TLSInfo           `json:"ssl_info" bson:"ssl_info"`
	Headers         *HeaderSnapshot    `json:"headers" bson:"headers"`
	WebVitals       *WebVitals         `json:"web_vitals" bson:"web_vitals"`
	Network         *NetworkAnalysis   `json:"network" bson:"network"`
	Recommendations []Recommendation   `json:"recommendations" bson:"recommendations"`
	UserID          string             `json:"user_id,omitempty" bson:"user_id,omitempty"`
}

// TLSInfo holds the peer certificate details from the TLS handshake
type TLSInfo struct {
	Issuer  map[string]string `json:"issuer" bson:"issuer"`
	Subject map[string]string `json:"subject" bson:"subject"`
	Expiry  string            `json:"expiry" bson:"expiry"`
}

// HeaderSnapshot captures response headers from a HEAD request.
// An absent header maps to nil, not to an error.
type HeaderSnapshot struct {
	Server          *string         `json:"server" bson:"server"`
	ContentType     *string         `json:"content_type" bson:"content_type"`
	ContentLength   *string         `json:"content_length" bson:"content_length"`
	CacheControl    *string         `json:"cache_control" bson:"cache_control"`
	SecurityHeaders SecurityHeaders `json:"security_headers" bson:"security_headers"`
}

// SecurityHeaders holds the four inspected security headers
type SecurityHeaders struct {
	StrictTransportSecurity *string `json:"strict_transport_security" bson:"strict_transport_security"`
	XContentTypeOptions     *string `json:"x_content_type_options" bson:"x_content_type_options"`
	XFrameOptions           *string `json:"x_frame_options" bson:"x_frame_options"`
	ContentSecurityPolicy   *string `json:"content_security_policy" bson:"content_security_policy"`
}

// WebVitals holds browser-reported page load timings in milliseconds,
// relative to navigation start. Paint timings may be absent when the
// browser recorded no paint entries.
type WebVitals struct {
	LoadTime             float64  `json:"loadTime" bson:"load_time"`
	DOMContentLoaded     float64  `json:"domContentLoaded" bson:"dom_content_loaded"`
	FirstPaint           *float64 `json:"firstPaint" bson:"first_paint"`
	FirstContentfulPaint *float64 `json:"firstContentfulPaint" bson:"first_contentful_paint"`
}

// ResourceEntry is one browser performance-timeline record
type ResourceEntry struct {
	Name          string  `json:"name" bson:"name"`
	EntryType     string  `json:"entryType" bson:"entry_type"`
	Duration      float64 `json:"duration" bson:"duration"`
	InitiatorType string  `json:"initiatorType" bson:"initiator_type"`
}

// NetworkAnalysis describes resource loading for the page. The rich
// (browser) variant fills SlowResources and per-initiator ResourceTypes;
// the basic variant fills scripts/stylesheets/images counts plus
// PageSize and ContentType.
type NetworkAnalysis struct {
	TotalRequests int             `json:"total_requests" bson:"total_requests"`
	SlowResources []ResourceEntry `json:"slow_resources,omitempty" bson:"slow_resources,omitempty"`
	ResourceTypes map[string]int  `json:"resource_types" bson:"resource_types"`
	PageSize      *int64          `json:"page_size,omitempty" bson:"page_size,omitempty"`
	ContentType   *string         `json:"content_type,omitempty" bson:"content_type,omitempty"`
}

// Recommendation is one advisory finding produced by the rule engine
type Recommendation struct {
	Issue          string `json:"issue" bson:"issue"`
	Recommendation string `json:"recommendation" bson:"recommendation"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Error      string `json:"error,omitempty"`
}
