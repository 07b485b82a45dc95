package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"webPerfAnalyzerGO/internal/config"
)

// APIKeyAuth guards the stored-report endpoints with a static key list
// from configuration. Keys are presented as bearer tokens.
type APIKeyAuth struct {
	keys   map[string]struct{}
	logger *slog.Logger
}

// NewAPIKeyAuth creates a new API key authentication middleware
func NewAPIKeyAuth(cfg *config.AuthConfig, logger *slog.Logger) *APIKeyAuth {
	keys := make(map[string]struct{}, len(cfg.APIKeys))
	for _, k := range cfg.APIKeys {
		keys[k] = struct{}{}
	}
	if len(keys) == 0 {
		logger.Warn("No API keys configured, protected endpoints will reject all requests")
	}
	return &APIKeyAuth{
		keys:   keys,
		logger: logger,
	}
}

// Authenticate is a middleware that rejects requests without a valid
// API key
func (a *APIKeyAuth) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := extractToken(c.Request)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status_code": http.StatusUnauthorized,
				"message":     "Unauthorized",
				"error":       "Invalid or missing API key",
			})
			c.Abort()
			return
		}

		if _, ok := a.keys[key]; !ok {
			a.logger.Warn("Rejected request with unknown API key", "path", c.Request.URL.Path)
			c.JSON(http.StatusUnauthorized, gin.H{
				"status_code": http.StatusUnauthorized,
				"message":     "Unauthorized",
				"error":       "Invalid or missing API key",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// extractToken pulls the bearer token out of the Authorization header
func extractToken(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", errors.New("missing Authorization header")
	}

	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("malformed Authorization header")
	}

	return parts[1], nil
}
