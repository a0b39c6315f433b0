package middleware

import (
	"net/http"
	"strings"

	"github.com/chasseuragace/code-sub001/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks API events with PostHog
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip if PostHog is not initialized or path is in skip list
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		// Process request first
		c.Next()

		// Skip if there was an error processing the request
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		actor, exists := GetActorFromContext(c)
		if !exists {
			// No actor, can't track event
			return
		}

		eventName := analyticsEventName(c.Request.Method, c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
			"role":        string(actor.Role),
		}
		if actor.AgencyID != "" {
			props["agency_id"] = actor.AgencyID
		}

		if applicationID := c.Param("applicationID"); applicationID != "" {
			props["application_id"] = applicationID
		}

		posthogClient.Enqueue(actor.ID, eventName, props)
	}
}

// analyticsEventName turns a matched route into an event name, e.g.
// POST /api/v1/applications/:applicationID/shortlist -> "applications_shortlist".
// Unmatched routes yield "".
func analyticsEventName(method, fullPath string) string {
	path := strings.TrimPrefix(fullPath, "/api/v1")
	path = strings.Trim(path, "/")
	if path == "" {
		return ""
	}

	var parts []string
	for _, segment := range strings.Split(path, "/") {
		if strings.HasPrefix(segment, ":") || strings.HasPrefix(segment, "*") {
			continue
		}
		parts = append(parts, strings.ReplaceAll(segment, "-", "_"))
	}
	if method == http.MethodGet {
		parts = append(parts, "viewed")
	}
	return strings.Join(parts, "_")
}
