package middleware

import (
	"net/http"

	"github.com/chasseuragace/code-sub001/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// APITokenHeader carries an integration client's key in the form <token_id>.<secret>.
const APITokenHeader = "x-api-key"

// APITokenAuth is a middleware that authenticates requests using API tokens.
// Requests without the header fall through to JWT authentication; a present but
// invalid key is rejected.
func APITokenAuth(tokenSvc services.APITokenSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(APITokenHeader)
		if key == "" {
			c.Next() // No api key provided, let it continue
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context())
		actor, err := tokenSvc.ValidateToken(c.Request.Context(), key)
		if err != nil {
			logger.Warn("API token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		// Token is valid, store the actor and skip JWT auth
		c.Request = c.Request.WithContext(WithActor(c.Request.Context(), *actor))
		c.Set(authMethodKey, "api_token")
		c.Next()
	}
}
