package handlers

import (
	"log/slog"
	"net/http"

	"github.com/chasseuragace/code-sub001/internal/core/domain"
	"github.com/chasseuragace/code-sub001/internal/core/ports/services"
	"github.com/chasseuragace/code-sub001/internal/dto"
	"github.com/chasseuragace/code-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// apiTokenHandler handles HTTP requests for the agency's integration tokens
type apiTokenHandler struct {
	tokenSvc services.APITokenSvc
}

// newAPITokenHandler creates a new apiTokenHandler
func newAPITokenHandler(tokenSvc services.APITokenSvc) *apiTokenHandler {
	return &apiTokenHandler{
		tokenSvc: tokenSvc,
	}
}

// RegisterAPITokenRoutes registers the API token routes
func RegisterAPITokenRoutes(router *gin.RouterGroup, tokenSvc services.APITokenSvc) {
	registerValidators()
	handler := newAPITokenHandler(tokenSvc)

	tokensGroup := router.Group("/api-tokens")
	{
		tokensGroup.POST("", handler.createToken)
		tokensGroup.GET("", handler.listTokens)
		tokensGroup.DELETE("/:id", handler.revokeToken)
	}
}

// createToken handles the creation of a new API token
// @Summary Create a new API token
// @Description Creates an API token for the caller's agency, acting with the given role.
// @Description The key is shown only once and is sent in the x-api-key header as <id>.<secret>.
// @Tags tokens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAPITokenRequest true "Token creation details"
// @Success 201 {object} dto.CreateAPITokenResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Role may not manage tokens"
// @Failure 500 {object} map[string]string "Failed to create token"
// @Router /api-tokens [post]
func (h *apiTokenHandler) createToken(c *gin.Context) {
	var req dto.CreateAPITokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	tokenStr, token, err := h.tokenSvc.CreateToken(c.Request.Context(), actor, req.Name, domain.Role(req.Role), req.ExpiresInDuration())
	if err != nil {
		respondWithError(c, err, "Failed to create token")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("API token created", slog.String("token_id", token.ID))
	c.JSON(http.StatusCreated, dto.ToCreateAPITokenResponse(tokenStr, *token))
}

// listTokens handles listing the API tokens of the caller's agency
// @Summary List API tokens
// @Description Lists the live API tokens of the caller's agency. Only metadata is returned.
// @Tags tokens
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListAPITokensResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Role may not manage tokens"
// @Failure 500 {object} map[string]string "Failed to list tokens"
// @Router /api-tokens [get]
func (h *apiTokenHandler) listTokens(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	tokens, err := h.tokenSvc.ListTokens(c.Request.Context(), actor)
	if err != nil {
		respondWithError(c, err, "Failed to list tokens")
		return
	}

	c.JSON(http.StatusOK, dto.ToAPITokenResponseList(tokens))
}

// revokeToken handles revoking a specific API token
// @Summary Revoke an API token
// @Description Revokes a token of the caller's agency. It is invalidated immediately.
// @Tags tokens
// @Produce json
// @Security BearerAuth
// @Param id path string true "Token ID"
// @Success 204 "Token revoked successfully"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Role may not manage tokens"
// @Failure 404 {object} map[string]string "Token not found"
// @Failure 500 {object} map[string]string "Failed to revoke token"
// @Router /api-tokens/{id} [delete]
func (h *apiTokenHandler) revokeToken(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.tokenSvc.RevokeToken(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to revoke token")
		return
	}

	c.Status(http.StatusNoContent)
}
