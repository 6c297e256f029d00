package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
	"github.com/ErlanBelekov/domain-gateway/internal/metrics"
	"github.com/ErlanBelekov/domain-gateway/internal/transport/http/middleware"
	"github.com/ErlanBelekov/domain-gateway/internal/transport/http/response"
	"github.com/ErlanBelekov/domain-gateway/internal/usecase"
)

// credentialIssuer is the subset of CredentialUsecase the handler needs.
type credentialIssuer interface {
	Issue(ctx context.Context, secret string, ttl time.Duration) (*usecase.IssuedToken, error)
}

// TokenHandler issues tokens for one API generation.
type TokenHandler struct {
	credentials credentialIssuer
	generation  domain.Generation
	logger      *slog.Logger
}

func NewTokenHandler(credentials credentialIssuer, generation domain.Generation, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{
		credentials: credentials,
		generation:  generation,
		logger:      logger.With("component", "token_handler", "generation", generation.Name),
	}
}

// clientSecret may arrive as JSON or as a form field.
type issueTokenRequest struct {
	ClientSecret string `json:"clientSecret" form:"clientSecret"`
}

// POST /token
func (h *TokenHandler) Issue(c *gin.Context) {
	var req issueTokenRequest
	// a body that does not bind leaves the secret empty, which is rejected below
	_ = c.ShouldBind(&req)

	issued, err := h.credentials.Issue(c.Request.Context(), req.ClientSecret, h.generation.TokenTTL)
	if err != nil {
		if errors.Is(err, domain.ErrDomainNotFound) {
			response.Abort(c, http.StatusUnauthorized, errUnregisteredDomain)
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "issue token", "error", err)
		response.Abort(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	metrics.TokensIssuedTotal.WithLabelValues(h.generation.Name).Inc()
	response.OK(c, response.Envelope{Message: msgTokenIssued, Token: issued.Token})
}

type claimsResponse struct {
	ID        string `json:"id"`
	Nick      string `json:"nick"`
	Issuer    string `json:"iss"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// GET /test echoes the decoded claims of a verified token.
func Claims(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		response.Abort(c, http.StatusUnauthorized, errTokenInvalid)
		return
	}

	c.JSON(http.StatusOK, claimsResponse{
		ID:        claims.UserID,
		Nick:      claims.Nick,
		Issuer:    claims.Issuer,
		IssuedAt:  claims.IssuedAt.Unix(),
		ExpiresAt: claims.ExpiresAt.Unix(),
	})
}
