package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
	"github.com/ErlanBelekov/domain-gateway/internal/transport/http/middleware"
	"github.com/ErlanBelekov/domain-gateway/internal/transport/http/response"
)

type postLister interface {
	ListMine(ctx context.Context, userID string) ([]*domain.Post, error)
	ListByHashtag(ctx context.Context, title string) ([]*domain.Post, error)
}

type PostHandler struct {
	posts  postLister
	logger *slog.Logger
}

func NewPostHandler(posts postLister, logger *slog.Logger) *PostHandler {
	return &PostHandler{posts: posts, logger: logger.With("component", "post_handler")}
}

type postResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	Img       *string   `json:"img,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toPostResponses(posts []*domain.Post) []postResponse {
	out := make([]postResponse, len(posts))
	for i, p := range posts {
		out[i] = postResponse{
			ID:        p.ID,
			UserID:    p.UserID,
			Content:   p.Content,
			Img:       p.Img,
			CreatedAt: p.CreatedAt,
		}
	}
	return out
}

// GET /posts/my
func (h *PostHandler) Mine(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		h.logger.ErrorContext(c.Request.Context(), "posts/my reached without claims")
		response.Abort(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	posts, err := h.posts.ListMine(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list my posts", "user_id", claims.UserID, "error", err)
		response.Abort(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	response.OK(c, response.Envelope{Payload: toPostResponses(posts)})
}

// GET /posts/hashtag/:title
func (h *PostHandler) ByHashtag(c *gin.Context) {
	title := c.Param("title")

	posts, err := h.posts.ListByHashtag(c.Request.Context(), title)
	if err != nil {
		if errors.Is(err, domain.ErrHashtagNotFound) {
			response.Abort(c, http.StatusNotFound, errNoResults)
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "list posts by hashtag", "title", title, "error", err)
		response.Abort(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	response.OK(c, response.Envelope{Payload: toPostResponses(posts)})
}
