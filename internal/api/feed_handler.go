package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cse-connect/connect-backend/internal/core"
	"github.com/cse-connect/connect-backend/internal/models"
)

// FeedHandler handles posts, reactions and comments.
type FeedHandler struct {
	feed   core.FeedService
	logger *zap.Logger
}

func NewFeedHandler(feed core.FeedService, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{feed: feed, logger: logger}
}

// ListPosts handles GET /feed
func (h *FeedHandler) ListPosts(c *gin.Context) {
	posts, err := h.feed.ListPosts(c.Request.Context())
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// CreatePost handles POST /feed
func (h *FeedHandler) CreatePost(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}
	post, err := h.feed.CreatePost(c.Request.Context(), actor, req)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// UpdatePost handles PATCH /feed/:postId
func (h *FeedHandler) UpdatePost(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.UpdatePostRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.feed.UpdatePost(c.Request.Context(), actor, c.Param("postId"), req); err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeletePost handles DELETE /feed/:postId
func (h *FeedHandler) DeletePost(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.feed.DeletePost(c.Request.Context(), actor, c.Param("postId")); err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleReaction handles POST /feed/:postId/reactions. Sending the
// caller's current reaction again removes it.
func (h *FeedHandler) ToggleReaction(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.ReactionRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.feed.ToggleReaction(c.Request.Context(), actor, c.Param("postId"), req.Reaction); err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListComments handles GET /feed/:postId/comments
func (h *FeedHandler) ListComments(c *gin.Context) {
	comments, err := h.feed.ListComments(c.Request.Context(), c.Param("postId"))
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// AddComment handles POST /feed/:postId/comments
func (h *FeedHandler) AddComment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.CommentRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := h.feed.AddComment(c.Request.Context(), actor, c.Param("postId"), req)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// DeleteComment handles DELETE /feed/:postId/comments/:commentId
func (h *FeedHandler) DeleteComment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.feed.DeleteComment(c.Request.Context(), actor, c.Param("postId"), c.Param("commentId")); err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
