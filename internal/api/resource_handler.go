package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cse-connect/connect-backend/internal/models"
)

// ResourceService is the owner-edited collection shape shared by
// projects, links, tubes and zen moments.
type ResourceService[T, R any] interface {
	List(ctx context.Context) ([]*T, error)
	Create(ctx context.Context, actor models.Actor, req R) (*T, error)
	Update(ctx context.Context, actor models.Actor, id string, req R) error
	Delete(ctx context.Context, actor models.Actor, id string) error
}

// ResourceHandler serves list/create/update/delete for one ResourceService.
// Items are addressed by the :id path parameter.
type ResourceHandler[T, R any] struct {
	svc    ResourceService[T, R]
	logger *zap.Logger
}

func NewResourceHandler[T, R any](svc ResourceService[T, R], logger *zap.Logger) *ResourceHandler[T, R] {
	return &ResourceHandler[T, R]{svc: svc, logger: logger}
}

func (h *ResourceHandler[T, R]) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ResourceHandler[T, R]) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req R
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.svc.Create(c.Request.Context(), actor, req)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ResourceHandler[T, R]) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req R
	if !bindJSON(c, &req) {
		return
	}
	if err := h.svc.Update(c.Request.Context(), actor, c.Param("id"), req); err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ResourceHandler[T, R]) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// register mounts the four routes on g.
func (h *ResourceHandler[T, R]) register(g *gin.RouterGroup) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
