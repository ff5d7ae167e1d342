package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cse-connect/connect-backend/internal/core"
	"github.com/cse-connect/connect-backend/internal/models"
)

// ZenHandler adds the auto quote trigger to the zen moment routes.
type ZenHandler struct {
	*ResourceHandler[models.ZenMoment, models.ZenRequest]
	zen core.ZenService
}

func NewZenHandler(zen core.ZenService, logger *zap.Logger) *ZenHandler {
	return &ZenHandler{
		ResourceHandler: NewResourceHandler[models.ZenMoment, models.ZenRequest](zen, logger),
		zen:             zen,
	}
}

// SeedQuote handles POST /zen/auto-quote. Clients call it when the page
// opens; at most one quote is added per interval.
func (h *ZenHandler) SeedQuote(c *gin.Context) {
	res, err := h.zen.MaybeSeedQuote(c.Request.Context())
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
