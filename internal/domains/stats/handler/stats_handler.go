package handler

import (
	"github.com/gin-gonic/gin"

	"library-api/internal/domains/stats/service"
	"library-api/internal/shared/response"
)

type StatsHandler struct {
	service service.ServiceInterface
}

func NewStatsHandler(service service.ServiceInterface) *StatsHandler {
	return &StatsHandler{service: service}
}

// Stats - GET /stats/
func (h *StatsHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.ServerError(c, err)
		return
	}

	response.OK(c, stats)
}
