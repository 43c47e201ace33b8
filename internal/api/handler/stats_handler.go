package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/v4tech/servicedesk/internal/core/ports"
)

type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Get returns dashboard counts.
//
// @Summary      Dashboard counts
// @Tags         stats
// @Produce      json
// @Success      200  {object}  domain.Stats
// @Failure      401  {object}  ErrorResponse
// @Security     SessionCookie
// @Router       /stats [get]
func (h *StatsHandler) Get(c echo.Context) error {
	stats, err := h.service.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
