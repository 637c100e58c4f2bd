package api

import (
	"github.com/labstack/echo/v4"

	"Stock100/internal/domain/models"
	"Stock100/internal/usecase"
	"Stock100/pkg/http"
	"Stock100/pkg/logger"
)

// Handler exposes the prediction engine and feed services over HTTP.
type Handler struct {
	engine *usecase.Engine
	feeds  *usecase.FeedService
	log    *logger.Logger
}

func NewHandler(engine *usecase.Engine, feeds *usecase.FeedService, log *logger.Logger) *Handler {
	return &Handler{engine: engine, feeds: feeds, log: log}
}

// RegisterRoutes implements http.Handler.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/health", h.Health)
	g.GET("/picks", h.Picks)
	g.POST("/picks/refresh", h.RefreshPicks)
	g.GET("/gainers", h.Gainers)
}

// Health reports liveness.
func (h *Handler) Health(c echo.Context) error {
	return http.SuccessResponse(c, map[string]string{"status": "ok"})
}

// Picks serves today's ranked buy/sell/hold lists. The engine always
// produces a well-shaped result, so this route cannot fail.
func (h *Handler) Picks(c echo.Context) error {
	result := h.engine.TopPredictions(c.Request().Context())
	return http.SuccessResponse(c, result)
}

// RefreshPicks forces a recompute of today's picks.
func (h *Handler) RefreshPicks(c echo.Context) error {
	result, err := h.engine.Refresh(c.Request().Context())
	if err != nil {
		h.log.Error("forced refresh failed", logger.Error(err))
		return http.AppErrorResponse(c, http.ServiceUnavailableError("upstream sources unavailable").WithError(err))
	}
	return http.SuccessResponse(c, result)
}

// Gainers serves the cached top-gainers feed.
func (h *Handler) Gainers(c echo.Context) error {
	var req models.GainersRequest
	if errs := http.ReadAndValidateRequest(c, &req); errs != nil {
		return http.BadRequestResponse(c, errs)
	}

	views, err := h.feeds.Gainers(c.Request().Context(), req.Limit)
	if err != nil {
		h.log.Error("gainers fetch failed", logger.Error(err))
		return http.AppErrorResponse(c, http.ServiceUnavailableError("gainers feed unavailable").WithError(err))
	}
	return http.SuccessResponse(c, views)
}
