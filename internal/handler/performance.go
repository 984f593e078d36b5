package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nflpicks/internal/auth"
	"nflpicks/internal/repository"
	"nflpicks/internal/service"
)

type PerformanceHandler struct {
	Service *service.PerformanceViewService
	Logger  *zap.Logger
}

func (h *PerformanceHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1")
	group.GET("/performance", h.getPerformance)
}

// @Summary Historical model performance
// @Tags performance
// @Param week query int false "week filter (defaults to the most recent week)"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/v1/performance [get]
func (h *PerformanceHandler) getPerformance(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	if sess, ok := auth.SessionFrom(c); ok && h.Logger != nil {
		h.Logger.Debug("performance view", zap.String("user", sess.Username))
	}
	view, err := h.Service.Build(c.Request.Context(), int64QueryPtr(c, "week"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			Error(c, http.StatusNotFound, "predictions_with_results.csv not found.", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.Warn("performance view failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, view, nil)
}
