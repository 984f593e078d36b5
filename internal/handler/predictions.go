package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nflpicks/internal/auth"
	"nflpicks/internal/repository"
	"nflpicks/internal/service"
)

type PredictionsHandler struct {
	Service *service.PredictionsViewService
	Logger  *zap.Logger
}

func (h *PredictionsHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1")
	group.GET("/predictions", h.getPredictions)
}

// @Summary Upcoming game predictions
// @Tags predictions
// @Param week query int false "week filter (defaults to the most recent week)"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/v1/predictions [get]
func (h *PredictionsHandler) getPredictions(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	if sess, ok := auth.SessionFrom(c); ok && h.Logger != nil {
		h.Logger.Debug("predictions view", zap.String("user", sess.Username))
	}
	view, err := h.Service.Build(c.Request.Context(), int64QueryPtr(c, "week"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			Error(c, http.StatusNotFound, "Predictions JSON not found. Run the generator to create it.", nil)
		case errors.Is(err, repository.ErrUnsupportedFormat):
			Error(c, http.StatusBadRequest, err.Error(), nil)
		default:
			if h.Logger != nil {
				h.Logger.Warn("predictions view failed", zap.Error(err))
			}
			Error(c, http.StatusInternalServerError, err.Error(), nil)
		}
		return
	}
	Ok(c, view, nil)
}

func int64QueryPtr(c *gin.Context, key string) *int64 {
	if val := c.Query(key); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			return &i
		}
	}
	return nil
}
