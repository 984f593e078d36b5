package handler

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	PredictionsPath string
	ResultsPath     string
}

func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.health)
	r.GET("/readyz", h.ready)
}

// @Summary Health check
// @Tags health
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *HealthHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Readiness check
// @Tags health
// @Success 200 {object} map[string]any
// @Router /readyz [get]
func (h *HealthHandler) ready(c *gin.Context) {
	predictions := fileExists(h.PredictionsPath)
	results := fileExists(h.ResultsPath)
	status := http.StatusOK
	state := "ready"
	if !predictions && !results {
		status = http.StatusServiceUnavailable
		state = "no_data"
	}
	c.JSON(status, gin.H{
		"status":      state,
		"predictions": predictions,
		"results":     results,
	})
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
