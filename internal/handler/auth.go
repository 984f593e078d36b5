package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nflpicks/internal/auth"
)

type AuthHandler struct {
	Store  *auth.SessionStore
	Logger *zap.Logger
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(r *gin.Engine) {
	r.POST("/api/auth/login", h.login)
}

// @Summary Log in
// @Tags auth
// @Accept json
// @Param body body loginRequest true "credentials"
// @Success 200 {object} apiResponse
// @Failure 401 {object} apiResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "username and password are required", nil)
		return
	}
	sess, ok := h.Store.Login(req.Username, req.Password)
	if !ok {
		if h.Logger != nil {
			h.Logger.Warn("login rejected", zap.String("username", req.Username))
		}
		Error(c, http.StatusUnauthorized, "invalid username or password", nil)
		return
	}
	if h.Logger != nil {
		h.Logger.Info("login ok", zap.String("username", sess.Username))
	}
	Ok(c, gin.H{
		"token":    sess.Token,
		"username": sess.Username,
	}, nil)
}
