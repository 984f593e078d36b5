package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterDocs(r *gin.Engine) {
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/markdown; charset=utf-8")
		c.String(http.StatusOK, `# NFL Picks Dashboard

Internal dashboard for pre-computed NFL game predictions and historical
model performance.

## Auth

POST /api/auth/login with {"username": "...", "password": "..."} and use
the returned token as a Bearer token on every /api/* request. There is no
logout; sessions last until the process restarts.

## Routes

- GET /healthz
- GET /readyz
- GET /swagger/index.html
- POST /api/auth/login
- GET /api/v1/predictions?week=N
- GET /api/v1/performance?week=N

## Data

Both views re-read their data file on every request:

- predictions: JSON produced by the model generator
- results: CSV with completed games (UTF-8, Latin-1 fallback)
`)
	})
}
