package web

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static
var assets embed.FS

// Register serves the embedded dashboard page. The page keeps the session
// token in memory only, so a reload lands back on the login form.
func Register(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		page, err := assets.ReadFile("static/index.html")
		if err != nil {
			c.String(http.StatusInternalServerError, "dashboard page missing")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	})
}
