package router

import (
	"log"
	"time"

	"dealdesk/controllers"

	"github.com/gin-gonic/gin"
)

// Logger logs one line per request: method, path, status, latency and the
// acting user when AuthRequired has already resolved one.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		actor := "-"
		if user, ok := controllers.GetUserLogged(c); ok && user.Email != "" {
			actor = user.Email
		}
		log.Printf("%s %s -> %d (%s) user=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), elapsed, actor)
	}
}
