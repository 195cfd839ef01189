package handlers

import (
	"net/http"

	"tourhub/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency probe. It answers 503 when a
// required dependency is down so load balancers stop routing here.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "message": "Hi, I'm TourHub reviews"})
}
