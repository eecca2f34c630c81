package handlers

import (
	"net/http"

	"matrimonial/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency check done by the health monitor.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if status.CheckedAt.IsZero() || !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "message": "Hi, I'm the profile service"})
}
