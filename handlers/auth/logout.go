package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"agency-backoffice-server/models"
	"agency-backoffice-server/utils"
)

func Logout(c *gin.Context) {
	agentInterface, exists := c.Get("agent")
	if !exists {
		// Counsellor tokens are stateless; nothing to invalidate server-side.
		c.JSON(http.StatusOK, gin.H{"message": "Logout successful."})
		return
	}
	agent := agentInterface.(models.Agent)

	// Remove the refresh token so it cannot be redeemed again
	now := time.Now()
	agent.RefreshToken = ""
	agent.LastLogoutAt = &now
	if err := utils.DB.Save(&agent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful.",
	})
}
