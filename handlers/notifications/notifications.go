package notifications

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"agency-backoffice-server/handlers/auth"
	"agency-backoffice-server/models"
	"agency-backoffice-server/utils"
	"agency-backoffice-server/workflow"
)

// Notify records an in-app notification for an agent account. Best effort:
// callers treat a failure as non-fatal, so it only logs.
func Notify(agentID uint, title, body string) {
	notification := models.Notification{
		AgentID: agentID,
		Title:   title,
		Body:    body,
	}
	if err := utils.DB.Create(&notification).Error; err != nil {
		log.Printf("Failed to create notification for agent %d: %v", agentID, err)
	}
}

// GetNotifications returns the calling agent's notifications, newest first.
// Notifications only exist for agent accounts; a counsellor's ID lives in a
// different table and must never be used against agent_id.
func GetNotifications(c *gin.Context) {
	actor, ok := auth.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found in context"})
		return
	}
	if actor.Role == workflow.RoleCounsellor {
		c.JSON(http.StatusForbidden, gin.H{"error": "Counsellors do not have notifications."})
		return
	}

	var notifications []models.Notification
	if err := utils.DB.Where("agent_id = ?", actor.ID).Order("created_at DESC").Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkNotificationRead marks one of the caller's notifications as read.
func MarkNotificationRead(c *gin.Context) {
	actor, ok := auth.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found in context"})
		return
	}
	if actor.Role == workflow.RoleCounsellor {
		c.JSON(http.StatusForbidden, gin.H{"error": "Counsellors do not have notifications."})
		return
	}

	notificationID := c.Param("id")
	var notification models.Notification
	if err := utils.DB.Where("id = ? AND agent_id = ?", notificationID, actor.ID).First(&notification).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	if err := utils.DB.Model(&notification).Update("read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
