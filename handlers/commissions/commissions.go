package commissions

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"agency-backoffice-server/handlers/auth"
	"agency-backoffice-server/models"
	"agency-backoffice-server/utils"
	"agency-backoffice-server/workflow"
)

// ListCommissions returns the commissions visible to the caller.
func ListCommissions(c *gin.Context) {
	actor, ok := auth.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found in context"})
		return
	}

	query := workflow.CommissionsFor(utils.DB, actor)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var commissions []models.Commission
	if err := query.Order("created_at DESC").Find(&commissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch commissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"commissions": commissions})
}

// UpdateCommissionStatus marks a commission paid out or cancelled via the
// engine.
func UpdateCommissionStatus(c *gin.Context) {
	actor, ok := auth.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found in context"})
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A target status is required."})
		return
	}

	var commission models.Commission
	if err := workflow.CommissionsFor(utils.DB, actor).First(&commission, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commission not found"})
		return
	}

	result, err := workflow.ChangeCommissionStatus(utils.DB, actor, commission.ID, models.CommissionStatus(input.Status))
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "This status change is not allowed from the current status."})
		case errors.Is(err, workflow.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "Your role is not permitted to perform this action."})
		case errors.Is(err, workflow.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Commission not found"})
		default:
			log.Printf("Commission status update failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Commission status updated",
		"from":    result.From,
		"to":      result.To,
	})
}
