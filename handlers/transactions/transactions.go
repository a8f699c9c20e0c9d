package transactions

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"agency-backoffice-server/handlers/auth"
	"agency-backoffice-server/handlers/notifications"
	"agency-backoffice-server/models"
	"agency-backoffice-server/utils"
	"agency-backoffice-server/workflow"
)

// ListTransactions returns the transactions visible to the caller, optionally
// filtered by ?status=.
func ListTransactions(c *gin.Context) {
	actor, ok := auth.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found in context"})
		return
	}

	query := workflow.TransactionsFor(utils.DB, actor)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var transactions []models.Transaction
	if err := query.Order("created_at DESC").Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// GetTransaction returns a single transaction if the caller may see it.
func GetTransaction(c *gin.Context) {
	actor, ok := auth.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found in context"})
		return
	}

	var transaction models.Transaction
	if err := workflow.TransactionsFor(utils.DB, actor).First(&transaction, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransactionStatus moves a transaction through its workflow via the
// engine. Completing a sub-agent transaction creates the commission; the
// sub-agent is notified in-app and by email, both best effort.
func UpdateTransactionStatus(c *gin.Context) {
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

	var transaction models.Transaction
	if err := workflow.TransactionsFor(utils.DB, actor).First(&transaction, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	result, err := workflow.ChangeTransactionStatus(utils.DB, actor, transaction.ID, models.TransactionStatus(input.Status))
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "This status change is not allowed from the current status."})
		case errors.Is(err, workflow.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "Your role is not permitted to perform this action."})
		case errors.Is(err, workflow.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		default:
			log.Printf("Transaction status update failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		}
		return
	}

	response := gin.H{
		"message": "Transaction status updated",
		"from":    result.From,
		"to":      result.To,
	}
	if result.Commission != nil {
		response["commission"] = result.Commission
		notifications.Notify(result.Commission.SubagentID, "Commission recorded",
			"A commission was recorded for "+transaction.StudentName+"'s application.")

		var subAgent models.Agent
		if err := utils.DB.First(&subAgent, result.Commission.SubagentID).Error; err == nil {
			go utils.SendCommissionEmail(subAgent.Email, transaction.StudentName, result.Commission.Amount)
		}
	}
	if result.CascadeErr != nil {
		response["cascade_error"] = result.CascadeErr.Error()
	}

	c.JSON(http.StatusOK, response)
}
