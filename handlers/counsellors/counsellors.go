package counsellors

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"agency-backoffice-server/handlers/auth"
	"agency-backoffice-server/models"
	"agency-backoffice-server/utils"
	"agency-backoffice-server/workflow"
)

// CreateCounsellor adds a counsellor under the calling agent or sub-agent.
// The engine enforces the per-parent cap of two.
func CreateCounsellor(c *gin.Context) {
	actor, ok := auth.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found in context"})
		return
	}

	var input struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		PhoneNumber string `json:"phone_number"`
		Password    string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please ensure all required fields are filled correctly."})
		return
	}

	if input.Name == "" || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email and password are required."})
		return
	}

	var existing models.Counsellor
	if err := utils.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A counsellor with this email already exists."})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing the password. Please try again."})
		return
	}

	counsellor := models.Counsellor{
		Name:        input.Name,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Password:    string(hashedPassword),
	}

	if err := workflow.CreateCounsellor(utils.DB, actor, &counsellor); err != nil {
		switch {
		case errors.Is(err, workflow.ErrCapacityExceeded):
			c.JSON(http.StatusConflict, gin.H{"error": "You already have the maximum of two counsellors."})
		case errors.Is(err, workflow.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "Counsellors cannot create counsellors."})
		default:
			log.Printf("Failed to create counsellor: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "We encountered an issue creating the counsellor. Please try again later."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Counsellor created successfully.", "counsellor": counsellor})
}

// ListCounsellors returns the counsellors created by the calling account.
func ListCounsellors(c *gin.Context) {
	actor, ok := auth.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found in context"})
		return
	}
	if actor.Role == workflow.RoleCounsellor {
		c.JSON(http.StatusForbidden, gin.H{"error": "Counsellors cannot manage counsellors."})
		return
	}

	var list []models.Counsellor
	if err := utils.DB.Where("parent_id = ?", actor.ID).Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch counsellors"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"counsellors": list})
}

// DeleteCounsellor removes a counsellor the calling account created. This is
// the one direct delete in the system; everything else only changes status.
func DeleteCounsellor(c *gin.Context) {
	actor, ok := auth.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found in context"})
		return
	}
	if actor.Role == workflow.RoleCounsellor {
		c.JSON(http.StatusForbidden, gin.H{"error": "Counsellors cannot manage counsellors."})
		return
	}

	var counsellor models.Counsellor
	if err := utils.DB.Where("id = ? AND parent_id = ?", c.Param("id"), actor.ID).First(&counsellor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Counsellor not found under your account"})
		return
	}

	if err := utils.DB.Delete(&counsellor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete counsellor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Counsellor deleted successfully."})
}
