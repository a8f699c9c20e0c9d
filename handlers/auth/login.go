package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"agency-backoffice-server/models"
	"agency-backoffice-server/utils"
	"agency-backoffice-server/workflow"
)

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please provide a valid email and password."})
		return
	}

	// Agents and counsellors live in separate tables; try agents first.
	var agent models.Agent
	if err := utils.DB.Where("email = ?", input.Email).First(&agent).Error; err == nil {
		if err := bcrypt.CompareHashAndPassword([]byte(agent.Password), []byte(input.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
			return
		}

		tokenString, err := utils.GenerateAccessToken(agent.ID, "agent")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
			return
		}

		refreshToken, err := utils.GenerateRefreshToken()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate refresh token"})
			return
		}
		agent.RefreshToken = utils.HashToken(refreshToken)
		if err := utils.DB.Save(&agent).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save refresh token"})
			return
		}

		role := workflow.RoleAgent
		if agent.IsSubAgent() {
			role = workflow.RoleSubAgent
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Login successful.",
			"token":         tokenString,
			"refresh_token": refreshToken,
			"user": gin.H{
				"id":    agent.ID,
				"email": agent.Email,
				"name":  agent.Name,
				"role":  role,
			},
		})
		return
	}

	var counsellor models.Counsellor
	if err := utils.DB.Where("email = ?", input.Email).First(&counsellor).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(counsellor.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
		return
	}

	tokenString, err := utils.GenerateAccessToken(counsellor.ID, "counsellor")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful.",
		"token":   tokenString,
		"user": gin.H{
			"id":    counsellor.ID,
			"email": counsellor.Email,
			"name":  counsellor.Name,
			"role":  workflow.RoleCounsellor,
		},
	})
}
