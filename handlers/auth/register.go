package auth

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"agency-backoffice-server/models"
	"agency-backoffice-server/utils"
	"agency-backoffice-server/workflow"
)

// RegisterAgent creates a new top-level agent account.
func RegisterAgent(c *gin.Context) {
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

	var existing models.Agent
	if err := utils.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists. Please log in."})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing your password. Please try again."})
		return
	}

	agent := models.Agent{
		Name:        input.Name,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Password:    string(hashedPassword),
	}

	if err := utils.DB.Create(&agent).Error; err != nil {
		log.Printf("Failed to create agent in the database: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "We encountered an issue creating your account. Please contact support."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account registered successfully. You can now log in."})
}

// CreateSubAgent creates a sub-agent under the calling top-level agent. The
// hierarchy is two levels deep at most, so sub-agents cannot create their own
// sub-agents.
func CreateSubAgent(c *gin.Context) {
	actor, ok := CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found in context"})
		return
	}
	if actor.Role != workflow.RoleAgent {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only top-level agents can create sub-agents."})
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

	var existing models.Agent
	if err := utils.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists."})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing the password. Please try again."})
		return
	}

	parentID := actor.ID
	subAgent := models.Agent{
		Name:         input.Name,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		Password:     string(hashedPassword),
		SuperAgentID: &parentID,
	}

	if err := utils.DB.Create(&subAgent).Error; err != nil {
		log.Printf("Failed to create sub-agent in the database: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "We encountered an issue creating the sub-agent. Please try again later."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sub-agent created successfully.", "sub_agent": subAgent})
}

// ListSubAgents returns the sub-agents under the calling top-level agent.
func ListSubAgents(c *gin.Context) {
	actor, ok := CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found in context"})
		return
	}
	if actor.Role != workflow.RoleAgent {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only top-level agents can list sub-agents."})
		return
	}

	var subAgents []models.Agent
	if err := utils.DB.Where("super_agent_id = ?", actor.ID).Find(&subAgents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sub-agents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sub_agents": subAgents})
}
