package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agency-backoffice-server/models"
	"agency-backoffice-server/utils"
	"agency-backoffice-server/workflow"
)

// AuthMiddleware validates the bearer token, loads the account it names
// (agent or counsellor) and puts both the account and the derived workflow
// actor in the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}

		accountID, accountType, issuedAt, err := utils.ExtractAccountFromToken(authHeader)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		if accountType == "counsellor" {
			var counsellor models.Counsellor
			if err := utils.DB.First(&counsellor, accountID).Error; err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
				c.Abort()
				return
			}
			c.Set("counsellor", counsellor)
			c.Set("actor", workflow.ActorForCounsellor(&counsellor))
			c.Next()
			return
		}

		var agent models.Agent
		if err := utils.DB.First(&agent, accountID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
			c.Abort()
			return
		}

		// Tokens issued before the last logout are dead, whatever their exp.
		if agent.LastLogoutAt != nil && !issuedAt.IsZero() && issuedAt.Before(*agent.LastLogoutAt) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is no longer valid. Please log in again."})
			c.Abort()
			return
		}

		c.Set("agent", agent)
		c.Set("actor", workflow.ActorForAgent(&agent))

		c.Next()
	}
}

// CurrentActor fetches the workflow actor the middleware stored. The bool is
// false when the route was somehow reached without the middleware.
func CurrentActor(c *gin.Context) (workflow.Actor, bool) {
	actorInterface, exists := c.Get("actor")
	if !exists {
		return workflow.Actor{}, false
	}
	return actorInterface.(workflow.Actor), true
}
