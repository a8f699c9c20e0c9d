package applications

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"agency-backoffice-server/handlers/auth"
	"agency-backoffice-server/handlers/notifications"
	"agency-backoffice-server/models"
	"agency-backoffice-server/utils"
	"agency-backoffice-server/workflow"
)

// CreateApplication registers a new student application under the caller's
// hierarchy. Counsellors are read-only and get a 403.
func CreateApplication(c *gin.Context) {
	actor, ok := auth.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found in context"})
		return
	}
	if actor.Role == workflow.RoleCounsellor {
		c.JSON(http.StatusForbidden, gin.H{"error": "Counsellors cannot create applications."})
		return
	}

	var input struct {
		StudentName  string `json:"student_name"`
		StudentEmail string `json:"student_email"`
		StudentPhone string `json:"student_phone"`
		CollegeID    *uint  `json:"college_id"`
		CourseID     *uint  `json:"course_id"`
		CollegeName  string `json:"college_name"`
		CourseName   string `json:"course_name"`
		IntakeMonth  string `json:"intake_month"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.StudentName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Student name is required."})
		return
	}

	application := models.Application{
		ReferenceNo:  "APP-" + uuid.NewString(),
		StudentName:  input.StudentName,
		StudentEmail: input.StudentEmail,
		StudentPhone: input.StudentPhone,
		CollegeID:    input.CollegeID,
		CourseID:     input.CourseID,
		CollegeName:  input.CollegeName,
		CourseName:   input.CourseName,
		IntakeMonth:  input.IntakeMonth,
		Status:       models.ApplicationPending,
		SuperagentID: actor.AgentID,
	}
	if actor.Role == workflow.RoleSubAgent {
		subagentID := actor.ID
		application.SubagentID = &subagentID
	}

	if err := utils.DB.Create(&application).Error; err != nil {
		log.Printf("Failed to create application: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create application"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application created successfully", "application": application})
}

// ListApplications returns the applications visible to the caller, optionally
// filtered by ?status=.
func ListApplications(c *gin.Context) {
	actor, ok := auth.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found in context"})
		return
	}

	query := workflow.ApplicationsFor(utils.DB, actor)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var applications []models.Application
	if err := query.Order("created_at DESC").Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

// GetApplication returns a single application if the caller may see it.
func GetApplication(c *gin.Context) {
	actor, ok := auth.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found in context"})
		return
	}

	var application models.Application
	if err := workflow.ApplicationsFor(utils.DB, actor).First(&application, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"application": application})
}

// UpdateApplicationStatus moves an application through its workflow via the
// engine. A cascade failure does not fail the request; it is reported in the
// response alongside the successful status change.
func UpdateApplicationStatus(c *gin.Context) {
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

	var application models.Application
	if err := workflow.ApplicationsFor(utils.DB, actor).First(&application, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	result, err := workflow.ChangeApplicationStatus(utils.DB, actor, application.ID, models.ApplicationStatus(input.Status))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	response := gin.H{
		"message": "Application status updated",
		"from":    result.From,
		"to":      result.To,
	}
	if result.Transaction != nil {
		response["transaction"] = result.Transaction
		notifications.Notify(application.SuperagentID, "Transaction ready",
			"A transaction was recorded for application "+application.ReferenceNo+".")
	}
	if result.CascadeErr != nil {
		response["cascade_error"] = result.CascadeErr.Error()
	}

	c.JSON(http.StatusOK, response)
}

// AssignSubAgent attributes an application to one of the agent's sub-agents.
func AssignSubAgent(c *gin.Context) {
	actor, ok := auth.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found in context"})
		return
	}
	if actor.Role != workflow.RoleAgent {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only top-level agents can assign sub-agents."})
		return
	}

	var input struct {
		SubagentID uint `json:"subagent_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.SubagentID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A sub-agent id is required."})
		return
	}

	// The sub-agent must belong to the caller's hierarchy
	var subAgent models.Agent
	if err := utils.DB.Where("id = ? AND super_agent_id = ?", input.SubagentID, actor.ID).First(&subAgent).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sub-agent not found under your account"})
		return
	}

	var application models.Application
	if err := workflow.ApplicationsFor(utils.DB, actor).First(&application, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	if err := utils.DB.Model(&application).Update("subagent_id", input.SubagentID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign sub-agent"})
		return
	}

	notifications.Notify(subAgent.ID, "Application assigned",
		"Application "+application.ReferenceNo+" has been assigned to you.")

	c.JSON(http.StatusOK, gin.H{"message": "Sub-agent assigned successfully"})
}

// UpdateDocuments stores the uploaded-documents location on an application.
// Storage itself is handled elsewhere; only the URL lands here.
func UpdateDocuments(c *gin.Context) {
	actor, ok := auth.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found in context"})
		return
	}
	if actor.Role == workflow.RoleCounsellor {
		c.JSON(http.StatusForbidden, gin.H{"error": "Counsellors cannot modify applications."})
		return
	}

	var input struct {
		DocumentsURL string `json:"documents_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.DocumentsURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A documents URL is required."})
		return
	}

	var application models.Application
	if err := workflow.ApplicationsFor(utils.DB, actor).First(&application, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	if err := utils.DB.Model(&application).Update("documents_url", input.DocumentsURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Documents updated successfully"})
}

func respondWorkflowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, workflow.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "This status change is not allowed from the current status."})
	case errors.Is(err, workflow.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "Your role is not permitted to perform this action."})
	case errors.Is(err, workflow.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	default:
		log.Printf("Status update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
	}
}
