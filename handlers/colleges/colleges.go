package colleges

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"agency-backoffice-server/handlers/auth"
	"agency-backoffice-server/models"
	"agency-backoffice-server/utils"
	"agency-backoffice-server/workflow"
)

// The catalogue is shared across all agencies; only top-level agents may
// change it.

func CreateCollege(c *gin.Context) {
	actor, ok := auth.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found in context"})
		return
	}
	if actor.Role != workflow.RoleAgent {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only top-level agents can manage the catalogue."})
		return
	}

	var college models.College
	if err := c.ShouldBindJSON(&college); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if college.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "College name is required."})
		return
	}

	if err := utils.DB.Create(&college).Error; err != nil {
		log.Printf("Failed to create college: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create college"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "College created successfully", "college": college})
}

func ListColleges(c *gin.Context) {
	var colleges []models.College
	if err := utils.DB.Order("name").Find(&colleges).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch colleges"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"colleges": colleges})
}

func GetCollege(c *gin.Context) {
	var college models.College
	if err := utils.DB.Preload("Courses").First(&college, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "College not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"college": college})
}

func CreateCourse(c *gin.Context) {
	actor, ok := auth.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found in context"})
		return
	}
	if actor.Role != workflow.RoleAgent {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only top-level agents can manage the catalogue."})
		return
	}

	var course models.Course
	if err := c.ShouldBindJSON(&course); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if course.Name == "" || course.CollegeID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Course name and college id are required."})
		return
	}

	var college models.College
	if err := utils.DB.First(&college, course.CollegeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "College not found"})
		return
	}

	if err := utils.DB.Create(&course).Error; err != nil {
		log.Printf("Failed to create course: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course created successfully", "course": course})
}

func ListCourses(c *gin.Context) {
	query := utils.DB.Model(&models.Course{})
	if collegeID := c.Query("college_id"); collegeID != "" {
		query = query.Where("college_id = ?", collegeID)
	}

	var courses []models.Course
	if err := query.Order("name").Find(&courses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch courses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": courses})
}
