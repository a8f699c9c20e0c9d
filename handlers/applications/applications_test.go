package applications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agency-backoffice-server/handlers/auth"
	"agency-backoffice-server/models"
	"agency-backoffice-server/utils"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Agent{}, &models.Counsellor{}, &models.College{}, &models.Course{},
		&models.Application{}, &models.Transaction{}, &models.Commission{}, &models.Notification{},
	))

	utils.DB = db
	utils.JwtSecret = []byte("test-secret")

	r := gin.New()
	protected := r.Group("/")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("/applications", CreateApplication)
		protected.GET("/applications", ListApplications)
		protected.GET("/applications/:id", GetApplication)
		protected.PUT("/applications/:id/status", UpdateApplicationStatus)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	r := setupRouter(t)
	w := doJSON(t, r, http.MethodGet, "/applications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCounsellorCannotCreateApplication(t *testing.T) {
	r := setupRouter(t)

	agent := models.Agent{Name: "a", Email: "a@example.test", Password: "x"}
	require.NoError(t, utils.DB.Create(&agent).Error)
	counsellor := models.Counsellor{Name: "c", Email: "c@example.test", Password: "x", ParentID: agent.ID, AgentID: agent.ID}
	require.NoError(t, utils.DB.Create(&counsellor).Error)

	token, err := utils.GenerateAccessToken(counsellor.ID, "counsellor")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/applications", token, gin.H{"student_name": "Asha Rao"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Read access still works: counsellors see the hierarchy's applications.
	w = doJSON(t, r, http.MethodGet, "/applications", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAgentApplicationLifecycle(t *testing.T) {
	r := setupRouter(t)

	agent := models.Agent{Name: "a", Email: "a@example.test", Password: "x"}
	require.NoError(t, utils.DB.Create(&agent).Error)
	token, err := utils.GenerateAccessToken(agent.ID, "agent")
	require.NoError(t, err)

	college := models.College{Name: "Test College"}
	require.NoError(t, utils.DB.Create(&college).Error)
	course := models.Course{CollegeID: college.ID, Name: "Computer Programming", FirstYearFee: 50000}
	require.NoError(t, utils.DB.Create(&course).Error)

	w := doJSON(t, r, http.MethodPost, "/applications", token, gin.H{
		"student_name": "Asha Rao",
		"college_id":   college.ID,
		"course_id":    course.ID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created struct {
		Application models.Application `json:"application"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	appID := created.Application.ID
	assert.Equal(t, models.ApplicationPending, created.Application.Status)

	statusURL := fmt.Sprintf("/applications/%d/status", appID)
	for _, status := range []string{"Verified", "Documents Uploaded"} {
		w = doJSON(t, r, http.MethodPut, statusURL, token, gin.H{"status": status})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	// Completion triggers the transaction cascade; the response carries it.
	w = doJSON(t, r, http.MethodPut, statusURL, token, gin.H{"status": "Completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response struct {
		Transaction *models.Transaction `json:"transaction"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.Transaction)
	assert.Equal(t, float64(50000), response.Transaction.Amount)

	// Skipping a step is rejected without persisting.
	w = doJSON(t, r, http.MethodPut, statusURL, token, gin.H{"status": "Pending"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSubAgentRestrictedTransition(t *testing.T) {
	r := setupRouter(t)

	agent := models.Agent{Name: "a", Email: "a@example.test", Password: "x"}
	require.NoError(t, utils.DB.Create(&agent).Error)
	parentID := agent.ID
	sub := models.Agent{Name: "s", Email: "s@example.test", Password: "x", SuperAgentID: &parentID}
	require.NoError(t, utils.DB.Create(&sub).Error)

	subID := sub.ID
	app := models.Application{
		ReferenceNo: "APP-test-1", StudentName: "Asha Rao",
		Status: models.ApplicationPending, SuperagentID: agent.ID, SubagentID: &subID,
	}
	require.NoError(t, utils.DB.Create(&app).Error)

	token, err := utils.GenerateAccessToken(sub.ID, "agent")
	require.NoError(t, err)

	statusURL := fmt.Sprintf("/applications/%d/status", app.ID)
	w := doJSON(t, r, http.MethodPut, statusURL, token, gin.H{"status": "Verified"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "sub-agents cannot verify")

	require.NoError(t, utils.DB.Model(&app).Update("status", models.ApplicationVerified).Error)
	w = doJSON(t, r, http.MethodPut, statusURL, token, gin.H{"status": "Documents Uploaded"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
