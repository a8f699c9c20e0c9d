package auth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agency-backoffice-server/models"
	"agency-backoffice-server/utils"
)

func setupProtectedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Agent{}, &models.Counsellor{}))

	utils.DB = db
	utils.JwtSecret = []byte("test-secret")

	r := gin.New()
	protected := r.Group("/")
	protected.Use(AuthMiddleware())
	protected.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	protected.POST("/logout", Logout)
	return r
}

func doAuthed(t *testing.T, r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Logging out must kill outstanding access tokens, not just the refresh
// token: a token issued before the last logout is rejected even though its
// expiry is days away.
func TestLogoutInvalidatesOutstandingTokens(t *testing.T) {
	r := setupProtectedRouter(t)

	agent := models.Agent{Name: "a", Email: "a@example.test", Password: "x"}
	require.NoError(t, utils.DB.Create(&agent).Error)

	token, err := utils.GenerateAccessToken(agent.ID, "agent")
	require.NoError(t, err)

	w := doAuthed(t, r, http.MethodGet, "/me", token)
	require.Equal(t, http.StatusOK, w.Code)

	// Logout as the handler does it. The iat claim has second resolution,
	// so pin the logout moment to a whole second after the token's issue.
	logoutAt := time.Now().Truncate(time.Second).Add(time.Second)
	require.NoError(t, utils.DB.Model(&agent).Updates(map[string]interface{}{
		"refresh_token":  "",
		"last_logout_at": logoutAt,
	}).Error)

	w = doAuthed(t, r, http.MethodGet, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "pre-logout tokens must be rejected")

	// A token issued after the logout works again.
	time.Sleep(1100 * time.Millisecond)
	freshToken, err := utils.GenerateAccessToken(agent.ID, "agent")
	require.NoError(t, err)
	w = doAuthed(t, r, http.MethodGet, "/me", freshToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
