package workflow

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agency-backoffice-server/models"
)

// newTestDB opens an isolated in-memory sqlite database, one per test, with
// the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Agent{},
		&models.Counsellor{},
		&models.College{},
		&models.Course{},
		&models.Application{},
		&models.Transaction{},
		&models.Commission{},
		&models.Notification{},
	))
	return db
}

func createAgent(t *testing.T, db *gorm.DB, name string) *models.Agent {
	t.Helper()
	agent := &models.Agent{
		Name:     name,
		Email:    name + "@example.test",
		Password: "not-a-real-hash",
	}
	require.NoError(t, db.Create(agent).Error)
	return agent
}

func createSubAgent(t *testing.T, db *gorm.DB, parent *models.Agent, name string) *models.Agent {
	t.Helper()
	parentID := parent.ID
	subAgent := &models.Agent{
		Name:         name,
		Email:        name + "@example.test",
		Password:     "not-a-real-hash",
		SuperAgentID: &parentID,
	}
	require.NoError(t, db.Create(subAgent).Error)
	return subAgent
}

func createCounsellor(t *testing.T, db *gorm.DB, parent *models.Agent, name string) *models.Counsellor {
	t.Helper()
	counsellor := &models.Counsellor{
		Name:     name,
		Email:    name + "@example.test",
		Password: "not-a-real-hash",
		ParentID: parent.ID,
		AgentID:  parent.TopAgentID(),
	}
	require.NoError(t, db.Create(counsellor).Error)
	return counsellor
}

// createCatalogue seeds one college with one course whose first-year fee is
// 50000, the amount the cascade tests expect.
func createCatalogue(t *testing.T, db *gorm.DB) (*models.College, *models.Course) {
	t.Helper()
	college := &models.College{Name: "Test College", Country: "Canada", City: "Toronto"}
	require.NoError(t, db.Create(college).Error)
	course := &models.Course{
		CollegeID:     college.ID,
		Name:          "Computer Programming",
		Level:         "Diploma",
		DurationYears: 2,
		FirstYearFee:  50000,
		TotalFee:      100000,
	}
	require.NoError(t, db.Create(course).Error)
	return college, course
}

type applicationOpts struct {
	status     models.ApplicationStatus
	subagent   *models.Agent
	collegeID  *uint
	courseID   *uint
	college    string
	courseName string
}

func createApplication(t *testing.T, db *gorm.DB, owner *models.Agent, opts applicationOpts) *models.Application {
	t.Helper()
	if opts.status == "" {
		opts.status = models.ApplicationPending
	}
	app := &models.Application{
		ReferenceNo:  "APP-" + uuid.NewString(),
		StudentName:  "Asha Rao",
		Status:       opts.status,
		SuperagentID: owner.TopAgentID(),
		CollegeID:    opts.collegeID,
		CourseID:     opts.courseID,
		CollegeName:  opts.college,
		CourseName:   opts.courseName,
	}
	if opts.subagent != nil {
		subagentID := opts.subagent.ID
		app.SubagentID = &subagentID
	}
	require.NoError(t, db.Create(app).Error)
	return app
}
