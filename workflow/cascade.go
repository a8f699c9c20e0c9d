package workflow

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"agency-backoffice-server/models"
)

// CommissionRate is the sub-agent payout fraction, snapshotted onto the
// commission row at creation time.
const CommissionRate = 0.10

// resolveCourse finds the course an application points at. Newer rows carry a
// course id; legacy rows imported from spreadsheets only carry the course
// name, so fall back to a case-insensitive name match.
func resolveCourse(db *gorm.DB, app *models.Application) (*models.Course, error) {
	var course models.Course
	if app.CourseID != nil {
		if err := db.First(&course, *app.CourseID).Error; err == nil {
			return &course, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if app.CourseName == "" {
		return nil, gorm.ErrRecordNotFound
	}
	if err := db.Where("LOWER(name) = LOWER(?)", app.CourseName).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// resolveCollegeName resolves the college display name the same dual way.
func resolveCollegeName(db *gorm.DB, app *models.Application) (string, error) {
	var college models.College
	if app.CollegeID != nil {
		if err := db.First(&college, *app.CollegeID).Error; err == nil {
			return college.Name, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
	}
	if app.CollegeName == "" {
		return "", gorm.ErrRecordNotFound
	}
	if err := db.Where("LOWER(name) = LOWER(?)", app.CollegeName).First(&college).Error; err != nil {
		return "", err
	}
	return college.Name, nil
}

func appendNote(notes, entry string) string {
	line := fmt.Sprintf("[%s] %s", time.Now().Format(time.RFC3339), entry)
	if notes == "" {
		return line
	}
	return notes + "\n" + line
}

// cascadeApplicationCompleted creates or refreshes the transaction derived
// from a completed application. The amount comes from the course's first-year
// fee; if the course or college cannot be resolved the amount defaults to 0
// and the cascade still proceeds, so a catalogue gap never blocks the
// application workflow. The find-or-create runs inside a database transaction
// and the unique index on application_id backstops it, so re-completing an
// application updates the existing row instead of inserting a second one.
func cascadeApplicationCompleted(db *gorm.DB, app *models.Application) (*models.Transaction, error) {
	var amount float64
	courseName := app.CourseName
	if course, err := resolveCourse(db, app); err != nil {
		log.Printf("Could not resolve course for application %d, defaulting amount to 0: %v", app.ID, err)
	} else {
		amount = course.FirstYearFee
		courseName = course.Name
	}

	collegeName := app.CollegeName
	if name, err := resolveCollegeName(db, app); err != nil {
		log.Printf("Could not resolve college for application %d: %v", app.ID, err)
	} else {
		collegeName = name
	}

	var txn models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("application_id = ?", app.ID).First(&txn).Error
		if err == nil {
			// Already cascaded once: refresh the amount and leave the
			// status alone, with an audit trail of each re-completion.
			txn.Amount = amount
			txn.Notes = appendNote(txn.Notes, "amount refreshed on application re-completion")
			return tx.Model(&txn).Updates(map[string]interface{}{
				"amount": txn.Amount,
				"notes":  txn.Notes,
			}).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		txn = models.Transaction{
			ApplicationID: app.ID,
			SuperagentID:  app.SuperagentID,
			SubagentID:    app.SubagentID, // carried over verbatim; commission attribution depends on it
			StudentName:   app.StudentName,
			CollegeName:   collegeName,
			CourseName:    courseName,
			Amount:        amount,
			Status:        models.TransactionPending,
			Notes:         appendNote("", "transaction created on application completion"),
		}
		return tx.Create(&txn).Error
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// cascadeTransactionCompleted creates the commission payout for a completed
// transaction. Direct (agent-only) transactions produce no commission. The
// amount is a snapshot of CommissionRate times the transaction amount; the
// unique index on transaction_id plus the existence check keep re-completions
// from paying twice.
func cascadeTransactionCompleted(db *gorm.DB, txn *models.Transaction) (*models.Commission, error) {
	if txn.SubagentID == nil {
		return nil, nil
	}

	var comm models.Commission
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("transaction_id = ?", txn.ID).First(&comm).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		comm = models.Commission{
			ApplicationID: txn.ApplicationID,
			TransactionID: txn.ID,
			AgentID:       txn.SuperagentID,
			SubagentID:    *txn.SubagentID,
			Amount:        txn.Amount * CommissionRate,
			Status:        models.CommissionPending,
		}
		return tx.Create(&comm).Error
	})
	if err != nil {
		return nil, err
	}
	return &comm, nil
}
