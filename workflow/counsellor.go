package workflow

import (
	"gorm.io/gorm"

	"agency-backoffice-server/models"
)

// MaxCounsellorsPerParent caps how many counsellors one agent or sub-agent
// may create. There is no database constraint for this; the count check below
// is the enforcement.
const MaxCounsellorsPerParent = 2

// CreateCounsellor inserts a counsellor under the calling agent or sub-agent,
// enforcing the per-parent cap. The count and insert run inside one database
// transaction so two concurrent creations cannot both slip under the cap.
func CreateCounsellor(db *gorm.DB, actor Actor, counsellor *models.Counsellor) error {
	if actor.Role == RoleCounsellor {
		return ErrPermissionDenied
	}

	counsellor.ParentID = actor.ID
	counsellor.AgentID = actor.AgentID

	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Counsellor{}).Where("parent_id = ?", actor.ID).Count(&count).Error; err != nil {
			return err
		}
		if count >= MaxCounsellorsPerParent {
			return ErrCapacityExceeded
		}
		return tx.Create(counsellor).Error
	})
}
