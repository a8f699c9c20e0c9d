package workflow

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"agency-backoffice-server/models"
)

// TransitionResult reports the outcome of a status change. The primary
// update always succeeded when a result is returned; CascadeErr carries any
// failure of the dependent-record step. That failure is deliberately not an
// error return: derived financial records are best effort, the main workflow
// must not be blocked by them. Callers and tests can still assert on both
// halves independently.
type TransitionResult struct {
	Kind        EntityKind          `json:"kind"`
	From        string              `json:"from"`
	To          string              `json:"to"`
	Transaction *models.Transaction `json:"transaction,omitempty"` // set when a cascade created/updated one
	Commission  *models.Commission  `json:"commission,omitempty"`  // set when a cascade created one
	CascadeErr  error               `json:"-"`
}

// ChangeApplicationStatus validates and applies a status change on an
// application, then runs the completion cascade when the new status is
// Completed. Counsellors are rejected outright before any lookup: theirs is
// a permission problem, not a state problem.
func ChangeApplicationStatus(db *gorm.DB, actor Actor, applicationID uint, to models.ApplicationStatus) (*TransitionResult, error) {
	if actor.Role == RoleCounsellor {
		return nil, ErrPermissionDenied
	}

	var app models.Application
	if err := ApplicationsFor(db, actor).First(&app, applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !IsValidTransition(KindApplication, string(app.Status), string(to), actor.Privileged()) {
		return nil, ErrInvalidTransition
	}

	result := &TransitionResult{Kind: KindApplication, From: string(app.Status), To: string(to)}
	if err := db.Model(&app).Update("status", to).Error; err != nil {
		return nil, err
	}
	app.Status = to

	if to == models.ApplicationCompleted {
		txn, err := cascadeApplicationCompleted(db, &app)
		if err != nil {
			log.Printf("Cascade failed for completed application %d: %v", app.ID, err)
			result.CascadeErr = err
		} else {
			result.Transaction = txn
		}
	}
	return result, nil
}

// ChangeTransactionStatus validates and applies a status change on a
// transaction, creating the sub-agent commission when the new status is
// Completed and a sub-agent is attached.
func ChangeTransactionStatus(db *gorm.DB, actor Actor, transactionID uint, to models.TransactionStatus) (*TransitionResult, error) {
	if actor.Role == RoleCounsellor {
		return nil, ErrPermissionDenied
	}

	var txn models.Transaction
	if err := TransactionsFor(db, actor).First(&txn, transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !IsValidTransition(KindTransaction, string(txn.Status), string(to), actor.Privileged()) {
		return nil, ErrInvalidTransition
	}

	result := &TransitionResult{Kind: KindTransaction, From: string(txn.Status), To: string(to)}
	if err := db.Model(&txn).Update("status", to).Error; err != nil {
		return nil, err
	}
	txn.Status = to

	if to == models.TransactionCompleted {
		comm, err := cascadeTransactionCompleted(db, &txn)
		if err != nil {
			log.Printf("Commission cascade failed for completed transaction %d: %v", txn.ID, err)
			result.CascadeErr = err
		} else {
			result.Commission = comm
		}
	}
	return result, nil
}

// ChangeCommissionStatus validates and applies a status change on a
// commission. Commissions are the end of the chain; no cascade fires.
func ChangeCommissionStatus(db *gorm.DB, actor Actor, commissionID uint, to models.CommissionStatus) (*TransitionResult, error) {
	if actor.Role == RoleCounsellor {
		return nil, ErrPermissionDenied
	}

	var comm models.Commission
	if err := CommissionsFor(db, actor).First(&comm, commissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !IsValidTransition(KindCommission, string(comm.Status), string(to), actor.Privileged()) {
		return nil, ErrInvalidTransition
	}

	result := &TransitionResult{Kind: KindCommission, From: string(comm.Status), To: string(to)}
	if err := db.Model(&comm).Update("status", to).Error; err != nil {
		return nil, err
	}
	return result, nil
}
