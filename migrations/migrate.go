package migrations

import (
	"agency-backoffice-server/models"
	"agency-backoffice-server/utils"
)

func MigrateAccounts() {
	utils.DB.AutoMigrate(&models.Agent{}, &models.Counsellor{})
}

func MigrateCatalogue() {
	utils.DB.AutoMigrate(&models.College{}, &models.Course{})
}

func MigrateWorkflow() {
	utils.DB.AutoMigrate(&models.Application{}, &models.Transaction{}, &models.Commission{})
}

func MigrateNotifications() {
	utils.DB.AutoMigrate(&models.Notification{})
}
