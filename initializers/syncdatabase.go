package initializers

import "github.com/AryanVohra-Kiwi/library-management-system/internals/models"

func SyncDatabase() {
	DB.AutoMigrate(
		&models.UserProfile{},
		&models.SubAdminPermission{},
		&models.Customer{},
		&models.Title{},
		&models.Copy{},
		&models.IssueRecord{},
	)
}
