package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/AryanVohra-Kiwi/library-management-system/internals/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// a second pool connection would see its own empty :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.UserProfile{},
		&models.SubAdminPermission{},
		&models.Customer{},
		&models.Title{},
		&models.Copy{},
		&models.IssueRecord{},
	))
	return db
}

func createTitle(t *testing.T, db *gorm.DB, name, author, edition string) *models.Title {
	t.Helper()
	title := &models.Title{
		Title:           name,
		Author:          author,
		Edition:         edition,
		Price:           9.99,
		PublicationDate: time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC),
		Publisher:       "Chilton Books",
	}
	require.NoError(t, db.Create(title).Error)
	return title
}

func createCustomer(t *testing.T, db *gorm.DB, userID uint, name string) *models.Customer {
	t.Helper()
	customer := &models.Customer{UserID: userID, Name: name}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func copyByID(t *testing.T, db *gorm.DB, id uint) *models.Copy {
	t.Helper()
	var copy models.Copy
	require.NoError(t, db.First(&copy, id).Error)
	return &copy
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testDay = time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC)
