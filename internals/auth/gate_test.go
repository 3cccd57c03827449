package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/AryanVohra-Kiwi/library-management-system/internals/models"
)

func newGateFixture(t *testing.T) (*gorm.DB, Gate) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.UserProfile{}, &models.SubAdminPermission{}))
	return db, NewGate(db)
}

func TestAdminPassesEveryAction(t *testing.T) {
	_, gate := newGateFixture(t)
	principal := Principal{UserID: 1, Role: models.RoleAdmin}

	for _, action := range []Action{
		ActionReadBook, ActionUpdateBook, ActionDeleteBook,
		ActionIssueBook, ActionViewReports, ActionManageSubAdmins,
	} {
		allowed, err := gate.Authorize(context.Background(), principal, action)
		require.NoError(t, err)
		assert.True(t, allowed, "action %s", action)
	}
}

func TestSubAdminNeedsCodename(t *testing.T) {
	db, gate := newGateFixture(t)
	require.NoError(t, db.Create(&models.SubAdminPermission{UserID: 7, Codename: string(ActionReadBook)}).Error)
	principal := Principal{UserID: 7, Role: models.RoleSubAdmin}

	allowed, err := gate.Authorize(context.Background(), principal, ActionReadBook)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = gate.Authorize(context.Background(), principal, ActionUpdateBook)
	require.NoError(t, err)
	assert.False(t, allowed)

	// admin-only actions are never grantable to sub-admins
	allowed, err = gate.Authorize(context.Background(), principal, ActionManageSubAdmins)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestCustomerActions(t *testing.T) {
	_, gate := newGateFixture(t)
	principal := Principal{UserID: 3, Role: models.RoleCustomer}

	allowedCases := map[Action]bool{
		ActionReadBook:        true,
		ActionIssueBook:       true,
		ActionUpdateBook:      false,
		ActionDeleteBook:      false,
		ActionViewReports:     false,
		ActionManageSubAdmins: false,
	}
	for action, want := range allowedCases {
		allowed, err := gate.Authorize(context.Background(), principal, action)
		require.NoError(t, err)
		assert.Equal(t, want, allowed, "action %s", action)
	}
}

func TestUnknownRoleDeniedEverything(t *testing.T) {
	_, gate := newGateFixture(t)
	principal := Principal{UserID: 9, Role: models.Role("visitor")}

	allowed, err := gate.Authorize(context.Background(), principal, ActionReadBook)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestIsValidCodename(t *testing.T) {
	assert.True(t, IsValidCodename("read_book"))
	assert.True(t, IsValidCodename("update_book"))
	assert.True(t, IsValidCodename("delete_book"))
	assert.False(t, IsValidCodename("manage_sub_admins"))
	assert.False(t, IsValidCodename(""))
}
