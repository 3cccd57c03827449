package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AryanVohra-Kiwi/library-management-system/internals/apperrors"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/models"
)

func TestSubAdminLifecycle(t *testing.T) {
	db := newTestDB(t)
	subAdmins := NewSubAdminService(db)

	view, err := subAdmins.Create(SubAdminInput{
		FirstName: "Gurney",
		Email:     "gurney@example.com",
		Password:  "warmaster1",
		Codenames: []string{"read_book", "update_book"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"read_book", "update_book"}, view.Codenames)

	var user models.UserProfile
	require.NoError(t, db.First(&user, view.ID).Error)
	assert.Equal(t, models.RoleSubAdmin, user.Role)
	assert.NotEqual(t, "warmaster1", user.Password, "password must be hashed")

	listed, err := subAdmins.List()
	require.NoError(t, err)
	require.Len(t, listed, 1)

	updated, err := subAdmins.UpdatePermissions(view.ID, []string{"delete_book"})
	require.NoError(t, err)
	assert.Equal(t, []string{"delete_book"}, updated.Codenames)

	require.NoError(t, subAdmins.Delete(view.ID))
	listed, err = subAdmins.List()
	require.NoError(t, err)
	assert.Empty(t, listed)

	var permCount int64
	require.NoError(t, db.Model(&models.SubAdminPermission{}).Count(&permCount).Error)
	assert.Zero(t, permCount)
}

func TestSubAdminCreateRejectsUnknownCodename(t *testing.T) {
	db := newTestDB(t)
	subAdmins := NewSubAdminService(db)

	_, err := subAdmins.Create(SubAdminInput{
		FirstName: "Gurney",
		Email:     "gurney@example.com",
		Password:  "warmaster1",
		Codenames: []string{"drop_tables"},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSubAdminCreateRejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	subAdmins := NewSubAdminService(db)

	input := SubAdminInput{FirstName: "Gurney", Email: "gurney@example.com", Password: "warmaster1"}
	_, err := subAdmins.Create(input)
	require.NoError(t, err)
	_, err = subAdmins.Create(input)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSubAdminOperationsIgnoreOtherRoles(t *testing.T) {
	db := newTestDB(t)
	subAdmins := NewSubAdminService(db)

	customer := models.UserProfile{FirstName: "Paul", Email: "paul@example.com", Password: "x", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&customer).Error)

	_, err := subAdmins.UpdatePermissions(customer.ID, []string{"read_book"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, subAdmins.Delete(customer.ID), apperrors.ErrNotFound)
}
