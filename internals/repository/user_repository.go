package repository

import (
	"gorm.io/gorm"

	"github.com/AryanVohra-Kiwi/library-management-system/internals/models"
)

type UserRepository interface {
	Create(user *models.UserProfile) error
	FindByID(id uint) (*models.UserProfile, error)
	FindByEmail(email string) (*models.UserProfile, error)
	ListByRole(role models.Role) ([]models.UserProfile, error)
	Delete(id uint) error

	PermissionCodenames(userID uint) ([]string, error)
	// ReplacePermissions swaps the user's whole codename set in one shot.
	ReplacePermissions(userID uint, codenames []string) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(user *models.UserProfile) error {
	return r.db.Create(user).Error
}

func (r *userRepo) FindByID(id uint) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func (r *userRepo) FindByEmail(email string) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func (r *userRepo) ListByRole(role models.Role) ([]models.UserProfile, error) {
	var users []models.UserProfile
	if err := r.db.Where("role = ?", role).Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.SubAdminPermission{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.UserProfile{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return translateNotFound(gorm.ErrRecordNotFound)
		}
		return nil
	})
}

func (r *userRepo) PermissionCodenames(userID uint) ([]string, error) {
	var codenames []string
	err := r.db.Model(&models.SubAdminPermission{}).
		Where("user_id = ?", userID).
		Order("codename asc").
		Pluck("codename", &codenames).Error
	if err != nil {
		return nil, err
	}
	return codenames, nil
}

func (r *userRepo) ReplacePermissions(userID uint, codenames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.SubAdminPermission{}).Error; err != nil {
			return err
		}
		for _, codename := range codenames {
			perm := models.SubAdminPermission{UserID: userID, Codename: codename}
			if err := tx.Create(&perm).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
