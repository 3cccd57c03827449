package repository

import (
	"gorm.io/gorm"

	"github.com/AryanVohra-Kiwi/library-management-system/internals/models"
)

type TitleRepository interface {
	Create(title *models.Title) error
	FindByID(id uint) (*models.Title, error)
	// LockByID reads the title row under an exclusive lock; copy-number
	// allocation serializes on it.
	LockByID(id uint) (*models.Title, error)
	FindByNaturalKey(title, author, edition string) (*models.Title, error)
	FindAll() ([]models.Title, error)
	UpdateFields(id uint, fields map[string]interface{}) error
	Delete(id uint) error
}

type titleRepo struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepo{db: db}
}

func (r *titleRepo) Create(title *models.Title) error {
	return r.db.Create(title).Error
}

func (r *titleRepo) FindByID(id uint) (*models.Title, error) {
	var title models.Title
	if err := r.db.First(&title, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &title, nil
}

func (r *titleRepo) LockByID(id uint) (*models.Title, error) {
	var title models.Title
	if err := forUpdate(r.db).First(&title, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &title, nil
}

func (r *titleRepo) FindByNaturalKey(title, author, edition string) (*models.Title, error) {
	var existing models.Title
	err := r.db.
		Where("title = ? AND author = ? AND edition = ?", title, author, edition).
		First(&existing).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &existing, nil
}

func (r *titleRepo) FindAll() ([]models.Title, error) {
	var titles []models.Title
	if err := r.db.Order("id asc").Find(&titles).Error; err != nil {
		return nil, err
	}
	return titles, nil
}

func (r *titleRepo) UpdateFields(id uint, fields map[string]interface{}) error {
	result := r.db.Model(&models.Title{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translateNotFound(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *titleRepo) Delete(id uint) error {
	result := r.db.Delete(&models.Title{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translateNotFound(gorm.ErrRecordNotFound)
	}
	return nil
}
