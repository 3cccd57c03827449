package repository

import (
	"gorm.io/gorm"

	"github.com/AryanVohra-Kiwi/library-management-system/internals/models"
)

type CopyRepository interface {
	Create(copy *models.Copy) error
	FindByID(id uint) (*models.Copy, error)
	// MaxCopyNumber returns 0 when the title has no copies yet.
	MaxCopyNumber(titleID uint) (int, error)
	// LockLowestAvailable picks the Available copy with the smallest
	// copy_number under an exclusive lock; issuing is deterministic.
	LockLowestAvailable(titleID uint) (*models.Copy, error)
	LockHighestCopy(titleID uint) (*models.Copy, error)
	UpdateStatus(id uint, status models.CopyStatus) error
	ListByTitle(titleID uint) ([]models.Copy, error)
	CountByTitle(titleID uint) (int64, error)
	CountAvailable(titleID uint) (int64, error)
	Delete(id uint) error
}

type copyRepo struct {
	db *gorm.DB
}

func NewCopyRepository(db *gorm.DB) CopyRepository {
	return &copyRepo{db: db}
}

func (r *copyRepo) Create(copy *models.Copy) error {
	return r.db.Create(copy).Error
}

func (r *copyRepo) FindByID(id uint) (*models.Copy, error) {
	var copy models.Copy
	if err := r.db.First(&copy, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &copy, nil
}

func (r *copyRepo) MaxCopyNumber(titleID uint) (int, error) {
	var highest int
	err := r.db.Model(&models.Copy{}).
		Where("title_id = ?", titleID).
		Select("COALESCE(MAX(copy_number), 0)").
		Scan(&highest).Error
	if err != nil {
		return 0, err
	}
	return highest, nil
}

func (r *copyRepo) LockLowestAvailable(titleID uint) (*models.Copy, error) {
	var copy models.Copy
	err := forUpdate(r.db).
		Where("title_id = ? AND status = ?", titleID, models.StatusAvailable).
		Order("copy_number asc").
		First(&copy).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &copy, nil
}

func (r *copyRepo) LockHighestCopy(titleID uint) (*models.Copy, error) {
	var copy models.Copy
	err := forUpdate(r.db).
		Where("title_id = ?", titleID).
		Order("copy_number desc").
		First(&copy).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &copy, nil
}

func (r *copyRepo) UpdateStatus(id uint, status models.CopyStatus) error {
	result := r.db.Model(&models.Copy{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translateNotFound(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *copyRepo) ListByTitle(titleID uint) ([]models.Copy, error) {
	var copies []models.Copy
	err := r.db.
		Where("title_id = ?", titleID).
		Order("copy_number asc").
		Find(&copies).Error
	if err != nil {
		return nil, err
	}
	return copies, nil
}

func (r *copyRepo) CountByTitle(titleID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Copy{}).
		Where("title_id = ?", titleID).
		Count(&count).Error
	return count, err
}

func (r *copyRepo) CountAvailable(titleID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Copy{}).
		Where("title_id = ? AND status = ?", titleID, models.StatusAvailable).
		Count(&count).Error
	return count, err
}

func (r *copyRepo) Delete(id uint) error {
	result := r.db.Delete(&models.Copy{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translateNotFound(gorm.ErrRecordNotFound)
	}
	return nil
}
