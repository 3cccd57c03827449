package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/AryanVohra-Kiwi/library-management-system/internals/models"
)

type IssueRepository interface {
	Create(record *models.IssueRecord) error
	// FindOpen returns the outstanding record for (customer, title), the
	// "already issued" guard. At most one such row exists at any time.
	FindOpen(customerID, titleID uint) (*models.IssueRecord, error)
	SetReturned(id uint, returnedAt time.Time) error
	FindByID(id uint) (*models.IssueRecord, error)
	ListByCustomer(customerID uint, openOnly bool) ([]models.IssueRecord, error)
	ListAll() ([]models.IssueRecord, error)
	// ListPaged orders by issue_date desc, id desc so pagination stays stable.
	ListPaged(titleID *uint, page, pageSize int) ([]models.IssueRecord, int64, error)
	// ListByTitleMatch filters on a case-insensitive substring of the title
	// name; an empty substring matches everything.
	ListByTitleMatch(substring string) ([]models.IssueRecord, error)
	ListByIssueDate(date time.Time) ([]models.IssueRecord, error)
	ListIssuedOnOrBefore(cutoff time.Time) ([]models.IssueRecord, error)
}

type issueRepo struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &issueRepo{db: db}
}

func (r *issueRepo) preloaded() *gorm.DB {
	return r.db.Preload("Copy").Preload("Copy.Title").Preload("Customer")
}

func (r *issueRepo) Create(record *models.IssueRecord) error {
	return r.db.Create(record).Error
}

func (r *issueRepo) FindOpen(customerID, titleID uint) (*models.IssueRecord, error) {
	var record models.IssueRecord
	err := r.preloaded().
		Joins("JOIN copies ON copies.id = issue_records.copy_id").
		Where("issue_records.customer_id = ? AND copies.title_id = ? AND issue_records.returned_at IS NULL",
			customerID, titleID).
		First(&record).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &record, nil
}

func (r *issueRepo) SetReturned(id uint, returnedAt time.Time) error {
	result := r.db.Model(&models.IssueRecord{}).
		Where("id = ?", id).
		Update("returned_at", returnedAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translateNotFound(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *issueRepo) FindByID(id uint) (*models.IssueRecord, error) {
	var record models.IssueRecord
	if err := r.preloaded().First(&record, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &record, nil
}

func (r *issueRepo) ListByCustomer(customerID uint, openOnly bool) ([]models.IssueRecord, error) {
	query := r.preloaded().Where("customer_id = ?", customerID)
	if openOnly {
		query = query.Where("returned_at IS NULL")
	}
	var records []models.IssueRecord
	if err := query.Order("issue_date desc, id desc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *issueRepo) ListAll() ([]models.IssueRecord, error) {
	var records []models.IssueRecord
	err := r.preloaded().Order("issue_date desc, id desc").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *issueRepo) ListPaged(titleID *uint, page, pageSize int) ([]models.IssueRecord, int64, error) {
	base := r.db.Model(&models.IssueRecord{})
	if titleID != nil {
		base = base.
			Joins("JOIN copies ON copies.id = issue_records.copy_id").
			Where("copies.title_id = ?", *titleID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.preloaded()
	if titleID != nil {
		query = query.
			Joins("JOIN copies ON copies.id = issue_records.copy_id").
			Where("copies.title_id = ?", *titleID)
	}
	var records []models.IssueRecord
	err := query.
		Order("issue_date desc, issue_records.id desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *issueRepo) ListByTitleMatch(substring string) ([]models.IssueRecord, error) {
	query := r.preloaded()
	if substring != "" {
		query = query.
			Joins("JOIN copies ON copies.id = issue_records.copy_id").
			Joins("JOIN titles ON titles.id = copies.title_id").
			Where("LOWER(titles.title) LIKE LOWER(?)", "%"+substring+"%")
	}
	var records []models.IssueRecord
	err := query.Order("issue_date desc, issue_records.id desc").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *issueRepo) ListByIssueDate(date time.Time) ([]models.IssueRecord, error) {
	var records []models.IssueRecord
	err := r.preloaded().
		Where("issue_date = ?", date).
		Order("id desc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *issueRepo) ListIssuedOnOrBefore(cutoff time.Time) ([]models.IssueRecord, error) {
	var records []models.IssueRecord
	err := r.preloaded().
		Where("issue_date <= ?", cutoff).
		Order("issue_date desc, id desc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
