package repository

import (
	"gorm.io/gorm"

	"github.com/AryanVohra-Kiwi/library-management-system/internals/models"
)

type CustomerRepository interface {
	Create(customer *models.Customer) error
	FindByID(id uint) (*models.Customer, error)
	FindByUserID(userID uint) (*models.Customer, error)
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) FindByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &customer, nil
}

func (r *customerRepo) FindByUserID(userID uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Where("user_id = ?", userID).First(&customer).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &customer, nil
}
