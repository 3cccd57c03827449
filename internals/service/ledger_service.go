package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/AryanVohra-Kiwi/library-management-system/internals/apperrors"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/models"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/repository"
)

// LedgerService records issue and return events. Each operation runs in one
// transaction together with the inventory status change so the copy status
// and the ledger can never diverge.
type LedgerService struct {
	db        *gorm.DB
	inventory *InventoryService
	now       func() time.Time
}

func NewLedgerService(db *gorm.DB, inventory *InventoryService) *LedgerService {
	return &LedgerService{db: db, inventory: inventory, now: time.Now}
}

// Issue loans the lowest-numbered Available copy of the title to the
// customer. A customer can hold at most one open record per title.
func (s *LedgerService) Issue(customerID, titleID uint) (*models.IssueRecord, error) {
	var recordID uint
	err := withConflictRetry(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			titles := repository.NewTitleRepository(tx)
			copies := repository.NewCopyRepository(tx)
			issues := repository.NewIssueRepository(tx)

			// the title row lock serializes same-title issues; without it a
			// second transaction could pass the open-record check below and
			// claim another copy for the same customer
			if _, err := titles.LockByID(titleID); err != nil {
				return err
			}

			_, err := issues.FindOpen(customerID, titleID)
			if err == nil {
				return apperrors.ErrAlreadyIssued
			}
			if !errors.Is(err, apperrors.ErrNotFound) {
				return err
			}

			copy, err := copies.LockLowestAvailable(titleID)
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.ErrNoCopyAvailable
			}
			if err != nil {
				return err
			}

			if err := s.inventory.MarkIssued(tx, copy.ID); err != nil {
				return err
			}

			today := truncateToDay(s.now())
			record := &models.IssueRecord{
				CopyID:     copy.ID,
				CustomerID: customerID,
				IssueDate:  today,
				DueDate:    today.AddDate(0, 0, LoanPeriodDays),
			}
			if err := issues.Create(record); err != nil {
				return err
			}
			recordID = record.ID
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return repository.NewIssueRepository(s.db).FindByID(recordID)
}

// Return closes the customer's open record for the title and puts the copy
// back in circulation. NotFound when nothing is outstanding.
func (s *LedgerService) Return(customerID, titleID uint) (*models.IssueRecord, error) {
	var recordID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		issues := repository.NewIssueRepository(tx)

		record, err := issues.FindOpen(customerID, titleID)
		if err != nil {
			return err
		}
		if err := issues.SetReturned(record.ID, s.now()); err != nil {
			return err
		}
		if err := s.inventory.MarkReturned(tx, record.CopyID); err != nil {
			return err
		}
		recordID = record.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return repository.NewIssueRepository(s.db).FindByID(recordID)
}

// ListCustomerIssues returns the customer's records, optionally only the
// outstanding ones.
func (s *LedgerService) ListCustomerIssues(customerID uint, openOnly bool) ([]models.IssueRecord, error) {
	return repository.NewIssueRepository(s.db).ListByCustomer(customerID, openOnly)
}

// DaysOutstanding is the whole number of calendar days between the issue date
// and asOf. Computed for reporting, never stored. Both endpoints are UTC
// midnights, so the delta is an exact multiple of 24 hours.
func DaysOutstanding(record *models.IssueRecord, asOf time.Time) int {
	from := truncateToDay(record.IssueDate)
	to := truncateToDay(asOf)
	return int(to.Sub(from) / (24 * time.Hour))
}
