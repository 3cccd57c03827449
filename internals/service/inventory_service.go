package service

import (
	"gorm.io/gorm"

	"github.com/AryanVohra-Kiwi/library-management-system/internals/apperrors"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/models"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/repository"
)

// InventoryService owns the per-copy status transitions and copy-number
// assignment. Issue/return bookkeeping lives in LedgerService, which calls
// MarkIssued/MarkReturned inside its own transaction so the two stay atomic.
type InventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

// CreateCopy allocates the next copy number for the title and inserts an
// Available copy. The title row is locked for the duration of the allocation
// so two concurrent requests cannot compute the same number; a lost race
// trips the unique index and is retried.
func (s *InventoryService) CreateCopy(titleID uint) (*models.Copy, error) {
	var created *models.Copy
	err := withConflictRetry(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			titles := repository.NewTitleRepository(tx)
			copies := repository.NewCopyRepository(tx)

			if _, err := titles.LockByID(titleID); err != nil {
				return err
			}
			highest, err := copies.MaxCopyNumber(titleID)
			if err != nil {
				return err
			}

			copy := &models.Copy{
				TitleID:    titleID,
				CopyNumber: highest + 1,
				Status:     models.StatusAvailable,
			}
			// A zero copy number means allocation never got a valid slot;
			// such a copy must not enter circulation.
			if copy.CopyNumber <= 0 {
				copy.Status = models.StatusUnavailable
			}
			if err := copies.Create(copy); err != nil {
				return err
			}
			created = copy
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// MarkIssued flips the copy to Issued. It runs on the caller's transaction
// handle: the ledger invokes it together with the IssueRecord insert.
func (s *InventoryService) MarkIssued(tx *gorm.DB, copyID uint) error {
	copies := repository.NewCopyRepository(tx)
	copy, err := copies.FindByID(copyID)
	if err != nil {
		return err
	}
	status := models.StatusIssued
	if copy.CopyNumber <= 0 {
		status = models.StatusUnavailable
	}
	return copies.UpdateStatus(copy.ID, status)
}

// MarkReturned flips an Issued copy back to Available on the caller's
// transaction handle.
func (s *InventoryService) MarkReturned(tx *gorm.DB, copyID uint) error {
	copies := repository.NewCopyRepository(tx)
	copy, err := copies.FindByID(copyID)
	if err != nil {
		return err
	}
	if copy.Status != models.StatusIssued {
		return apperrors.ErrInvalidTransition
	}
	return copies.UpdateStatus(copy.ID, models.StatusAvailable)
}

// DeleteLatestCopy removes the highest-numbered copy of the title (LIFO
// deletion). NotFound when the title has no copies left; the caller deletes
// the title itself in that case.
func (s *InventoryService) DeleteLatestCopy(titleID uint) (*models.Copy, error) {
	var deleted *models.Copy
	err := s.db.Transaction(func(tx *gorm.DB) error {
		copies := repository.NewCopyRepository(tx)
		copy, err := copies.LockHighestCopy(titleID)
		if err != nil {
			return err
		}
		if err := copies.Delete(copy.ID); err != nil {
			return err
		}
		deleted = copy
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// SetCopyStatus is the administrative override for manual edits such as
// marking a copy Lost or Damaged.
func (s *InventoryService) SetCopyStatus(copyID uint, status models.CopyStatus) error {
	if !models.IsValidCopyStatus(status) {
		return apperrors.ErrValidation
	}
	copies := repository.NewCopyRepository(s.db)
	if _, err := copies.FindByID(copyID); err != nil {
		return err
	}
	return copies.UpdateStatus(copyID, status)
}
