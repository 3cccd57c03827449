package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/AryanVohra-Kiwi/library-management-system/internals/apperrors"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/models"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/repository"
)

// CatalogService manages the title catalog: creation with duplicate
// detection, detail views with live copy state, metadata edits and the
// copy-first delete flow.
type CatalogService struct {
	db        *gorm.DB
	inventory *InventoryService
}

func NewCatalogService(db *gorm.DB, inventory *InventoryService) *CatalogService {
	return &CatalogService{db: db, inventory: inventory}
}

type TitleInput struct {
	Title           string
	Author          string
	Edition         string
	Price           float64
	PublicationDate time.Time
	Subject         string
	Genre           string
	Publisher       string
}

func (in *TitleInput) validate() error {
	switch {
	case in.Title == "":
		return fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	case in.Author == "":
		return fmt.Errorf("%w: author is required", apperrors.ErrValidation)
	case in.Publisher == "":
		return fmt.Errorf("%w: publisher is required", apperrors.ErrValidation)
	case in.Price < 0:
		return fmt.Errorf("%w: price cannot be negative", apperrors.ErrValidation)
	}
	return nil
}

type CreateTitleResult struct {
	Title     *models.Title
	Copy      *models.Copy
	Duplicate bool
}

// CreateTitle inserts a new catalog entry with its first copy. Submitting a
// title that already exists (same title, author and edition) does not create
// a second catalog row; it adds one more copy under the existing title.
func (s *CatalogService) CreateTitle(input TitleInput) (*CreateTitleResult, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var result *CreateTitleResult
	err := withConflictRetry(func() error {
		titles := repository.NewTitleRepository(s.db)

		existing, err := titles.FindByNaturalKey(input.Title, input.Author, input.Edition)
		if err == nil {
			copy, copyErr := s.inventory.CreateCopy(existing.ID)
			if copyErr != nil {
				return copyErr
			}
			result = &CreateTitleResult{Title: existing, Copy: copy, Duplicate: true}
			return nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		title := &models.Title{
			Title:           input.Title,
			Author:          input.Author,
			Edition:         input.Edition,
			Price:           input.Price,
			PublicationDate: input.PublicationDate,
			Subject:         input.Subject,
			Genre:           input.Genre,
			Publisher:       input.Publisher,
		}
		// title and its first copy land together or not at all; the title
		// row is invisible to other requests until commit, so copy number 1
		// cannot race
		var copy *models.Copy
		err = s.db.Transaction(func(tx *gorm.DB) error {
			if err := repository.NewTitleRepository(tx).Create(title); err != nil {
				return err
			}
			copy = &models.Copy{TitleID: title.ID, CopyNumber: 1, Status: models.StatusAvailable}
			return repository.NewCopyRepository(tx).Create(copy)
		})
		if err != nil {
			return err
		}
		result = &CreateTitleResult{Title: title, Copy: copy, Duplicate: false}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type CopySummary struct {
	ID         uint              `json:"id"`
	CopyNumber int               `json:"copy_number"`
	Status     models.CopyStatus `json:"status"`
}

type TitleDetail struct {
	Title           *models.Title
	AvailableCopies int64
	Copies          []CopySummary
}

// GetTitle returns the catalog entry with its live available-copy count and
// the status of every copy.
func (s *CatalogService) GetTitle(id uint) (*TitleDetail, error) {
	titles := repository.NewTitleRepository(s.db)
	copies := repository.NewCopyRepository(s.db)

	title, err := titles.FindByID(id)
	if err != nil {
		return nil, err
	}
	available, err := copies.CountAvailable(id)
	if err != nil {
		return nil, err
	}
	all, err := copies.ListByTitle(id)
	if err != nil {
		return nil, err
	}

	summaries := make([]CopySummary, 0, len(all))
	for _, copy := range all {
		summaries = append(summaries, CopySummary{
			ID:         copy.ID,
			CopyNumber: copy.CopyNumber,
			Status:     copy.Status,
		})
	}
	return &TitleDetail{Title: title, AvailableCopies: available, Copies: summaries}, nil
}

func (s *CatalogService) ListTitles() ([]models.Title, error) {
	return repository.NewTitleRepository(s.db).FindAll()
}

// UpdateTitle applies a partial metadata edit; fields holds only the columns
// the caller set.
func (s *CatalogService) UpdateTitle(id uint, fields map[string]interface{}) (*models.Title, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", apperrors.ErrValidation)
	}
	titles := repository.NewTitleRepository(s.db)
	if err := titles.UpdateFields(id, fields); err != nil {
		return nil, err
	}
	return titles.FindByID(id)
}

type DeleteResult struct {
	DeletedCopy  *models.Copy
	TitleDeleted bool
}

// Delete removes the newest copy first; the title row itself goes only once
// no copies remain.
func (s *CatalogService) Delete(id uint) (*DeleteResult, error) {
	titles := repository.NewTitleRepository(s.db)
	if _, err := titles.FindByID(id); err != nil {
		return nil, err
	}

	copy, err := s.inventory.DeleteLatestCopy(id)
	if err == nil {
		return &DeleteResult{DeletedCopy: copy}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if err := titles.Delete(id); err != nil {
		return nil, err
	}
	return &DeleteResult{TitleDeleted: true}, nil
}
