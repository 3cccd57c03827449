package service

import (
	"time"

	"gorm.io/gorm"

	"github.com/AryanVohra-Kiwi/library-management-system/internals/models"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/repository"
)

// HistoryPageSize is fixed for the admin reports.
const HistoryPageSize = 10

// ReportService answers the admin search and history queries over the issue
// ledger.
type ReportService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db, now: time.Now}
}

type SearchFilter struct {
	// Title is a case-insensitive substring match; empty matches all.
	Title string
	// ExactDays keeps records outstanding exactly this many days as of
	// today. Takes precedence over OverThreshold; the two are never
	// combined.
	ExactDays *int
	// OverThreshold keeps records outstanding more than StaleThresholdDays.
	OverThreshold bool
}

// Search filters the ledger by title and by how long each record has been
// outstanding. The day filters are mutually exclusive: ExactDays wins when
// both are set.
//
// The day filters run in Go over the title-matched rows rather than in SQL.
// An admin search scans one title's ledger at most, so the row count stays
// small; History is the query that needs database-side pagination.
func (s *ReportService) Search(filter SearchFilter) ([]models.IssueRecord, error) {
	issues := repository.NewIssueRepository(s.db)
	records, err := issues.ListByTitleMatch(filter.Title)
	if err != nil {
		return nil, err
	}

	today := s.now()
	switch {
	case filter.ExactDays != nil:
		matched := make([]models.IssueRecord, 0, len(records))
		for _, record := range records {
			if DaysOutstanding(&record, today) == *filter.ExactDays {
				matched = append(matched, record)
			}
		}
		return matched, nil
	case filter.OverThreshold:
		matched := make([]models.IssueRecord, 0, len(records))
		for _, record := range records {
			if DaysOutstanding(&record, today) > StaleThresholdDays {
				matched = append(matched, record)
			}
		}
		return matched, nil
	default:
		return records, nil
	}
}

type HistoryPage struct {
	Records  []models.IssueRecord
	Page     int
	PageSize int
	Total    int64
}

// History pages through the ledger, optionally scoped to one title. Ordered
// issue_date descending then id descending so pages are deterministic.
func (s *ReportService) History(titleID *uint, page int) (*HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	issues := repository.NewIssueRepository(s.db)
	records, total, err := issues.ListPaged(titleID, page, HistoryPageSize)
	if err != nil {
		return nil, err
	}
	return &HistoryPage{
		Records:  records,
		Page:     page,
		PageSize: HistoryPageSize,
		Total:    total,
	}, nil
}

// HistoryByDate returns records issued on the given date. Without a date it
// is the stale report: everything issued at least StaleThresholdDays ago.
func (s *ReportService) HistoryByDate(date *time.Time) ([]models.IssueRecord, error) {
	issues := repository.NewIssueRepository(s.db)
	if date != nil {
		return issues.ListByIssueDate(truncateToDay(*date))
	}
	cutoff := truncateToDay(s.now()).AddDate(0, 0, -StaleThresholdDays)
	return issues.ListIssuedOnOrBefore(cutoff)
}
