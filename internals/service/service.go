package service

import (
	"fmt"
	"time"

	logger "github.com/AryanVohra-Kiwi/library-management-system/loggers"

	"github.com/AryanVohra-Kiwi/library-management-system/internals/apperrors"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/repository"
)

const (
	// LoanPeriodDays is the fixed loan policy: due date = issue date + 7 days.
	LoanPeriodDays = 7

	// StaleThresholdDays is the cutoff for the "issued too long" reports.
	StaleThresholdDays = 8

	maxTxRetries = 3
)

// withConflictRetry reruns op when it loses a unique-key race (two requests
// allocating the same copy number). Bounded; the last failure surfaces as
// ErrConflict for the caller to retry.
func withConflictRetry(op func() error) error {
	var err error
	for attempt := 1; attempt <= maxTxRetries; attempt++ {
		err = op()
		if err == nil || !repository.IsDuplicateKey(err) {
			return err
		}
		logger.Logger.Warnf("allocation conflict, retrying (attempt %d): %v", attempt, err)
	}
	return fmt.Errorf("%w: %v", apperrors.ErrConflict, err)
}

// truncateToDay drops the time-of-day component. Calendar dates are anchored
// to UTC everywhere: request dates parse as UTC midnight, so stored issue and
// due dates must land on the same midnight no matter what zone the server
// clock runs in.
func truncateToDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
