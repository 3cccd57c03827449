package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/AryanVohra-Kiwi/library-management-system/internals/models"
)

type reportFixture struct {
	db        *gorm.DB
	inventory *InventoryService
	ledger    *LedgerService
	reports   *ReportService
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	db := newTestDB(t)
	inventory := NewInventoryService(db)
	ledger := NewLedgerService(db, inventory)
	reports := NewReportService(db)
	return &reportFixture{db: db, inventory: inventory, ledger: ledger, reports: reports}
}

// issueOn back-dates the ledger clock so the record looks issued on that day.
func (f *reportFixture) issueOn(t *testing.T, customerID, titleID uint, day time.Time) *models.IssueRecord {
	t.Helper()
	f.ledger.now = fixedClock(day)
	record, err := f.ledger.Issue(customerID, titleID)
	require.NoError(t, err)
	return record
}

func (f *reportFixture) seedTitleWithCopy(t *testing.T, name string) *models.Title {
	t.Helper()
	title := createTitle(t, f.db, name, "Author", "1")
	_, err := f.inventory.CreateCopy(title.ID)
	require.NoError(t, err)
	return title
}

func TestSearchExactDaysBoundary(t *testing.T) {
	f := newReportFixture(t)
	title := f.seedTitleWithCopy(t, "Dune")
	customer := createCustomer(t, f.db, 1, "Paul")
	f.issueOn(t, customer.ID, title.ID, testDay)

	seven := 7
	for _, tc := range []struct {
		daysLater int
		matches   bool
	}{
		{6, false},
		{7, true},
		{8, false},
	} {
		f.reports.now = fixedClock(testDay.AddDate(0, 0, tc.daysLater))
		records, err := f.reports.Search(SearchFilter{Title: "Dune", ExactDays: &seven})
		require.NoError(t, err)
		if tc.matches {
			assert.Len(t, records, 1, "day +%d", tc.daysLater)
		} else {
			assert.Empty(t, records, "day +%d", tc.daysLater)
		}
	}
}

func TestSearchExactDaysWinsOverThresholdFlag(t *testing.T) {
	f := newReportFixture(t)
	title := f.seedTitleWithCopy(t, "Dune")
	customer := createCustomer(t, f.db, 1, "Paul")
	f.issueOn(t, customer.ID, title.ID, testDay)

	// the record is 10 days out: the over-8 flag alone would match it, but
	// the exact filter takes precedence and excludes it
	f.reports.now = fixedClock(testDay.AddDate(0, 0, 10))
	seven := 7
	records, err := f.reports.Search(SearchFilter{ExactDays: &seven, OverThreshold: true})
	require.NoError(t, err)
	assert.Empty(t, records)

	ten := 10
	records, err = f.reports.Search(SearchFilter{ExactDays: &ten, OverThreshold: true})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSearchOverThresholdIsStrict(t *testing.T) {
	f := newReportFixture(t)
	customer := createCustomer(t, f.db, 1, "Paul")

	old := f.seedTitleWithCopy(t, "Old Loan")
	fresh := f.seedTitleWithCopy(t, "Fresh Loan")
	f.issueOn(t, customer.ID, old.ID, testDay.AddDate(0, 0, -9))
	f.issueOn(t, customer.ID, fresh.ID, testDay.AddDate(0, 0, -8))

	f.reports.now = fixedClock(testDay)
	records, err := f.reports.Search(SearchFilter{OverThreshold: true})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Old Loan", records[0].Copy.Title.Title)
}

func TestSearchTitleSubstringCaseInsensitive(t *testing.T) {
	f := newReportFixture(t)
	customer := createCustomer(t, f.db, 1, "Paul")
	dune := f.seedTitleWithCopy(t, "Dune Messiah")
	hobbit := f.seedTitleWithCopy(t, "The Hobbit")
	f.issueOn(t, customer.ID, dune.ID, testDay)
	f.issueOn(t, customer.ID, hobbit.ID, testDay)

	f.reports.now = fixedClock(testDay)
	records, err := f.reports.Search(SearchFilter{Title: "dune"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Dune Messiah", records[0].Copy.Title.Title)

	records, err = f.reports.Search(SearchFilter{})
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestHistoryPaginationIsStable(t *testing.T) {
	f := newReportFixture(t)
	for i := 0; i < 12; i++ {
		title := f.seedTitleWithCopy(t, fmt.Sprintf("Book %02d", i))
		customer := createCustomer(t, f.db, uint(i+1), fmt.Sprintf("Customer %d", i))
		f.issueOn(t, customer.ID, title.ID, testDay.AddDate(0, 0, -i))
	}

	first, err := f.reports.History(nil, 1)
	require.NoError(t, err)
	assert.Len(t, first.Records, 10)
	assert.EqualValues(t, 12, first.Total)
	// newest first
	assert.Equal(t, "Book 00", first.Records[0].Copy.Title.Title)

	second, err := f.reports.History(nil, 2)
	require.NoError(t, err)
	assert.Len(t, second.Records, 2)
	assert.Equal(t, "Book 11", second.Records[1].Copy.Title.Title)
}

func TestHistoryFilteredByTitle(t *testing.T) {
	f := newReportFixture(t)
	dune := f.seedTitleWithCopy(t, "Dune")
	hobbit := f.seedTitleWithCopy(t, "The Hobbit")
	paul := createCustomer(t, f.db, 1, "Paul")
	bilbo := createCustomer(t, f.db, 2, "Bilbo")
	f.issueOn(t, paul.ID, dune.ID, testDay)
	f.issueOn(t, bilbo.ID, hobbit.ID, testDay)

	page, err := f.reports.History(&dune.ID, 1)
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, "Dune", page.Records[0].Copy.Title.Title)
}

func TestHistoryByDate(t *testing.T) {
	f := newReportFixture(t)
	dune := f.seedTitleWithCopy(t, "Dune")
	hobbit := f.seedTitleWithCopy(t, "The Hobbit")
	customer := createCustomer(t, f.db, 1, "Paul")
	f.issueOn(t, customer.ID, dune.ID, testDay)
	f.issueOn(t, customer.ID, hobbit.ID, testDay.AddDate(0, 0, -1))

	date := testDay
	records, err := f.reports.HistoryByDate(&date)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Dune", records[0].Copy.Title.Title)
}

func TestHistoryByDateMatchesNonUTCServerClock(t *testing.T) {
	f := newReportFixture(t)
	title := f.seedTitleWithCopy(t, "Dune")
	customer := createCustomer(t, f.db, 1, "Paul")

	// issued at 12:30 IST on March 10th; querying with the UTC midnight a
	// parsed "2025-03-10" request produces must still find it
	ist := time.FixedZone("IST", 5*3600+1800)
	f.issueOn(t, customer.ID, title.ID, time.Date(2025, 3, 10, 12, 30, 0, 0, ist))

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	records, err := f.reports.HistoryByDate(&date)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Dune", records[0].Copy.Title.Title)
}

func TestHistoryByDateDefaultsToStaleReport(t *testing.T) {
	f := newReportFixture(t)
	stale := f.seedTitleWithCopy(t, "Stale Loan")
	fresh := f.seedTitleWithCopy(t, "Fresh Loan")
	customer := createCustomer(t, f.db, 1, "Paul")
	f.issueOn(t, customer.ID, stale.ID, testDay.AddDate(0, 0, -8))
	f.issueOn(t, customer.ID, fresh.ID, testDay.AddDate(0, 0, -7))

	f.reports.now = fixedClock(testDay)
	records, err := f.reports.HistoryByDate(nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Stale Loan", records[0].Copy.Title.Title)
}
