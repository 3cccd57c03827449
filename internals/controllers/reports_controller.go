package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AryanVohra-Kiwi/library-management-system/internals/models"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/service"
)

type ReportController struct {
	reports *service.ReportService
}

func NewReportController(reports *service.ReportService) *ReportController {
	return &ReportController{reports: reports}
}

type AdminSearchRequest struct {
	Title              string `json:"title"`
	NumberOfDaysIssued *int   `json:"number_of_days_issued"`
	FilterOver8Days    bool   `json:"filter_over_8_days"`
}

// Search filters the ledger by title substring and outstanding duration.
// The two day filters are mutually exclusive; the exact-day filter wins.
func (rc *ReportController) Search(c *gin.Context) {
	var request AdminSearchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err)
		return
	}

	records, err := rc.reports.Search(service.SearchFilter{
		Title:         request.Title,
		ExactDays:     request.NumberOfDaysIssued,
		OverThreshold: request.FilterOver8Days,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response := make([]IssueRecordResponse, 0, len(records))
	for i := range records {
		response = append(response, convertIssueRecordToResponse(&records[i]))
	}
	c.JSON(http.StatusOK, gin.H{"matched_books": response})
}

// History pages through the ledger, optionally scoped to one book.
func (rc *ReportController) History(c *gin.Context) {
	var titleID *uint
	if raw := c.Query("book_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "book_id must be a positive integer"})
			return
		}
		id := uint(parsed)
		titleID = &id
	}
	page := 1
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a positive integer"})
			return
		}
		page = parsed
	}

	history, err := rc.reports.History(titleID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	response := make([]IssueRecordResponse, 0, len(history.Records))
	for i := range history.Records {
		response = append(response, convertIssueRecordToResponse(&history.Records[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"results":   response,
		"page":      history.Page,
		"page_size": history.PageSize,
		"total":     history.Total,
	})
}

// HistoryByDate lists records issued on an exact date; with no date it is
// the stale-issues report.
func (rc *ReportController) HistoryByDate(c *gin.Context) {
	records, err := rc.historyRecords(c)
	if err != nil {
		respondError(c, err)
		return
	}
	response := make([]IssueRecordResponse, 0, len(records))
	for i := range records {
		response = append(response, convertIssueRecordToResponse(&records[i]))
	}
	c.JSON(http.StatusOK, gin.H{"issued_books": response})
}

func (rc *ReportController) historyRecords(c *gin.Context) ([]models.IssueRecord, error) {
	if raw := c.Query("date"); raw != "" {
		date, err := parseDate(raw)
		if err != nil {
			return nil, err
		}
		return rc.reports.HistoryByDate(&date)
	}
	return rc.reports.HistoryByDate(nil)
}
