package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AryanVohra-Kiwi/library-management-system/internals/apperrors"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/middleware"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/models"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/repository"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/service"
)

type IssueController struct {
	ledger    *service.LedgerService
	customers repository.CustomerRepository
}

func NewIssueController(ledger *service.LedgerService, customers repository.CustomerRepository) *IssueController {
	return &IssueController{ledger: ledger, customers: customers}
}

type IssueRecordResponse struct {
	ID         uint    `json:"id"`
	BookTitle  string  `json:"book_title"`
	CopyNumber int     `json:"copy_number"`
	IssueDate  string  `json:"issue_date"`
	DueDate    string  `json:"due_date"`
	ReturnedOn *string `json:"returned_on,omitempty"`
}

func convertIssueRecordToResponse(record *models.IssueRecord) IssueRecordResponse {
	response := IssueRecordResponse{
		ID:         record.ID,
		BookTitle:  record.Copy.Title.Title,
		CopyNumber: record.Copy.CopyNumber,
		IssueDate:  record.IssueDate.Format(dateLayout),
		DueDate:    record.DueDate.Format(dateLayout),
	}
	if record.ReturnedAt != nil {
		returned := record.ReturnedAt.Format(time.RFC3339)
		response.ReturnedOn = &returned
	}
	return response
}

func (ic *IssueController) callingCustomer(c *gin.Context) (*models.Customer, error) {
	principal, err := middleware.PrincipalFromContext(c)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	return ic.customers.FindByUserID(principal.UserID)
}

// IssueBook loans a copy of the book to the calling customer.
func (ic *IssueController) IssueBook(c *gin.Context) {
	titleID, err := parseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	customer, err := ic.callingCustomer(c)
	if err != nil {
		respondError(c, err)
		return
	}

	record, err := ic.ledger.Issue(customer.ID, titleID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "book issued successfully",
		"record":  convertIssueRecordToResponse(record),
	})
}

// ReturnBook closes the calling customer's open loan for the book.
func (ic *IssueController) ReturnBook(c *gin.Context) {
	titleID, err := parseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	customer, err := ic.callingCustomer(c)
	if err != nil {
		respondError(c, err)
		return
	}

	record, err := ic.ledger.Return(customer.ID, titleID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "book returned successfully",
		"book":        record.Copy.Title.Title,
		"returned_on": record.ReturnedAt,
	})
}

// MyIssues lists the calling customer's records; ?open=true keeps only the
// outstanding ones.
func (ic *IssueController) MyIssues(c *gin.Context) {
	customer, err := ic.callingCustomer(c)
	if err != nil {
		respondError(c, err)
		return
	}
	openOnly := c.Query("open") == "true"

	records, err := ic.ledger.ListCustomerIssues(customer.ID, openOnly)
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
