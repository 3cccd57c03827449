package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AryanVohra-Kiwi/library-management-system/internals/apperrors"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/models"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/service"
)

type BookController struct {
	catalog   *service.CatalogService
	inventory *service.InventoryService
}

func NewBookController(catalog *service.CatalogService, inventory *service.InventoryService) *BookController {
	return &BookController{catalog: catalog, inventory: inventory}
}

type BookRequest struct {
	Title           string  `json:"title" binding:"required"`
	Author          string  `json:"author" binding:"required"`
	Edition         string  `json:"edition"`
	Price           float64 `json:"price"`
	PublicationDate string  `json:"publication_date"`
	Subject         string  `json:"subject"`
	Genre           string  `json:"genre"`
	Publisher       string  `json:"publisher" binding:"required"`
}

type BookResponse struct {
	ID              uint    `json:"id"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Edition         string  `json:"edition"`
	Price           float64 `json:"price"`
	PublicationDate string  `json:"publication_date"`
	Subject         string  `json:"subject"`
	Genre           string  `json:"genre"`
	Publisher       string  `json:"publisher"`
}

func convertTitleToResponse(title *models.Title) *BookResponse {
	return &BookResponse{
		ID:              title.ID,
		Title:           title.Title,
		Author:          title.Author,
		Edition:         title.Edition,
		Price:           title.Price,
		PublicationDate: title.PublicationDate.Format(dateLayout),
		Subject:         title.Subject,
		Genre:           title.Genre,
		Publisher:       title.Publisher,
	}
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrValidation)
	}
	return parsed, nil
}

// CreateBook registers a title; an identical (title, author, edition)
// submission adds one more copy under the existing title instead.
func (bc *BookController) CreateBook(c *gin.Context) {
	var book BookRequest
	if err := c.ShouldBindJSON(&book); err != nil {
		respondBindError(c, err)
		return
	}
	pubDate, err := parseDate(book.PublicationDate)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := bc.catalog.CreateTitle(service.TitleInput{
		Title:           book.Title,
		Author:          book.Author,
		Edition:         book.Edition,
		Price:           book.Price,
		PublicationDate: pubDate,
		Subject:         book.Subject,
		Genre:           book.Genre,
		Publisher:       book.Publisher,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	message := "book created successfully"
	if result.Duplicate {
		message = "duplicate book detected, copy added"
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     message,
		"book_id":     result.Title.ID,
		"copy_number": result.Copy.CopyNumber,
	})
}

func (bc *BookController) GetAllBooks(c *gin.Context) {
	titles, err := bc.catalog.ListTitles()
	if err != nil {
		respondError(c, err)
		return
	}
	response := make([]*BookResponse, 0, len(titles))
	for i := range titles {
		response = append(response, convertTitleToResponse(&titles[i]))
	}
	c.JSON(http.StatusOK, response)
}

func (bc *BookController) GetBookByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	detail, err := bc.catalog.GetTitle(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"book":             convertTitleToResponse(detail.Title),
		"available_copies": detail.AvailableCopies,
		"all_copies":       detail.Copies,
	})
}

type BookUpdateRequest struct {
	Title           *string  `json:"title"`
	Author          *string  `json:"author"`
	Edition         *string  `json:"edition"`
	Price           *float64 `json:"price"`
	PublicationDate *string  `json:"publication_date"`
	Subject         *string  `json:"subject"`
	Genre           *string  `json:"genre"`
	Publisher       *string  `json:"publisher"`
}

func (bc *BookController) UpdateBook(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var update BookUpdateRequest
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBindError(c, err)
		return
	}

	fields := map[string]interface{}{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Author != nil {
		fields["author"] = *update.Author
	}
	if update.Edition != nil {
		fields["edition"] = *update.Edition
	}
	if update.Price != nil {
		fields["price"] = *update.Price
	}
	if update.PublicationDate != nil {
		pubDate, err := parseDate(*update.PublicationDate)
		if err != nil {
			respondError(c, err)
			return
		}
		fields["publication_date"] = pubDate
	}
	if update.Subject != nil {
		fields["subject"] = *update.Subject
	}
	if update.Genre != nil {
		fields["genre"] = *update.Genre
	}
	if update.Publisher != nil {
		fields["publisher"] = *update.Publisher
	}

	title, err := bc.catalog.UpdateTitle(id, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "book updated successfully",
		"data":    convertTitleToResponse(title),
	})
}

// DeleteBook removes the newest copy; the title row goes only when no copies
// remain.
func (bc *BookController) DeleteBook(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := bc.catalog.Delete(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if result.TitleDeleted {
		c.JSON(http.StatusOK, gin.H{"message": "book deleted successfully"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "book copy deleted successfully",
		"copy_number": result.DeletedCopy.CopyNumber,
	})
}

type CopyStatusRequest struct {
	Status models.CopyStatus `json:"status" binding:"required"`
}

// UpdateCopyStatus is the manual override for marking a copy Lost, Damaged
// or back in circulation.
func (bc *BookController) UpdateCopyStatus(c *gin.Context) {
	copyID, err := parseUintParam(c, "copy_id")
	if err != nil {
		respondError(c, err)
		return
	}
	var request CopyStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err)
		return
	}
	if err := bc.inventory.SetCopyStatus(copyID, request.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "copy status updated"})
}

func parseIDParam(c *gin.Context) (uint, error) {
	return parseUintParam(c, "id")
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a positive integer", apperrors.ErrValidation, name)
	}
	return uint(id), nil
}
