package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/AryanVohra-Kiwi/library-management-system/internals/models"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/repository"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/service"
)

func newControllerFixture(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.UserProfile{},
		&models.Customer{},
		&models.Title{},
		&models.Copy{},
		&models.IssueRecord{},
	))

	inventory := service.NewInventoryService(db)
	ledger := service.NewLedgerService(db, inventory)
	catalog := service.NewCatalogService(db, inventory)
	bookController := NewBookController(catalog, inventory)
	issueController := NewIssueController(ledger, repository.NewCustomerRepository(db))

	// stands in for AuthenticateMiddleware: the principal is preresolved
	asCustomer := func(c *gin.Context) {
		c.Set("user_id", uint(1))
		c.Set("email", "paul@example.com")
		c.Set("role", models.RoleCustomer)
		c.Next()
	}

	r := gin.New()
	r.POST("/books", asCustomer, bookController.CreateBook)
	r.GET("/books/:id", asCustomer, bookController.GetBookByID)
	r.POST("/books/:id/issue", asCustomer, issueController.IssueBook)
	r.POST("/books/:id/return", asCustomer, issueController.ReturnBook)
	return db, r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const duneJSON = `{"title":"Dune","author":"Herbert","edition":"1","price":9.99,"publication_date":"1965-08-01","publisher":"Chilton Books"}`

func TestCreateBookEndpointDetectsDuplicates(t *testing.T) {
	_, r := newControllerFixture(t)

	w := doJSON(t, r, http.MethodPost, "/books", duneJSON)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.EqualValues(t, 1, first["copy_number"])

	w = doJSON(t, r, http.MethodPost, "/books", duneJSON)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var second map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.EqualValues(t, 2, second["copy_number"])
	assert.Equal(t, first["book_id"], second["book_id"])
	assert.Contains(t, second["message"], "duplicate")
}

func TestCreateBookEndpointValidatesInput(t *testing.T) {
	_, r := newControllerFixture(t)

	w := doJSON(t, r, http.MethodPost, "/books", `{"title":"Dune"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIssueAndReturnEndpoints(t *testing.T) {
	db, r := newControllerFixture(t)
	require.NoError(t, db.Create(&models.Customer{UserID: 1, Name: "Paul"}).Error)

	w := doJSON(t, r, http.MethodPost, "/books", duneJSON)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		BookID uint `json:"book_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	issuePath := "/books/1/issue"
	w = doJSON(t, r, http.MethodPost, issuePath, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// the open record blocks a second issue of the same book
	w = doJSON(t, r, http.MethodPost, issuePath, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/books/1/return", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// nothing outstanding anymore
	w = doJSON(t, r, http.MethodPost, "/books/1/return", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIssueWithoutCustomerProfile(t *testing.T) {
	_, r := newControllerFixture(t)

	w := doJSON(t, r, http.MethodPost, "/books", duneJSON)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/books/1/issue", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
