package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AryanVohra-Kiwi/library-management-system/initializers"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/auth"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/controllers"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/middleware"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/repository"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/service"
	logger "github.com/AryanVohra-Kiwi/library-management-system/loggers"
)

func main() {
	logger.Logger.Info("welcome to library management")

	db := initializers.DB
	inventory := service.NewInventoryService(db)
	ledger := service.NewLedgerService(db, inventory)
	catalog := service.NewCatalogService(db, inventory)
	reports := service.NewReportService(db)
	subAdmins := service.NewSubAdminService(db)
	gate := auth.NewGate(db)

	authController := controllers.NewAuthController(db)
	bookController := controllers.NewBookController(catalog, inventory)
	issueController := controllers.NewIssueController(ledger, repository.NewCustomerRepository(db))
	reportController := controllers.NewReportController(reports)
	subAdminController := controllers.NewSubAdminController(subAdmins)

	readBook := middleware.RequirePermission(gate, auth.ActionReadBook)
	updateBook := middleware.RequirePermission(gate, auth.ActionUpdateBook)
	deleteBook := middleware.RequirePermission(gate, auth.ActionDeleteBook)
	issueBook := middleware.RequirePermission(gate, auth.ActionIssueBook)
	viewReports := middleware.RequirePermission(gate, auth.ActionViewReports)
	manageSubAdmins := middleware.RequirePermission(gate, auth.ActionManageSubAdmins)

	r := gin.Default()
	r.GET("/", hello)
	r.POST("/signup", authController.SignUp)
	r.POST("/login", authController.Login)
	r.POST("/logout", middleware.AuthenticateMiddleware, authController.Logout)
	r.GET("/validate", middleware.AuthenticateMiddleware, authController.Validate)

	books := r.Group("/books")
	books.Use(middleware.AuthenticateMiddleware)
	{
		books.POST("", bookController.CreateBook)
		books.GET("", readBook, bookController.GetAllBooks)
		books.GET("/:id", readBook, bookController.GetBookByID)
		books.PATCH("/:id", updateBook, bookController.UpdateBook)
		books.DELETE("/:id", deleteBook, bookController.DeleteBook)
		books.POST("/:id/issue", issueBook, issueController.IssueBook)
		books.POST("/:id/return", issueBook, issueController.ReturnBook)
	}

	copies := r.Group("/copies")
	copies.Use(middleware.AuthenticateMiddleware)
	{
		copies.PATCH("/:copy_id/status", updateBook, bookController.UpdateCopyStatus)
	}

	r.GET("/issues", middleware.AuthenticateMiddleware, issueBook, issueController.MyIssues)

	admin := r.Group("/admin")
	admin.Use(middleware.AuthenticateMiddleware)
	{
		admin.POST("/issues/search", viewReports, reportController.Search)
		admin.GET("/issues/history", viewReports, reportController.History)
		admin.GET("/issues/bydate", viewReports, reportController.HistoryByDate)

		admin.POST("/subadmins", manageSubAdmins, subAdminController.Create)
		admin.GET("/subadmins", manageSubAdmins, subAdminController.List)
		admin.PATCH("/subadmins/:id", manageSubAdmins, subAdminController.UpdatePermissions)
		admin.DELETE("/subadmins/:id", manageSubAdmins, subAdminController.Delete)
	}

	r.Run()
}

func hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "welcome to library management",
	})
}

func init() {
	initializers.LoadEnvVariables()
	logger.Init()
	initializers.ConnectDatabase()
	initializers.ConnectRedis()

	// synchronize database tables with the models
	initializers.SyncDatabase()
}
