package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/AryanVohra-Kiwi/library-management-system/initializers"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/apperrors"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/middleware"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/models"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/repository"
	logger "github.com/AryanVohra-Kiwi/library-management-system/loggers"
)

type AuthController struct {
	db *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

type SignUpRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	ZipCode      string `json:"zip_code"`
	Age          int    `json:"age"`
}

type LoginCredentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

var errInvalidCredentials = errors.New("invalid credentials")

// SignUp registers a user and its customer profile in one transaction. The
// customer profile creation is a direct call, not a side-effect hook, so the
// two rows can never diverge.
func (ac *AuthController) SignUp(c *gin.Context) {
	var request SignUpRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), 10)
	if err != nil {
		respondError(c, err)
		return
	}

	user := models.UserProfile{
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		Email:        request.Email,
		Password:     string(hash),
		Phone:        request.Phone,
		AddressLine1: request.AddressLine1,
		AddressLine2: request.AddressLine2,
		City:         request.City,
		State:        request.State,
		Country:      request.Country,
		ZipCode:      request.ZipCode,
		Role:         models.RoleCustomer,
	}
	err = ac.db.Transaction(func(tx *gorm.DB) error {
		if err := repository.NewUserRepository(tx).Create(&user); err != nil {
			return err
		}
		customer := models.Customer{
			UserID: user.ID,
			Name:   strings.TrimSpace(request.FirstName + " " + request.LastName),
			Age:    request.Age,
			Phone:  request.Phone,
			Email:  request.Email,
		}
		return repository.NewCustomerRepository(tx).Create(&customer)
	})
	if err != nil {
		if repository.IsDuplicateKey(err) {
			respondError(c, fmt.Errorf("%w: email already registered", apperrors.ErrValidation))
			return
		}
		respondError(c, err)
		return
	}

	// best-effort credential cache; login falls back to the database
	if err := cacheCredentials(c.Request.Context(), user.Email, user.Password); err != nil {
		logger.Logger.Warn("failed to cache credentials in redis: ", err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "user registered successfully",
		"user_information": gin.H{
			"email":      user.Email,
			"first_name": user.FirstName,
		},
	})
}

// Login verifies credentials (redis cache first, database fallback) and sets
// the access/refresh token cookies.
func (ac *AuthController) Login(c *gin.Context) {
	var credential LoginCredentials
	if err := c.ShouldBindJSON(&credential); err != nil {
		respondBindError(c, err)
		return
	}

	if err := ac.verifyPassword(c.Request.Context(), credential); err != nil {
		if errors.Is(err, errInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
			return
		}
		respondError(c, err)
		return
	}

	user, err := repository.NewUserRepository(ac.db).FindByEmail(credential.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := middleware.GenerateTokensAndSaveInCookies(c, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": user.Email + " logged in successfully"})
}

func (ac *AuthController) Logout(c *gin.Context) {
	middleware.RevokeTokens(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Validate reports who the caller is; useful for session checks.
func (ac *AuthController) Validate(c *gin.Context) {
	principal, err := middleware.PrincipalFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"email": principal.Email,
		"role":  principal.Role,
	})
}

// verifyPassword checks the redis credential cache first and falls back to
// the user row when the cache misses or redis is down.
func (ac *AuthController) verifyPassword(ctx context.Context, credential LoginCredentials) error {
	hash, err := cachedCredentials(ctx, credential.Email)
	if err == nil && hash != "" {
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(credential.Password)) == nil {
			return nil
		}
		return errInvalidCredentials
	}

	user, err := repository.NewUserRepository(ac.db).FindByEmail(credential.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return errInvalidCredentials
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(credential.Password)) != nil {
		return errInvalidCredentials
	}
	return nil
}

func credentialKey(email string) string {
	return fmt.Sprintf("user:%s", email)
}

func cacheCredentials(ctx context.Context, email, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return initializers.Client.HSet(ctx, credentialKey(email), map[string]interface{}{
		"email":    email,
		"password": passwordHash,
	}).Err()
}

func cachedCredentials(ctx context.Context, email string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	result, err := initializers.Client.HGetAll(ctx, credentialKey(email)).Result()
	if err != nil {
		return "", err
	}
	return result["password"], nil
}
