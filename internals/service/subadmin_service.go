package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/AryanVohra-Kiwi/library-management-system/internals/apperrors"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/auth"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/models"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/repository"
)

// SubAdminService manages sub-admin accounts and their permission codenames.
// Only admins reach these operations; the gate enforces that at the boundary.
type SubAdminService struct {
	db *gorm.DB
}

func NewSubAdminService(db *gorm.DB) *SubAdminService {
	return &SubAdminService{db: db}
}

type SubAdminInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Codenames []string
}

type SubAdminView struct {
	ID        uint     `json:"id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	Codenames []string `json:"permissions"`
}

func validateCodenames(codenames []string) error {
	for _, codename := range codenames {
		if !auth.IsValidCodename(codename) {
			return fmt.Errorf("%w: unknown permission codename %q", apperrors.ErrValidation, codename)
		}
	}
	return nil
}

// Create registers a sub-admin user with the given permission codenames.
func (s *SubAdminService) Create(input SubAdminInput) (*SubAdminView, error) {
	if input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", apperrors.ErrValidation)
	}
	if err := validateCodenames(input.Codenames); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), 10)
	if err != nil {
		return nil, err
	}

	user := &models.UserProfile{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  string(hash),
		Role:      models.RoleSubAdmin,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)
		if err := users.Create(user); err != nil {
			return err
		}
		return users.ReplacePermissions(user.ID, input.Codenames)
	})
	if err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, fmt.Errorf("%w: email already registered", apperrors.ErrValidation)
		}
		return nil, err
	}
	return s.view(user)
}

func (s *SubAdminService) List() ([]SubAdminView, error) {
	users := repository.NewUserRepository(s.db)
	subAdmins, err := users.ListByRole(models.RoleSubAdmin)
	if err != nil {
		return nil, err
	}
	views := make([]SubAdminView, 0, len(subAdmins))
	for i := range subAdmins {
		view, err := s.view(&subAdmins[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// UpdatePermissions replaces the sub-admin's codename set.
func (s *SubAdminService) UpdatePermissions(userID uint, codenames []string) (*SubAdminView, error) {
	if err := validateCodenames(codenames); err != nil {
		return nil, err
	}
	users := repository.NewUserRepository(s.db)
	user, err := users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleSubAdmin {
		return nil, apperrors.ErrNotFound
	}
	if err := users.ReplacePermissions(userID, codenames); err != nil {
		return nil, err
	}
	return s.view(user)
}

func (s *SubAdminService) Delete(userID uint) error {
	users := repository.NewUserRepository(s.db)
	user, err := users.FindByID(userID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleSubAdmin {
		return apperrors.ErrNotFound
	}
	return users.Delete(userID)
}

func (s *SubAdminService) view(user *models.UserProfile) (*SubAdminView, error) {
	codenames, err := repository.NewUserRepository(s.db).PermissionCodenames(user.ID)
	if err != nil {
		return nil, err
	}
	return &SubAdminView{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Codenames: codenames,
	}, nil
}
