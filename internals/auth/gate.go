package auth

import (
	"context"

	"gorm.io/gorm"

	"github.com/AryanVohra-Kiwi/library-management-system/internals/models"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/repository"
)

// Action names one guarded operation. Sub-admin permission codenames reuse
// the same strings, so a sub-admin's stored codenames are checked directly
// against the requested action.
type Action string

const (
	ActionReadBook        Action = "read_book"
	ActionUpdateBook      Action = "update_book"
	ActionDeleteBook      Action = "delete_book"
	ActionIssueBook       Action = "issue_book"
	ActionViewReports     Action = "view_reports"
	ActionManageSubAdmins Action = "manage_sub_admins"
)

// subAdminCodenames are the fine-grained permissions assignable to
// sub-admins.
var subAdminCodenames = map[string]bool{
	string(ActionReadBook):   true,
	string(ActionUpdateBook): true,
	string(ActionDeleteBook): true,
}

func IsValidCodename(codename string) bool {
	return subAdminCodenames[codename]
}

// customerActions are what a plain customer may do.
var customerActions = map[Action]bool{
	ActionReadBook:  true,
	ActionIssueBook: true,
}

// Principal is the authenticated caller as resolved by the middleware.
type Principal struct {
	UserID uint
	Email  string
	Role   models.Role
}

// Gate is the single authorization decision point. Handlers consult it at
// the boundary; core services never check roles themselves.
type Gate interface {
	Authorize(ctx context.Context, principal Principal, action Action) (bool, error)
}

type permissionGate struct {
	users repository.UserRepository
}

func NewGate(db *gorm.DB) Gate {
	return &permissionGate{users: repository.NewUserRepository(db)}
}

func (g *permissionGate) Authorize(_ context.Context, principal Principal, action Action) (bool, error) {
	switch principal.Role {
	case models.RoleAdmin:
		return true, nil
	case models.RoleSubAdmin:
		if !subAdminCodenames[string(action)] {
			return false, nil
		}
		codenames, err := g.users.PermissionCodenames(principal.UserID)
		if err != nil {
			return false, err
		}
		for _, codename := range codenames {
			if codename == string(action) {
				return true, nil
			}
		}
		return false, nil
	case models.RoleCustomer:
		return customerActions[action], nil
	default:
		return false, nil
	}
}
