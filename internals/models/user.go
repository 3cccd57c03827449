package models

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSubAdmin Role = "sub_admin"
	RoleCustomer Role = "customer"
)

// defining the schema
type UserProfile struct {
	ID           uint      `gorm:"primaryKey;column:id"`
	FirstName    string    `gorm:"not null;column:first_name"`
	LastName     string    `gorm:"column:last_name"`
	Email        string    `gorm:"not null;unique;column:email"`
	Password     string    `gorm:"not null;column:password"`
	Phone        string    `gorm:"column:phone"`
	AddressLine1 string    `gorm:"column:address_line1"`
	AddressLine2 string    `gorm:"column:address_line2"`
	City         string    `gorm:"column:city"`
	State        string    `gorm:"column:state"`
	Country      string    `gorm:"column:country"`
	ZipCode      string    `gorm:"column:zip_code"`
	Role         Role      `gorm:"not null;default:customer;check:role IN ('admin', 'sub_admin', 'customer');column:role"`
	CreatedAt    time.Time `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime;column:updated_at"`
}

// SubAdminPermission grants a sub-admin one fine-grained permission codename.
// Admins bypass these rows entirely.
type SubAdminPermission struct {
	ID        uint      `gorm:"primaryKey;column:id"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:idx_subadmin_user_codename"`
	Codename  string    `gorm:"column:codename;type:varchar(50);not null;uniqueIndex:idx_subadmin_user_codename"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at"`
}
