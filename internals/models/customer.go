package models

import "time"

// Customer is the borrower profile bound one-to-one to a UserProfile. It is
// created automatically when a user signs up and is the join key for issuance.
type Customer struct {
	ID        uint      `gorm:"primaryKey;column:id"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex"`
	Name      string    `gorm:"column:name;type:varchar(100)"`
	Age       int       `gorm:"column:age"`
	Phone     string    `gorm:"column:phone;type:varchar(20)"`
	Email     string    `gorm:"column:email;type:varchar(120)"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updated_at"`
}
