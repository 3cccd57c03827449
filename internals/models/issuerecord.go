package models

import "time"

// IssueRecord is the audit row for one loan of a Copy to a Customer. The
// record is never deleted: returning a book only sets ReturnedAt, so the
// reporting endpoints keep their history.
type IssueRecord struct {
	ID         uint       `gorm:"primaryKey;column:id"`
	CopyID     uint       `gorm:"column:copy_id;not null;index"`
	Copy       Copy       `gorm:"foreignKey:CopyID"`
	CustomerID uint       `gorm:"column:customer_id;not null;index"`
	Customer   Customer   `gorm:"foreignKey:CustomerID"`
	IssueDate  time.Time  `gorm:"column:issue_date;not null;index"`
	DueDate    time.Time  `gorm:"column:due_date;not null"`
	ReturnedAt *time.Time `gorm:"column:returned_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime;column:updated_at"`
}

// Open reports whether the loan is still outstanding.
func (r *IssueRecord) Open() bool {
	return r.ReturnedAt == nil
}
