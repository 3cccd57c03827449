package models

import "time"

type CopyStatus string

const (
	StatusAvailable   CopyStatus = "Available"
	StatusIssued      CopyStatus = "Issued"
	StatusReturned    CopyStatus = "Returned"
	StatusUnavailable CopyStatus = "Unavailable"
	StatusLost        CopyStatus = "Lost"
	StatusDamaged     CopyStatus = "Damaged"
)

var validCopyStatuses = map[CopyStatus]bool{
	StatusAvailable:   true,
	StatusIssued:      true,
	StatusReturned:    true,
	StatusUnavailable: true,
	StatusLost:        true,
	StatusDamaged:     true,
}

func IsValidCopyStatus(status CopyStatus) bool {
	return validCopyStatuses[status]
}

// Copy is one physical instance of a Title. copy_number is unique within the
// owning title and assigned as max(existing)+1 at creation time.
type Copy struct {
	ID         uint       `gorm:"primaryKey;column:id"`
	TitleID    uint       `gorm:"column:title_id;not null;uniqueIndex:idx_copies_title_copy_number"`
	Title      Title      `gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE"`
	CopyNumber int        `gorm:"column:copy_number;not null;uniqueIndex:idx_copies_title_copy_number"`
	Status     CopyStatus `gorm:"column:status;type:varchar(100);not null"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime;column:updated_at"`
}
