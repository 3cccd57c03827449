package models

import "time"

// Title is the canonical catalog entry for a book. Physical copies reference
// it through the Copy model; (title, author, edition) is the natural key used
// for duplicate detection on creation.
type Title struct {
	ID              uint      `gorm:"primaryKey;column:id"`
	Title           string    `gorm:"column:title;type:varchar(120);not null;index:idx_titles_natural_key,unique"`
	Author          string    `gorm:"column:author;type:varchar(50);not null;index:idx_titles_natural_key,unique"`
	Edition         string    `gorm:"column:edition;type:varchar(50);not null;index:idx_titles_natural_key,unique"`
	Price           float64   `gorm:"column:price;not null"`
	PublicationDate time.Time `gorm:"column:publication_date;not null"`
	Subject         string    `gorm:"column:subject;type:text"`
	Genre           string    `gorm:"column:genre;type:varchar(120)"`
	Publisher       string    `gorm:"column:publisher;type:varchar(120);not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime;column:updated_at"`
}
