package models

import "time"

// Entry is a single dated monetary record logged against a category.
// Amount is in cents. Month and Year are denormalized from Date (the
// calendar month of the entry, not of when it was logged) for fast
// single-month range queries.
type Entry struct {
	Base
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	Amount      int64     `gorm:"type:bigint;not null" json:"amount"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
	Date        time.Time `gorm:"type:date;not null;index" json:"date"`
	Month       int       `gorm:"not null" json:"month"`
	Year        int       `gorm:"not null" json:"year"`
}
