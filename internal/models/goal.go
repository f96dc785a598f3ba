package models

// Goal is an all-time cumulative target for a category, distinct from the
// monthly allocation. At most one goal exists per category; upserting
// replaces the existing one.
type Goal struct {
	Base
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	CategoryID   uint   `gorm:"not null;uniqueIndex" json:"category_id"`
	Name         string `gorm:"not null" json:"name"`
	TargetAmount int64  `gorm:"type:bigint;not null" json:"target_amount"`
}
