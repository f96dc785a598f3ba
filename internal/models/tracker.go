package models

import "time"

// CreditCardTracker tracks spend-to-bonus progress for a credit card
// sign-up bonus within a fixed window. At most one tracker exists per
// category. When no end date is supplied the write path resolves it to
// start date + 90 days.
type CreditCardTracker struct {
	Base
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	CategoryID  uint      `gorm:"not null;uniqueIndex" json:"category_id"`
	CardName    string    `gorm:"not null" json:"card_name"`
	SpendTarget int64     `gorm:"type:bigint;not null" json:"spend_target"`
	BonusPoints int       `gorm:"not null;default:0" json:"bonus_points"`
	StartDate   time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate     time.Time `gorm:"type:date;not null" json:"end_date"`
	PaidInFull  bool      `gorm:"not null;default:false" json:"paid_in_full"`
}
