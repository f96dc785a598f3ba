package models

import "time"

// User represents the user model in the database.
type User struct {
	Base
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	Name        string     `json:"name"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	Settings   *UserSettings `gorm:"foreignKey:UserID" json:"settings,omitempty"`
	Categories []Category    `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Budgets    []Budget      `gorm:"foreignKey:UserID" json:"budgets,omitempty"`
}

// UserSettings holds per-user defaults captured at onboarding. MonthlyIncome
// seeds the first budget period when no prior period exists to copy from.
type UserSettings struct {
	Base
	UserID              uint  `gorm:"uniqueIndex;not null" json:"user_id"`
	MonthlyIncome       int64 `gorm:"type:bigint;not null;default:0" json:"monthly_income"`
	OnboardingCompleted bool  `gorm:"default:false" json:"onboarding_completed"`
}
