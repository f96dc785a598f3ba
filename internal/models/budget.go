package models

// Budget is the budget period for one (user, month, year): the monthly
// income plus the percentage split across categories. The unique index on
// (user_id, month, year) is what keeps concurrent bootstraps from creating
// duplicate periods.
type Budget struct {
	Base
	UserID uint  `gorm:"not null;uniqueIndex:idx_budget_user_month_year" json:"user_id"`
	Month  int   `gorm:"not null;uniqueIndex:idx_budget_user_month_year" json:"month"`
	Year   int   `gorm:"not null;uniqueIndex:idx_budget_user_month_year" json:"year"`
	Income int64 `gorm:"type:bigint;not null;default:0" json:"income"`

	// Relationships
	Allocations []Allocation `gorm:"foreignKey:BudgetID" json:"allocations,omitempty"`
}

// Allocation links a category to its percentage share of a budget period's
// income.
type Allocation struct {
	Base
	BudgetID      uint `gorm:"not null;uniqueIndex:idx_allocation_budget_category" json:"budget_id"`
	CategoryID    uint `gorm:"not null;uniqueIndex:idx_allocation_budget_category" json:"category_id"`
	AllocationPct int  `gorm:"not null" json:"allocation_pct"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
}
