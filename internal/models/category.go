package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeSpending   CategoryType = "spending"
	CategoryTypeSaving     CategoryType = "saving"
	CategoryTypeInvestment CategoryType = "investment"
	CategoryTypeCreditCard CategoryType = "credit_card"
	CategoryTypeCustom     CategoryType = "custom"
)

// Category represents a user-defined budget category. Names are unique per
// owner. Deleting a category hard-deletes its entries, goal, tracker and
// allocations.
type Category struct {
	Base
	UserID    uint         `gorm:"not null;index;uniqueIndex:idx_category_owner_name" json:"user_id"`
	Name      string       `gorm:"not null;uniqueIndex:idx_category_owner_name" json:"name"`
	Type      CategoryType `gorm:"not null" json:"type"`
	Emoji     string       `gorm:"size:16" json:"emoji,omitempty"`
	Color     string       `gorm:"size:32" json:"color,omitempty"`
	SortOrder int          `gorm:"not null;default:0" json:"sort_order"`

	// Relationships
	Entries     []Entry            `gorm:"foreignKey:CategoryID" json:"entries,omitempty"`
	Goal        *Goal              `gorm:"foreignKey:CategoryID" json:"goal,omitempty"`
	Tracker     *CreditCardTracker `gorm:"foreignKey:CategoryID" json:"tracker,omitempty"`
	Allocations []Allocation       `gorm:"foreignKey:CategoryID" json:"allocations,omitempty"`
}
