package models

import "time"

// Expense is a single spend logged against a category within a list.
// Date is stored normalized to 12:00 UTC so calendar-day comparisons do
// not drift across timezone boundaries.
type Expense struct {
	Base
	ListID      string    `gorm:"type:uuid;not null;index" json:"list_id"`
	Description string    `json:"description"`
	Amount      float64   `gorm:"not null" json:"amount"`
	CategoryID  string    `gorm:"type:uuid;not null;index" json:"category_id"`
	Date        time.Time `gorm:"not null" json:"date"`
	CreatedByID string    `gorm:"type:uuid;not null" json:"created_by_id"`

	// Relationships
	Category  Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedBy User     `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}
