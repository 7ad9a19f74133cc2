package models

// Category is a budget bucket expenses are logged against. Names are
// unique within a list, not globally.
type Category struct {
	Base
	Name   string  `gorm:"not null" json:"name"`
	Budget float64 `gorm:"default:0" json:"budget"`

	// Relationships
	Lists []List `gorm:"many2many:list_categories" json:"lists,omitempty"`
}
