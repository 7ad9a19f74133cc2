package models

// List is a named budget scope owning categories, expenses, sharing
// metadata, and an optional recurrence schedule.
type List struct {
	Base
	Name         string  `gorm:"not null" json:"name"`
	Budget       float64 `gorm:"default:0" json:"budget"`
	CreatedByID  string  `gorm:"type:uuid;not null;index" json:"created_by_id"`
	RecurrenceID *string `gorm:"type:uuid" json:"recurrence_id,omitempty"`

	// Relationships
	CreatedBy  User        `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Recurrence *Recurrence `gorm:"foreignKey:RecurrenceID" json:"recurrence,omitempty"`
	SharedWith []User      `gorm:"many2many:list_shares" json:"shared_with,omitempty"`

	// Categories are reference-counted: a category may belong to several
	// lists and is physically deleted only when the last list drops it.
	Categories []Category `gorm:"many2many:list_categories" json:"categories,omitempty"`
	Expenses   []Expense  `gorm:"foreignKey:ListID" json:"expenses"`
}
