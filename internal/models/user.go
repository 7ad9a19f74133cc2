package models

// User represents a registered account holder.
type User struct {
	Base
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// SharedLists are lists other users have shared with this user.
	// Membership only; ownership is tracked by List.CreatedByID.
	SharedLists []List `gorm:"many2many:list_shares" json:"shared_lists,omitempty"`
}
