package services

import (
	"time"

	"splitlist/internal/config"
	"splitlist/internal/models"
	"splitlist/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// NewCategory holds the fields for a category created inline.
type NewCategory struct {
	Name   string
	Budget float64
}

// CategoryInput names either an existing category by id or a new category
// to create. Exactly one of the two must be set; the list service resolves
// the variant before constructing the list.
type CategoryInput struct {
	ID  string
	New *NewCategory
}

// NewRecurrence holds the fields for a recurrence created inline.
type NewRecurrence struct {
	Type      models.RecurrenceType
	Period    models.RecurrencePeriod
	Interval  int
	StartDate time.Time
	EndDate   *time.Time
}

// RecurrenceInput names either an existing recurrence by id or a new
// recurrence to create.
type RecurrenceInput struct {
	ID  string
	New *NewRecurrence
}

// ListServicer defines the contract for list-related business logic.
type ListServicer interface {
	CreateList(userID, name string, budget float64, categories []CategoryInput, recurrence *RecurrenceInput) (*models.List, error)
	GetListsForUser(userID string, mode config.AggregationMode) ([]models.List, error)
	GetListByID(userID, listID string) (*models.List, error)
	ShareList(userID, listID, email string) (*models.List, error)
}

// CategoryServicer defines the contract for list-scoped category lifecycle.
type CategoryServicer interface {
	AddCategory(userID, listID, name string, budget float64) (*models.Category, error)
	UpdateCategory(userID, listID, categoryID, name string, budget *float64) (*models.Category, error)
	// RemoveCategory detaches the category from the list, deleting the
	// list's matching expenses. It reports whether the category record
	// itself was deleted (true only when no other list still references it).
	RemoveCategory(userID, listID, categoryID string) (bool, error)
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID, listID, description string, amount float64, categoryName string, date *time.Time) (*models.Expense, error)
	GetListExpenses(userID, listID string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	UpdateExpense(userID, listID, expenseID, description string, amount float64, categoryName string, date time.Time) (*models.Expense, error)
	DeleteExpense(userID, listID, expenseID string) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
