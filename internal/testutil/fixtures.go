package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"splitlist/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestList creates a list owned by the given user.
func CreateTestList(t *testing.T, db *gorm.DB, ownerID string) *models.List {
	t.Helper()

	list := &models.List{
		Name:        fmt.Sprintf("Test List %d", nextID()),
		Budget:      100.0,
		CreatedByID: ownerID,
	}
	if err := db.Create(list).Error; err != nil {
		t.Fatalf("failed to create test list: %v", err)
	}
	return list
}

// CreateTestListWithRecurrence creates a list owned by the given user with
// the given recurrence attached.
func CreateTestListWithRecurrence(t *testing.T, db *gorm.DB, ownerID string, rec *models.Recurrence) *models.List {
	t.Helper()

	list := &models.List{
		Name:         fmt.Sprintf("Test List %d", nextID()),
		Budget:       100.0,
		CreatedByID:  ownerID,
		RecurrenceID: &rec.ID,
	}
	if err := db.Create(list).Error; err != nil {
		t.Fatalf("failed to create test list: %v", err)
	}
	return list
}

// CreateTestRecurrence creates a recurring schedule with the given period.
func CreateTestRecurrence(t *testing.T, db *gorm.DB, period models.RecurrencePeriod) *models.Recurrence {
	t.Helper()

	rec := &models.Recurrence{
		Type:      models.RecurrenceRecurring,
		Period:    period,
		StartDate: time.Now().UTC(),
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("failed to create test recurrence: %v", err)
	}
	return rec
}

// CreateTestCategory creates a category and attaches it to the given list.
func CreateTestCategory(t *testing.T, db *gorm.DB, list *models.List) *models.Category {
	t.Helper()
	return CreateTestCategoryWithName(t, db, list, fmt.Sprintf("Test Category %d", nextID()))
}

// CreateTestCategoryWithName creates a category with the given name and
// attaches it to the given list.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, list *models.List, name string) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:   name,
		Budget: 50.0,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	if err := db.Model(list).Association("Categories").Append(category); err != nil {
		t.Fatalf("failed to attach test category to list: %v", err)
	}
	return category
}

// CreateTestExpense creates an expense in the given list and category,
// dated at the given time.
func CreateTestExpense(t *testing.T, db *gorm.DB, listID, categoryID, userID string, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		ListID:      listID,
		Description: fmt.Sprintf("Test Expense %d", nextID()),
		Amount:      12.50,
		CategoryID:  categoryID,
		Date:        date,
		CreatedByID: userID,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// ShareTestList adds the given user to the list's membership.
func ShareTestList(t *testing.T, db *gorm.DB, list *models.List, user *models.User) {
	t.Helper()

	if err := db.Model(list).Association("SharedWith").Append(user); err != nil {
		t.Fatalf("failed to share test list: %v", err)
	}
}
