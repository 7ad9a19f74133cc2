package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "splitlist/internal/errors"
	"splitlist/internal/models"
	"splitlist/internal/pagination"
	"splitlist/internal/recurrence"
)

// expenseService handles the expense lifecycle within a list.
type expenseService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db, now: time.Now}
}

// getList loads a list with its categories and enforces the access check.
func (s *expenseService) getList(userID, listID string) (*models.List, error) {
	var list models.List
	if err := s.db.Preload("Categories").First(&list, "id = ?", listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrListNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := requireListAccess(s.db, userID, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// findCategoryByName resolves a category name against the list's current
// category set. Expense input names its category rather than carrying an id.
func findCategoryByName(list *models.List, name string) (*models.Category, error) {
	for i := range list.Categories {
		if list.Categories[i].Name == name {
			return &list.Categories[i], nil
		}
	}
	return nil, apperrors.ErrCategoryNotInList
}

// CreateExpense logs an expense against a category of the list, resolved by
// name. A missing date defaults to now; a supplied one is normalized to
// midday UTC so the calendar day survives timezone conversion.
func (s *expenseService) CreateExpense(userID, listID, description string, amount float64, categoryName string, date *time.Time) (*models.Expense, error) {
	if categoryName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	list, err := s.getList(userID, listID)
	if err != nil {
		return nil, err
	}

	category, err := findCategoryByName(list, categoryName)
	if err != nil {
		return nil, err
	}

	when := s.now()
	if date != nil {
		when = recurrence.NoonUTC(*date)
	}

	expense := &models.Expense{
		ListID:      list.ID,
		Description: description,
		Amount:      amount,
		CategoryID:  category.ID,
		Date:        when,
		CreatedByID: userID,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return s.getExpense(expense.ID)
}

// getExpense reloads an expense with its category and creator resolved.
func (s *expenseService) getExpense(expenseID string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Preload("Category").Preload("CreatedBy").
		First(&expense, "id = ?", expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// GetListExpenses returns a paginated slice of a list's expenses, newest
// first. The list aggregation endpoint stays unpaginated; this read is the
// drill-down view.
func (s *expenseService) GetListExpenses(userID, listID string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	if _, err := s.getList(userID, listID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("list_id = ?", listID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Preload("Category").Preload("CreatedBy").
		Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// canMutateExpense applies the update/delete rule: the caller must be the
// expense's creator, the list's owner, or a shared member.
func (s *expenseService) canMutateExpense(userID string, expense *models.Expense, list *models.List) error {
	if expense.CreatedByID == userID {
		return nil
	}
	return requireListAccess(s.db, userID, list)
}

// UpdateExpense replaces an expense's description, amount, category, and
// date. All four are required; the category is re-resolved by name against
// the list's current categories.
func (s *expenseService) UpdateExpense(userID, listID, expenseID, description string, amount float64, categoryName string, date time.Time) (*models.Expense, error) {
	if description == "" || categoryName == "" || date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description, amount, category, and date are required")
	}

	var expense models.Expense
	if err := s.db.First(&expense, "id = ? AND list_id = ?", expenseID, listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var list models.List
	if err := s.db.Preload("Categories").First(&list, "id = ?", listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrListNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.canMutateExpense(userID, &expense, &list); err != nil {
		return nil, err
	}

	category, err := findCategoryByName(&list, categoryName)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"description": description,
		"amount":      amount,
		"category_id": category.ID,
		"date":        recurrence.NoonUTC(date),
	}
	if err := s.db.Model(&expense).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.getExpense(expense.ID)
}

// DeleteExpense removes an expense record. Under the relational model the
// row delete also removes the list's membership reference, so both effects
// land together.
func (s *expenseService) DeleteExpense(userID, listID, expenseID string) error {
	var expense models.Expense
	if err := s.db.First(&expense, "id = ? AND list_id = ?", expenseID, listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrExpenseNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var list models.List
	if err := s.db.First(&list, "id = ?", listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrListNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.canMutateExpense(userID, &expense, &list); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
