package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "splitlist/internal/errors"
	"splitlist/internal/models"
)

// categoryService handles the list-scoped category lifecycle.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// getListWithCategories loads a list with its category set and enforces the
// owner-or-member access check.
func (s *categoryService) getListWithCategories(userID, listID string) (*models.List, error) {
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

// AddCategory creates a category and attaches it to the list. Names must be
// unique within the list; the comparison is case-sensitive.
func (s *categoryService) AddCategory(userID, listID, name string, budget float64) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	list, err := s.getListWithCategories(userID, listID)
	if err != nil {
		return nil, err
	}

	for _, existing := range list.Categories {
		if existing.Name == name {
			return nil, apperrors.ErrDuplicateCategory
		}
	}

	category := &models.Category{Name: name, Budget: budget}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(category).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(list).Association("Categories").Append(category); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

// UpdateCategory renames or re-budgets a category within a list. The new
// name must not collide with another category already in the list.
func (s *categoryService) UpdateCategory(userID, listID, categoryID, name string, budget *float64) (*models.Category, error) {
	list, err := s.getListWithCategories(userID, listID)
	if err != nil {
		return nil, err
	}

	var category *models.Category
	for i := range list.Categories {
		if list.Categories[i].ID == categoryID {
			category = &list.Categories[i]
			break
		}
	}
	if category == nil {
		return nil, apperrors.ErrCategoryNotInList
	}

	if name != "" {
		for _, other := range list.Categories {
			if other.ID != categoryID && other.Name == name {
				return nil, apperrors.ErrDuplicateCategory
			}
		}
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if budget != nil {
		updates["budget"] = *budget
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return category, nil
}

// RemoveCategory detaches a category from the list, deleting the list's
// expenses logged against it. The category record itself is deleted only
// when no other list still references it; the return value reports whether
// that physical delete happened.
func (s *categoryService) RemoveCategory(userID, listID, categoryID string) (bool, error) {
	list, err := s.getListWithCategories(userID, listID)
	if err != nil {
		return false, err
	}

	member := false
	for _, c := range list.Categories {
		if c.ID == categoryID {
			member = true
			break
		}
	}
	if !member {
		return false, apperrors.ErrCategoryNotInList
	}

	var deleted bool
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ? AND category_id = ?", listID, categoryID).
			Delete(&models.Expense{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Model(list).Association("Categories").
			Delete(&models.Category{Base: models.Base{ID: categoryID}}); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		// Reference count across the remaining lists decides whether the
		// record itself goes away.
		var refs int64
		if err := tx.Table("list_categories").
			Where("category_id = ?", categoryID).
			Count(&refs).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if refs == 0 {
			if err := tx.Delete(&models.Category{}, "id = ?", categoryID).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			deleted = true
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}
