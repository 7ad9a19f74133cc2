package services

import (
	"gorm.io/gorm"

	apperrors "splitlist/internal/errors"
	"splitlist/internal/models"
)

// canAccessList reports whether the user is the list's owner or a shared
// member. Every mutating category/expense operation goes through this check.
func canAccessList(db *gorm.DB, userID string, list *models.List) (bool, error) {
	if list.CreatedByID == userID {
		return true, nil
	}

	var count int64
	if err := db.Table("list_shares").
		Where("list_id = ? AND user_id = ?", list.ID, userID).
		Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

// requireListAccess turns a failed access check into ErrForbidden.
func requireListAccess(db *gorm.DB, userID string, list *models.List) error {
	ok, err := canAccessList(db, userID, list)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrForbidden
	}
	return nil
}
