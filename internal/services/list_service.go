package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"splitlist/internal/config"
	apperrors "splitlist/internal/errors"
	"splitlist/internal/models"
	"splitlist/internal/recurrence"
)

// listService handles list creation, aggregation, and sharing.
type listService struct {
	db            *gorm.DB
	unknownPeriod recurrence.UnknownPeriodMode

	// now supplies the reference instant for window computation;
	// injectable for deterministic tests.
	now func() time.Time
}

// NewListService creates a new ListServicer.
func NewListService(db *gorm.DB, unknownPeriod recurrence.UnknownPeriodMode) ListServicer {
	return &listService{db: db, unknownPeriod: unknownPeriod, now: time.Now}
}

// CreateList creates a list with its categories and optional recurrence.
// Category and recurrence inputs either reference existing records by id or
// carry fields for new ones; everything is resolved and persisted in a
// single transaction.
func (s *listService) CreateList(userID, name string, budget float64, categories []CategoryInput, recurrenceIn *RecurrenceInput) (*models.List, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "list name is required")
	}

	var listID string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var recurrenceID *string
		if recurrenceIn != nil {
			id, err := resolveRecurrence(tx, recurrenceIn)
			if err != nil {
				return err
			}
			recurrenceID = &id
		}

		cats, err := resolveCategories(tx, categories)
		if err != nil {
			return err
		}

		list := &models.List{
			Name:         name,
			Budget:       budget,
			CreatedByID:  userID,
			RecurrenceID: recurrenceID,
		}
		if err := tx.Create(list).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if len(cats) > 0 {
			if err := tx.Model(list).Association("Categories").Append(&cats); err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		listID = list.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetListByID(userID, listID)
}

// resolveRecurrence returns the id of an existing recurrence or creates a
// new one from the supplied fields.
func resolveRecurrence(tx *gorm.DB, in *RecurrenceInput) (string, error) {
	if in.ID != "" {
		var rec models.Recurrence
		if err := tx.First(&rec, "id = ?", in.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", apperrors.ErrRecurrenceNotFound
			}
			return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return rec.ID, nil
	}

	if in.New == nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "recurrence must reference an id or carry fields for a new one")
	}

	rec := &models.Recurrence{
		Type:      in.New.Type,
		Period:    in.New.Period,
		Interval:  in.New.Interval,
		StartDate: in.New.StartDate,
		EndDate:   in.New.EndDate,
	}
	if rec.Type == "" {
		rec.Type = models.RecurrenceOneTime
	}
	if err := tx.Create(rec).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rec.ID, nil
}

// resolveCategories turns category inputs into persisted Category records,
// rejecting duplicate names (case-sensitive) within the batch.
func resolveCategories(tx *gorm.DB, inputs []CategoryInput) ([]models.Category, error) {
	cats := make([]models.Category, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))

	for _, in := range inputs {
		var cat models.Category

		switch {
		case in.ID != "":
			if err := tx.First(&cat, "id = ?", in.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, apperrors.ErrCategoryNotFound
				}
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}

		case in.New != nil:
			if in.New.Name == "" {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
			}
			cat = models.Category{Name: in.New.Name, Budget: in.New.Budget}
			if err := tx.Create(&cat).Error; err != nil {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}

		default:
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category must reference an id or carry fields for a new one")
		}

		if seen[cat.Name] {
			return nil, apperrors.ErrDuplicateCategory
		}
		seen[cat.Name] = true
		cats = append(cats, cat)
	}

	return cats, nil
}

// GetListsForUser returns every list the user owns or is a member of, with
// recurrence, categories, and expenses (category and creator resolved). In
// filtered mode each list's expenses are narrowed to the current recurrence
// window; unfiltered mode returns them all and leaves filtering to the caller.
func (s *listService) GetListsForUser(userID string, mode config.AggregationMode) ([]models.List, error) {
	memberOf := s.db.Table("list_shares").Select("list_id").Where("user_id = ?", userID)

	var lists []models.List
	err := s.db.
		Preload("CreatedBy").
		Preload("SharedWith").
		Preload("Recurrence").
		Preload("Categories").
		Preload("Expenses").
		Preload("Expenses.Category").
		Preload("Expenses.CreatedBy").
		Where("created_by_id = ? OR id IN (?)", userID, memberOf).
		Find(&lists).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if mode == config.AggregationUnfiltered {
		return lists, nil
	}

	now := s.now()
	for i := range lists {
		w := recurrence.ComputeWindow(lists[i].Recurrence, now, s.unknownPeriod)
		lists[i].Expenses = recurrence.FilterByWindow(lists[i].Expenses, w)
	}
	return lists, nil
}

// GetListByID returns a single list with its relations resolved, enforcing
// the owner-or-member predicate.
func (s *listService) GetListByID(userID, listID string) (*models.List, error) {
	var list models.List
	err := s.db.
		Preload("CreatedBy").
		Preload("SharedWith").
		Preload("Recurrence").
		Preload("Categories").
		Preload("Expenses").
		Preload("Expenses.Category").
		First(&list, "id = ?", listID).Error
	if err != nil {
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

// ShareList adds the user identified by email to the list's membership.
// Adding an existing member is a no-op; the membership row doubles as the
// target user's shared-lists entry.
func (s *listService) ShareList(userID, listID, email string) (*models.List, error) {
	var list models.List
	if err := s.db.First(&list, "id = ?", listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrListNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := requireListAccess(s.db, userID, &list); err != nil {
		return nil, err
	}

	var target models.User
	if err := s.db.Where("email = ?", email).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if target.ID != list.CreatedByID {
		if err := s.db.Model(&list).Association("SharedWith").Append(&target); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetListByID(userID, listID)
}
