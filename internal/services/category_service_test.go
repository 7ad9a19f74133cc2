package services

import (
	"testing"
	"time"

	"splitlist/internal/models"
	"splitlist/internal/testutil"
)

func TestAddCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		list := testutil.CreateTestList(t, db, user.ID)

		category, err := svc.AddCategory(user.ID, list.ID, "Transport", 30)
		testutil.AssertNoError(t, err)

		if category.ID == "" {
			t.Fatal("expected non-empty category ID")
		}
		if category.Name != "Transport" {
			t.Errorf("expected name Transport, got %s", category.Name)
		}

		var count int64
		db.Table("list_categories").Where("list_id = ? AND category_id = ?", list.ID, category.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected category attached to list, got %d rows", count)
		}
	})

	t.Run("member_can_add", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		owner := testutil.CreateTestUser(t, db)
		member := testutil.CreateTestUser(t, db)
		list := testutil.CreateTestList(t, db, owner.ID)
		testutil.ShareTestList(t, db, list, member)

		_, err := svc.AddCategory(member.ID, list.ID, "Shared Bucket", 0)
		testutil.AssertNoError(t, err)
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		list := testutil.CreateTestList(t, db, user.ID)
		testutil.CreateTestCategoryWithName(t, db, list, "Food")

		_, err := svc.AddCategory(user.ID, list.ID, "Food", 10)
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("same_name_different_case_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		list := testutil.CreateTestList(t, db, user.ID)
		testutil.CreateTestCategoryWithName(t, db, list, "Food")

		_, err := svc.AddCategory(user.ID, list.ID, "food", 10)
		testutil.AssertNoError(t, err)
	})

	t.Run("stranger_forbidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		owner := testutil.CreateTestUser(t, db)
		stranger := testutil.CreateTestUser(t, db)
		list := testutil.CreateTestList(t, db, owner.ID)

		_, err := svc.AddCategory(stranger.ID, list.ID, "Sneaky", 0)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("list_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.AddCategory(user.ID, "00000000-0000-0000-0000-000000000000", "Nowhere", 0)
		testutil.AssertAppError(t, err, "LIST_NOT_FOUND")
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("rename_and_rebudget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		list := testutil.CreateTestList(t, db, user.ID)
		cat := testutil.CreateTestCategoryWithName(t, db, list, "Old Name")

		budget := 75.0
		updated, err := svc.UpdateCategory(user.ID, list.ID, cat.ID, "New Name", &budget)
		testutil.AssertNoError(t, err)

		if updated.Name != "New Name" {
			t.Errorf("expected name New Name, got %s", updated.Name)
		}
		if updated.Budget != 75.0 {
			t.Errorf("expected budget 75, got %f", updated.Budget)
		}
	})

	t.Run("zero_budget_is_explicit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		list := testutil.CreateTestList(t, db, user.ID)
		cat := testutil.CreateTestCategory(t, db, list)

		zero := 0.0
		updated, err := svc.UpdateCategory(user.ID, list.ID, cat.ID, "", &zero)
		testutil.AssertNoError(t, err)

		if updated.Budget != 0 {
			t.Errorf("expected budget 0, got %f", updated.Budget)
		}
		if updated.Name != cat.Name {
			t.Errorf("expected name unchanged, got %s", updated.Name)
		}
	})

	t.Run("name_collision", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		list := testutil.CreateTestList(t, db, user.ID)
		testutil.CreateTestCategoryWithName(t, db, list, "Taken")
		cat := testutil.CreateTestCategoryWithName(t, db, list, "Mine")

		_, err := svc.UpdateCategory(user.ID, list.ID, cat.ID, "Taken", nil)
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("not_in_list", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		list := testutil.CreateTestList(t, db, user.ID)
		other := testutil.CreateTestList(t, db, user.ID)
		foreign := testutil.CreateTestCategory(t, db, other)

		_, err := svc.UpdateCategory(user.ID, list.ID, foreign.ID, "Moved", nil)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_IN_LIST")
	})
}

func TestRemoveCategory(t *testing.T) {
	t.Run("sole_reference_deletes_record", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		list := testutil.CreateTestList(t, db, user.ID)
		cat := testutil.CreateTestCategory(t, db, list)
		testutil.CreateTestExpense(t, db, list.ID, cat.ID, user.ID, time.Now())

		deleted, err := svc.RemoveCategory(user.ID, list.ID, cat.ID)
		testutil.AssertNoError(t, err)

		if !deleted {
			t.Error("expected category record to be deleted")
		}

		var expenses int64
		db.Model(&models.Expense{}).Where("list_id = ? AND category_id = ?", list.ID, cat.ID).Count(&expenses)
		if expenses != 0 {
			t.Errorf("expected the list's expenses to be deleted, got %d", expenses)
		}

		var cats int64
		db.Model(&models.Category{}).Where("id = ?", cat.ID).Count(&cats)
		if cats != 0 {
			t.Errorf("expected category record gone, found %d", cats)
		}
	})

	t.Run("shared_reference_detaches_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		listA := testutil.CreateTestList(t, db, user.ID)
		listB := testutil.CreateTestList(t, db, user.ID)
		cat := testutil.CreateTestCategory(t, db, listA)
		if err := db.Model(listB).Association("Categories").Append(cat); err != nil {
			t.Fatalf("failed to attach category to second list: %v", err)
		}

		expenseB := testutil.CreateTestExpense(t, db, listB.ID, cat.ID, user.ID, time.Now())

		deleted, err := svc.RemoveCategory(user.ID, listA.ID, cat.ID)
		testutil.AssertNoError(t, err)

		if deleted {
			t.Error("expected category record to survive while another list references it")
		}

		var cats int64
		db.Model(&models.Category{}).Where("id = ?", cat.ID).Count(&cats)
		if cats != 1 {
			t.Errorf("expected category record present, found %d", cats)
		}

		// The other list's expenses are untouched.
		var survivors int64
		db.Model(&models.Expense{}).Where("id = ?", expenseB.ID).Count(&survivors)
		if survivors != 1 {
			t.Error("expected second list's expense to survive")
		}
	})

	t.Run("not_in_list", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		list := testutil.CreateTestList(t, db, user.ID)
		other := testutil.CreateTestList(t, db, user.ID)
		foreign := testutil.CreateTestCategory(t, db, other)

		_, err := svc.RemoveCategory(user.ID, list.ID, foreign.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_IN_LIST")
	})

	t.Run("stranger_forbidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		owner := testutil.CreateTestUser(t, db)
		stranger := testutil.CreateTestUser(t, db)
		list := testutil.CreateTestList(t, db, owner.ID)
		cat := testutil.CreateTestCategory(t, db, list)

		_, err := svc.RemoveCategory(stranger.ID, list.ID, cat.ID)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})
}
