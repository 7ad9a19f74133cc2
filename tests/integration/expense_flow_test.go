package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestExpenseFlow_CreateUpdateDelete(t *testing.T) {
	app := setupApp(t)
	token, userID := app.registerUser(t, "expenses@test.com", "password123")

	listID := app.createList(t, token, `{
		"name": "Household",
		"categories": [{"name": "Food", "budget": 100}, {"name": "Transport", "budget": 50}]
	}`)

	// Create an expense against a category by name.
	rec := app.request("POST", "/api/v1/lists/"+listID+"/expenses",
		`{"description": "Lunch", "amount": 12.5, "category": "Food", "date": "2024-03-15T00:00:00Z"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create expense failed: %d %s", rec.Code, rec.Body.String())
	}
	expense := parseJSON(t, rec)["expense"].(map[string]interface{})
	expenseID := expense["id"].(string)
	if expense["created_by_id"] != userID {
		t.Errorf("expected creator %s, got %v", userID, expense["created_by_id"])
	}
	category := expense["category"].(map[string]interface{})
	if category["name"] != "Food" {
		t.Errorf("expected category Food, got %v", category["name"])
	}

	// An unknown category name is rejected.
	rec = app.request("POST", "/api/v1/lists/"+listID+"/expenses",
		`{"description": "Gadget", "amount": 99, "category": "Electronics"}`, token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown category, got %d", rec.Code)
	}

	// Update moves the expense to another category.
	rec = app.request("PUT", fmt.Sprintf("/api/v1/lists/%s/expenses/%s", listID, expenseID),
		`{"description": "Bus ticket", "amount": 3.2, "category": "Transport", "date": "2024-03-16T00:00:00Z"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update expense failed: %d %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)["expense"].(map[string]interface{})
	if updated["description"] != "Bus ticket" {
		t.Errorf("expected description Bus ticket, got %v", updated["description"])
	}
	if updated["category"].(map[string]interface{})["name"] != "Transport" {
		t.Errorf("expected category Transport after update")
	}

	// Partial updates are rejected.
	rec = app.request("PUT", fmt.Sprintf("/api/v1/lists/%s/expenses/%s", listID, expenseID),
		`{"description": "Just this"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for partial update, got %d", rec.Code)
	}

	// Delete.
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/lists/%s/expenses/%s", listID, expenseID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete expense failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/v1/lists/"+listID+"/expenses", "", token)
	result := parseJSON(t, rec)
	if result["total_items"] != float64(0) {
		t.Errorf("expected 0 expenses after delete, got %v", result["total_items"])
	}
}

func TestExpenseFlow_Pagination(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "pages@test.com", "password123")

	listID := app.createList(t, token, `{"name": "Many", "categories": [{"name": "Misc"}]}`)

	for i := 1; i <= 5; i++ {
		body := fmt.Sprintf(`{"description": "Item %d", "amount": %d, "category": "Misc", "date": "2024-03-%02dT00:00:00Z"}`, i, i, i)
		rec := app.request("POST", "/api/v1/lists/"+listID+"/expenses", body, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create expense %d failed: %d %s", i, rec.Code, rec.Body.String())
		}
	}

	rec := app.request("GET", "/api/v1/lists/"+listID+"/expenses?page=1&page_size=2", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["total_items"] != float64(5) {
		t.Errorf("expected 5 total items, got %v", result["total_items"])
	}
	if result["total_pages"] != float64(3) {
		t.Errorf("expected 3 pages, got %v", result["total_pages"])
	}
	data := result["data"].([]interface{})
	if len(data) != 2 {
		t.Fatalf("expected 2 items on page, got %d", len(data))
	}
	// Newest first.
	if data[0].(map[string]interface{})["description"] != "Item 5" {
		t.Errorf("expected Item 5 first, got %v", data[0].(map[string]interface{})["description"])
	}
}

func TestExpenseFlow_WindowedAggregation(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "window@test.com", "password123")

	// Daily recurrence: only today's expenses count as current.
	listID := app.createList(t, token, fmt.Sprintf(`{
		"name": "Daily Spend",
		"categories": [{"name": "Misc"}],
		"recurrence": {"type": "recurring", "period": "daily", "start_date": %q}
	}`, time.Now().UTC().Format(time.RFC3339)))

	// One expense dated today (server default), one a month ago.
	rec := app.request("POST", "/api/v1/lists/"+listID+"/expenses",
		`{"description": "Today", "amount": 5, "category": "Misc"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create expense failed: %d %s", rec.Code, rec.Body.String())
	}
	oldDate := time.Now().UTC().AddDate(0, -1, 0).Format(time.RFC3339)
	rec = app.request("POST", "/api/v1/lists/"+listID+"/expenses",
		fmt.Sprintf(`{"description": "Old", "amount": 7, "category": "Misc", "date": %q}`, oldDate), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create old expense failed: %d %s", rec.Code, rec.Body.String())
	}

	// Default aggregation narrows to the current window.
	rec = app.request("GET", "/api/v1/lists?expenses=current", "", token)
	lists := parseJSON(t, rec)["lists"].([]interface{})
	expenses := lists[0].(map[string]interface{})["expenses"].([]interface{})
	if len(expenses) != 1 {
		t.Fatalf("expected 1 current expense, got %d", len(expenses))
	}
	if expenses[0].(map[string]interface{})["description"] != "Today" {
		t.Errorf("expected Today, got %v", expenses[0].(map[string]interface{})["description"])
	}

	// expenses=all bypasses the window.
	rec = app.request("GET", "/api/v1/lists?expenses=all", "", token)
	lists = parseJSON(t, rec)["lists"].([]interface{})
	expenses = lists[0].(map[string]interface{})["expenses"].([]interface{})
	if len(expenses) != 2 {
		t.Errorf("expected 2 expenses with expenses=all, got %d", len(expenses))
	}
}

func TestExpenseFlow_SharedListAccess(t *testing.T) {
	app := setupApp(t)
	ownerToken, _ := app.registerUser(t, "expowner@test.com", "password123")
	memberToken, _ := app.registerUser(t, "expmember@test.com", "password123")
	strangerToken, _ := app.registerUser(t, "expstranger@test.com", "password123")

	listID := app.createList(t, ownerToken, `{"name": "Flat", "categories": [{"name": "Rent"}]}`)
	rec := app.request("POST", "/api/v1/lists/"+listID+"/share",
		`{"email": "expmember@test.com"}`, ownerToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("share failed: %d", rec.Code)
	}

	// Member can log expenses.
	rec = app.request("POST", "/api/v1/lists/"+listID+"/expenses",
		`{"description": "March rent", "amount": 800, "category": "Rent"}`, memberToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("member create expense failed: %d %s", rec.Code, rec.Body.String())
	}
	expenseID := parseJSON(t, rec)["expense"].(map[string]interface{})["id"].(string)

	// Stranger cannot read or mutate.
	rec = app.request("GET", "/api/v1/lists/"+listID+"/expenses", "", strangerToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for stranger read, got %d", rec.Code)
	}
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/lists/%s/expenses/%s", listID, expenseID), "", strangerToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for stranger delete, got %d", rec.Code)
	}

	// Owner can delete a member's expense.
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/lists/%s/expenses/%s", listID, expenseID), "", ownerToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner delete failed: %d %s", rec.Code, rec.Body.String())
	}
}
