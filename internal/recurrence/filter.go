package recurrence

import "splitlist/internal/models"

// FilterByWindow returns the expenses whose date falls inside the window,
// preserving input order. A full-range window returns the input unchanged.
func FilterByWindow(expenses []models.Expense, w Window) []models.Expense {
	if w.All {
		return expenses
	}

	filtered := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if w.Contains(e.Date) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
