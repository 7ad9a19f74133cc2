package recurrence

import (
	"testing"
	"time"

	"splitlist/internal/models"
)

func recurring(period models.RecurrencePeriod, interval int) *models.Recurrence {
	return &models.Recurrence{
		Type:     models.RecurrenceRecurring,
		Period:   period,
		Interval: interval,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestComputeWindow(t *testing.T) {
	// Friday, mid-March.
	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

	t.Run("nil_recurrence_is_full_range", func(t *testing.T) {
		w := ComputeWindow(nil, now, UnknownPeriodAll)
		if !w.All {
			t.Fatal("expected full-range window")
		}
	})

	t.Run("one_time_is_full_range", func(t *testing.T) {
		rec := &models.Recurrence{Type: models.RecurrenceOneTime}
		w := ComputeWindow(rec, now, UnknownPeriodAll)
		if !w.All {
			t.Fatal("expected full-range window")
		}
	})

	t.Run("daily", func(t *testing.T) {
		w := ComputeWindow(recurring(models.PeriodDaily, 0), now, UnknownPeriodAll)
		if w.All {
			t.Fatal("expected bounded window")
		}
		if !w.Contains(day(2024, time.March, 15)) {
			t.Error("expected same day to be inside the window")
		}
		if w.Contains(day(2024, time.March, 14)) {
			t.Error("expected previous day to be outside the window")
		}
		if w.Contains(day(2024, time.March, 16)) {
			t.Error("expected next day to be outside the window")
		}
	})

	t.Run("daily_includes_any_hour_of_boundary_day", func(t *testing.T) {
		w := ComputeWindow(recurring(models.PeriodDaily, 0), now, UnknownPeriodAll)
		if !w.Contains(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)) {
			t.Error("expected midnight of the day to be included")
		}
		if !w.Contains(time.Date(2024, time.March, 15, 23, 30, 0, 0, time.UTC)) {
			t.Error("expected late evening of the day to be included")
		}
	})

	t.Run("weekly_sunday_first", func(t *testing.T) {
		w := ComputeWindow(recurring(models.PeriodWeekly, 0), now, UnknownPeriodAll)
		// 2024-03-15 is a Friday; its week runs Sun 10th through Sat 16th.
		if !w.Contains(day(2024, time.March, 10)) {
			t.Error("expected Sunday the 10th to be inside the window")
		}
		if !w.Contains(day(2024, time.March, 16)) {
			t.Error("expected Saturday the 16th to be inside the window")
		}
		if w.Contains(day(2024, time.March, 9)) {
			t.Error("expected Saturday the 9th to be outside the window")
		}
		if w.Contains(day(2024, time.March, 17)) {
			t.Error("expected Sunday the 17th to be outside the window")
		}
	})

	t.Run("monthly", func(t *testing.T) {
		w := ComputeWindow(recurring(models.PeriodMonthly, 0), now, UnknownPeriodAll)
		if !w.Contains(day(2024, time.March, 1)) || !w.Contains(day(2024, time.March, 31)) {
			t.Error("expected both month boundaries to be inside the window")
		}
		if w.Contains(day(2024, time.February, 29)) || w.Contains(day(2024, time.April, 1)) {
			t.Error("expected adjacent months to be outside the window")
		}
	})

	t.Run("yearly", func(t *testing.T) {
		w := ComputeWindow(recurring(models.PeriodYearly, 0), now, UnknownPeriodAll)
		if !w.Contains(day(2024, time.January, 1)) || !w.Contains(day(2024, time.December, 31)) {
			t.Error("expected both year boundaries to be inside the window")
		}
		if w.Contains(day(2023, time.December, 31)) || w.Contains(day(2025, time.January, 1)) {
			t.Error("expected adjacent years to be outside the window")
		}
	})

	t.Run("custom_with_interval_spans_seven_days", func(t *testing.T) {
		ref := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
		w := ComputeWindow(recurring(models.PeriodCustom, 2), ref, UnknownPeriodAll)
		if !w.Contains(day(2024, time.March, 15)) {
			t.Error("expected start day to be inside the window")
		}
		if !w.Contains(day(2024, time.March, 21)) {
			t.Error("expected day six to be inside the window")
		}
		if w.Contains(day(2024, time.March, 22)) {
			t.Error("expected day seven to be outside the window")
		}
	})

	t.Run("custom_without_interval_is_today_only", func(t *testing.T) {
		w := ComputeWindow(recurring(models.PeriodCustom, 0), now, UnknownPeriodAll)
		if !w.Contains(day(2024, time.March, 15)) {
			t.Error("expected today to be inside the window")
		}
		if w.Contains(day(2024, time.March, 16)) {
			t.Error("expected tomorrow to be outside the window")
		}
	})

	t.Run("unknown_period_all_mode", func(t *testing.T) {
		w := ComputeWindow(recurring("fortnightly", 0), now, UnknownPeriodAll)
		if !w.All {
			t.Fatal("expected full-range window for unknown period in all mode")
		}
	})

	t.Run("unknown_period_day_mode", func(t *testing.T) {
		w := ComputeWindow(recurring("fortnightly", 0), now, UnknownPeriodDay)
		if w.All {
			t.Fatal("expected bounded window for unknown period in day mode")
		}
		if !w.Contains(day(2024, time.March, 15)) || w.Contains(day(2024, time.March, 16)) {
			t.Error("expected a today-only window")
		}
	})
}

func TestNoonUTC(t *testing.T) {
	t.Run("keeps_calendar_day", func(t *testing.T) {
		in := time.Date(2024, time.March, 15, 23, 45, 0, 0, time.UTC)
		got := NoonUTC(in)
		want := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("converts_to_utc_before_truncating", func(t *testing.T) {
		loc := time.FixedZone("UTC+10", 10*3600)
		// 03:00 on the 16th in UTC+10 is 17:00 on the 15th in UTC.
		in := time.Date(2024, time.March, 16, 3, 0, 0, 0, loc)
		got := NoonUTC(in)
		want := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}
