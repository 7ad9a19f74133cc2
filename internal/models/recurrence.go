package models

import "time"

// RecurrenceType distinguishes one-off lists from recurring ones.
type RecurrenceType string

const (
	RecurrenceOneTime   RecurrenceType = "one-time"
	RecurrenceRecurring RecurrenceType = "recurring"
)

// RecurrencePeriod is the cadence of a recurring list.
type RecurrencePeriod string

const (
	PeriodDaily   RecurrencePeriod = "daily"
	PeriodWeekly  RecurrencePeriod = "weekly"
	PeriodMonthly RecurrencePeriod = "monthly"
	PeriodYearly  RecurrencePeriod = "yearly"
	PeriodCustom  RecurrencePeriod = "custom"
)

// Recurrence is a schedule descriptor attached to at most one list. It
// controls which expenses count as "current" when the list is fetched.
type Recurrence struct {
	Base
	Type      RecurrenceType   `gorm:"not null" json:"type"`
	Period    RecurrencePeriod `json:"period"`
	Interval  int              `json:"interval"` // consulted only for the custom period
	StartDate time.Time        `json:"start_date"`
	EndDate   *time.Time       `json:"end_date,omitempty"`
}
