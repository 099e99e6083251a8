package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeductionMode selects how a late arrival is penalised.
type DeductionMode string

const (
	// DeductFixed applies the shift's flat deduction rate regardless of how
	// late the check-in was.
	DeductFixed DeductionMode = "FIXED"
	// DeductHourlyPercent scales the deduction with the delay:
	// (delay/60) * hourlyRate * (rate/100).
	DeductHourlyPercent DeductionMode = "HOURLY_PERCENT"
)

// Shift describes a working shift in minutes from midnight, local time.
type Shift struct {
	ShiftID            string          `json:"shiftID"`
	Name               string          `json:"name"`
	StartMinutes       int             `json:"startMinutes"`
	EndMinutes         int             `json:"endMinutes"`
	GracePeriodMinutes int             `json:"gracePeriodMinutes"`
	DeductionMode      DeductionMode   `json:"deductionMode"`
	DeductionRate      decimal.Decimal `json:"deductionRate"`
	WeeklyOffDay       time.Weekday    `json:"weeklyOffDay"`
}

// DurationMinutes is the shift length in minutes.
func (s Shift) DurationMinutes() int {
	return s.EndMinutes - s.StartMinutes
}

// Employee carries the payroll fields the deduction calculator needs.
type Employee struct {
	EmployeeID  string          `json:"employeeID"`
	Name        string          `json:"name"`
	BasicSalary decimal.Decimal `json:"basicSalary"`
}

// PunchLog is one raw check event from the attendance device, read-only as
// far as the calculator is concerned.
type PunchLog struct {
	PunchID    string    `json:"punchID"`
	EmployeeID string    `json:"employeeID"`
	PunchedAt  time.Time `json:"punchedAt"`
}

// DayStatus classifies a single calendar day of the attendance range.
type DayStatus string

const (
	DayOnTime DayStatus = "ON_TIME"
	DayLate   DayStatus = "LATE"
	// DayAbsent deducts nothing: absence penalties are outside this
	// calculator's scope.
	DayAbsent DayStatus = "ABSENT"
)

// DayResult is the calculator's verdict for one day.
type DayResult struct {
	Date         time.Time       `json:"date"`
	Status       DayStatus       `json:"status"`
	CheckIn      *time.Time      `json:"checkIn,omitempty"`
	DelayMinutes int             `json:"delayMinutes"`
	Deduction    decimal.Decimal `json:"deduction"`
}

// AttendanceStats is the full result for an employee over a date range.
type AttendanceStats struct {
	EmployeeID      string          `json:"employeeID"`
	Days            []DayResult     `json:"days"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	LateDays        int             `json:"lateDays"`
	AbsentDays      int             `json:"absentDays"`
}
