package dto

import (
	"time"

	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PunchRequest is one raw check event from the attendance device link.
type PunchRequest struct {
	EmployeeID string    `json:"employeeID" binding:"required"`
	PunchedAt  time.Time `json:"punchedAt" binding:"required"`
}

// IngestPunchesRequest stores a batch of raw punches.
type IngestPunchesRequest struct {
	Punches []PunchRequest `json:"punches" binding:"required,min=1,dive"`
}

// DeductionsRequest asks for an employee's late-arrival deductions over a
// date range. Shift and payroll parameters travel with the request; the
// punches themselves are read from storage.
type DeductionsRequest struct {
	EmployeeID         string               `json:"employeeID" binding:"required"`
	From               time.Time            `json:"from" binding:"required"`
	To                 time.Time            `json:"to" binding:"required"`
	BasicSalary        decimal.Decimal      `json:"basicSalary"`
	ShiftStartMinutes  int                  `json:"shiftStartMinutes" binding:"min=0,max=1439"`
	ShiftEndMinutes    int                  `json:"shiftEndMinutes" binding:"min=0,max=1439"`
	GracePeriodMinutes int                  `json:"gracePeriodMinutes"`
	DeductionMode      domain.DeductionMode `json:"deductionMode" binding:"required,oneof=FIXED HOURLY_PERCENT"`
	DeductionRate      decimal.Decimal      `json:"deductionRate"`
	WeeklyOffDay       time.Weekday         `json:"weeklyOffDay"`
}

// DayResultResponse is the calculator's verdict for one day.
type DayResultResponse struct {
	Date         string          `json:"date"`
	Status       string          `json:"status"`
	CheckIn      *time.Time      `json:"checkIn,omitempty"`
	DelayMinutes int             `json:"delayMinutes"`
	Deduction    decimal.Decimal `json:"deduction"`
}

// AttendanceStatsResponse is the full deduction result for a range.
type AttendanceStatsResponse struct {
	EmployeeID      string              `json:"employeeID"`
	Days            []DayResultResponse `json:"days"`
	TotalDeductions decimal.Decimal     `json:"totalDeductions"`
	LateDays        int                 `json:"lateDays"`
	AbsentDays      int                 `json:"absentDays"`
}

// ToAttendanceStatsResponse converts domain stats to their API shape.
func ToAttendanceStatsResponse(s *domain.AttendanceStats) AttendanceStatsResponse {
	days := make([]DayResultResponse, len(s.Days))
	for i, d := range s.Days {
		days[i] = DayResultResponse{
			Date:         d.Date.Format("2006-01-02"),
			Status:       string(d.Status),
			CheckIn:      d.CheckIn,
			DelayMinutes: d.DelayMinutes,
			Deduction:    d.Deduction,
		}
	}
	return AttendanceStatsResponse{
		EmployeeID:      s.EmployeeID,
		Days:            days,
		TotalDeductions: s.TotalDeductions,
		LateDays:        s.LateDays,
		AbsentDays:      s.AbsentDays,
	}
}
