package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/RihlaSoft/agency_ledger_backend/internal/apperrors"
	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	portsrepo "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/services"
	"github.com/RihlaSoft/agency_ledger_backend/internal/dto"
	"github.com/RihlaSoft/agency_ledger_backend/internal/middleware"
)

var (
	minutesPerHour = decimal.NewFromInt(60)
	daysPerMonth   = decimal.NewFromInt(30)
	oneHundred     = decimal.NewFromInt(100)
)

// ComputeDeductions applies the shift's late-arrival policy to raw punch
// logs over [from, to]. The earliest punch of a calendar day is the
// check-in. Days without punches are ABSENT with no deduction (absence
// penalties are a payroll concern, not this calculator's). The shift's
// weekly off day is skipped entirely.
func ComputeDeductions(logs []domain.PunchLog, shift domain.Shift, employee domain.Employee, from, to time.Time) *domain.AttendanceStats {
	checkIns := make(map[string]time.Time)
	for _, log := range logs {
		key := log.PunchedAt.Format("2006-01-02")
		if first, seen := checkIns[key]; !seen || log.PunchedAt.Before(first) {
			checkIns[key] = log.PunchedAt
		}
	}

	stats := &domain.AttendanceStats{
		EmployeeID:      employee.EmployeeID,
		TotalDeductions: decimal.Zero,
	}

	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	for ; !day.After(end); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == shift.WeeklyOffDay {
			continue
		}

		checkIn, present := checkIns[day.Format("2006-01-02")]
		if !present {
			stats.Days = append(stats.Days, domain.DayResult{
				Date:      day,
				Status:    domain.DayAbsent,
				Deduction: decimal.Zero,
			})
			stats.AbsentDays++
			continue
		}

		checkInMinutes := checkIn.Hour()*60 + checkIn.Minute()
		delay := checkInMinutes - shift.StartMinutes
		if delay < 0 {
			delay = 0
		}

		result := domain.DayResult{
			Date:         day,
			CheckIn:      &checkIn,
			DelayMinutes: delay,
			Deduction:    decimal.Zero,
		}

		if delay <= shift.GracePeriodMinutes {
			result.Status = domain.DayOnTime
		} else {
			result.Status = domain.DayLate
			result.Deduction = lateDeduction(delay, shift, employee)
			stats.LateDays++
		}

		stats.TotalDeductions = stats.TotalDeductions.Add(result.Deduction)
		stats.Days = append(stats.Days, result)
	}

	return stats
}

// lateDeduction computes one late day's penalty under the shift's mode.
func lateDeduction(delayMinutes int, shift domain.Shift, employee domain.Employee) decimal.Decimal {
	switch shift.DeductionMode {
	case domain.DeductFixed:
		return shift.DeductionRate
	case domain.DeductHourlyPercent:
		// hourlyRate = (basicSalary/30) / (shiftDuration/60)
		shiftHours := decimal.NewFromInt(int64(shift.DurationMinutes())).Div(minutesPerHour)
		if shiftHours.IsZero() {
			return decimal.Zero
		}
		hourlyRate := employee.BasicSalary.Div(daysPerMonth).Div(shiftHours)
		delayHours := decimal.NewFromInt(int64(delayMinutes)).Div(minutesPerHour)
		return delayHours.Mul(hourlyRate).Mul(shift.DeductionRate.Div(oneHundred))
	}
	return decimal.Zero
}

// attendanceService wraps the pure calculator with punch-record storage.
type attendanceService struct {
	attendanceRepo portsrepo.AttendanceRepositoryFacade
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(attendanceRepo portsrepo.AttendanceRepositoryFacade) portssvc.AttendanceSvcFacade {
	return &attendanceService{attendanceRepo: attendanceRepo}
}

var _ portssvc.AttendanceSvcFacade = (*attendanceService)(nil)

// IngestPunches stores a batch of raw punch records from the device link.
func (s *attendanceService) IngestPunches(ctx context.Context, req dto.IngestPunchesRequest) error {
	punches := make([]domain.PunchLog, len(req.Punches))
	for i, p := range req.Punches {
		punches[i] = domain.PunchLog{
			PunchID:    uuid.NewString(),
			EmployeeID: p.EmployeeID,
			PunchedAt:  p.PunchedAt,
		}
	}

	if err := s.attendanceRepo.SavePunches(ctx, punches); err != nil {
		return fmt.Errorf("failed to save punches: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Punches ingested", "count", len(punches))
	return nil
}

// DeductionsFor computes per-day results and total deductions for an
// employee over a date range.
func (s *attendanceService) DeductionsFor(ctx context.Context, req dto.DeductionsRequest) (*domain.AttendanceStats, error) {
	if req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: range end before range start", apperrors.ErrValidation)
	}
	if req.ShiftEndMinutes <= req.ShiftStartMinutes {
		return nil, fmt.Errorf("%w: shift end must be after shift start", apperrors.ErrValidation)
	}

	// Extend the read window to the whole last day.
	logs, err := s.attendanceRepo.ListPunchesByEmployee(ctx, req.EmployeeID, req.From, req.To.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to load punches: %w", err)
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].PunchedAt.Before(logs[j].PunchedAt) })

	shift := domain.Shift{
		StartMinutes:       req.ShiftStartMinutes,
		EndMinutes:         req.ShiftEndMinutes,
		GracePeriodMinutes: req.GracePeriodMinutes,
		DeductionMode:      req.DeductionMode,
		DeductionRate:      req.DeductionRate,
		WeeklyOffDay:       req.WeeklyOffDay,
	}
	employee := domain.Employee{
		EmployeeID:  req.EmployeeID,
		BasicSalary: req.BasicSalary,
	}

	return ComputeDeductions(logs, shift, employee, req.From, req.To), nil
}
