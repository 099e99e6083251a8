package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RihlaSoft/agency_ledger_backend/internal/apperrors"
	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	"github.com/RihlaSoft/agency_ledger_backend/internal/core/services"
	"github.com/RihlaSoft/agency_ledger_backend/internal/dto"
)

// Nine-to-five shift, 15 minute grace, flat 50 per late day, Fridays off.
func fixedShift() domain.Shift {
	return domain.Shift{
		StartMinutes:       9 * 60,
		EndMinutes:         17 * 60,
		GracePeriodMinutes: 15,
		DeductionMode:      domain.DeductFixed,
		DeductionRate:      decimal.NewFromInt(50),
		WeeklyOffDay:       time.Friday,
	}
}

func punchAt(employeeID string, year int, month time.Month, day, hour, minute int) domain.PunchLog {
	return domain.PunchLog{
		EmployeeID: employeeID,
		PunchedAt:  time.Date(year, month, day, hour, minute, 0, 0, time.UTC),
	}
}

func TestComputeDeductions_FixedMode(t *testing.T) {
	employee := domain.Employee{EmployeeID: "emp-1", BasicSalary: decimal.NewFromInt(9000)}
	// Monday: 20 minutes late. Tuesday: within grace. Wednesday: no punch.
	logs := []domain.PunchLog{
		punchAt("emp-1", 2026, time.March, 2, 9, 20),
		punchAt("emp-1", 2026, time.March, 3, 9, 10),
	}
	from := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)

	stats := services.ComputeDeductions(logs, fixedShift(), employee, from, to)

	require.Len(t, stats.Days, 3)

	assert.Equal(t, domain.DayLate, stats.Days[0].Status)
	assert.Equal(t, 20, stats.Days[0].DelayMinutes)
	assert.True(t, stats.Days[0].Deduction.Equal(decimal.NewFromInt(50)))

	assert.Equal(t, domain.DayOnTime, stats.Days[1].Status)
	assert.True(t, stats.Days[1].Deduction.IsZero())

	assert.Equal(t, domain.DayAbsent, stats.Days[2].Status)
	assert.Nil(t, stats.Days[2].CheckIn)
	assert.True(t, stats.Days[2].Deduction.IsZero())

	assert.Equal(t, 1, stats.LateDays)
	assert.Equal(t, 1, stats.AbsentDays)
	assert.True(t, stats.TotalDeductions.Equal(decimal.NewFromInt(50)))
}

func TestComputeDeductions_EarliestPunchWins(t *testing.T) {
	employee := domain.Employee{EmployeeID: "emp-1"}
	// An 08:55 punch makes the day on time even though later punches exist.
	logs := []domain.PunchLog{
		punchAt("emp-1", 2026, time.March, 2, 12, 30),
		punchAt("emp-1", 2026, time.March, 2, 8, 55),
		punchAt("emp-1", 2026, time.March, 2, 17, 5),
	}
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	stats := services.ComputeDeductions(logs, fixedShift(), employee, day, day)

	require.Len(t, stats.Days, 1)
	assert.Equal(t, domain.DayOnTime, stats.Days[0].Status)
	assert.Equal(t, 0, stats.Days[0].DelayMinutes)
}

func TestComputeDeductions_WeeklyOffDaySkipped(t *testing.T) {
	employee := domain.Employee{EmployeeID: "emp-1"}
	// 2026-03-06 is a Friday; the range covers Thursday through Saturday.
	from := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)

	stats := services.ComputeDeductions(nil, fixedShift(), employee, from, to)

	require.Len(t, stats.Days, 2)
	assert.Equal(t, "2026-03-05", stats.Days[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2026-03-07", stats.Days[1].Date.Format("2006-01-02"))
	assert.Equal(t, 2, stats.AbsentDays)
	assert.True(t, stats.TotalDeductions.IsZero())
}

func TestComputeDeductions_HourlyPercentMode(t *testing.T) {
	shift := fixedShift()
	shift.DeductionMode = domain.DeductHourlyPercent
	shift.DeductionRate = decimal.NewFromInt(100)
	// Salary 7200: daily 240 over an 8 hour shift gives hourly rate 30.
	employee := domain.Employee{EmployeeID: "emp-1", BasicSalary: decimal.NewFromInt(7200)}

	// 30 minutes late at 100%: (30/60) * 30 = 15.
	logs := []domain.PunchLog{punchAt("emp-1", 2026, time.March, 2, 9, 30)}
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	stats := services.ComputeDeductions(logs, shift, employee, day, day)

	require.Len(t, stats.Days, 1)
	assert.Equal(t, domain.DayLate, stats.Days[0].Status)
	assert.True(t, stats.Days[0].Deduction.Equal(decimal.NewFromInt(15)),
		"got %s", stats.Days[0].Deduction)
}

func TestComputeDeductions_EarlyArrivalNotNegative(t *testing.T) {
	employee := domain.Employee{EmployeeID: "emp-1"}
	logs := []domain.PunchLog{punchAt("emp-1", 2026, time.March, 2, 7, 45)}
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	stats := services.ComputeDeductions(logs, fixedShift(), employee, day, day)

	require.Len(t, stats.Days, 1)
	assert.Equal(t, 0, stats.Days[0].DelayMinutes)
	assert.Equal(t, domain.DayOnTime, stats.Days[0].Status)
}

func TestDeductionsFor_Validation(t *testing.T) {
	svc := services.NewAttendanceService(new(MockAttendanceRepository))
	from := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	_, err := svc.DeductionsFor(context.Background(), dto.DeductionsRequest{
		EmployeeID:        "emp-1",
		From:              from,
		To:                from.AddDate(0, 0, -1),
		ShiftStartMinutes: 540,
		ShiftEndMinutes:   1020,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.DeductionsFor(context.Background(), dto.DeductionsRequest{
		EmployeeID:        "emp-1",
		From:              from,
		To:                from,
		ShiftStartMinutes: 1020,
		ShiftEndMinutes:   540,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDeductionsFor_ReadsStoredPunches(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)

	repo := new(MockAttendanceRepository)
	repo.On("ListPunchesByEmployee", ctx, "emp-1", from, to.AddDate(0, 0, 1)).
		Return([]domain.PunchLog{punchAt("emp-1", 2026, time.March, 2, 9, 45)}, nil)

	svc := services.NewAttendanceService(repo)
	stats, err := svc.DeductionsFor(ctx, dto.DeductionsRequest{
		EmployeeID:         "emp-1",
		From:               from,
		To:                 to,
		ShiftStartMinutes:  540,
		ShiftEndMinutes:    1020,
		GracePeriodMinutes: 15,
		DeductionMode:      domain.DeductFixed,
		DeductionRate:      decimal.NewFromInt(50),
		WeeklyOffDay:       time.Friday,
	})

	require.NoError(t, err)
	require.Len(t, stats.Days, 2)
	assert.Equal(t, domain.DayLate, stats.Days[0].Status)
	assert.Equal(t, domain.DayAbsent, stats.Days[1].Status)
	assert.True(t, stats.TotalDeductions.Equal(decimal.NewFromInt(50)))
	repo.AssertExpectations(t)
}

func TestIngestPunches_AssignsIDs(t *testing.T) {
	ctx := context.Background()

	repo := new(MockAttendanceRepository)
	repo.On("SavePunches", ctx, mock.MatchedBy(func(punches []domain.PunchLog) bool {
		return len(punches) == 2 && punches[0].PunchID != "" && punches[1].PunchID != ""
	})).Return(nil)

	svc := services.NewAttendanceService(repo)
	err := svc.IngestPunches(ctx, dto.IngestPunchesRequest{Punches: []dto.PunchRequest{
		{EmployeeID: "emp-1", PunchedAt: time.Date(2026, time.March, 2, 9, 1, 0, 0, time.UTC)},
		{EmployeeID: "emp-1", PunchedAt: time.Date(2026, time.March, 2, 17, 2, 0, 0, time.UTC)},
	}})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}
