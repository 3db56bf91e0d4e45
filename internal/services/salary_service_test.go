package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hr_management/internal/models"
	"github.com/hr_management/internal/repositories/repofake"
	"github.com/hr_management/pkg/utils"
)

func day(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeSalaryOverview_CountsWorkDaysUpToToday(t *testing.T) {
	employee := &models.Employee{EmployeeID: "EMP-001", BaseSalary: 3000, WorkDays: models.DefaultWorkDays}
	records := []models.AttendanceRecord{
		{EmployeeID: "EMP-001", Date: "2026-10-01", Status: models.AttendanceStatusPresent},
		{EmployeeID: "EMP-001", Date: "2026-10-02", Status: models.AttendanceStatusLate},
		{EmployeeID: "EMP-001", Date: "2026-10-03", Status: models.AttendanceStatusPresent}, // 周六
		{EmployeeID: "EMP-001", Date: "2026-10-05", Status: models.AttendanceStatusOnLeave},
		{EmployeeID: "EMP-001", Date: "2026-10-06", Status: models.AttendanceStatusAbsent},
	}

	// 10-09 还没有打卡记录，不计入
	got := ComputeSalaryOverview(employee, 2, records, day("2026-10-01"), day("2026-10-09"), time.UTC)

	assert.Equal(t, "2026-10", got.Month)
	assert.Equal(t, 6, got.WorkDays)
	assert.Equal(t, 3, got.DaysAttended)
	assert.Equal(t, 3, got.DaysAbsent)
	assert.Equal(t, 50.0, got.AttendanceRate)
	assert.Equal(t, 180.0, got.DeductionAmount)
	assert.Equal(t, 2820.0, got.NetSalary)

	records = append(records, models.AttendanceRecord{EmployeeID: "EMP-001", Date: "2026-10-09", Status: models.AttendanceStatusPresent})
	got = ComputeSalaryOverview(employee, 2, records, day("2026-10-01"), day("2026-10-09"), time.UTC)
	assert.Equal(t, 7, got.WorkDays)
	assert.Equal(t, 4, got.DaysAttended)
	assert.Equal(t, 3, got.DaysAbsent)
}

func TestComputeSalaryOverview_StartsAtEmploymentStart(t *testing.T) {
	employee := &models.Employee{EmployeeID: "EMP-002", BaseSalary: 3000, WorkDays: models.DefaultWorkDays, StartDate: "2025-03-20"}
	records := []models.AttendanceRecord{
		{EmployeeID: "EMP-002", Date: "2025-03-20", Status: models.AttendanceStatusPresent},
	}

	got := ComputeSalaryOverview(employee, 5, records, day("2025-03-01"), day("2025-04-02"), time.UTC)

	// 03-20 (周四) 到 03-31 共 8 个工作日，入职前的工作日不算缺勤
	assert.Equal(t, 8, got.WorkDays)
	assert.Equal(t, 1, got.DaysAttended)
	assert.Equal(t, 7, got.DaysAbsent)
	assert.Equal(t, 1050.0, got.DeductionAmount)
	assert.Equal(t, 1950.0, got.NetSalary)

	before := ComputeSalaryOverview(employee, 5, nil, day("2025-02-01"), day("2025-04-02"), time.UTC)
	assert.Equal(t, 0, before.WorkDays)
	assert.Equal(t, 3000.0, before.NetSalary)
}

func TestComputeSalaryOverview_FallsBackToCreatedAt(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	// 10-07 23:30 UTC 在东京是 10-08
	employee := &models.Employee{
		EmployeeID: "EMP-003",
		BaseSalary: 1000,
		WorkDays:   models.DefaultWorkDays,
		CreatedAt:  time.Date(2026, 10, 7, 23, 30, 0, 0, time.UTC),
	}
	records := []models.AttendanceRecord{
		{EmployeeID: "EMP-003", Date: "2026-10-09", Status: models.AttendanceStatusPresent},
	}

	got := ComputeSalaryOverview(employee, 10, records, day("2026-10-01"), day("2026-10-09"), tokyo)
	assert.Equal(t, 2, got.WorkDays)
	assert.Equal(t, 1, got.DaysAttended)
	assert.Equal(t, 1, got.DaysAbsent)
}

func TestComputeSalaryOverview_PastAndFutureMonths(t *testing.T) {
	employee := &models.Employee{EmployeeID: "EMP-001", BaseSalary: 1000, WorkDays: models.DefaultWorkDays}

	past := ComputeSalaryOverview(employee, 10, nil, day("2026-09-01"), day("2026-10-09"), time.UTC)
	assert.Equal(t, 22, past.WorkDays)
	assert.Equal(t, 22, past.DaysAbsent)
	assert.Equal(t, 0.0, past.AttendanceRate)
	assert.Equal(t, 0.0, past.NetSalary, "net salary never goes below zero")

	future := ComputeSalaryOverview(employee, 10, nil, day("2026-11-01"), day("2026-10-09"), time.UTC)
	assert.Equal(t, 0, future.WorkDays)
	assert.Equal(t, 100.0, future.AttendanceRate)
	assert.Equal(t, 1000.0, future.NetSalary)
}

func newSalaryFixture(t *testing.T, now time.Time, loc *time.Location) (SalaryService, *repofake.FakeAttendanceRepo) {
	t.Helper()
	employees := repofake.NewFakeEmployeeRepo()
	_, err := employees.CreateEmployee(context.Background(), &models.Employee{
		EmployeeID:    "EMP-001",
		Email:         "amina@example.com",
		BaseSalary:    3000,
		WorkDays:      models.DefaultWorkDays,
		AccountStatus: models.AccountStatusApproved,
		StartDate:     "2026-01-01",
	})
	require.NoError(t, err)

	attendance := repofake.NewFakeAttendanceRepo()
	settings := repofake.NewFakeSettingRepo(models.Setting{CompanyName: "AtProfit", PayCutRate: 2})
	svc := NewSalaryService(employees, attendance, settings, loc, func() time.Time { return now })
	return svc, attendance
}

func TestSalaryService_GetOverview(t *testing.T) {
	now := time.Date(2026, 10, 9, 15, 0, 0, 0, time.UTC)
	svc, attendance := newSalaryFixture(t, now, time.UTC)
	attendance.Put(models.AttendanceRecord{EmployeeID: "EMP-001", Date: "2026-10-01", Status: models.AttendanceStatusPresent})
	ctx := context.Background()

	got, err := svc.GetOverview(ctx, "EMP-001", "")
	require.NoError(t, err)
	assert.Equal(t, "2026-10", got.Month)
	assert.Equal(t, 6, got.WorkDays)
	assert.Equal(t, 1, got.DaysAttended)
	assert.Equal(t, 300.0, got.DeductionAmount)

	_, err = svc.GetOverview(ctx, "EMP-001", "2026-13")
	assert.ErrorIs(t, err, utils.ErrInvalidMonthFormat)

	_, err = svc.GetOverview(ctx, "missing", "")
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestSalaryService_GetOverviewUsesOrgTimezone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	// 10-11 (周日) 20:00 UTC 在东京已经是 10-12 (周一)
	now := time.Date(2026, 10, 11, 20, 0, 0, 0, time.UTC)
	svc, attendance := newSalaryFixture(t, now, tokyo)
	attendance.Put(models.AttendanceRecord{EmployeeID: "EMP-001", Date: "2026-10-12", Status: models.AttendanceStatusPresent})

	got, err := svc.GetOverview(context.Background(), "EMP-001", "2026-10")
	require.NoError(t, err)
	assert.Equal(t, 8, got.WorkDays)
}

func TestSalaryService_UpdateSettings(t *testing.T) {
	svc, _ := newSalaryFixture(t, time.Now(), time.UTC)
	ctx := context.Background()

	_, err := svc.UpdateSettings(ctx, models.UpdateSettingsPayload{})
	assert.ErrorIs(t, err, ErrNoUpdateFields)

	rate := 5.5
	name := "  AtProfit Ltd "
	updated, err := svc.UpdateSettings(ctx, models.UpdateSettingsPayload{PayCutRate: &rate, CompanyName: &name})
	require.NoError(t, err)
	assert.Equal(t, 5.5, updated.PayCutRate)
	assert.Equal(t, "AtProfit Ltd", updated.CompanyName)

	got, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5.5, got.PayCutRate)
}
