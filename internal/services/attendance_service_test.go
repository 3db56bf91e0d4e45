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

func newAttendanceFixture(t *testing.T, now time.Time) (AttendanceService, *repofake.FakeAttendanceRepo) {
	t.Helper()
	employees := repofake.NewFakeEmployeeRepo()
	_, err := employees.CreateEmployee(context.Background(), &models.Employee{EmployeeID: "EMP-001", Email: "amina@example.com"})
	require.NoError(t, err)

	attendance := repofake.NewFakeAttendanceRepo()
	attendance.Put(models.AttendanceRecord{EmployeeID: "EMP-001", Date: "2026-09-30", Status: models.AttendanceStatusPresent})
	attendance.Put(models.AttendanceRecord{EmployeeID: "EMP-001", Date: "2026-10-01", Status: models.AttendanceStatusPresent})
	attendance.Put(models.AttendanceRecord{EmployeeID: "EMP-001", Date: "2026-10-09", Status: models.AttendanceStatusLate})
	attendance.Put(models.AttendanceRecord{EmployeeID: "EMP-002", Date: "2026-10-09", Status: models.AttendanceStatusPresent})

	return NewAttendanceService(attendance, employees, time.UTC, func() time.Time { return now }), attendance
}

func TestAttendanceService_GetCalendarDefaultsToCurrentMonth(t *testing.T) {
	svc, _ := newAttendanceFixture(t, time.Date(2026, 10, 9, 12, 0, 0, 0, time.UTC))

	records, err := svc.GetCalendar(context.Background(), "EMP-001", "", "")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2026-10-01", records[0].Date)
	assert.Equal(t, "2026-10-09", records[1].Date)
}

func TestAttendanceService_GetCalendarRange(t *testing.T) {
	svc, _ := newAttendanceFixture(t, time.Date(2026, 10, 9, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	records, err := svc.GetCalendar(ctx, "EMP-001", "2026/9/30", "2026-10-01")
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = svc.GetCalendar(ctx, "EMP-001", "2026-10-02", "2026-10-01")
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.GetCalendar(ctx, "EMP-001", "2024-01-01", "2026-10-01")
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.GetCalendar(ctx, "EMP-001", "yesterday", "")
	assert.ErrorIs(t, err, utils.ErrInvalidDateFormat)

	_, err = svc.GetCalendar(ctx, "missing", "", "")
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestAttendanceService_GetDaily(t *testing.T) {
	svc, _ := newAttendanceFixture(t, time.Date(2026, 10, 9, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	today, err := svc.GetDaily(ctx, "")
	require.NoError(t, err)
	assert.Len(t, today, 2)

	other, err := svc.GetDaily(ctx, "2026-09-30")
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, "EMP-001", other[0].EmployeeID)
}
