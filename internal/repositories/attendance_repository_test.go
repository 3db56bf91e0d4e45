package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hr_management/internal/models"
	"github.com/hr_management/internal/repositories"
	"github.com/hr_management/pkg/db/dbtest"
)

func newRecord(employeeID, date string) *models.AttendanceRecord {
	checkIn := time.Date(2024, 7, 29, 8, 55, 0, 0, time.UTC)
	return &models.AttendanceRecord{
		EmployeeID:  employeeID,
		Date:        date,
		CheckInTime: &checkIn,
		Status:      models.AttendanceStatusPresent,
	}
}

func TestAttendanceRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGormAttendanceRepository(dbtest.Open(t))

	_, err := repo.FindByEmployeeAndDate(ctx, "emp042", "2024-07-29")
	require.ErrorIs(t, err, repositories.ErrRecordNotFound)

	rec := newRecord("emp042", "2024-07-29")
	require.NoError(t, repo.Create(ctx, rec))
	assert.NotZero(t, rec.ID)

	found, err := repo.FindByEmployeeAndDate(ctx, "emp042", "2024-07-29")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, found.ID)
	assert.Equal(t, models.AttendanceStatusPresent, found.Status)
	require.NotNil(t, found.CheckInTime)
	assert.True(t, rec.CheckInTime.Equal(*found.CheckInTime))
}

func TestAttendanceRepository_CreateIsConditionalOnEmployeeAndDate(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.Open(t)
	repo := repositories.NewGormAttendanceRepository(conn)

	require.NoError(t, repo.Create(ctx, newRecord("emp042", "2024-07-29")))
	err := repo.Create(ctx, newRecord("emp042", "2024-07-29"))
	require.ErrorIs(t, err, repositories.ErrAttendanceExists)

	// different day and different employee are independent
	require.NoError(t, repo.Create(ctx, newRecord("emp042", "2024-07-30")))
	require.NoError(t, repo.Create(ctx, newRecord("emp001", "2024-07-29")))

	var count int64
	require.NoError(t, conn.Model(&models.AttendanceRecord{}).
		Where("employee_id = ? AND date = ?", "emp042", "2024-07-29").
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAttendanceRepository_Listing(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGormAttendanceRepository(dbtest.Open(t))

	for _, date := range []string{"2024-07-31", "2024-07-01", "2024-08-01", "2024-07-15"} {
		require.NoError(t, repo.Create(ctx, newRecord("emp042", date)))
	}
	require.NoError(t, repo.Create(ctx, newRecord("emp001", "2024-07-15")))

	july, err := repo.ListByEmployeeInRange(ctx, "emp042", "2024-07-01", "2024-07-31")
	require.NoError(t, err)
	require.Len(t, july, 3)
	assert.Equal(t, "2024-07-01", july[0].Date)
	assert.Equal(t, "2024-07-15", july[1].Date)
	assert.Equal(t, "2024-07-31", july[2].Date)

	day, err := repo.ListByDate(ctx, "2024-07-15")
	require.NoError(t, err)
	assert.Len(t, day, 2)

	empty, err := repo.ListByDate(ctx, "2023-01-01")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
