package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hr_management/internal/clockin"
	"github.com/hr_management/internal/models"
	"github.com/hr_management/internal/repositories"
	"github.com/hr_management/internal/repositories/repofake"
	"github.com/hr_management/pkg/utils"
)

type notification struct {
	email string
	name  string
}

type chanNotifier chan notification

func (n chanNotifier) SendApprovalEmail(toEmail, employeeName string) error {
	n <- notification{email: toEmail, name: employeeName}
	return nil
}

func registerApplicant(t *testing.T, svc EmployeeService, employeeID, email string) *models.Employee {
	t.Helper()
	e, err := svc.Register(context.Background(), &models.Employee{
		EmployeeID: employeeID,
		FullName:   "Amina " + employeeID,
		Email:      email,
	}, "correct-horse")
	require.NoError(t, err)
	return e
}

func TestEmployeeService_RegisterCreatesPendingApplicant(t *testing.T) {
	svc := NewEmployeeService(repofake.NewFakeEmployeeRepo(), nil, time.UTC, nil)

	e := registerApplicant(t, svc, "EMP-001", "amina@example.com")

	assert.Equal(t, models.AccountStatusPending, e.AccountStatus)
	assert.Equal(t, models.RoleEmployee, e.Role)
	assert.Equal(t, models.DefaultWorkDays, e.WorkDays)
	assert.NotEqual(t, "correct-horse", e.PasswordHash)
	assert.NotEmpty(t, e.PasswordHash)
}

func TestEmployeeService_RegisterValidation(t *testing.T) {
	svc := NewEmployeeService(repofake.NewFakeEmployeeRepo(), nil, time.UTC, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.Employee{EmployeeID: "A|B", Email: "a@example.com"}, "correct-horse")
	assert.ErrorIs(t, err, clockin.ErrInvalidEmployeeID)

	_, err = svc.Register(ctx, &models.Employee{EmployeeID: "A1", Email: "not-an-email"}, "correct-horse")
	assert.ErrorIs(t, err, utils.ErrInvalidEmailFormat)

	_, err = svc.Register(ctx, &models.Employee{EmployeeID: "A1", Email: "a@example.com"}, "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	registerApplicant(t, svc, "A1", "a@example.com")
	_, err = svc.Register(ctx, &models.Employee{EmployeeID: "A1", Email: "other@example.com"}, "correct-horse")
	assert.ErrorIs(t, err, repositories.ErrEmployeeIDExists)
}

func TestEmployeeService_AuthenticateRequiresApproval(t *testing.T) {
	notifier := make(chanNotifier, 1)
	approvedAt := time.Date(2026, 10, 9, 23, 30, 0, 0, time.UTC)
	utcPlusOne := time.FixedZone("UTC+1", 3600)
	svc := NewEmployeeService(repofake.NewFakeEmployeeRepo(), notifier, utcPlusOne, func() time.Time { return approvedAt })
	ctx := context.Background()
	registerApplicant(t, svc, "EMP-001", "amina@example.com")

	_, err := svc.Authenticate(ctx, "amina@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrAccountPending)

	approved, err := svc.Approve(ctx, "EMP-001", models.ApproveEmployeePayload{
		Rank:       "Engineer",
		BaseSalary: 3000,
		Role:       models.RoleEmployee,
		WorkDays:   []int{5, 1, 1, 9},
	})
	require.NoError(t, err)
	assert.Equal(t, models.AccountStatusApproved, approved.AccountStatus)
	assert.Equal(t, models.WorkDays{1, 5}, approved.WorkDays)
	// 入职日期默认为组织时区的审批当天
	assert.Equal(t, "2026-10-10", approved.StartDate)

	select {
	case n := <-notifier:
		assert.Equal(t, "amina@example.com", n.email)
	case <-time.After(2 * time.Second):
		t.Fatal("approval notification was not sent")
	}

	e, err := svc.Authenticate(ctx, " amina@example.com ", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "EMP-001", e.EmployeeID)

	_, err = svc.Authenticate(ctx, "amina@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestEmployeeService_Reject(t *testing.T) {
	svc := NewEmployeeService(repofake.NewFakeEmployeeRepo(), nil, time.UTC, nil)
	ctx := context.Background()
	registerApplicant(t, svc, "EMP-002", "bilal@example.com")

	rejected, err := svc.Reject(ctx, "EMP-002")
	require.NoError(t, err)
	assert.Equal(t, models.AccountStatusRejected, rejected.AccountStatus)

	_, err = svc.Authenticate(ctx, "bilal@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrAccountRejected)

	_, err = svc.Approve(ctx, "EMP-002", models.ApproveEmployeePayload{Rank: "x", Role: models.RoleEmployee})
	assert.ErrorIs(t, err, ErrNotPending)

	_, err = svc.Reject(ctx, "missing")
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestEmployeeService_UpdateEmployee(t *testing.T) {
	svc := NewEmployeeService(repofake.NewFakeEmployeeRepo(), nil, time.UTC, nil)
	ctx := context.Background()
	registerApplicant(t, svc, "EMP-003", "chen@example.com")

	_, err := svc.UpdateEmployee(ctx, "EMP-003", models.UpdateEmployeePayload{})
	assert.ErrorIs(t, err, ErrNoUpdateFields)

	salary := 4200.0
	role := models.RoleAdmin
	updated, err := svc.UpdateEmployee(ctx, "EMP-003", models.UpdateEmployeePayload{
		BaseSalary: &salary,
		Role:       &role,
		WorkDays:   []int{0, 6},
	})
	require.NoError(t, err)
	assert.Equal(t, 4200.0, updated.BaseSalary)
	assert.True(t, updated.IsAdmin())
	assert.Equal(t, models.WorkDays{0, 6}, updated.WorkDays)

	_, err = svc.UpdateEmployee(ctx, "missing", models.UpdateEmployeePayload{BaseSalary: &salary})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestEmployeeService_GetEmployees(t *testing.T) {
	svc := NewEmployeeService(repofake.NewFakeEmployeeRepo(), nil, time.UTC, nil)
	ctx := context.Background()
	registerApplicant(t, svc, "EMP-010", "d@example.com")
	registerApplicant(t, svc, "EMP-011", "e@example.com")
	_, err := svc.Reject(ctx, "EMP-011")
	require.NoError(t, err)

	pending, total, err := svc.GetEmployees(ctx, 1, 10, "", "", "", models.AccountStatusPending)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, pending, 1)
	assert.Equal(t, "EMP-010", pending[0].EmployeeID)
}

func TestEmployeeService_CreateApprovedEmployee(t *testing.T) {
	now := time.Date(2026, 10, 9, 9, 0, 0, 0, time.UTC)
	svc := NewEmployeeService(repofake.NewFakeEmployeeRepo(), nil, time.UTC, func() time.Time { return now })
	ctx := context.Background()

	created, err := svc.Create(ctx, models.CreateEmployeePayload{
		EmployeeID: " EMP-020 ",
		FullName:   "Yacine Haddad",
		Email:      "yacine@example.com",
		Password:   "correct-horse",
		Rank:       "Accountant",
		BaseSalary: 2500,
		Role:       models.RoleEmployee,
		WorkDays:   []int{0, 1, 2, 3, 4},
		StartDate:  "2026-09-15",
	})
	require.NoError(t, err)
	assert.Equal(t, "EMP-020", created.EmployeeID)
	assert.Equal(t, models.AccountStatusApproved, created.AccountStatus)
	assert.Equal(t, "2026-09-15", created.StartDate)
	assert.Equal(t, models.WorkDays{0, 1, 2, 3, 4}, created.WorkDays)

	// 已审批账号可以直接登录
	e, err := svc.Authenticate(ctx, "yacine@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "EMP-020", e.EmployeeID)

	defaulted, err := svc.Create(ctx, models.CreateEmployeePayload{
		EmployeeID: "EMP-021", FullName: "Sara", Email: "sara@example.com", Password: "correct-horse",
		Rank: "Clerk", Role: models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-09", defaulted.StartDate)
	assert.Equal(t, models.DefaultWorkDays, defaulted.WorkDays)

	_, err = svc.Create(ctx, models.CreateEmployeePayload{
		EmployeeID: "EMP-022", FullName: "X", Email: "x@example.com", Password: "short", Rank: "Clerk", Role: models.RoleEmployee,
	})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.Create(ctx, models.CreateEmployeePayload{
		EmployeeID: "EMP-020", FullName: "Dup", Email: "dup@example.com", Password: "correct-horse", Rank: "Clerk", Role: models.RoleEmployee,
	})
	assert.ErrorIs(t, err, repositories.ErrEmployeeIDExists)
}
