package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/hr_management/internal/clockin"
	"github.com/hr_management/internal/models"
	"github.com/hr_management/internal/repositories"
	"github.com/hr_management/pkg/utils"
)

// ErrEmployeeNotFound 表示员工未找到
var ErrEmployeeNotFound = errors.New("employee not found")

// ErrInvalidCredentials 邮箱或密码错误
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrAccountPending 账号仍在等待审批
var ErrAccountPending = errors.New("account is awaiting approval")

// ErrAccountRejected 账号申请已被拒绝
var ErrAccountRejected = errors.New("account application was rejected")

// ErrNotPending 只能审批/拒绝待审批的申请人
var ErrNotPending = errors.New("employee is not a pending applicant")

// ErrNoUpdateFields 没有提供任何有效的更新字段
var ErrNoUpdateFields = errors.New("no update fields provided")

// ErrPasswordTooShort 密码长度不足
var ErrPasswordTooShort = errors.New("password must be at least 8 characters")

const minPasswordLength = 8

// ApprovalNotifier 在申请人审批通过后发送通知 (例如邮件)
type ApprovalNotifier interface {
	SendApprovalEmail(toEmail, employeeName string) error
}

// EmployeeService 定义了员工服务的接口
type EmployeeService interface {
	Register(ctx context.Context, employee *models.Employee, password string) (*models.Employee, error)
	Create(ctx context.Context, payload models.CreateEmployeePayload) (*models.Employee, error)
	Authenticate(ctx context.Context, email, password string) (*models.Employee, error)
	GetEmployees(ctx context.Context, page, limit int, sortBy, sortOrder, search, accountStatus string) ([]models.Employee, int64, error)
	GetEmployeeByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error)
	Approve(ctx context.Context, employeeID string, payload models.ApproveEmployeePayload) (*models.Employee, error)
	Reject(ctx context.Context, employeeID string) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, employeeID string, payload models.UpdateEmployeePayload) (*models.Employee, error)
}

// employeeService 是 EmployeeService 的实现
type employeeService struct {
	repo     repositories.EmployeeRepository
	notifier ApprovalNotifier
	loc      *time.Location
	now      func() time.Time
}

// NewEmployeeService 创建一个新的 employeeService 实例；notifier 可以为 nil。
// loc 与 now 用于确定默认的入职日期。
func NewEmployeeService(repo repositories.EmployeeRepository, notifier ApprovalNotifier, loc *time.Location, now func() time.Time) EmployeeService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &employeeService{repo: repo, notifier: notifier, loc: loc, now: now}
}

// Register 处理申请人注册：账号初始为 Pending，需要管理员审批后才能登录
func (s *employeeService) Register(ctx context.Context, employee *models.Employee, password string) (*models.Employee, error) {
	if err := prepareAccount(employee, password); err != nil {
		return nil, err
	}
	employee.Role = models.RoleEmployee
	employee.AccountStatus = models.AccountStatusPending
	if len(employee.WorkDays) == 0 {
		employee.WorkDays = models.DefaultWorkDays
	}

	return s.repo.CreateEmployee(ctx, employee)
}

// Create 由管理员直接创建已审批的员工，入职日期默认为当天
func (s *employeeService) Create(ctx context.Context, payload models.CreateEmployeePayload) (*models.Employee, error) {
	startDate, err := s.startDate(payload.StartDate)
	if err != nil {
		return nil, err
	}
	workDays := models.WorkDays(payload.WorkDays).Normalize()
	if len(workDays) == 0 {
		workDays = models.DefaultWorkDays
	}

	employee := &models.Employee{
		EmployeeID:    payload.EmployeeID,
		FullName:      strings.TrimSpace(payload.FullName),
		Email:         payload.Email,
		Role:          payload.Role,
		Rank:          payload.Rank,
		BaseSalary:    payload.BaseSalary,
		WorkDays:      workDays,
		AccountStatus: models.AccountStatusApproved,
		StartDate:     startDate,
	}
	if err := prepareAccount(employee, payload.Password); err != nil {
		return nil, err
	}
	return s.repo.CreateEmployee(ctx, employee)
}

// prepareAccount 校验工号、邮箱与密码，并写入密码哈希
func prepareAccount(employee *models.Employee, password string) error {
	employee.EmployeeID = strings.TrimSpace(employee.EmployeeID)
	employee.Email = strings.TrimSpace(employee.Email)

	// 工号会嵌入打卡二维码，必须能够被解析回来
	if err := clockin.ValidateEmployeeID(employee.EmployeeID); err != nil {
		return err
	}
	if employee.Email == "" || !utils.ValidateEmailFormat(employee.Email) {
		return utils.ErrInvalidEmailFormat
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	employee.PasswordHash = string(hash)
	return nil
}

// startDate 校验入职日期；为空时取组织时区的当天
func (s *employeeService) startDate(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return s.now().In(s.loc).Format(models.DateLayout), nil
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		return "", err
	}
	return t.Format(models.DateLayout), nil
}

// Authenticate 校验登录凭证，只有已审批的账号可以登录
func (s *employeeService) Authenticate(ctx context.Context, email, password string) (*models.Employee, error) {
	employee, err := s.repo.GetEmployeeByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	switch employee.AccountStatus {
	case models.AccountStatusApproved:
		return employee, nil
	case models.AccountStatusRejected:
		return nil, ErrAccountRejected
	default:
		return nil, ErrAccountPending
	}
}

// GetEmployees 处理获取员工列表的业务逻辑
func (s *employeeService) GetEmployees(ctx context.Context, page, limit int, sortBy, sortOrder, search, accountStatus string) ([]models.Employee, int64, error) {
	return s.repo.GetEmployees(ctx, page, limit, sortBy, sortOrder, search, accountStatus)
}

// GetEmployeeByEmployeeID 处理根据业务工号获取员工的业务逻辑
func (s *employeeService) GetEmployeeByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error) {
	employee, err := s.repo.GetEmployeeByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound // 转为服务层定义的错误
		}
		return nil, err
	}
	return employee, nil
}

// Approve 审批申请人，同时设置职位、基本工资、角色和工作日
func (s *employeeService) Approve(ctx context.Context, employeeID string, payload models.ApproveEmployeePayload) (*models.Employee, error) {
	if _, err := s.pending(ctx, employeeID); err != nil {
		return nil, err
	}
	startDate, err := s.startDate(payload.StartDate)
	if err != nil {
		return nil, err
	}

	workDays := models.WorkDays(payload.WorkDays).Normalize()
	if len(workDays) == 0 {
		workDays = models.DefaultWorkDays
	}
	updated, err := s.repo.UpdateEmployee(ctx, employeeID, map[string]interface{}{
		"account_status": models.AccountStatusApproved,
		"rank":           payload.Rank,
		"base_salary":    payload.BaseSalary,
		"role":           payload.Role,
		"work_days":      workDays,
		"start_date":     startDate,
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		go func(email, name string) {
			if err := s.notifier.SendApprovalEmail(email, name); err != nil {
				log.Error().Err(err).Str("employee_id", employeeID).Msg("发送审批通知邮件失败")
			}
		}(updated.Email, updated.FullName)
	}
	return updated, nil
}

// Reject 拒绝申请人
func (s *employeeService) Reject(ctx context.Context, employeeID string) (*models.Employee, error) {
	if _, err := s.pending(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.repo.UpdateEmployee(ctx, employeeID, map[string]interface{}{
		"account_status": models.AccountStatusRejected,
	})
}

func (s *employeeService) pending(ctx context.Context, employeeID string) (*models.Employee, error) {
	employee, err := s.GetEmployeeByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee.AccountStatus != models.AccountStatusPending {
		return nil, ErrNotPending
	}
	return employee, nil
}

// UpdateEmployee 处理更新员工信息的业务逻辑
func (s *employeeService) UpdateEmployee(ctx context.Context, employeeID string, payload models.UpdateEmployeePayload) (*models.Employee, error) {
	// 首先，确保员工存在
	if _, err := s.GetEmployeeByEmployeeID(ctx, employeeID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if payload.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*payload.FullName)
	}
	if payload.Rank != nil {
		updates["rank"] = *payload.Rank
	}
	if payload.BaseSalary != nil {
		updates["base_salary"] = *payload.BaseSalary
	}
	if payload.Role != nil {
		updates["role"] = *payload.Role
	}
	if payload.WorkDays != nil {
		updates["work_days"] = models.WorkDays(payload.WorkDays).Normalize()
	}
	if payload.StartDate != nil {
		startDate, err := utils.ParseDate(*payload.StartDate)
		if err != nil {
			return nil, err
		}
		updates["start_date"] = startDate.Format(models.DateLayout)
	}

	if len(updates) == 0 {
		return nil, ErrNoUpdateFields
	}
	return s.repo.UpdateEmployee(ctx, employeeID, updates)
}
