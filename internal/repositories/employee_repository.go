package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/hr_management/internal/models"
	"gorm.io/gorm"
)

// ErrRecordNotFound 表示记录未找到，重用 gorm 的错误
var ErrRecordNotFound = gorm.ErrRecordNotFound

// ErrEmployeeIDExists 表示员工工号已存在
var ErrEmployeeIDExists = errors.New("employee id already exists")

// ErrEmployeeEmailExists 表示邮箱已被注册
var ErrEmployeeEmailExists = errors.New("email already registered")

// EmployeeRepository 定义了员工数据仓库的接口
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error)
	GetEmployees(ctx context.Context, page, limit int, sortBy, sortOrder, search, accountStatus string) ([]models.Employee, int64, error)
	ListByAccountStatus(ctx context.Context, accountStatus string) ([]models.Employee, error)
	GetEmployeeByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error)
	GetEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, employeeID string, updates map[string]interface{}) (*models.Employee, error)
}

// gormEmployeeRepository 是 EmployeeRepository 的 GORM 实现
type gormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository 创建一个新的 gormEmployeeRepository 实例
func NewGormEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &gormEmployeeRepository{db: db}
}

// CreateEmployee 在数据库中创建一个新的员工记录
func (r *gormEmployeeRepository) CreateEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error) {
	tx := r.db.WithContext(ctx)

	// 预先检查 employeeId 是否已存在 (包括软删除的记录)
	var existing models.Employee
	if err := tx.Unscoped().Where("employee_id = ?", employee.EmployeeID).First(&existing).Error; err == nil {
		return nil, ErrEmployeeIDExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := tx.Create(employee).Error; err != nil {
		// 对于 SQLite，错误信息包含 "UNIQUE constraint failed: employees.email"
		if isUniqueViolation(err) {
			if strings.Contains(err.Error(), "employees.email") {
				return nil, ErrEmployeeEmailExists
			}
			return nil, ErrEmployeeIDExists
		}
		return nil, err
	}
	return employee, nil
}

// employeeSortColumns 白名单校验 sortBy 字段，防止 SQL 注入
var employeeSortColumns = map[string]string{
	"employeeId": "employee_id",
	"fullName":   "full_name",
	"rank":       "rank",
	"baseSalary": "base_salary",
	"startDate":  "start_date",
	"createdAt":  "created_at",
}

// employeeOrder 返回排序子句，未知字段按 created_at 排序，默认降序
func employeeOrder(sortBy, sortOrder string) string {
	column, ok := employeeSortColumns[sortBy]
	if !ok {
		column = "created_at"
	}
	if strings.EqualFold(sortOrder, "asc") {
		return column + " asc"
	}
	return column + " desc"
}

// GetEmployees 获取员工列表，支持分页、排序、搜索 (姓名/工号/邮箱) 与审批状态筛选
func (r *gormEmployeeRepository) GetEmployees(ctx context.Context, page, limit int, sortBy, sortOrder, search, accountStatus string) ([]models.Employee, int64, error) {
	var employees []models.Employee
	var totalItems int64

	tx := r.db.WithContext(ctx).Model(&models.Employee{})
	if search != "" {
		term := "%" + search + "%"
		tx = tx.Where("full_name LIKE ? OR employee_id LIKE ? OR email LIKE ?", term, term, term)
	}
	if accountStatus != "" {
		tx = tx.Where("account_status = ?", accountStatus)
	}

	// 计算总数（在应用分页之前）
	if err := tx.Count(&totalItems).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := tx.Order(employeeOrder(sortBy, sortOrder)).Order("id").Offset(offset).Limit(limit).Find(&employees).Error; err != nil {
		return nil, 0, err
	}
	return employees, totalItems, nil
}

// ListByAccountStatus 返回某审批状态下的全部员工，按工号排序
func (r *gormEmployeeRepository) ListByAccountStatus(ctx context.Context, accountStatus string) ([]models.Employee, error) {
	var employees []models.Employee
	if err := r.db.WithContext(ctx).Where("account_status = ?", accountStatus).Order("employee_id").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// GetEmployeeByEmployeeID 根据业务工号查找员工
func (r *gormEmployeeRepository) GetEmployeeByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// GetEmployeeByEmail 根据邮箱查找员工 (登录使用)
func (r *gormEmployeeRepository) GetEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email)).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// UpdateEmployee 更新员工字段并返回最新记录
func (r *gormEmployeeRepository) UpdateEmployee(ctx context.Context, employeeID string, updates map[string]interface{}) (*models.Employee, error) {
	tx := r.db.WithContext(ctx)
	result := tx.Model(&models.Employee{}).Where("employee_id = ?", employeeID).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return r.GetEmployeeByEmployeeID(ctx, employeeID)
}

// isUniqueViolation GORM 会将数据库的唯一约束违例错误包装起来，这里按错误信息判断
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
