package models

import (
	"database/sql/driver"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// 角色
const (
	RoleAdmin    = "Admin"
	RoleEmployee = "Employee"
)

// 账号审批状态
const (
	AccountStatusPending  = "Pending"
	AccountStatusApproved = "Approved"
	AccountStatusRejected = "Rejected"
)

// WorkDays 保存员工的工作日 (0 = 周日 ... 6 = 周六)，在数据库中以 "1,2,3,4,5" 形式存储
type WorkDays []int

// DefaultWorkDays 周一至周五
var DefaultWorkDays = WorkDays{1, 2, 3, 4, 5}

// Contains 判断某个星期几是否为工作日
func (w WorkDays) Contains(day time.Weekday) bool {
	for _, d := range w {
		if d == int(day) {
			return true
		}
	}
	return false
}

// Normalize 去重、排序并丢弃非法值
func (w WorkDays) Normalize() WorkDays {
	seen := make(map[int]bool, len(w))
	out := make(WorkDays, 0, len(w))
	for _, d := range w {
		if d < 0 || d > 6 || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// Value implements driver.Valuer.
func (w WorkDays) Value() (driver.Value, error) {
	parts := make([]string, 0, len(w))
	for _, d := range w.Normalize() {
		parts = append(parts, strconv.Itoa(d))
	}
	return strings.Join(parts, ","), nil
}

// Scan implements sql.Scanner.
func (w *WorkDays) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*w = WorkDays{}
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("无法将 %T 转换为 WorkDays", src)
	}

	days := WorkDays{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("无效的工作日 %q: %w", part, err)
		}
		days = append(days, d)
	}
	*w = days.Normalize()
	return nil
}

// Employee 对应于数据库中的 employees 表
type Employee struct {
	ID            int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID    string         `json:"employeeId" gorm:"column:employee_id;unique;not null;size:100"` // 员工业务工号，也是打卡令牌中的身份
	FullName      string         `json:"fullName" gorm:"column:full_name;not null;size:255"`
	Email         string         `json:"email" gorm:"column:email;unique;not null;size:255"`
	PasswordHash  string         `json:"-" gorm:"column:password_hash;not null;size:255"` // 密码哈希不通过JSON暴露
	Role          string         `json:"role" gorm:"column:role;not null;default:'Employee';size:50"`
	Rank          string         `json:"rank" gorm:"column:rank;size:255"`
	BaseSalary    float64        `json:"baseSalary" gorm:"column:base_salary;not null;default:0"`
	WorkDays      WorkDays       `json:"workDays" gorm:"column:work_days;type:varchar(32);not null;default:'1,2,3,4,5'" swaggertype:"array,integer"`
	AccountStatus string         `json:"accountStatus" gorm:"column:account_status;not null;default:'Pending';size:50;index"`
	StartDate     string         `json:"startDate,omitempty" gorm:"column:start_date;size:10"` // 入职日期 YYYY-MM-DD，审批或创建时设置
	CreatedAt     time.Time      `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt     time.Time      `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index" swaggertype:"string" format:"date-time"`
}

// TableName 指定 Employee 结构体对应的数据库表名
func (Employee) TableName() string {
	return "employees"
}

// IsAdmin 是否为管理员
func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}

// EmploymentStart 返回入职日期 (UTC 零点表示的日历日)。
// 没有 StartDate 时退回到 CreatedAt 在 loc 中的日期；两者都没有时 ok 为 false。
func (e *Employee) EmploymentStart(loc *time.Location) (start time.Time, ok bool) {
	if e.StartDate != "" {
		if t, err := time.Parse(DateLayout, e.StartDate); err == nil {
			return t, true
		}
	}
	if e.CreatedAt.IsZero() {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	c := e.CreatedAt.In(loc)
	return time.Date(c.Year(), c.Month(), c.Day(), 0, 0, 0, 0, time.UTC), true
}

// CreateEmployeePayload 管理员直接创建已审批员工的请求体
type CreateEmployeePayload struct {
	EmployeeID string  `json:"employeeId" binding:"required,max=100"`
	FullName   string  `json:"fullName" binding:"required,max=255"`
	Email      string  `json:"email" binding:"required,email,max=255"`
	Password   string  `json:"password" binding:"required"`
	Rank       string  `json:"rank" binding:"required,max=255"`
	BaseSalary float64 `json:"baseSalary" binding:"gte=0"`
	Role       string  `json:"role" binding:"required,oneof=Admin Employee"`
	WorkDays   []int   `json:"workDays,omitempty" binding:"omitempty,dive,min=0,max=6"`
	StartDate  string  `json:"startDate,omitempty" binding:"omitempty,datetime=2006-01-02"` // 为空时为当天
}

// ApproveEmployeePayload 审批申请人时填写的职位、薪资等信息
type ApproveEmployeePayload struct {
	Rank       string  `json:"rank" binding:"required,max=255"`
	BaseSalary float64 `json:"baseSalary" binding:"gte=0"`
	Role       string  `json:"role" binding:"required,oneof=Admin Employee"`
	WorkDays   []int   `json:"workDays,omitempty" binding:"omitempty,dive,min=0,max=6"`
	StartDate  string  `json:"startDate,omitempty" binding:"omitempty,datetime=2006-01-02"` // 为空时为审批当天
}

// UpdateEmployeePayload 定义了更新员工信息的请求体
type UpdateEmployeePayload struct {
	FullName   *string  `json:"fullName,omitempty" binding:"omitempty,max=255"`
	Rank       *string  `json:"rank,omitempty" binding:"omitempty,max=255"`
	BaseSalary *float64 `json:"baseSalary,omitempty" binding:"omitempty,gte=0"`
	Role       *string  `json:"role,omitempty" binding:"omitempty,oneof=Admin Employee"`
	WorkDays   []int    `json:"workDays,omitempty" binding:"omitempty,dive,min=0,max=6"`
	StartDate  *string  `json:"startDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
}
