package models

import "time"

// GeneralSettingID settings 表中唯一的一行
const GeneralSettingID uint = 1

// Setting 公司级设置，包括缺勤扣薪比例
type Setting struct {
	ID             uint      `json:"-" gorm:"primaryKey"`
	CompanyName    string    `json:"companyName" gorm:"column:company_name;size:255"`
	CompanyAddress string    `json:"companyAddress" gorm:"column:company_address;size:500"`
	PayCutRate     float64   `json:"payCutRate" gorm:"column:pay_cut_rate;not null;default:0"` // 每缺勤一天扣除基本工资的百分比
	UpdatedAt      time.Time `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName 指定表名
func (Setting) TableName() string {
	return "settings"
}

// UpdateSettingsPayload 更新设置的请求体
type UpdateSettingsPayload struct {
	CompanyName    *string  `json:"companyName,omitempty" binding:"omitempty,max=255"`
	CompanyAddress *string  `json:"companyAddress,omitempty" binding:"omitempty,max=500"`
	PayCutRate     *float64 `json:"payCutRate,omitempty" binding:"omitempty,gte=0,lte=100"`
}

// SalaryOverview 某员工某月的薪资概览
type SalaryOverview struct {
	EmployeeID      string  `json:"employeeId"`
	Month           string  `json:"month"` // YYYY-MM
	BaseSalary      float64 `json:"baseSalary"`
	PayCutRate      float64 `json:"payCutRate"`
	WorkDays        int     `json:"workDays"`
	DaysAttended    int     `json:"daysAttended"`
	DaysAbsent      int     `json:"daysAbsent"`
	AttendanceRate  float64 `json:"attendanceRate"`
	DeductionAmount float64 `json:"deductionAmount"`
	NetSalary       float64 `json:"netSalary"`
}

// DashboardSummary 管理员仪表盘的汇总数据，只统计已审批的员工
type DashboardSummary struct {
	Month           string  `json:"month"` // YYYY-MM
	TotalEmployees  int     `json:"totalEmployees"`
	ClockedInToday  int     `json:"clockedInToday"`
	AttendanceRate  float64 `json:"attendanceRate"`
	DaysMissed      int     `json:"daysMissed"`
	TotalBaseSalary float64 `json:"totalBaseSalary"`
	TotalDeductions float64 `json:"totalDeductions"`
	TotalSalaryCost float64 `json:"totalSalaryCost"` // 扣款后的净工资合计
}
