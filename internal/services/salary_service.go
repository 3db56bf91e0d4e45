package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/hr_management/internal/models"
	"github.com/hr_management/internal/repositories"
	"github.com/hr_management/pkg/utils"
)

// SalaryService 计算薪资概览并维护公司设置 (扣薪比例)
type SalaryService interface {
	GetOverview(ctx context.Context, employeeID, month string) (*models.SalaryOverview, error)
	GetSettings(ctx context.Context) (*models.Setting, error)
	UpdateSettings(ctx context.Context, payload models.UpdateSettingsPayload) (*models.Setting, error)
}

type salaryService struct {
	employeeRepo   repositories.EmployeeRepository
	attendanceRepo repositories.AttendanceRepository
	settingRepo    repositories.SettingRepository
	loc            *time.Location
	now            func() time.Time
}

// NewSalaryService 创建薪资服务；loc 为组织时区，now 为 nil 时使用 time.Now
func NewSalaryService(employeeRepo repositories.EmployeeRepository, attendanceRepo repositories.AttendanceRepository, settingRepo repositories.SettingRepository, loc *time.Location, now func() time.Time) SalaryService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &salaryService{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		settingRepo:    settingRepo,
		loc:            loc,
		now:            now,
	}
}

// GetOverview 返回员工某月 (YYYY-MM，为空时为本月) 的薪资概览
func (s *salaryService) GetOverview(ctx context.Context, employeeID, month string) (*models.SalaryOverview, error) {
	employee, err := s.employeeRepo.GetEmployeeByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	today := s.now().In(s.loc)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	if strings.TrimSpace(month) != "" {
		if monthStart, err = utils.ParseMonth(month); err != nil {
			return nil, err
		}
	}
	monthEnd := monthStart.AddDate(0, 1, -1)

	setting, err := s.settingRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.attendanceRepo.ListByEmployeeInRange(ctx, employeeID,
		monthStart.Format(models.DateLayout), monthEnd.Format(models.DateLayout))
	if err != nil {
		return nil, err
	}

	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	overview := ComputeSalaryOverview(employee, setting.PayCutRate, records, monthStart, todayDate, s.loc)
	return &overview, nil
}

// ComputeSalaryOverview 统计 monthStart 所在月份的工作日出勤情况。
// 统计从月初与入职日期中较晚的一天开始，到 today 的前一天为止；today 已有考勤记录时也计入。
// 工作日由员工的 WorkDays 决定；没有出勤记录的工作日计为缺勤。
// 扣款 = 基本工资 * 扣薪比例/100 * 缺勤天数，净工资不低于 0。
func ComputeSalaryOverview(employee *models.Employee, payCutRate float64, records []models.AttendanceRecord, monthStart, today time.Time, loc *time.Location) models.SalaryOverview {
	recorded := make(map[string]bool, len(records))
	attended := make(map[string]bool, len(records))
	for _, r := range records {
		recorded[r.Date] = true
		if r.Status.Attended() {
			attended[r.Date] = true
		}
	}

	workDays := employee.WorkDays
	if len(workDays) == 0 {
		workDays = models.DefaultWorkDays
	}

	from := monthStart
	if start, ok := employee.EmploymentStart(loc); ok && start.After(from) {
		from = start
	}
	nextMonth := monthStart.AddDate(0, 1, 0)

	var total, present int
	for day := from; day.Before(nextMonth) && !day.After(today); day = day.AddDate(0, 0, 1) {
		if !workDays.Contains(day.Weekday()) {
			continue
		}
		date := day.Format(models.DateLayout)
		if day.Equal(today) && !recorded[date] {
			// 当天还没打卡不算缺勤
			continue
		}
		total++
		if attended[date] {
			present++
		}
	}
	absent := total - present

	rate := 100.0
	if total > 0 {
		rate = roundTo(float64(present)/float64(total)*100, 1)
	}
	deduction := roundTo(employee.BaseSalary*payCutRate/100*float64(absent), 2)
	net := math.Max(roundTo(employee.BaseSalary-deduction, 2), 0)

	return models.SalaryOverview{
		EmployeeID:      employee.EmployeeID,
		Month:           monthStart.Format("2006-01"),
		BaseSalary:      employee.BaseSalary,
		PayCutRate:      payCutRate,
		WorkDays:        total,
		DaysAttended:    present,
		DaysAbsent:      absent,
		AttendanceRate:  rate,
		DeductionAmount: deduction,
		NetSalary:       net,
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// GetSettings 返回公司设置
func (s *salaryService) GetSettings(ctx context.Context) (*models.Setting, error) {
	return s.settingRepo.Get(ctx)
}

// UpdateSettings 更新公司设置，只更新提供的字段
func (s *salaryService) UpdateSettings(ctx context.Context, payload models.UpdateSettingsPayload) (*models.Setting, error) {
	updates := make(map[string]interface{})
	if payload.CompanyName != nil {
		updates["company_name"] = strings.TrimSpace(*payload.CompanyName)
	}
	if payload.CompanyAddress != nil {
		updates["company_address"] = strings.TrimSpace(*payload.CompanyAddress)
	}
	if payload.PayCutRate != nil {
		updates["pay_cut_rate"] = *payload.PayCutRate
	}
	if len(updates) == 0 {
		return nil, ErrNoUpdateFields
	}
	return s.settingRepo.Update(ctx, updates)
}
