package services

import (
	"context"
	"strings"
	"time"

	"github.com/hr_management/internal/models"
	"github.com/hr_management/internal/repositories"
	"github.com/hr_management/pkg/utils"
)

// DashboardService 汇总已审批员工的人数、出勤和薪资成本
type DashboardService interface {
	GetSummary(ctx context.Context, month string) (*models.DashboardSummary, error)
}

type dashboardService struct {
	employeeRepo   repositories.EmployeeRepository
	attendanceRepo repositories.AttendanceRepository
	salary         SalaryService
	loc            *time.Location
	now            func() time.Time
}

// NewDashboardService 创建仪表盘服务；每个员工的月度数据由 salary 计算
func NewDashboardService(employeeRepo repositories.EmployeeRepository, attendanceRepo repositories.AttendanceRepository, salary SalaryService, loc *time.Location, now func() time.Time) DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &dashboardService{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		salary:         salary,
		loc:            loc,
		now:            now,
	}
}

// GetSummary 返回某月 (YYYY-MM，为空时为本月) 的汇总；今日打卡人数总是按当天统计
func (s *dashboardService) GetSummary(ctx context.Context, month string) (*models.DashboardSummary, error) {
	today := s.now().In(s.loc)
	summary := &models.DashboardSummary{Month: today.Format("2006-01")}
	if strings.TrimSpace(month) != "" {
		monthStart, err := utils.ParseMonth(month)
		if err != nil {
			return nil, err
		}
		summary.Month = monthStart.Format("2006-01")
	}

	employees, err := s.employeeRepo.ListByAccountStatus(ctx, models.AccountStatusApproved)
	if err != nil {
		return nil, err
	}
	summary.TotalEmployees = len(employees)

	approved := make(map[string]bool, len(employees))
	var workDays, attended int
	for _, e := range employees {
		approved[e.EmployeeID] = true
		overview, err := s.salary.GetOverview(ctx, e.EmployeeID, summary.Month)
		if err != nil {
			return nil, err
		}
		workDays += overview.WorkDays
		attended += overview.DaysAttended
		summary.DaysMissed += overview.DaysAbsent
		summary.TotalBaseSalary += overview.BaseSalary
		summary.TotalDeductions += overview.DeductionAmount
		summary.TotalSalaryCost += overview.NetSalary
	}

	summary.AttendanceRate = 100
	if workDays > 0 {
		summary.AttendanceRate = roundTo(float64(attended)/float64(workDays)*100, 1)
	}
	summary.TotalBaseSalary = roundTo(summary.TotalBaseSalary, 2)
	summary.TotalDeductions = roundTo(summary.TotalDeductions, 2)
	summary.TotalSalaryCost = roundTo(summary.TotalSalaryCost, 2)

	records, err := s.attendanceRepo.ListByDate(ctx, today.Format(models.DateLayout))
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if approved[r.EmployeeID] && r.Status.Attended() {
			summary.ClockedInToday++
		}
	}
	return summary, nil
}
