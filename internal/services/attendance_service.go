package services

import (
	"context"
	"errors"
	"time"

	"github.com/hr_management/internal/models"
	"github.com/hr_management/internal/repositories"
	"github.com/hr_management/pkg/utils"
)

// ErrInvalidDateRange 起始日期晚于结束日期或区间过长
var ErrInvalidDateRange = errors.New("invalid date range")

// maxCalendarDays 日历查询的最大跨度
const maxCalendarDays = 366

// AttendanceService 提供考勤记录的查询 (日历、每日看板)
type AttendanceService interface {
	GetCalendar(ctx context.Context, employeeID, from, to string) ([]models.AttendanceRecord, error)
	GetDaily(ctx context.Context, date string) ([]models.AttendanceRecord, error)
}

type attendanceService struct {
	repo         repositories.AttendanceRepository
	employeeRepo repositories.EmployeeRepository
	loc          *time.Location
	now          func() time.Time
}

// NewAttendanceService 创建考勤服务；loc 为组织时区，now 为 nil 时使用 time.Now
func NewAttendanceService(repo repositories.AttendanceRepository, employeeRepo repositories.EmployeeRepository, loc *time.Location, now func() time.Time) AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &attendanceService{repo: repo, employeeRepo: employeeRepo, loc: loc, now: now}
}

// GetCalendar 返回员工在 [from, to] 内的考勤记录。
// from/to 为空时默认为组织时区下的当月。
func (s *attendanceService) GetCalendar(ctx context.Context, employeeID, from, to string) ([]models.AttendanceRecord, error) {
	if _, err := s.employeeRepo.GetEmployeeByEmployeeID(ctx, employeeID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	today := s.now().In(s.loc)
	start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	var err error
	if from != "" {
		if start, err = utils.ParseDate(from); err != nil {
			return nil, err
		}
	}
	if to != "" {
		if end, err = utils.ParseDate(to); err != nil {
			return nil, err
		}
	}
	if end.Before(start) || end.Sub(start) > maxCalendarDays*24*time.Hour {
		return nil, ErrInvalidDateRange
	}

	return s.repo.ListByEmployeeInRange(ctx, employeeID, start.Format(models.DateLayout), end.Format(models.DateLayout))
}

// GetDaily 返回某一天所有员工的考勤记录，date 为空时为今天 (组织时区)
func (s *attendanceService) GetDaily(ctx context.Context, date string) ([]models.AttendanceRecord, error) {
	day := s.now().In(s.loc).Format(models.DateLayout)
	if date != "" {
		parsed, err := utils.ParseDate(date)
		if err != nil {
			return nil, err
		}
		day = parsed.Format(models.DateLayout)
	}
	return s.repo.ListByDate(ctx, day)
}
