package repositories

import (
	"context"
	"errors"

	"github.com/hr_management/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAttendanceExists 同一员工同一天已经有考勤记录
var ErrAttendanceExists = errors.New("attendance record already exists for employee and date")

// AttendanceRepository 考勤记录仓库
type AttendanceRepository interface {
	// FindByEmployeeAndDate 查找某员工某天的记录，不存在时返回 ErrRecordNotFound
	FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*models.AttendanceRecord, error)
	// Create 插入一条记录。(employee_id, date) 已存在时返回 ErrAttendanceExists，不会产生第二条记录。
	Create(ctx context.Context, record *models.AttendanceRecord) error
	// ListByEmployeeInRange 查询 [from, to] 日期区间内的记录 (日历视图)
	ListByEmployeeInRange(ctx context.Context, employeeID, from, to string) ([]models.AttendanceRecord, error)
	// ListByDate 查询某天所有员工的记录
	ListByDate(ctx context.Context, date string) ([]models.AttendanceRecord, error)
}

type gormAttendanceRepository struct {
	db *gorm.DB
}

// NewGormAttendanceRepository 创建一个新的 GORM 考勤仓库实例
func NewGormAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &gormAttendanceRepository{db: db}
}

func (r *gormAttendanceRepository) FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := r.db.WithContext(ctx).Where("employee_id = ? AND date = ?", employeeID, date).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Create 使用 INSERT ... ON CONFLICT DO NOTHING，依赖 (employee_id, date) 唯一索引，
// 两台设备同时打卡时只有一条能写入。
func (r *gormAttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(record)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrAttendanceExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAttendanceExists
	}
	return nil
}

func (r *gormAttendanceRepository) ListByEmployeeInRange(ctx context.Context, employeeID, from, to string) ([]models.AttendanceRecord, error) {
	records := []models.AttendanceRecord{}
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date >= ? AND date <= ?", employeeID, from, to).
		Order("date asc").
		Find(&records).Error
	return records, err
}

func (r *gormAttendanceRepository) ListByDate(ctx context.Context, date string) ([]models.AttendanceRecord, error) {
	records := []models.AttendanceRecord{}
	err := r.db.WithContext(ctx).Where("date = ?", date).Order("check_in_time asc").Find(&records).Error
	return records, err
}
