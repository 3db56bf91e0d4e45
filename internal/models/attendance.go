package models

import (
	"time"
)

// AttendanceStatus 考勤状态
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "Present"
	AttendanceStatusAbsent  AttendanceStatus = "Absent"
	AttendanceStatusLate    AttendanceStatus = "Late"
	AttendanceStatusOnLeave AttendanceStatus = "On Leave"
)

// Attended 该状态是否算作出勤 (请假视为已安排，不扣薪)
func (s AttendanceStatus) Attended() bool {
	return s == AttendanceStatusPresent || s == AttendanceStatusLate || s == AttendanceStatusOnLeave
}

// DateLayout 考勤日期格式 YYYY-MM-DD
const DateLayout = "2006-01-02"

// AttendanceRecord 对应 attendance_records 表。
// (employee_id, date) 唯一，同一员工同一天只能有一条打卡记录。
type AttendanceRecord struct {
	ID           int64            `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID   string           `json:"employeeId" gorm:"column:employee_id;not null;size:100;uniqueIndex:idx_attendance_employee_date,priority:1"`
	Date         string           `json:"date" gorm:"column:date;not null;size:10;uniqueIndex:idx_attendance_employee_date,priority:2;index"`
	CheckInTime  *time.Time       `json:"checkInTime,omitempty" gorm:"column:check_in_time"`
	CheckOutTime *time.Time       `json:"checkOutTime,omitempty" gorm:"column:check_out_time"`
	Status       AttendanceStatus `json:"status" gorm:"column:status;not null;size:20;default:'Present'"`
	CreatedAt    time.Time        `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt    time.Time        `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName 指定表名
func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
