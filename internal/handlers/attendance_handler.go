package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hr_management/internal/services"
	"github.com/hr_management/pkg/utils"
)

// AttendanceHandler 考勤记录查询
type AttendanceHandler struct {
	service services.AttendanceService
}

func NewAttendanceHandler(service services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// GetEmployeeAttendance godoc
// @Summary 员工考勤日历
// @Description 返回员工在日期区间内的考勤记录，默认为当月。员工只能查看自己的记录
// @Tags Attendance
// @Produce json
// @Param employeeId path string true "员工业务工号"
// @Param from query string false "开始日期 YYYY-MM-DD"
// @Param to query string false "结束日期 YYYY-MM-DD"
// @Success 200 {object} utils.SuccessResponse{data=[]models.AttendanceRecord}
// @Failure 400 {object} utils.APIErrorResponse "日期格式或区间无效"
// @Failure 403 {object} utils.APIErrorResponse "无权查看"
// @Failure 404 {object} utils.APIErrorResponse "员工未找到"
// @Router /attendance/employees/{employeeId} [get]
// @Security BearerAuth
func (h *AttendanceHandler) GetEmployeeAttendance(c *gin.Context) {
	employeeID := c.Param("employeeId")
	if !authorizeEmployee(c, employeeID) {
		return
	}

	records, err := h.service.GetCalendar(c.Request.Context(), employeeID, c.Query("from"), c.Query("to"))
	if err != nil {
		respondServiceError(c, err, "Failed to load attendance")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, records, "")
}

// GetDailyAttendance godoc
// @Summary 某日全员考勤
// @Tags Attendance
// @Produce json
// @Param date query string false "日期 YYYY-MM-DD，默认今天"
// @Success 200 {object} utils.SuccessResponse{data=[]models.AttendanceRecord}
// @Failure 400 {object} utils.APIErrorResponse "日期格式无效"
// @Router /attendance/daily [get]
// @Security BearerAuth
func (h *AttendanceHandler) GetDailyAttendance(c *gin.Context) {
	records, err := h.service.GetDaily(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondServiceError(c, err, "Failed to load attendance")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, records, "")
}
