package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hr_management/internal/auth"
	"github.com/hr_management/internal/handlers"
	"github.com/hr_management/internal/models"
)

// SetupClockInRoutes 二维码展示与扫码打卡
func SetupClockInRoutes(apiV1 *gin.RouterGroup, h *handlers.ClockInHandler) {
	clockIn := apiV1.Group("/clock-in")
	clockIn.Use(auth.JWTMiddleware())
	{
		clockIn.GET("/code", h.GetCode)
		clockIn.GET("/code.png", h.GetCodePNG)
		clockIn.GET("/code/stream", h.StreamCode)

		clockIn.POST("/sessions", h.OpenSession)
		clockIn.POST("/sessions/:sessionId/scans", h.Scan)
		clockIn.DELETE("/sessions/:sessionId", h.CloseSession)
	}
}

// SetupEmployeeRoutes 员工与申请人管理，仅管理员
func SetupEmployeeRoutes(apiV1 *gin.RouterGroup, h *handlers.EmployeeHandler) {
	employees := apiV1.Group("/employees")
	employees.Use(auth.JWTMiddleware(), auth.RequireRole(models.RoleAdmin))
	{
		employees.POST("", h.CreateEmployee)
		employees.GET("", h.GetEmployees)
		employees.GET("/:employeeId", h.GetEmployeeByID)
		employees.POST("/:employeeId/approve", h.ApproveEmployee)
		employees.POST("/:employeeId/reject", h.RejectEmployee)
		employees.POST("/:employeeId/update", h.UpdateEmployee)
	}
}

// SetupAttendanceRoutes 考勤、薪资和公司设置
func SetupAttendanceRoutes(apiV1 *gin.RouterGroup, attendance *handlers.AttendanceHandler, salary *handlers.SalaryHandler) {
	protected := apiV1.Group("")
	protected.Use(auth.JWTMiddleware())
	{
		protected.GET("/attendance/employees/:employeeId", attendance.GetEmployeeAttendance)
		protected.GET("/salary/:employeeId", salary.GetSalaryOverview)
		protected.GET("/settings", salary.GetSettings)
	}

	admin := apiV1.Group("")
	admin.Use(auth.JWTMiddleware(), auth.RequireRole(models.RoleAdmin))
	{
		admin.GET("/attendance/daily", attendance.GetDailyAttendance)
		admin.PUT("/settings", salary.UpdateSettings)
	}
}

// SetupDashboardRoutes 管理员仪表盘
func SetupDashboardRoutes(apiV1 *gin.RouterGroup, h *handlers.DashboardHandler) {
	dashboard := apiV1.Group("/dashboard")
	dashboard.Use(auth.JWTMiddleware(), auth.RequireRole(models.RoleAdmin))
	{
		dashboard.GET("/summary", h.GetSummary)
	}
}
