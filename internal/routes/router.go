package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/hr_management/configs"
	_ "github.com/hr_management/docs" // swagger 文档
	"github.com/hr_management/internal/clockin"
	"github.com/hr_management/internal/handlers"
	"github.com/hr_management/internal/i18n"
	"github.com/hr_management/internal/repositories"
	"github.com/hr_management/internal/services"
)

// Dependencies 路由需要的外部依赖
type Dependencies struct {
	DB       *gorm.DB
	Config   configs.Configuration
	Notifier services.ApprovalNotifier // 可以为 nil
	Now      func() time.Time          // 为 nil 时使用 time.Now
}

// SetupRoutes 初始化所有路由
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	loc := deps.Config.Location()

	employeeRepo := repositories.NewGormEmployeeRepository(deps.DB)
	attendanceRepo := repositories.NewGormAttendanceRepository(deps.DB)
	settingRepo := repositories.NewGormSettingRepository(deps.DB)

	employeeService := services.NewEmployeeService(employeeRepo, deps.Notifier, loc, now)
	attendanceService := services.NewAttendanceService(attendanceRepo, employeeRepo, loc, now)
	salaryService := services.NewSalaryService(employeeRepo, attendanceRepo, settingRepo, loc, now)
	dashboardService := services.NewDashboardService(employeeRepo, attendanceRepo, salaryService, loc, now)

	generator := clockin.NewGenerator(now)
	verifier := clockin.NewVerifier(attendanceRepo, loc)
	sessions := clockin.NewSessionRegistry(verifier, deps.Config.ClockInCooldown, deps.Config.ScanSessionTTL, now)

	router.Use(corsMiddleware(deps.Config.CORSOrigins))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	api.Use(i18n.Middleware(deps.Config.DefaultLocale))
	apiV1 := api.Group("/v1")
	apiV1.GET("/health", handlers.HealthCheck(deps.DB))

	SetupAuthRoutes(apiV1, handlers.NewAuthHandler(employeeService))
	SetupClockInRoutes(apiV1, handlers.NewClockInHandler(
		generator,
		&clockin.Presenter{Generator: generator},
		sessions,
		employeeService,
		loc,
	))
	SetupEmployeeRoutes(apiV1, handlers.NewEmployeeHandler(employeeService))
	SetupAttendanceRoutes(apiV1, handlers.NewAttendanceHandler(attendanceService), handlers.NewSalaryHandler(salaryService))
	SetupDashboardRoutes(apiV1, handlers.NewDashboardHandler(dashboardService))
}

// corsMiddleware 允许前端 (二维码展示页、扫码页) 跨域调用 API
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Language", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
