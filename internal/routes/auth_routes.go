package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hr_management/internal/auth" // 导入JWT中间件包
	"github.com/hr_management/internal/handlers"
)

// SetupAuthRoutes 设置认证相关路由
func SetupAuthRoutes(apiV1 *gin.RouterGroup, h *handlers.AuthHandler) {
	// 公共认证路由组 (注册、登录)
	publicAuthGroup := apiV1.Group("/auth")
	{
		// POST /api/v1/auth/register
		publicAuthGroup.POST("/register", h.Register)
		// POST /api/v1/auth/login
		publicAuthGroup.POST("/login", h.Login)
	}

	// 受保护的认证路由组 (登出)
	protectedAuthGroup := apiV1.Group("/auth")
	protectedAuthGroup.Use(auth.JWTMiddleware())
	{
		// POST /api/v1/auth/logout
		protectedAuthGroup.POST("/logout", h.Logout)
	}
}
