package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/hr_management/internal/auth"
	"github.com/hr_management/internal/i18n"
	"github.com/hr_management/internal/models"
	"github.com/hr_management/internal/services"
	"github.com/hr_management/pkg/utils"
)

// AuthHandler 处理注册、登录和登出
type AuthHandler struct {
	service services.EmployeeService
}

// NewAuthHandler 创建一个新的 AuthHandler 实例
func NewAuthHandler(service services.EmployeeService) *AuthHandler {
	return &AuthHandler{service: service}
}

type RegisterRequest struct {
	EmployeeID string `json:"employeeId" binding:"required,max=100"`
	FullName   string `json:"fullName" binding:"required,max=255"`
	Email      string `json:"email" binding:"required,email,max=255"`
	Password   string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      EmployeeInfo `json:"user"`
}

type EmployeeInfo struct {
	EmployeeID string `json:"employeeId"`
	FullName   string `json:"fullName"`
	Role       string `json:"role"`
}

// Register godoc
// @Summary 申请人注册
// @Description 创建一个待审批 (Pending) 的员工账号，管理员审批后才能登录
// @Tags auth
// @Accept  json
// @Produce  json
// @Param applicant body RegisterRequest true "申请人信息"
// @Success 201 {object} utils.SuccessResponse{data=models.Employee} "注册成功，等待审批"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 409 {object} utils.APIErrorResponse "工号或邮箱已存在"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	created, err := h.service.Register(c.Request.Context(), &models.Employee{
		EmployeeID: req.EmployeeID,
		FullName:   req.FullName,
		Email:      req.Email,
	}, req.Password)
	if err != nil {
		respondServiceError(c, err, "Failed to register applicant")
		return
	}

	log.Info().Str("employee_id", created.EmployeeID).Msg("新申请人注册")
	utils.RespondSuccess(c, http.StatusCreated, created, i18n.FromContext(c).T(i18n.MsgAccountPending))
}

// Login godoc
// @Summary 员工登录
// @Description 验证邮箱和密码并返回 JWT，只有已审批的账号可以登录
// @Tags auth
// @Accept  json
// @Produce  json
// @Param credentials body LoginRequest true "登录凭证"
// @Success 200 {object} utils.SuccessResponse{data=LoginResponse} "登录成功，返回 Token 和用户信息"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "无效的邮箱或密码"
// @Failure 403 {object} utils.APIErrorResponse "账号待审批或已被拒绝"
// @Failure 500 {object} utils.APIErrorResponse "无法生成Token"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	l := i18n.FromContext(c)
	employee, err := h.service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.RespondUnauthorizedError(c, l.T(i18n.MsgInvalidCredentials))
		case errors.Is(err, services.ErrAccountPending):
			utils.RespondForbiddenError(c, l.T(i18n.MsgAccountPending))
		case errors.Is(err, services.ErrAccountRejected):
			utils.RespondForbiddenError(c, err.Error())
		default:
			utils.RespondInternalServerError(c, "Login failed", err.Error())
		}
		return
	}

	tokenString, expiresAt, err := auth.GenerateToken(employee.EmployeeID, employee.Role, time.Now())
	if err != nil {
		utils.RespondInternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	utils.RespondSuccess(c, http.StatusOK, LoginResponse{
		Token:     tokenString,
		ExpiresAt: expiresAt,
		User: EmployeeInfo{
			EmployeeID: employee.EmployeeID,
			FullName:   employee.FullName,
			Role:       employee.Role,
		},
	}, "Login successful")
}

// Logout godoc
// @Summary 登出
// @Description 使当前 Token 失效
// @Tags auth
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} utils.SuccessResponse "成功登出"
// @Failure 400 {object} utils.APIErrorResponse "上下文中缺少JTI或EXP"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString(auth.ContextJTI)
	expVal, expExists := c.Get(auth.ContextExp)
	exp, okEXP := expVal.(time.Time)

	if jti == "" {
		utils.RespondAPIError(c, http.StatusBadRequest, "Logout context error: Invalid JTI", nil)
		return
	}
	if !expExists || !okEXP {
		utils.RespondAPIError(c, http.StatusBadRequest, "Logout context error: Invalid EXP", nil)
		return
	}

	auth.AddToDenylist(jti, exp)
	utils.RespondSuccess(c, http.StatusOK, nil, "Logged out")
}
