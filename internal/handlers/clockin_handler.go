package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/hr_management/internal/auth"
	"github.com/hr_management/internal/clockin"
	"github.com/hr_management/internal/i18n"
	"github.com/hr_management/internal/models"
	"github.com/hr_management/internal/services"
	"github.com/hr_management/pkg/utils"
)

// ClockInHandler 负责二维码展示和扫码打卡
type ClockInHandler struct {
	generator *clockin.Generator
	presenter *clockin.Presenter
	sessions  *clockin.SessionRegistry
	employees services.EmployeeService
	loc       *time.Location
}

// NewClockInHandler 创建打卡处理器；loc 用于渲染打卡时间
func NewClockInHandler(generator *clockin.Generator, presenter *clockin.Presenter, sessions *clockin.SessionRegistry, employees services.EmployeeService, loc *time.Location) *ClockInHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ClockInHandler{
		generator: generator,
		presenter: presenter,
		sessions:  sessions,
		employees: employees,
		loc:       loc,
	}
}

// ScanRequest 扫码得到的原始字符串
type ScanRequest struct {
	Scanned string `json:"scanned"`
}

// ScanResult 打卡成功的响应
type ScanResult struct {
	Record  *models.AttendanceRecord `json:"record"`
	Session clockin.Snapshot         `json:"session"`
}

// SessionInfo 打开扫码会话的响应
type SessionInfo struct {
	*clockin.Session
	State    string `json:"state"`
	Cooldown int64  `json:"cooldownMs"`
}

// targetEmployee 解析要生成二维码的员工：默认自己，管理员可以通过 employeeId 指定他人
func (h *ClockInHandler) targetEmployee(c *gin.Context) (string, bool) {
	self := auth.CurrentEmployeeID(c)
	target := c.Query("employeeId")
	if target == "" || target == self {
		return self, true
	}
	if !auth.IsAdmin(c) {
		utils.RespondForbiddenError(c, "You can only display your own clock-in code")
		return "", false
	}
	if _, err := h.employees.GetEmployeeByEmployeeID(c.Request.Context(), target); err != nil {
		respondServiceError(c, err, "Failed to load employee")
		return "", false
	}
	return target, true
}

// GetCode godoc
// @Summary 获取当前时间片的打卡二维码内容
// @Description 返回令牌字符串及其有效时间窗口 (90 分钟一个时间片)
// @Tags ClockIn
// @Produce json
// @Param employeeId query string false "员工工号 (仅管理员可指定他人)"
// @Success 200 {object} utils.SuccessResponse{data=clockin.Code}
// @Failure 401 {object} utils.APIErrorResponse
// @Failure 403 {object} utils.APIErrorResponse
// @Router /clock-in/code [get]
// @Security BearerAuth
func (h *ClockInHandler) GetCode(c *gin.Context) {
	employeeID, ok := h.targetEmployee(c)
	if !ok {
		return
	}
	code, err := h.generator.Generate(employeeID)
	if err != nil {
		respondServiceError(c, err, "Failed to generate clock-in code")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, code, "")
}

// GetCodePNG godoc
// @Summary 获取打卡二维码图片
// @Tags ClockIn
// @Produce png
// @Param employeeId query string false "员工工号 (仅管理员可指定他人)"
// @Param size query int false "图片边长 (像素)" default(256)
// @Success 200 {file} binary
// @Failure 401 {object} utils.APIErrorResponse
// @Router /clock-in/code.png [get]
// @Security BearerAuth
func (h *ClockInHandler) GetCodePNG(c *gin.Context) {
	employeeID, ok := h.targetEmployee(c)
	if !ok {
		return
	}
	size := clockin.DefaultQRSize
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 64 || n > 1024 {
			utils.RespondValidationError(c, "size must be between 64 and 1024")
			return
		}
		size = n
	}

	code, err := h.generator.Generate(employeeID)
	if err != nil {
		respondServiceError(c, err, "Failed to generate clock-in code")
		return
	}
	png, err := clockin.RenderPNG(code, size)
	if err != nil {
		utils.RespondInternalServerError(c, "Failed to render QR code", err.Error())
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Header("Expires", code.ValidUntil.UTC().Format(http.TimeFormat))
	c.Data(http.StatusOK, "image/png", png)
}

// StreamCode godoc
// @Summary 打卡二维码刷新流 (Server-Sent Events)
// @Description 立即推送一个 code 事件，之后在每个时间片边界推送新的令牌
// @Tags ClockIn
// @Produce text/event-stream
// @Success 200 {object} clockin.Code
// @Router /clock-in/code/stream [get]
// @Security BearerAuth
func (h *ClockInHandler) StreamCode(c *gin.Context) {
	employeeID, ok := h.targetEmployee(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	err := h.presenter.Run(c.Request.Context(), employeeID, func(code clockin.Code) error {
		c.SSEvent("code", code)
		c.Writer.Flush()
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		log.Error().Err(err).Str("employee_id", employeeID).Msg("二维码刷新流异常结束")
	}
}

// OpenSession godoc
// @Summary 打开扫码会话
// @Description 每个扫码界面对应一个会话，会话内一次只处理一个扫码结果
// @Tags ClockIn
// @Produce json
// @Success 201 {object} utils.SuccessResponse{data=SessionInfo}
// @Router /clock-in/sessions [post]
// @Security BearerAuth
func (h *ClockInHandler) OpenSession(c *gin.Context) {
	session := h.sessions.Open(auth.CurrentEmployeeID(c))
	utils.RespondSuccess(c, http.StatusCreated, SessionInfo{
		Session:  session,
		State:    session.Scanner.Snapshot().Name,
		Cooldown: h.sessions.Cooldown().Milliseconds(),
	}, "")
}

// Scan godoc
// @Summary 提交扫码结果
// @Description 校验令牌 (格式、身份、时间片) 并记录当天的出勤
// @Tags ClockIn
// @Accept json
// @Produce json
// @Param sessionId path string true "扫码会话ID"
// @Param scan body ScanRequest true "扫码得到的字符串"
// @Success 201 {object} utils.SuccessResponse{data=ScanResult} "打卡成功"
// @Failure 400 {object} utils.APIErrorResponse "MalformedToken"
// @Failure 403 {object} utils.APIErrorResponse "IdentityMismatch"
// @Failure 404 {object} utils.APIErrorResponse "会话不存在"
// @Failure 409 {object} utils.APIErrorResponse "AlreadyClockedIn / ScanInProgress / SessionCompleted"
// @Failure 410 {object} utils.APIErrorResponse "TokenExpired / SessionClosed"
// @Failure 429 {object} utils.APIErrorResponse "CoolingDown"
// @Failure 503 {object} utils.APIErrorResponse "PersistenceError"
// @Router /clock-in/sessions/{sessionId}/scans [post]
// @Security BearerAuth
func (h *ClockInHandler) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	session, err := h.sessions.Get(c.Param("sessionId"), auth.CurrentEmployeeID(c))
	if err != nil {
		respondClockInError(c, err)
		return
	}

	record, err := session.Scanner.Scan(c.Request.Context(), req.Scanned)
	if err != nil {
		log.Info().Err(err).Str("employee_id", session.EmployeeID).Str("kind", string(clockin.KindOf(err))).Msg("打卡被拒绝")
		respondClockInError(c, err)
		return
	}

	checkIn := ""
	if record.CheckInTime != nil {
		checkIn = record.CheckInTime.In(h.loc).Format("15:04")
	}
	utils.RespondSuccess(c, http.StatusCreated, ScanResult{
		Record:  record,
		Session: session.Scanner.Snapshot(),
	}, i18n.FromContext(c).T(i18n.MsgClockInSuccess, checkIn))
}

// CloseSession godoc
// @Summary 关闭扫码会话
// @Description 关闭扫码界面；已经提交的打卡不会回滚
// @Tags ClockIn
// @Produce json
// @Param sessionId path string true "扫码会话ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.APIErrorResponse
// @Router /clock-in/sessions/{sessionId} [delete]
// @Security BearerAuth
func (h *ClockInHandler) CloseSession(c *gin.Context) {
	if err := h.sessions.Close(c.Param("sessionId"), auth.CurrentEmployeeID(c)); err != nil {
		respondClockInError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, i18n.FromContext(c).T(i18n.MsgSessionClosed))
}
