package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hr_management/internal/auth"
	"github.com/hr_management/internal/clockin"
	"github.com/hr_management/internal/i18n"
	"github.com/hr_management/internal/repositories"
	"github.com/hr_management/internal/services"
	"github.com/hr_management/pkg/utils"
)

// PaginationInfo 定义了通用的分页信息结构
type PaginationInfo struct {
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
}

// NewPaginationInfo 根据总数和分页参数计算分页信息
func NewPaginationInfo(totalItems int64, page, limit int) PaginationInfo {
	totalPages := int64(0)
	if totalItems > 0 && limit > 0 {
		totalPages = (totalItems + int64(limit) - 1) / int64(limit)
	}
	return PaginationInfo{
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    limit,
	}
}

// authorizeEmployee 员工只能访问自己的数据，管理员可以访问任何人的数据
func authorizeEmployee(c *gin.Context, employeeID string) bool {
	if auth.IsAdmin(c) || auth.CurrentEmployeeID(c) == employeeID {
		return true
	}
	utils.RespondForbiddenError(c, "You can only access your own records")
	return false
}

// respondServiceError 把服务层和仓库层的错误映射为 HTTP 响应
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrEmployeeNotFound):
		utils.RespondNotFoundError(c, "Employee")
	case errors.Is(err, repositories.ErrEmployeeIDExists),
		errors.Is(err, repositories.ErrEmployeeEmailExists),
		errors.Is(err, services.ErrNotPending):
		utils.RespondConflictError(c, err.Error())
	case errors.Is(err, utils.ErrInvalidDateFormat),
		errors.Is(err, utils.ErrInvalidMonthFormat),
		errors.Is(err, utils.ErrInvalidEmailFormat),
		errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrNoUpdateFields),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, clockin.ErrInvalidEmployeeID):
		utils.RespondValidationError(c, err.Error())
	default:
		_ = c.Error(err)
		utils.RespondInternalServerError(c, fallback, err.Error())
	}
}

// respondClockInError 把打卡结果映射为状态码，消息按请求语言渲染，kind 便于客户端区分
func respondClockInError(c *gin.Context, err error) {
	l := i18n.FromContext(c)
	kind := clockin.KindOf(err)
	details := gin.H{"kind": kind}

	var status int
	var msg string
	switch {
	case errors.Is(err, clockin.ErrSessionNotFound):
		status, msg = http.StatusNotFound, l.T(i18n.MsgSessionNotFound)
		details["kind"] = "SessionNotFound"
	case errors.Is(err, clockin.ErrSessionForbidden):
		utils.RespondForbiddenError(c, err.Error())
		return
	case kind == clockin.KindMalformedToken:
		status, msg = http.StatusBadRequest, l.T(i18n.MsgMalformedToken)
	case kind == clockin.KindIdentityMismatch:
		status, msg = http.StatusForbidden, l.T(i18n.MsgIdentityMismatch)
	case kind == clockin.KindTokenExpired:
		status, msg = http.StatusGone, l.T(i18n.MsgTokenExpired)
	case kind == clockin.KindAlreadyClockedIn:
		status, msg = http.StatusConflict, l.T(i18n.MsgAlreadyClockedIn)
	case kind == clockin.KindPersistenceError:
		_ = c.Error(err)
		status, msg = http.StatusServiceUnavailable, l.T(i18n.MsgPersistenceError)
	case kind == clockin.KindScanInProgress:
		status, msg = http.StatusConflict, l.T(i18n.MsgScanInProgress)
	case kind == clockin.KindCoolingDown:
		var cd *clockin.CoolingDownError
		remaining := clockin.DefaultCooldown
		if errors.As(err, &cd) {
			remaining = cd.Remaining
		}
		seconds := int(remaining.Seconds() + 0.999)
		c.Header("Retry-After", strconv.Itoa(seconds))
		details["retryAfterMs"] = remaining.Milliseconds()
		status, msg = http.StatusTooManyRequests, l.T(i18n.MsgCoolingDown, remaining.Round(100*time.Millisecond).String())
	case kind == clockin.KindSessionCompleted:
		status, msg = http.StatusConflict, l.T(i18n.MsgSessionCompleted)
	case kind == clockin.KindSessionClosed:
		status, msg = http.StatusGone, l.T(i18n.MsgSessionClosed)
	default:
		_ = c.Error(err)
		status, msg = http.StatusInternalServerError, err.Error()
	}
	utils.RespondAPIError(c, status, msg, details)
}
