package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应: { "status": "success", "message": "...", "data": ... }
type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// APIErrorResponse 错误响应: { "error": "描述信息", "details": ... }
// details 可以是字符串，也可以是结构化数据 (例如打卡结果的 kind)
type APIErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// RespondSuccess 发送成功响应；message 和 data 都为空时填充默认消息
func RespondSuccess(c *gin.Context, status int, data interface{}, message string) {
	if message == "" && data == nil {
		message = "Operation successful"
	}
	c.JSON(status, SuccessResponse{Status: "success", Message: message, Data: data})
}

// RespondAPIError 发送错误响应并中止后续处理
func RespondAPIError(c *gin.Context, status int, errorMessage string, details interface{}) {
	c.AbortWithStatusJSON(status, APIErrorResponse{Error: errorMessage, Details: details})
}

func firstOr(values []string, fallback string) string {
	if len(values) > 0 && values[0] != "" {
		return values[0]
	}
	return fallback
}

// optionalDetail 把可选的字符串详情转换为 details 字段，没有时省略
func optionalDetail(values []string) interface{} {
	if len(values) == 0 {
		return nil
	}
	return values[0]
}

// RespondValidationError 400，details 通常是绑定错误 err.Error()
func RespondValidationError(c *gin.Context, details interface{}) {
	RespondAPIError(c, http.StatusBadRequest, "Invalid request parameters", details)
}

// RespondUnauthorizedError 401
func RespondUnauthorizedError(c *gin.Context, message ...string) {
	RespondAPIError(c, http.StatusUnauthorized, firstOr(message, "Not authenticated or token invalid/expired"), nil)
}

// RespondForbiddenError 403
func RespondForbiddenError(c *gin.Context, message ...string) {
	RespondAPIError(c, http.StatusForbidden, firstOr(message, "Insufficient permissions"), nil)
}

// RespondNotFoundError 404
func RespondNotFoundError(c *gin.Context, resourceName string) {
	RespondAPIError(c, http.StatusNotFound, resourceName+" not found", nil)
}

// RespondConflictError 409 (例如资源已存在)
func RespondConflictError(c *gin.Context, message string, details ...string) {
	RespondAPIError(c, http.StatusConflict, message, optionalDetail(details))
}

// RespondInternalServerError 500
func RespondInternalServerError(c *gin.Context, message string, errDetails ...string) {
	RespondAPIError(c, http.StatusInternalServerError, message, optionalDetail(errDetails))
}
