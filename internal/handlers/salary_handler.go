package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hr_management/internal/models"
	"github.com/hr_management/internal/services"
	"github.com/hr_management/pkg/utils"
)

// SalaryHandler 薪资概览与公司设置
type SalaryHandler struct {
	service services.SalaryService
}

func NewSalaryHandler(service services.SalaryService) *SalaryHandler {
	return &SalaryHandler{service: service}
}

// GetSalaryOverview godoc
// @Summary 员工月度薪资概览
// @Description 统计截至今天的工作日出勤、缺勤以及按扣薪比例计算的扣款
// @Tags Salary
// @Produce json
// @Param employeeId path string true "员工业务工号"
// @Param month query string false "月份 YYYY-MM，默认本月"
// @Success 200 {object} utils.SuccessResponse{data=models.SalaryOverview}
// @Failure 400 {object} utils.APIErrorResponse "月份格式无效"
// @Failure 403 {object} utils.APIErrorResponse "无权查看"
// @Failure 404 {object} utils.APIErrorResponse "员工未找到"
// @Router /salary/{employeeId} [get]
// @Security BearerAuth
func (h *SalaryHandler) GetSalaryOverview(c *gin.Context) {
	employeeID := c.Param("employeeId")
	if !authorizeEmployee(c, employeeID) {
		return
	}

	overview, err := h.service.GetOverview(c.Request.Context(), employeeID, c.Query("month"))
	if err != nil {
		respondServiceError(c, err, "Failed to compute salary overview")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, overview, "")
}

// GetSettings godoc
// @Summary 获取公司设置
// @Tags Settings
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=models.Setting}
// @Router /settings [get]
// @Security BearerAuth
func (h *SalaryHandler) GetSettings(c *gin.Context) {
	setting, err := h.service.GetSettings(c.Request.Context())
	if err != nil {
		utils.RespondInternalServerError(c, "Failed to load settings", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, setting, "")
}

// UpdateSettings godoc
// @Summary 更新公司设置
// @Tags Settings
// @Accept json
// @Produce json
// @Param settings body models.UpdateSettingsPayload true "要更新的设置"
// @Success 200 {object} utils.SuccessResponse{data=models.Setting}
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Router /settings [put]
// @Security BearerAuth
func (h *SalaryHandler) UpdateSettings(c *gin.Context) {
	var payload models.UpdateSettingsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	setting, err := h.service.UpdateSettings(c.Request.Context(), payload)
	if err != nil {
		respondServiceError(c, err, "Failed to update settings")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, setting, "Settings updated")
}
