package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hr_management/internal/services"
	"github.com/hr_management/pkg/utils"
)

// DashboardHandler 管理员仪表盘
type DashboardHandler struct {
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetSummary godoc
// @Summary 仪表盘汇总
// @Description 已审批员工人数、今日打卡人数、出勤率、缺勤天数与薪资成本
// @Tags Dashboard
// @Produce json
// @Param month query string false "月份 YYYY-MM，默认本月"
// @Success 200 {object} utils.SuccessResponse{data=models.DashboardSummary}
// @Failure 400 {object} utils.APIErrorResponse "月份格式无效"
// @Failure 403 {object} utils.APIErrorResponse "需要管理员权限"
// @Router /dashboard/summary [get]
// @Security BearerAuth
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.service.GetSummary(c.Request.Context(), c.Query("month"))
	if err != nil {
		respondServiceError(c, err, "Failed to build dashboard summary")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, summary, "")
}
