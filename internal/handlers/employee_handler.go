package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hr_management/internal/i18n"
	"github.com/hr_management/internal/models"
	"github.com/hr_management/internal/services"
	"github.com/hr_management/pkg/utils"
)

// EmployeeHandler 封装了员工相关的 HTTP 处理逻辑
type EmployeeHandler struct {
	service services.EmployeeService
}

// NewEmployeeHandler 创建一个新的 EmployeeHandler 实例
func NewEmployeeHandler(service services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// PagedEmployeesData 定义了员工列表的分页响应结构
type PagedEmployeesData struct {
	Items      []models.Employee `json:"items"`
	Pagination PaginationInfo    `json:"pagination"`
}

// CreateEmployee godoc
// @Summary 新增一个已审批的员工
// @Description 管理员直接创建员工账号 (无需申请审批)，入职日期默认为当天。员工工号和邮箱需唯一。
// @Tags Employees
// @Accept json
// @Produce json
// @Param employee body models.CreateEmployeePayload true "员工信息"
// @Success 201 {object} utils.SuccessResponse{data=models.Employee} "创建成功的员工对象"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误或数据校验失败"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 403 {object} utils.APIErrorResponse "需要管理员权限"
// @Failure 409 {object} utils.APIErrorResponse "员工工号或邮箱已存在"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /employees [post]
// @Security BearerAuth
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var payload models.CreateEmployeePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), payload)
	if err != nil {
		respondServiceError(c, err, "Failed to create employee")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, created, i18n.FromContext(c).T(i18n.MsgEmployeeCreated, created.FullName))
}

// GetEmployees godoc
// @Summary 获取员工列表
// @Description 根据查询参数获取员工 (含申请人) 列表，支持分页、搜索和按审批状态筛选
// @Tags Employees
// @Accept json
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Param sortBy query string false "排序字段 (employeeId, fullName, rank, baseSalary, startDate, createdAt)"
// @Param sortOrder query string false "排序顺序 ('asc'或'desc')" default(desc)
// @Param search query string false "搜索关键词 (匹配姓名、工号、邮箱)"
// @Param accountStatus query string false "审批状态筛选 ('Pending', 'Approved', 'Rejected')"
// @Success 200 {object} utils.SuccessResponse{data=PagedEmployeesData} "成功响应，包含员工列表和分页信息"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 403 {object} utils.APIErrorResponse "需要管理员权限"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /employees [get]
// @Security BearerAuth
func (h *EmployeeHandler) GetEmployees(c *gin.Context) {
	type GetEmployeesQuery struct {
		Page          int    `form:"page,default=1"`
		Limit         int    `form:"limit,default=10"`
		SortBy        string `form:"sortBy"`
		SortOrder     string `form:"sortOrder,default=desc" binding:"omitempty,oneof=asc desc"`
		Search        string `form:"search"`
		AccountStatus string `form:"accountStatus" binding:"omitempty,oneof=Pending Approved Rejected"` // 校验可选值
	}

	var queryParams GetEmployeesQuery
	if err := c.ShouldBindQuery(&queryParams); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}
	if queryParams.Limit <= 0 || queryParams.Limit > 100 {
		queryParams.Limit = 10
	}
	if queryParams.Page <= 0 {
		queryParams.Page = 1
	}

	employees, totalItems, err := h.service.GetEmployees(
		c.Request.Context(),
		queryParams.Page,
		queryParams.Limit,
		queryParams.SortBy,
		queryParams.SortOrder,
		queryParams.Search,
		queryParams.AccountStatus,
	)
	if err != nil {
		utils.RespondInternalServerError(c, "Failed to list employees", err.Error())
		return
	}

	utils.RespondSuccess(c, http.StatusOK, PagedEmployeesData{
		Items:      employees,
		Pagination: NewPaginationInfo(totalItems, queryParams.Page, queryParams.Limit),
	}, "")
}

// GetEmployeeByID godoc
// @Summary 获取指定业务工号的员工详情
// @Tags Employees
// @Produce json
// @Param employeeId path string true "员工业务工号"
// @Success 200 {object} utils.SuccessResponse{data=models.Employee} "成功响应，包含员工详情"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "员工未找到"
// @Router /employees/{employeeId} [get]
// @Security BearerAuth
func (h *EmployeeHandler) GetEmployeeByID(c *gin.Context) {
	employee, err := h.service.GetEmployeeByEmployeeID(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		respondServiceError(c, err, "Failed to load employee")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, employee, "")
}

// ApproveEmployee godoc
// @Summary 审批申请人
// @Description 设置职位、基本工资、角色和工作日，并将账号状态改为 Approved；配置了 SMTP 时发送通知邮件
// @Tags Employees
// @Accept json
// @Produce json
// @Param employeeId path string true "员工业务工号"
// @Param approval body models.ApproveEmployeePayload true "审批信息"
// @Success 200 {object} utils.SuccessResponse{data=models.Employee}
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 404 {object} utils.APIErrorResponse "员工未找到"
// @Failure 409 {object} utils.APIErrorResponse "不是待审批的申请人"
// @Router /employees/{employeeId}/approve [post]
// @Security BearerAuth
func (h *EmployeeHandler) ApproveEmployee(c *gin.Context) {
	var payload models.ApproveEmployeePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	employee, err := h.service.Approve(c.Request.Context(), c.Param("employeeId"), payload)
	if err != nil {
		respondServiceError(c, err, "Failed to approve applicant")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, employee, i18n.FromContext(c).T(i18n.MsgApplicantApproved, employee.FullName))
}

// RejectEmployee godoc
// @Summary 拒绝申请人
// @Tags Employees
// @Produce json
// @Param employeeId path string true "员工业务工号"
// @Success 200 {object} utils.SuccessResponse{data=models.Employee}
// @Failure 404 {object} utils.APIErrorResponse "员工未找到"
// @Failure 409 {object} utils.APIErrorResponse "不是待审批的申请人"
// @Router /employees/{employeeId}/reject [post]
// @Security BearerAuth
func (h *EmployeeHandler) RejectEmployee(c *gin.Context) {
	employee, err := h.service.Reject(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		respondServiceError(c, err, "Failed to reject applicant")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, employee, i18n.FromContext(c).T(i18n.MsgApplicantRejected, employee.FullName))
}

// UpdateEmployee godoc
// @Summary 更新指定业务工号的员工信息
// @Description 更新姓名、职位、基本工资、角色或工作日，只更新提供的字段
// @Tags Employees
// @Accept json
// @Produce json
// @Param employeeId path string true "员工业务工号"
// @Param employeeUpdate body models.UpdateEmployeePayload true "要更新的员工字段"
// @Success 200 {object} utils.SuccessResponse{data=models.Employee} "更新后的员工对象"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误或数据校验失败"
// @Failure 404 {object} utils.APIErrorResponse "员工未找到"
// @Router /employees/{employeeId}/update [post]
// @Security BearerAuth
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	var payload models.UpdateEmployeePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updated, err := h.service.UpdateEmployee(c.Request.Context(), c.Param("employeeId"), payload)
	if err != nil {
		respondServiceError(c, err, "Failed to update employee")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, updated, "Employee updated")
}
