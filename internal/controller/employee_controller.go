package controller

import (
	"skillpath_backend/internal/service"
	"skillpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EmployeeController struct {
	EmployeeService *service.EmployeeService
}

func NewEmployeeController(employeeService *service.EmployeeService) *EmployeeController {
	return &EmployeeController{EmployeeService: employeeService}
}

// @Summary 员工公开列表
// @Description 登录/注册页使用，只返回 id、姓名、岗位
// @Tags 员工
// @Produce json
// @Success 200 {object} util.Response{data=[]repository.PublicEmployee}
// @Router /api/employees/public [get]
func (c *EmployeeController) ListPublic(ctx *gin.Context) {
	list, err := c.EmployeeService.ListPublic(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// @Summary 员工列表
// @Tags 员工
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.EmployeeView}
// @Router /api/employees [get]
func (c *EmployeeController) List(ctx *gin.Context) {
	list, err := c.EmployeeService.List(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// @Summary 创建员工
// @Tags 员工
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateEmployeeInput true "员工信息"
// @Success 201 {object} util.Response{data=service.EmployeeView}
// @Failure 400 {object} util.Response
// @Router /api/employees [post]
func (c *EmployeeController) Create(ctx *gin.Context) {
	var req service.CreateEmployeeInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	e, err := c.EmployeeService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, service.NewEmployeeView(e))
}

// @Summary 员工详情
// @Tags 员工
// @Produce json
// @Security BearerAuth
// @Param employeeId path int true "员工ID"
// @Success 200 {object} util.Response{data=service.EmployeeView}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/employees/{employeeId} [get]
func (c *EmployeeController) Get(ctx *gin.Context) {
	id, _ := util.ParseIDParam(ctx, "employeeId")
	e, err := c.EmployeeService.Get(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, service.NewEmployeeView(e))
}

// @Summary 更新员工
// @Description 只更新请求中出现的字段
// @Tags 员工
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param employeeId path int true "员工ID"
// @Param body body service.UpdateEmployeeInput true "待更新字段"
// @Success 200 {object} util.Response{data=service.EmployeeView}
// @Failure 400 {object} util.Response
// @Router /api/employees/{employeeId} [put]
func (c *EmployeeController) Update(ctx *gin.Context) {
	id, _ := util.ParseIDParam(ctx, "employeeId")
	var req service.UpdateEmployeeInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	e, err := c.EmployeeService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Employee updated", service.NewEmployeeView(e))
}
