package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"skillpath_backend/internal/service"
	"skillpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
	EventService     *service.EventService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService, eventService *service.EventService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService, EventService: eventService}
}

// @Summary 管理员分析概览
// @Description 员工总数、已完成测评数、学习状态分布、技能差距前五
// @Tags 分析
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.AnalyticsSummary}
// @Router /api/admin/analytics [get]
func (c *AnalyticsController) Summary(ctx *gin.Context) {
	summary, err := c.AnalyticsService.Summary(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// @Summary 导出分析概览
// @Description 导出为 xlsx，包含 Summary 与 Skill Gaps 两个工作表
// @Tags 分析
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Router /api/admin/analytics/export [get]
func (c *AnalyticsController) Export(ctx *gin.Context) {
	summary, err := c.AnalyticsService.Summary(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	now := time.Now()
	data, err := service.ExportSummaryXLSX(summary, now)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := fmt.Sprintf("skillpath-analytics-%s.xlsx", now.Format("20060102"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, xlsxContentType, data)
}

// @Summary 员工学习事件
// @Tags 分析
// @Produce json
// @Security BearerAuth
// @Param employeeId path int true "员工ID"
// @Param limit query int false "条数" default(50)
// @Success 200 {object} util.Response{data=[]model.LearningEvent}
// @Router /api/admin/employees/{employeeId}/events [get]
func (c *AnalyticsController) Events(ctx *gin.Context) {
	employeeID, ok := util.ParseIDParam(ctx, "employeeId")
	if !ok {
		util.BadRequest(ctx, "invalid employee id")
		return
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	events, err := c.EventService.List(ctx.Request.Context(), employeeID, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, events)
}
