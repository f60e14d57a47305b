package controller

import (
	"skillpath_backend/internal/service"
	"skillpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// LearnerController serves /api/learner/:employeeId. Access is checked by middleware.EmployeeAccess.
type LearnerController struct {
	DashboardService    *service.DashboardService
	LearningPathService *service.LearningPathService
	ProgressService     *service.ProgressService
}

func NewLearnerController(dashboard *service.DashboardService, paths *service.LearningPathService, progress *service.ProgressService) *LearnerController {
	return &LearnerController{
		DashboardService:    dashboard,
		LearningPathService: paths,
		ProgressService:     progress,
	}
}

func employeeIDParam(ctx *gin.Context) uint {
	id, _ := util.ParseIDParam(ctx, "employeeId")
	return id
}

// @Summary 学员看板
// @Description 员工档案、AI 能力画像、最新学习路径与当前流程步骤
// @Tags 学员
// @Produce json
// @Security BearerAuth
// @Param employeeId path int true "员工ID"
// @Success 200 {object} util.Response{data=service.DashboardView}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/learner/{employeeId}/dashboard [get]
func (c *LearnerController) Dashboard(ctx *gin.Context) {
	view, err := c.DashboardService.Get(ctx.Request.Context(), employeeIDParam(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary 生成学习路径
// @Description 根据最近一次完成的测评重新生成学习路径
// @Tags 学员
// @Produce json
// @Security BearerAuth
// @Param employeeId path int true "员工ID"
// @Success 200 {object} util.Response{data=service.GeneratedPath}
// @Failure 400 {object} util.Response "尚未完成测评"
// @Failure 409 {object} util.Response "生成进行中"
// @Router /api/learner/{employeeId}/learning-path/generate [post]
func (c *LearnerController) GenerateLearningPath(ctx *gin.Context) {
	path, err := c.LearningPathService.Generate(ctx.Request.Context(), employeeIDParam(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Learning path generated successfully", path)
}

// @Summary 学习路径
// @Tags 学员
// @Produce json
// @Security BearerAuth
// @Param employeeId path int true "员工ID"
// @Success 200 {object} util.Response{data=[]service.LearningItemView}
// @Router /api/learner/{employeeId}/learning-path [get]
func (c *LearnerController) LearningPath(ctx *gin.Context) {
	items, err := c.LearningPathService.Get(ctx.Request.Context(), employeeIDParam(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"learningItems": items})
}

// @Summary 流程状态
// @Tags 学员
// @Produce json
// @Security BearerAuth
// @Param employeeId path int true "员工ID"
// @Success 200 {object} util.Response{data=service.WorkflowStatus}
// @Router /api/learner/{employeeId}/workflow [get]
func (c *LearnerController) Workflow(ctx *gin.Context) {
	status, err := c.ProgressService.Workflow(ctx.Request.Context(), employeeIDParam(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

// @Summary 进度条
// @Tags 学员
// @Produce json
// @Security BearerAuth
// @Param employeeId path int true "员工ID"
// @Success 200 {object} util.Response{data=service.ProgressBar}
// @Router /api/learner/{employeeId}/progress-bar [get]
func (c *LearnerController) ProgressBar(ctx *gin.Context) {
	bar, err := c.ProgressService.ProgressBar(ctx.Request.Context(), employeeIDParam(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, bar)
}

func contentIDParam(ctx *gin.Context) (uint, bool) {
	id, ok := util.ParseIDParam(ctx, "contentId")
	if !ok {
		util.BadRequest(ctx, "invalid content id")
	}
	return id, ok
}

// @Summary 开始学习内容
// @Description 已完成的内容保持 DONE
// @Tags 学员
// @Produce json
// @Security BearerAuth
// @Param employeeId path int true "员工ID"
// @Param contentId path int true "内容ID"
// @Success 200 {object} util.Response{data=model.LearningProgress}
// @Failure 404 {object} util.Response
// @Router /api/learner/{employeeId}/learning/{contentId}/start [post]
func (c *LearnerController) StartContent(ctx *gin.Context) {
	contentID, ok := contentIDParam(ctx)
	if !ok {
		return
	}
	progress, err := c.ProgressService.StartContent(ctx.Request.Context(), employeeIDParam(ctx), contentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Learning started", progress)
}

// @Summary 完成学习内容
// @Tags 学员
// @Produce json
// @Security BearerAuth
// @Param employeeId path int true "员工ID"
// @Param contentId path int true "内容ID"
// @Success 200 {object} util.Response{data=model.LearningProgress}
// @Failure 404 {object} util.Response "尚未开始该内容"
// @Router /api/learner/{employeeId}/learning/{contentId}/complete [post]
func (c *LearnerController) CompleteContent(ctx *gin.Context) {
	contentID, ok := contentIDParam(ctx)
	if !ok {
		return
	}
	progress, err := c.ProgressService.CompleteContent(ctx.Request.Context(), employeeIDParam(ctx), contentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Learning completed", progress)
}
