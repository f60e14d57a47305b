package controller

import (
	"skillpath_backend/internal/service"
	"skillpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// @Summary 开始测评
// @Description 已有进行中的测评时直接返回该测评
// @Tags 测评
// @Produce json
// @Security BearerAuth
// @Param employeeId path int true "员工ID"
// @Success 200 {object} util.Response{data=service.StartResult} "已有测评"
// @Success 201 {object} util.Response{data=service.StartResult} "新建测评"
// @Router /api/learner/{employeeId}/assessment/start [post]
func (c *AssessmentController) Start(ctx *gin.Context) {
	res, err := c.AssessmentService.Start(ctx.Request.Context(), employeeIDParam(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	if res.Created {
		util.CreatedWithMessage(ctx, "Assessment started", res)
		return
	}
	util.SuccessWithMessage(ctx, "Assessment already in progress", res)
}

// @Summary 生成测评题目
// @Description 每个技能生成 5 道选择题；题目已存在时原样返回
// @Tags 测评
// @Produce json
// @Security BearerAuth
// @Param employeeId path int true "员工ID"
// @Success 200 {object} util.Response{data=[]service.QuestionView}
// @Failure 400 {object} util.Response "没有进行中的测评"
// @Failure 429 {object} util.Response "AI 接口额度用尽"
// @Failure 500 {object} util.Response
// @Router /api/learner/{employeeId}/assessment/generate [post]
func (c *AssessmentController) Generate(ctx *gin.Context) {
	questions, generated, err := c.AssessmentService.GenerateQuestions(ctx.Request.Context(), employeeIDParam(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	message := "Questions already generated"
	if generated {
		message = "Questions generated successfully"
	}
	util.SuccessWithMessage(ctx, message, gin.H{"questions": questions})
}

// swagger:model SubmitAssessmentRequest
type SubmitAssessmentRequest struct {
	// 题目ID -> 选项字母
	Answers map[string]string `json:"answers"`
}

// @Summary 提交测评
// @Tags 测评
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param employeeId path int true "员工ID"
// @Param body body SubmitAssessmentRequest true "答案"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/learner/{employeeId}/assessment/submit [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	var req SubmitAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.AssessmentService.Submit(ctx.Request.Context(), employeeIDParam(ctx), req.Answers)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Assessment submitted successfully", res)
}

// @Summary 最近一次测评结果
// @Tags 测评
// @Produce json
// @Security BearerAuth
// @Param employeeId path int true "员工ID"
// @Success 200 {object} util.Response{data=service.ResultsView}
// @Failure 400 {object} util.Response "尚未完成测评"
// @Router /api/learner/{employeeId}/assessment/results [get]
func (c *AssessmentController) Results(ctx *gin.Context) {
	view, err := c.AssessmentService.LatestResults(ctx.Request.Context(), employeeIDParam(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}
