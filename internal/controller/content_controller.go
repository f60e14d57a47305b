package controller

import (
	"strconv"

	"skillpath_backend/internal/service"
	"skillpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ContentController manages the catalog: skills, role-skill profiles and learning content.
type ContentController struct {
	CatalogService *service.CatalogService
}

func NewContentController(catalogService *service.CatalogService) *ContentController {
	return &ContentController{CatalogService: catalogService}
}

// ListSkills godoc
// @Summary List skills
// @Tags catalog
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Skill} "Success"
// @Router /api/admin/skills [get]
func (c *ContentController) ListSkills(ctx *gin.Context) {
	skills, err := c.CatalogService.ListSkills(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, skills)
}

// CreateSkill godoc
// @Summary Create a skill
// @Tags catalog
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateSkillInput true "Skill name and category (CORE, NICE_TO_HAVE)"
// @Success 201 {object} util.Response{data=model.Skill} "Created"
// @Failure 400 {object} util.Response "Bad Request"
// @Failure 409 {object} util.Response "Skill already exists"
// @Router /api/admin/skills [post]
func (c *ContentController) CreateSkill(ctx *gin.Context) {
	var req service.CreateSkillInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	skill, err := c.CatalogService.CreateSkill(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, skill)
}

// ListRoleProfiles godoc
// @Summary List role skill profiles
// @Tags catalog
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.RoleProfileView} "Success"
// @Router /api/admin/role-profiles [get]
func (c *ContentController) ListRoleProfiles(ctx *gin.Context) {
	profiles, err := c.CatalogService.ListRoleProfiles(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, profiles)
}

// UpsertRoleProfile godoc
// @Summary Create or replace the expected skills of a role
// @Tags catalog
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.RoleProfileInput true "Role and expected skills"
// @Success 200 {object} util.Response{data=service.RoleProfileView} "Success"
// @Failure 400 {object} util.Response "Bad Request"
// @Router /api/admin/role-profiles [put]
func (c *ContentController) UpsertRoleProfile(ctx *gin.Context) {
	var req service.RoleProfileInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	view, err := c.CatalogService.UpsertRoleProfile(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// ListContents godoc
// @Summary List learning content
// @Tags catalog
// @Produce  json
// @Security BearerAuth
// @Param   skillId query int false "Filter by skill"
// @Success 200 {object} util.Response{data=[]model.LearningContent} "Success"
// @Router /api/admin/contents [get]
func (c *ContentController) ListContents(ctx *gin.Context) {
	var skillID uint
	if raw := ctx.Query("skillId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			util.BadRequest(ctx, "invalid skillId")
			return
		}
		skillID = uint(id)
	}
	contents, err := c.CatalogService.ListContents(ctx.Request.Context(), skillID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, contents)
}

// CreateContent godoc
// @Summary Create learning content
// @Description The skill is resolved by name and created as CORE when missing
// @Tags catalog
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateContentInput true "Content"
// @Success 201 {object} util.Response{data=model.LearningContent} "Created"
// @Failure 400 {object} util.Response "Bad Request"
// @Router /api/admin/contents [post]
func (c *ContentController) CreateContent(ctx *gin.Context) {
	var req service.CreateContentInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	content, err := c.CatalogService.CreateContent(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, content)
}

// UploadMedia godoc
// @Summary Upload a video or cover image for learning content
// @Description Videos replace the content URL and get duration and thumbnail from ffmpeg; images replace the thumbnail
// @Tags catalog
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   contentId path int true "Content ID"
// @Param   file formData file true "Video or image"
// @Success 200 {object} util.Response{data=model.LearningContent} "Success"
// @Failure 400 {object} util.Response "Bad Request"
// @Failure 404 {object} util.Response "Content not found"
// @Router /api/admin/contents/{contentId}/media [post]
func (c *ContentController) UploadMedia(ctx *gin.Context) {
	contentID, ok := contentIDParam(ctx)
	if !ok {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "File is required")
		return
	}
	if file.Size > util.MaxUploadSize {
		util.BadRequest(ctx, "File too large")
		return
	}

	content, err := c.CatalogService.UploadMedia(ctx.Request.Context(), contentID, file)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Media uploaded", content)
}
