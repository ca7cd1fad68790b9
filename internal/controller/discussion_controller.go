package controller

import (
	"program_hub_backend/internal/service"
	"program_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// DiscussionController 课程讨论区接口，读写都受课程访问权限约束
type DiscussionController struct {
	DiscussionService *service.DiscussionService
}

func NewDiscussionController(discussionService *service.DiscussionService) *DiscussionController {
	return &DiscussionController{DiscussionService: discussionService}
}

type postMessageRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// Post godoc
// @Summary 发表讨论
// @Tags 讨论区
// @Accept  json
// @Produce  json
// @Param   id path string true "课程ID"
// @Param   body body postMessageRequest true "讨论内容"
// @Success 201 {object} util.Response{data=model.Discussion}
// @Failure 403 {object} util.Response "无课程访问权限"
// @Security BearerAuth
// @Router /api/programs/{id}/discussions [post]
func (c *DiscussionController) Post(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req postMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	message, err := c.DiscussionService.Post(ctx.Request.Context(), claims.UserID, ctx.Param("id"), req.Content)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, message)
}

// List godoc
// @Summary 讨论列表
// @Description 按发表时间倒序返回
// @Tags 讨论区
// @Produce  json
// @Param   id path string true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Discussion}
// @Failure 403 {object} util.Response "无课程访问权限"
// @Security BearerAuth
// @Router /api/programs/{id}/discussions [get]
func (c *DiscussionController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	messages, err := c.DiscussionService.List(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, messages)
}

// Delete godoc
// @Summary 删除讨论
// @Description 仅作者本人或管理员可删除
// @Tags 讨论区
// @Produce  json
// @Param   messageId path string true "讨论ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "无删除权限"
// @Security BearerAuth
// @Router /api/discussions/{messageId} [delete]
func (c *DiscussionController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.DiscussionService.Delete(ctx.Request.Context(), claims.UserID, claims.Role, ctx.Param("messageId")); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
