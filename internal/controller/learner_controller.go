package controller

import (
	"encoding/json"
	"time"

	"program_hub_backend/internal/service"
	"program_hub_backend/internal/util"
	"program_hub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

// LearnerController 学员端接口，所有课程内容访问都先经过访问判定
type LearnerController struct {
	ProgramService  *service.ProgramService
	AccessService   *service.AccessService
	UserService     *service.UserService
	ProgressService *service.ProgressService
	VoucherService  *service.VoucherService
}

func NewLearnerController(
	programService *service.ProgramService,
	accessService *service.AccessService,
	userService *service.UserService,
	progressService *service.ProgressService,
	voucherService *service.VoucherService,
) *LearnerController {
	return &LearnerController{
		ProgramService:  programService,
		AccessService:   accessService,
		UserService:     userService,
		ProgressService: progressService,
		VoucherService:  voucherService,
	}
}

type programSummary struct {
	ID             string   `json:"id"`
	Slug           string   `json:"slug"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	ImageURL       string   `json:"imageUrl,omitempty"`
	TargetAudience string   `json:"targetAudience,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Allowed        bool     `json:"allowed"`
	Reason         string   `json:"reason"`
}

// ListPrograms godoc
// @Summary 学员课程列表
// @Description 返回全部课程的摘要及当前学员的访问判定
// @Tags 学员
// @Produce  json
// @Success 200 {object} util.Response{data=[]programSummary}
// @Security BearerAuth
// @Router /api/programs [get]
func (c *LearnerController) ListPrograms(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	programs, err := c.ProgramService.ListPrograms(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	user, err := c.UserService.Profile(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	now := time.Now()
	summaries := make([]programSummary, 0, len(programs))
	for i := range programs {
		p := &programs[i]
		decision := c.AccessService.CanAccess(user, p, now)
		summaries = append(summaries, programSummary{
			ID:             p.ID,
			Slug:           p.Slug,
			Title:          p.Title,
			Description:    p.Description,
			ImageURL:       p.ImageURL,
			TargetAudience: p.TargetAudience,
			Tags:           p.Tags,
			Allowed:        decision.Allowed,
			Reason:         string(decision.Reason),
		})
	}
	util.Success(ctx, summaries)
}

// GetProgram godoc
// @Summary 学员课程详情
// @Description 仅对有访问权限的学员返回完整课程内容
// @Tags 学员
// @Produce  json
// @Param   id path string true "课程ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 403 {object} util.Response "无访问权限"
// @Failure 404 {object} util.Response "课程不存在"
// @Security BearerAuth
// @Router /api/programs/{id} [get]
func (c *LearnerController) GetProgram(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	decision, err := c.AccessService.CanAccessProgram(ctx.Request.Context(), claims.UserID, ctx.Param("id"), time.Now())
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !decision.Allowed {
		monitoring.AccessDenials.WithLabelValues(string(decision.Reason)).Inc()
		util.Error(ctx, 403, "无课程访问权限："+string(decision.Reason))
		return
	}

	program, _, err := c.ProgramService.GetProgram(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"program": program, "reason": decision.Reason})
}

type submitResponseRequest struct {
	ElementID string          `json:"elementId" binding:"required"`
	Kind      string          `json:"kind" binding:"required,oneof=scenario quiz test"`
	Payload   json.RawMessage `json:"payload" binding:"required"`
}

// SubmitResponse godoc
// @Summary 提交学习单元响应
// @Description 保存情景、测验或心理测试的作答结果
// @Tags 学员
// @Accept  json
// @Produce  json
// @Param   id path string true "课程ID"
// @Param   body body submitResponseRequest true "作答内容"
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/programs/{id}/responses [post]
func (c *LearnerController) SubmitResponse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req submitResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.UserService.SubmitResponse(ctx.Request.Context(), claims.UserID, ctx.Param("id"), req.ElementID, service.ResponseKind(req.Kind), req.Payload)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type completeElementRequest struct {
	ElementID string `json:"elementId" binding:"required"`
}

// CompleteElement godoc
// @Summary 标记学习单元完成
// @Description 幂等操作，重复标记不报错
// @Tags 学员
// @Accept  json
// @Produce  json
// @Param   id path string true "课程ID"
// @Param   body body completeElementRequest true "学习单元ID"
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/programs/{id}/elements/complete [post]
func (c *LearnerController) CompleteElement(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req completeElementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.MarkElementComplete(ctx.Request.Context(), claims.UserID, ctx.Param("id"), req.ElementID); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type submitCompletionRequest struct {
	SatisfactionScore *int `json:"satisfactionScore"`
}

// SubmitCompletion godoc
// @Summary 提交课程完成记录
// @Description 记录完成日期与可选的满意度评分（1-5），重复提交覆盖旧记录
// @Tags 学员
// @Accept  json
// @Produce  json
// @Param   id path string true "课程ID"
// @Param   body body submitCompletionRequest true "满意度评分"
// @Success 200 {object} util.Response{data=model.ProgramCompletion}
// @Security BearerAuth
// @Router /api/programs/{id}/completion [post]
func (c *LearnerController) SubmitCompletion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req submitCompletionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	completion, err := c.UserService.SubmitCompletion(ctx.Request.Context(), claims.UserID, ctx.Param("id"), req.SatisfactionScore, time.Now())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, completion)
}

// MyProgress godoc
// @Summary 我的学习进度
// @Tags 学员
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.UserProgressRow}
// @Security BearerAuth
// @Router /api/me/progress [get]
func (c *LearnerController) MyProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rows, err := c.ProgressService.UserProgress(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// Profile godoc
// @Summary 我的个人信息
// @Tags 学员
// @Produce  json
// @Success 200 {object} util.Response{data=object}
// @Security BearerAuth
// @Router /api/me [get]
func (c *LearnerController) Profile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.Profile(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"id":                 user.ID,
		"name":               user.Name,
		"email":              user.Email,
		"role":               user.Role,
		"language":           user.Language,
		"programCompletions": user.ProgramCompletions,
		"vouchers":           user.Vouchers,
	})
}

type redeemVoucherRequest struct {
	VoucherID string `json:"voucherId" binding:"required"`
}

// RedeemVoucher godoc
// @Summary 兑换课程访问码
// @Tags 学员
// @Accept  json
// @Produce  json
// @Param   body body redeemVoucherRequest true "兑换码ID"
// @Success 200 {object} util.Response{data=model.Voucher}
// @Failure 409 {object} util.Response "兑换码不可用或已被使用"
// @Security BearerAuth
// @Router /api/me/vouchers/redeem [post]
func (c *LearnerController) RedeemVoucher(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req redeemVoucherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	voucher, err := c.VoucherService.Redeem(ctx.Request.Context(), claims.UserID, req.VoucherID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, voucher)
}
