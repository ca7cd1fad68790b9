package controller

import (
	"program_hub_backend/internal/service"
	"program_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// VoucherController 管理端兑换码接口
type VoucherController struct {
	VoucherService *service.VoucherService
}

func NewVoucherController(voucherService *service.VoucherService) *VoucherController {
	return &VoucherController{VoucherService: voucherService}
}

// BulkCreate godoc
// @Summary 批量生成兑换码
// @Description 为指定课程一次生成 1-500 个带统一过期日期的兑换码
// @Tags 兑换码管理
// @Accept  json
// @Produce  json
// @Param   body body service.BulkCreateRequest true "生成参数"
// @Success 201 {object} util.Response{data=[]model.Voucher}
// @Failure 400 {object} util.Response "数量超限或日期格式错误"
// @Failure 404 {object} util.Response "课程不存在"
// @Security BearerAuth
// @Router /api/admin/vouchers [post]
func (c *VoucherController) BulkCreate(ctx *gin.Context) {
	var req service.BulkCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	vouchers, err := c.VoucherService.BulkCreate(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, vouchers)
}

// ListByProgram godoc
// @Summary 查询课程下的兑换码
// @Tags 兑换码管理
// @Produce  json
// @Param   programId query string true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Voucher}
// @Security BearerAuth
// @Router /api/admin/vouchers [get]
func (c *VoucherController) ListByProgram(ctx *gin.Context) {
	programID := ctx.Query("programId")
	if programID == "" {
		util.BadRequest(ctx, "缺少 programId 参数")
		return
	}

	vouchers, err := c.VoucherService.ListByProgram(ctx.Request.Context(), programID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, vouchers)
}

// MarkUsed godoc
// @Summary 标记兑换码已使用
// @Tags 兑换码管理
// @Produce  json
// @Param   id path string true "兑换码ID"
// @Success 200 {object} util.Response{data=model.Voucher}
// @Security BearerAuth
// @Router /api/admin/vouchers/{id}/use [post]
func (c *VoucherController) MarkUsed(ctx *gin.Context) {
	voucher, err := c.VoucherService.MarkUsed(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, voucher)
}

// Void godoc
// @Summary 作废兑换码
// @Tags 兑换码管理
// @Produce  json
// @Param   id path string true "兑换码ID"
// @Success 200 {object} util.Response{data=model.Voucher}
// @Security BearerAuth
// @Router /api/admin/vouchers/{id}/void [post]
func (c *VoucherController) Void(ctx *gin.Context) {
	voucher, err := c.VoucherService.Void(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, voucher)
}
