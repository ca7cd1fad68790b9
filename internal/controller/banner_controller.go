package controller

import (
	"program_hub_backend/internal/service"
	"program_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BannerController struct {
	BannerService *service.BannerService
}

func NewBannerController(bannerService *service.BannerService) *BannerController {
	return &BannerController{BannerService: bannerService}
}

// ListActive godoc
// @Summary 首页轮播图
// @Tags 轮播图
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Banner}
// @Router /api/banners [get]
func (c *BannerController) ListActive(ctx *gin.Context) {
	banners, err := c.BannerService.ListActive(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, banners)
}

// ListAll godoc
// @Summary 全部轮播图（含未启用）
// @Tags 轮播图
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Banner}
// @Security BearerAuth
// @Router /api/admin/banners [get]
func (c *BannerController) ListAll(ctx *gin.Context) {
	banners, err := c.BannerService.ListAll(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, banners)
}

// Create godoc
// @Summary 新建轮播图
// @Tags 轮播图
// @Accept  json
// @Produce  json
// @Param   body body service.BannerRequest true "轮播图信息"
// @Success 201 {object} util.Response{data=model.Banner}
// @Security BearerAuth
// @Router /api/admin/banners [post]
func (c *BannerController) Create(ctx *gin.Context) {
	var req service.BannerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	banner, err := c.BannerService.Create(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, banner)
}

// Update godoc
// @Summary 更新轮播图
// @Tags 轮播图
// @Accept  json
// @Produce  json
// @Param   id path string true "轮播图ID"
// @Param   body body service.BannerRequest true "轮播图信息"
// @Success 200 {object} util.Response{data=model.Banner}
// @Security BearerAuth
// @Router /api/admin/banners/{id} [put]
func (c *BannerController) Update(ctx *gin.Context) {
	var req service.BannerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	banner, err := c.BannerService.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, banner)
}

// Delete godoc
// @Summary 删除轮播图
// @Tags 轮播图
// @Produce  json
// @Param   id path string true "轮播图ID"
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/banners/{id} [delete]
func (c *BannerController) Delete(ctx *gin.Context) {
	if err := c.BannerService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
