package controller

import (
	"program_hub_backend/internal/service"
	"program_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ReportController 管理端进度与完课统计接口
type ReportController struct {
	ProgressService *service.ProgressService
}

func NewReportController(progressService *service.ProgressService) *ReportController {
	return &ReportController{ProgressService: progressService}
}

// ProgramStats godoc
// @Summary 课程完课统计
// @Description 参与人数、完成人数、完课率与平均满意度
// @Tags 报表
// @Produce  json
// @Param   id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.ProgramStats}
// @Failure 404 {object} util.Response "课程不存在"
// @Security BearerAuth
// @Router /api/admin/reports/programs/{id} [get]
func (c *ReportController) ProgramStats(ctx *gin.Context) {
	stats, err := c.ProgressService.ProgramStats(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// ProgressMatrix godoc
// @Summary 全量进度矩阵
// @Description 每个学员在每个课程上的进度百分比与状态
// @Tags 报表
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.UserProgressRow}
// @Security BearerAuth
// @Router /api/admin/reports/progress [get]
func (c *ReportController) ProgressMatrix(ctx *gin.Context) {
	rows, err := c.ProgressService.ProgressMatrix(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// UserProgress godoc
// @Summary 指定学员的进度
// @Tags 报表
// @Produce  json
// @Param   id path string true "用户ID"
// @Success 200 {object} util.Response{data=[]model.UserProgressRow}
// @Security BearerAuth
// @Router /api/admin/reports/users/{id} [get]
func (c *ReportController) UserProgress(ctx *gin.Context) {
	rows, err := c.ProgressService.UserProgress(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}
