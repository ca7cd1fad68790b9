package controller

import (
	"fmt"
	"path/filepath"
	"strconv"

	"program_hub_backend/internal/model"
	"program_hub_backend/internal/service"
	"program_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ProgramController 管理端课程项目接口
type ProgramController struct {
	ProgramService *service.ProgramService
	StorageService *service.StorageService
}

func NewProgramController(programService *service.ProgramService, storageService *service.StorageService) *ProgramController {
	return &ProgramController{
		ProgramService: programService,
		StorageService: storageService,
	}
}

// CreateProgram godoc
// @Summary 创建课程项目
// @Tags 课程管理
// @Accept  json
// @Produce  json
// @Param   body body service.CreateProgramRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Program} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "标识已被占用"
// @Security BearerAuth
// @Router /api/admin/programs [post]
func (c *ProgramController) CreateProgram(ctx *gin.Context) {
	var req service.CreateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	program, err := c.ProgramService.CreateProgram(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, program)
}

// ListPrograms godoc
// @Summary 课程项目列表
// @Tags 课程管理
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Program}
// @Security BearerAuth
// @Router /api/admin/programs [get]
func (c *ProgramController) ListPrograms(ctx *gin.Context) {
	programs, err := c.ProgramService.ListPrograms(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, programs)
}

// GetProgram godoc
// @Summary 课程项目详情
// @Tags 课程管理
// @Produce  json
// @Param   id path string true "课程ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "课程不存在"
// @Security BearerAuth
// @Router /api/admin/programs/{id} [get]
func (c *ProgramController) GetProgram(ctx *gin.Context) {
	program, version, err := c.ProgramService.GetProgram(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"program": program, "version": version})
}

// UpdateProgram godoc
// @Summary 更新课程项目元信息
// @Tags 课程管理
// @Accept  json
// @Produce  json
// @Param   id path string true "课程ID"
// @Param   body body service.UpdateProgramRequest true "更新内容"
// @Success 200 {object} util.Response{data=model.Program}
// @Failure 409 {object} util.Response "版本冲突"
// @Security BearerAuth
// @Router /api/admin/programs/{id} [put]
func (c *ProgramController) UpdateProgram(ctx *gin.Context) {
	var req service.UpdateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	program, err := c.ProgramService.UpdateProgram(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, program)
}

// DeleteProgram godoc
// @Summary 删除课程项目
// @Tags 课程管理
// @Produce  json
// @Param   id path string true "课程ID"
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/programs/{id} [delete]
func (c *ProgramController) DeleteProgram(ctx *gin.Context) {
	if err := c.ProgramService.DeleteProgram(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AddWeek godoc
// @Summary 新增课程周次
// @Tags 课程管理
// @Accept  json
// @Produce  json
// @Param   id path string true "课程ID"
// @Param   body body service.WeekRequest true "周次信息"
// @Success 200 {object} util.Response{data=model.Program}
// @Failure 409 {object} util.Response "版本冲突或周次重复"
// @Security BearerAuth
// @Router /api/admin/programs/{id}/weeks [post]
func (c *ProgramController) AddWeek(ctx *gin.Context) {
	var req service.WeekRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	program, err := c.ProgramService.AddWeek(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, program)
}

// UpdateWeek godoc
// @Summary 更新课程周次
// @Tags 课程管理
// @Accept  json
// @Produce  json
// @Param   id path string true "课程ID"
// @Param   weekId path string true "周次ID"
// @Param   body body service.UpdateWeekRequest true "更新内容"
// @Success 200 {object} util.Response{data=model.Program}
// @Security BearerAuth
// @Router /api/admin/programs/{id}/weeks/{weekId} [put]
func (c *ProgramController) UpdateWeek(ctx *gin.Context) {
	var req service.UpdateWeekRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	program, err := c.ProgramService.UpdateWeek(ctx.Request.Context(), ctx.Param("id"), ctx.Param("weekId"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, program)
}

// RemoveWeek godoc
// @Summary 删除课程周次
// @Tags 课程管理
// @Produce  json
// @Param   id path string true "课程ID"
// @Param   weekId path string true "周次ID"
// @Param   version query int true "当前版本号"
// @Success 200 {object} util.Response{data=model.Program}
// @Security BearerAuth
// @Router /api/admin/programs/{id}/weeks/{weekId} [delete]
func (c *ProgramController) RemoveWeek(ctx *gin.Context) {
	version, err := parseVersion(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	program, err := c.ProgramService.RemoveWeek(ctx.Request.Context(), ctx.Param("id"), ctx.Param("weekId"), version)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, program)
}

type addElementRequest struct {
	Version int64                 `json:"version" binding:"required"`
	Element model.LearningElement `json:"element" binding:"required"`
}

type addPlaceholderRequest struct {
	Version int64  `json:"version" binding:"required"`
	Type    string `json:"type" binding:"required"`
}

// AddElement godoc
// @Summary 向周次添加学习单元
// @Description 请求体中的 element 按类型标签解析为对应的学习单元载荷
// @Tags 课程管理
// @Accept  json
// @Produce  json
// @Param   id path string true "课程ID"
// @Param   weekId path string true "周次ID"
// @Param   body body addElementRequest true "学习单元"
// @Success 200 {object} util.Response{data=model.Program}
// @Failure 400 {object} util.Response "类型未知或载荷校验失败"
// @Security BearerAuth
// @Router /api/admin/programs/{id}/weeks/{weekId}/elements [post]
func (c *ProgramController) AddElement(ctx *gin.Context) {
	var req addElementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	program, err := c.ProgramService.AddElement(ctx.Request.Context(), ctx.Param("id"), ctx.Param("weekId"), req.Version, req.Element)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, program)
}

// AddPlaceholder godoc
// @Summary 按类型标签添加占位学习单元
// @Tags 课程管理
// @Accept  json
// @Produce  json
// @Param   id path string true "课程ID"
// @Param   weekId path string true "周次ID"
// @Param   body body addPlaceholderRequest true "占位单元类型"
// @Success 200 {object} util.Response{data=model.Program}
// @Security BearerAuth
// @Router /api/admin/programs/{id}/weeks/{weekId}/elements/placeholder [post]
func (c *ProgramController) AddPlaceholder(ctx *gin.Context) {
	var req addPlaceholderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	program, err := c.ProgramService.AddPlaceholder(ctx.Request.Context(), ctx.Param("id"), ctx.Param("weekId"), req.Version, model.ElementType(req.Type))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, program)
}

// UpdateElement godoc
// @Summary 更新学习单元
// @Tags 课程管理
// @Accept  json
// @Produce  json
// @Param   id path string true "课程ID"
// @Param   weekId path string true "周次ID"
// @Param   body body addElementRequest true "学习单元（按 ID 替换）"
// @Success 200 {object} util.Response{data=model.Program}
// @Security BearerAuth
// @Router /api/admin/programs/{id}/weeks/{weekId}/elements [put]
func (c *ProgramController) UpdateElement(ctx *gin.Context) {
	var req addElementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	program, err := c.ProgramService.UpdateElement(ctx.Request.Context(), ctx.Param("id"), ctx.Param("weekId"), req.Version, req.Element)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, program)
}

// RemoveElement godoc
// @Summary 删除学习单元
// @Tags 课程管理
// @Produce  json
// @Param   id path string true "课程ID"
// @Param   weekId path string true "周次ID"
// @Param   elementId path string true "学习单元ID"
// @Param   version query int true "当前版本号"
// @Success 200 {object} util.Response{data=model.Program}
// @Security BearerAuth
// @Router /api/admin/programs/{id}/weeks/{weekId}/elements/{elementId} [delete]
func (c *ProgramController) RemoveElement(ctx *gin.Context) {
	version, err := parseVersion(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	program, err := c.ProgramService.RemoveElement(ctx.Request.Context(), ctx.Param("id"), ctx.Param("weekId"), ctx.Param("elementId"), version)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, program)
}

// UploadImage godoc
// @Summary 上传课程封面图
// @Tags 课程管理
// @Accept  multipart/form-data
// @Produce  json
// @Param   id path string true "课程ID"
// @Param   version formData int true "当前版本号"
// @Param   file formData file true "图片文件"
// @Success 200 {object} util.Response{data=model.Program}
// @Failure 400 {object} util.Response "文件类型不允许"
// @Security BearerAuth
// @Router /api/admin/programs/{id}/image [post]
func (c *ProgramController) UploadImage(ctx *gin.Context) {
	version, err := strconv.ParseInt(ctx.PostForm("version"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "version 参数无效")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少文件")
		return
	}

	if !util.HasAllowedExtension(fileHeader.Filename, util.AllowedImageExtensions) {
		util.BadRequest(ctx, "不支持的图片格式")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("programs/%s/cover%s", ctx.Param("id"), filepath.Ext(fileHeader.Filename))
	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	imageURL := url
	program, err := c.ProgramService.UpdateProgram(ctx.Request.Context(), ctx.Param("id"), service.UpdateProgramRequest{
		Version:  version,
		ImageURL: &imageURL,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, program)
}

// UploadDocument godoc
// @Summary 上传企业专属文档并挂接到课程
// @Tags 课程管理
// @Accept  multipart/form-data
// @Produce  json
// @Param   id path string true "课程ID"
// @Param   version formData int true "当前版本号"
// @Param   title formData string true "文档标题"
// @Param   file formData file true "文档文件"
// @Success 200 {object} util.Response{data=model.Program}
// @Failure 400 {object} util.Response "文件类型不允许"
// @Security BearerAuth
// @Router /api/admin/programs/{id}/documents [post]
func (c *ProgramController) UploadDocument(ctx *gin.Context) {
	version, err := strconv.ParseInt(ctx.PostForm("version"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "version 参数无效")
		return
	}

	title := ctx.PostForm("title")
	if title == "" {
		util.BadRequest(ctx, "缺少文档标题")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少文件")
		return
	}

	if !util.HasAllowedExtension(fileHeader.Filename, util.AllowedDocumentExtensions) {
		util.BadRequest(ctx, "不支持的文档格式")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("programs/%s/docs/%s-%s", ctx.Param("id"), util.NewEntityID(), filepath.Base(fileHeader.Filename))
	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	program, err := c.ProgramService.AttachCompanyDocument(ctx.Request.Context(), ctx.Param("id"), version, title, url)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, program)
}

func parseVersion(ctx *gin.Context) (int64, error) {
	raw := ctx.Query("version")
	if raw == "" {
		return 0, fmt.Errorf("缺少 version 参数")
	}
	return strconv.ParseInt(raw, 10, 64)
}
