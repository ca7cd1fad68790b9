package controller

import (
	"errors"

	"program_hub_backend/internal/model"
	"program_hub_backend/internal/repository"
	"program_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError 统一把业务层错误映射为 HTTP 响应
func respondError(ctx *gin.Context, err error) {
	switch {
	case model.IsValidationError(err):
		util.BadRequest(ctx, err.Error())
	case repository.IsNotFound(err):
		util.NotFound(ctx)
	case repository.IsConflict(err):
		util.Conflict(ctx, "数据已被其他请求修改，请刷新后重试")
	case errors.Is(err, util.ErrSlugTaken):
		util.Error(ctx, 409, "该标识已被占用")
	case errors.Is(err, util.ErrWeekNotFound):
		util.Error(ctx, 404, "周次不存在")
	case errors.Is(err, util.ErrElementNotFound):
		util.Error(ctx, 404, "学习单元不存在")
	case errors.Is(err, util.ErrUserNotFound):
		util.Error(ctx, 404, "用户不存在")
	case errors.Is(err, util.ErrVoucherNotActive):
		util.Error(ctx, 409, "兑换码不可用")
	case errors.Is(err, util.ErrVoucherAssigned):
		util.Error(ctx, 409, "兑换码已被使用")
	case errors.Is(err, util.ErrVoucherCountRange):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
