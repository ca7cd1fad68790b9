package controller

import (
	"net/http"

	"program_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB        *gorm.DB // local 模式下为 nil
	StoreMode string
}

func NewHealthController(db *gorm.DB, storeMode string) *HealthController {
	return &HealthController{DB: db, StoreMode: storeMode}
}

// @Summary 健康检查
// @Description 检查服务及持久层状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	components := gin.H{"store": c.StoreMode}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			util.InternalServerError(ctx)
			return
		}
		if err := sqlDB.Ping(); err != nil {
			util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		components["database"] = "up"
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}
