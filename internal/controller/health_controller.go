package controller

import (
	"time"

	"quiz_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// Health godoc
// @Summary Liveness and database health
// @Tags health
// @Produce json
// @Success 200 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /health [get]
func (ctrl *HealthController) Health(c *gin.Context) {
	status := gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}

	sqlDB, err := ctrl.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
		util.ErrorWithData(c, 500, "Service degraded", status)
		return
	}
	status["database"] = "ok"

	util.Success(c, status)
}
