package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/hallsphere/internal/app/models/dto"
	"github.com/yigit/hallsphere/internal/app/services"
	"github.com/yigit/hallsphere/internal/middleware"
)

// StatsController serves the VC's platform overview
type StatsController struct {
	statsService services.StatsService
	logger       zerolog.Logger
}

// NewStatsController creates a new StatsController
func NewStatsController(statsService services.StatsService, logger zerolog.Logger) *StatsController {
	return &StatsController{
		statsService: statsService,
		logger:       logger,
	}
}

// PlatformStats returns platform-wide approval and resource counts
// @Summary Get platform statistics
// @Description Returns approval funnel counts for students and provosts plus active hall, pending complaint and notice totals. VC only.
// @Tags stats
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.PlatformStatsResponse} "Platform statistics"
// @Failure 403 {object} dto.ErrorResponse "Not the VC"
// @Security BearerAuth
// @Router /stats [get]
func (c *StatsController) PlatformStats(ctx *gin.Context) {
	stats, err := c.statsService.PlatformStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: stats})
}
