package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/hallsphere/internal/app/models"
	"github.com/yigit/hallsphere/internal/app/models/dto"
	"github.com/yigit/hallsphere/internal/app/services"
	"github.com/yigit/hallsphere/internal/middleware"
)

// NoticeController handles notice operations
type NoticeController struct {
	noticeService services.NoticeService
	logger        zerolog.Logger
}

// NewNoticeController creates a new NoticeController
func NewNoticeController(noticeService services.NoticeService, logger zerolog.Logger) *NoticeController {
	return &NoticeController{
		noticeService: noticeService,
		logger:        logger,
	}
}

// CreateNotice publishes a notice
// @Summary Publish a notice
// @Description Publishes a public notice, or a private one scoped to the author's hall.
// @Tags notices
// @Accept json
// @Produce json
// @Param request body dto.CreateNoticeRequest true "Notice content"
// @Success 201 {object} dto.APIResponse{data=models.Notice} "Notice published"
// @Failure 400 {object} dto.ErrorResponse "Bad visibility or expiry date"
// @Security BearerAuth
// @Router /notices [post]
func (c *NoticeController) CreateNotice(ctx *gin.Context) {
	creatorID, ok := actorID(ctx)
	if !ok {
		return
	}

	var creatorHallID *int64
	if v, exists := ctx.Get(middleware.ContextHallID); exists {
		if id, isInt := v.(int64); isInt {
			creatorHallID = &id
		}
	}

	var req dto.CreateNoticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestBody(ctx, err)
		return
	}

	notice, err := c.noticeService.CreateNotice(ctx.Request.Context(), creatorID, creatorHallID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: notice})
}

// ListNotices lists notices visible to the caller's hall
// @Summary List visible notices
// @Tags notices
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Notice} "Notices"
// @Security BearerAuth
// @Router /notices [get]
func (c *NoticeController) ListNotices(ctx *gin.Context) {
	hallID, ok := actorHallID(ctx)
	if !ok {
		return
	}

	notices, err := c.noticeService.ListForHall(ctx.Request.Context(), hallID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: notices})
}

// DeactivateNotice pulls a notice
// @Summary Deactivate a notice
// @Description Authors may deactivate their own notices; the VC may deactivate any.
// @Tags notices
// @Produce json
// @Param id path int true "Notice ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Notice deactivated"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Notice not found"
// @Security BearerAuth
// @Router /notices/{id} [delete]
func (c *NoticeController) DeactivateNotice(ctx *gin.Context) {
	noticeID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	actor, ok := actorID(ctx)
	if !ok {
		return
	}

	role := models.RoleType("")
	if v, exists := ctx.Get(middleware.ContextRole); exists {
		if s, isStr := v.(string); isStr {
			role = models.RoleType(s)
		}
	}

	if err := c.noticeService.Deactivate(ctx.Request.Context(), noticeID, actor, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Notice deactivated"}})
}
