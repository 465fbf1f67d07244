package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/hallsphere/internal/app/models/dto"
	"github.com/yigit/hallsphere/internal/app/services"
	"github.com/yigit/hallsphere/internal/middleware"
)

// ProvostController handles the VC's staff management operations
type ProvostController struct {
	provostService services.ProvostService
	logger         zerolog.Logger
}

// NewProvostController creates a new ProvostController
func NewProvostController(provostService services.ProvostService, logger zerolog.Logger) *ProvostController {
	return &ProvostController{
		provostService: provostService,
		logger:         logger,
	}
}

// ApproveProvost approves a pending provost registration
// @Summary Approve a provost registration
// @Description Approves a pending provost or vice provost. A full provost takes the hall's provost seat on approval.
// @Tags provosts
// @Produce json
// @Param id path int true "Provost ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Provost approved"
// @Failure 404 {object} dto.ErrorResponse "Provost not found"
// @Failure 409 {object} dto.ErrorResponse "Already processed or hall already has a provost"
// @Security BearerAuth
// @Router /provosts/{id}/approve [patch]
func (c *ProvostController) ApproveProvost(ctx *gin.Context) {
	provostID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.provostService.ApproveProvost(ctx.Request.Context(), provostID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Provost approved"}})
}

// RejectProvost rejects a pending provost registration
// @Summary Reject a provost registration
// @Tags provosts
// @Accept json
// @Produce json
// @Param id path int true "Provost ID"
// @Param request body dto.RejectUserRequest true "Rejection reason"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Provost rejected"
// @Failure 404 {object} dto.ErrorResponse "Provost not found"
// @Security BearerAuth
// @Router /provosts/{id}/reject [patch]
func (c *ProvostController) RejectProvost(ctx *gin.Context) {
	provostID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.RejectUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestBody(ctx, err)
		return
	}

	if err := c.provostService.RejectProvost(ctx.Request.Context(), provostID, req.Reason); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Provost registration rejected"}})
}

// AssignToHall seats an approved provost on a hall
// @Summary Assign a provost to a hall
// @Tags provosts
// @Accept json
// @Produce json
// @Param id path int true "Provost ID"
// @Param request body dto.AssignProvostRequest true "Target hall"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Provost assigned"
// @Failure 409 {object} dto.ErrorResponse "Hall already has a provost"
// @Security BearerAuth
// @Router /provosts/{id}/assign [patch]
func (c *ProvostController) AssignToHall(ctx *gin.Context) {
	provostID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.AssignProvostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestBody(ctx, err)
		return
	}

	if err := c.provostService.AssignToHall(ctx.Request.Context(), provostID, req.HallID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Provost assigned to hall"}})
}

// RemoveFromHall vacates a hall's provost seat
// @Summary Remove a provost from a hall
// @Tags provosts
// @Produce json
// @Param id path int true "Provost ID"
// @Param hallId path int true "Hall ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Provost removed"
// @Failure 409 {object} dto.ErrorResponse "Provost does not hold this hall"
// @Security BearerAuth
// @Router /provosts/{id}/halls/{hallId} [delete]
func (c *ProvostController) RemoveFromHall(ctx *gin.Context) {
	provostID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	hallID, ok := pathID(ctx, "hallId")
	if !ok {
		return
	}

	if err := c.provostService.RemoveFromHall(ctx.Request.Context(), provostID, hallID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Provost removed from hall"}})
}

// ListPending lists pending staff registrations
// @Summary List pending provost registrations
// @Tags provosts
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.User} "Pending staff"
// @Security BearerAuth
// @Router /provosts/pending [get]
func (c *ProvostController) ListPending(ctx *gin.Context) {
	staff, err := c.provostService.ListPending(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: staff})
}
