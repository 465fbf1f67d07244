package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/hallsphere/internal/app/models/dto"
	"github.com/yigit/hallsphere/internal/app/services"
	"github.com/yigit/hallsphere/internal/middleware"
)

// ClearanceController handles hall clearance operations
type ClearanceController struct {
	clearanceService services.ClearanceService
	logger           zerolog.Logger
}

// NewClearanceController creates a new ClearanceController
func NewClearanceController(clearanceService services.ClearanceService, logger zerolog.Logger) *ClearanceController {
	return &ClearanceController{
		clearanceService: clearanceService,
		logger:           logger,
	}
}

// RequestClearance submits a clearance request
// @Summary Request hall clearance
// @Description Opens a pending clearance request for the authenticated student. At most one pending request per student.
// @Tags clearances
// @Accept json
// @Produce json
// @Param request body dto.CreateClearanceRequest true "Clearance details"
// @Success 201 {object} dto.APIResponse{data=models.HallClearance} "Request submitted"
// @Failure 400 {object} dto.ErrorResponse "Missing semester or details for the chosen reason"
// @Failure 409 {object} dto.ErrorResponse "A pending clearance already exists"
// @Security BearerAuth
// @Router /clearances [post]
func (c *ClearanceController) RequestClearance(ctx *gin.Context) {
	studentID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.CreateClearanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestBody(ctx, err)
		return
	}

	clearance, err := c.clearanceService.RequestClearance(ctx.Request.Context(), studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: clearance})
}

// ApproveClearance approves a pending clearance
// @Summary Approve a clearance request
// @Description Approves a clearance in the provost's hall. The student's residency ends: the account becomes former and occupancy counters drop.
// @Tags clearances
// @Produce json
// @Param id path int true "Clearance ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Clearance approved"
// @Failure 403 {object} dto.ErrorResponse "Clearance belongs to another hall"
// @Failure 409 {object} dto.ErrorResponse "Already processed"
// @Security BearerAuth
// @Router /clearances/{id}/approve [patch]
func (c *ClearanceController) ApproveClearance(ctx *gin.Context) {
	clearanceID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	actor, ok := actorID(ctx)
	if !ok {
		return
	}
	hallID, ok := actorHallID(ctx)
	if !ok {
		return
	}

	if err := c.clearanceService.ApproveClearance(ctx.Request.Context(), clearanceID, actor, hallID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Clearance approved"}})
}

// RejectClearance rejects a pending clearance
// @Summary Reject a clearance request
// @Tags clearances
// @Accept json
// @Produce json
// @Param id path int true "Clearance ID"
// @Param request body dto.RejectClearanceRequest true "Rejection reason"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Clearance rejected"
// @Failure 409 {object} dto.ErrorResponse "Already processed"
// @Security BearerAuth
// @Router /clearances/{id}/reject [patch]
func (c *ClearanceController) RejectClearance(ctx *gin.Context) {
	clearanceID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	actor, ok := actorID(ctx)
	if !ok {
		return
	}
	hallID, ok := actorHallID(ctx)
	if !ok {
		return
	}

	var req dto.RejectClearanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestBody(ctx, err)
		return
	}

	if err := c.clearanceService.RejectClearance(ctx.Request.Context(), clearanceID, actor, hallID, req.RejectionReason); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Clearance rejected"}})
}

// ListOwn lists the authenticated student's clearance requests
// @Summary List own clearance requests
// @Tags clearances
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.HallClearance} "Clearance history"
// @Security BearerAuth
// @Router /clearances/me [get]
func (c *ClearanceController) ListOwn(ctx *gin.Context) {
	studentID, ok := actorID(ctx)
	if !ok {
		return
	}

	clearances, err := c.clearanceService.ListOwn(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: clearances})
}

// ListPending lists the hall's pending clearance requests
// @Summary List pending clearance requests
// @Tags clearances
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.HallClearance} "Pending clearances"
// @Security BearerAuth
// @Router /clearances/pending [get]
func (c *ClearanceController) ListPending(ctx *gin.Context) {
	hallID, ok := actorHallID(ctx)
	if !ok {
		return
	}

	clearances, err := c.clearanceService.ListPendingByHall(ctx.Request.Context(), hallID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: clearances})
}
