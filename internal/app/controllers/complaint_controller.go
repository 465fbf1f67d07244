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

// ComplaintController handles complaint operations
type ComplaintController struct {
	complaintService services.ComplaintService
	logger           zerolog.Logger
}

// NewComplaintController creates a new ComplaintController
func NewComplaintController(complaintService services.ComplaintService, logger zerolog.Logger) *ComplaintController {
	return &ComplaintController{
		complaintService: complaintService,
		logger:           logger,
	}
}

// CreateComplaint files a complaint
// @Summary File a complaint
// @Tags complaints
// @Accept json
// @Produce json
// @Param request body dto.CreateComplaintRequest true "Complaint details"
// @Success 201 {object} dto.APIResponse{data=models.Complaint} "Complaint filed"
// @Failure 400 {object} dto.ErrorResponse "Unknown category or bad priority"
// @Security BearerAuth
// @Router /complaints [post]
func (c *ComplaintController) CreateComplaint(ctx *gin.Context) {
	studentID, ok := actorID(ctx)
	if !ok {
		return
	}
	hallID, ok := actorHallID(ctx)
	if !ok {
		return
	}

	var req dto.CreateComplaintRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestBody(ctx, err)
		return
	}

	complaint, err := c.complaintService.CreateComplaint(ctx.Request.Context(), studentID, hallID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: complaint})
}

// UpdateStatus moves a complaint through its lifecycle
// @Summary Update complaint status
// @Tags complaints
// @Accept json
// @Produce json
// @Param id path int true "Complaint ID"
// @Param request body dto.UpdateComplaintStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Complaint} "Updated complaint"
// @Failure 403 {object} dto.ErrorResponse "Complaint belongs to another hall"
// @Failure 404 {object} dto.ErrorResponse "Complaint not found"
// @Security BearerAuth
// @Router /complaints/{id}/status [patch]
func (c *ComplaintController) UpdateStatus(ctx *gin.Context) {
	complaintID, ok := pathID(ctx, "id")
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

	var req dto.UpdateComplaintStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestBody(ctx, err)
		return
	}

	complaint, err := c.complaintService.UpdateStatus(ctx.Request.Context(), complaintID, actor, hallID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: complaint})
}

// ListByHall lists the hall's complaints
// @Summary List hall complaints
// @Tags complaints
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.APIResponse{data=[]models.Complaint} "Complaints"
// @Security BearerAuth
// @Router /complaints [get]
func (c *ComplaintController) ListByHall(ctx *gin.Context) {
	hallID, ok := actorHallID(ctx)
	if !ok {
		return
	}

	var status *models.ComplaintStatus
	if q := ctx.Query("status"); q != "" {
		s := models.ComplaintStatus(q)
		status = &s
	}

	complaints, err := c.complaintService.ListByHall(ctx.Request.Context(), hallID, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: complaints})
}

// ListOwn lists the authenticated user's complaints
// @Summary List own complaints
// @Tags complaints
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Complaint} "Complaints"
// @Security BearerAuth
// @Router /complaints/me [get]
func (c *ComplaintController) ListOwn(ctx *gin.Context) {
	studentID, ok := actorID(ctx)
	if !ok {
		return
	}

	complaints, err := c.complaintService.ListOwn(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: complaints})
}
