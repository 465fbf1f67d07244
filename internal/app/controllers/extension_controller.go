package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/hallsphere/internal/app/models/dto"
	"github.com/yigit/hallsphere/internal/app/services"
	"github.com/yigit/hallsphere/internal/middleware"
)

// ExtensionController handles residency extension operations
type ExtensionController struct {
	extensionService services.ExtensionService
	logger           zerolog.Logger
}

// NewExtensionController creates a new ExtensionController
func NewExtensionController(extensionService services.ExtensionService, logger zerolog.Logger) *ExtensionController {
	return &ExtensionController{
		extensionService: extensionService,
		logger:           logger,
	}
}

// RequestExtension submits an individual extension request
// @Summary Request a residency extension
// @Description Opens a pending extension request for the authenticated student. A student may have at most one pending request at a time.
// @Tags extensions
// @Accept json
// @Produce json
// @Param request body dto.RequestExtensionRequest true "Requested expiry date and reason"
// @Success 201 {object} dto.APIResponse{data=models.ResidencyExtension} "Request submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid date or reason"
// @Failure 409 {object} dto.ErrorResponse "A pending request already exists"
// @Security BearerAuth
// @Router /extensions [post]
func (c *ExtensionController) RequestExtension(ctx *gin.Context) {
	studentID, ok := actorID(ctx)
	if !ok {
		return
	}

	var req dto.RequestExtensionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestBody(ctx, err)
		return
	}

	ext, err := c.extensionService.RequestExtension(ctx.Request.Context(), studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: ext})
}

// ApproveExtension approves a pending extension request
// @Summary Approve an extension request
// @Description Approves a pending request in the provost's own hall and immediately recalculates the student's effective expiry date. A recalculation failure is reported as critical; the approval itself stays committed.
// @Tags extensions
// @Produce json
// @Param id path int true "Extension request ID"
// @Success 200 {object} dto.APIResponse{data=models.ResidencyExtension} "Request approved"
// @Failure 403 {object} dto.ErrorResponse "Request belongs to another hall"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request already processed"
// @Failure 500 {object} dto.ErrorResponse "Expiry recalculation failed after commit"
// @Security BearerAuth
// @Router /extensions/{id}/approve [patch]
func (c *ExtensionController) ApproveExtension(ctx *gin.Context) {
	extensionID, ok := pathID(ctx, "id")
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

	ext, err := c.extensionService.ApproveExtension(ctx.Request.Context(), extensionID, actor, hallID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: ext})
}

// RejectExtension rejects a pending extension request
// @Summary Reject an extension request
// @Description Rejects a pending request in the provost's own hall with a mandatory reason. Rejection never changes the student's expiry dates.
// @Tags extensions
// @Accept json
// @Produce json
// @Param id path int true "Extension request ID"
// @Param request body dto.RejectExtensionRequest true "Rejection reason"
// @Success 200 {object} dto.APIResponse{data=models.ResidencyExtension} "Request rejected"
// @Failure 403 {object} dto.ErrorResponse "Request belongs to another hall"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request already processed"
// @Security BearerAuth
// @Router /extensions/{id}/reject [patch]
func (c *ExtensionController) RejectExtension(ctx *gin.Context) {
	extensionID, ok := pathID(ctx, "id")
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

	var req dto.RejectExtensionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestBody(ctx, err)
		return
	}

	ext, err := c.extensionService.RejectExtension(ctx.Request.Context(), extensionID, actor, hallID, req.RejectionReason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: ext})
}

// ApplyGroupPolicy applies a bulk extension to a cohort
// @Summary Apply a group extension policy
// @Description Writes one pre-approved extension record per matching student in the provost's hall, all sharing a batch id, then recalculates each student's effective expiry. Students whose recalculation failed are listed in failedStudentIds and need reconciliation.
// @Tags extensions
// @Accept json
// @Produce json
// @Param request body dto.ApplyGroupPolicyRequest true "Cohort criteria, new expiry date and reason"
// @Success 201 {object} dto.APIResponse{data=dto.GroupPolicyResult} "Policy applied"
// @Failure 400 {object} dto.ErrorResponse "Invalid session, department or date"
// @Failure 404 {object} dto.ErrorResponse "No students matched the criteria"
// @Security BearerAuth
// @Router /extensions/group-policy [post]
func (c *ExtensionController) ApplyGroupPolicy(ctx *gin.Context) {
	actor, ok := actorID(ctx)
	if !ok {
		return
	}
	hallID, ok := actorHallID(ctx)
	if !ok {
		return
	}

	var req dto.ApplyGroupPolicyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestBody(ctx, err)
		return
	}

	result, err := c.extensionService.ApplyGroupPolicy(ctx.Request.Context(), actor, hallID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if len(result.FailedStudentIDs) > 0 {
		c.logger.Error().
			Str("batchID", result.BatchID.String()).
			Ints64("failedStudentIDs", result.FailedStudentIDs).
			Msg("Group policy committed with recalculation failures")
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: result})
}

// GroupPolicyHistory lists past group policy batches
// @Summary List group policy history
// @Description Returns the hall's group policy applications aggregated per batch, newest first.
// @Tags extensions
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.GroupPolicyBatch} "Batch history"
// @Security BearerAuth
// @Router /extensions/group-policy-history [get]
func (c *ExtensionController) GroupPolicyHistory(ctx *gin.Context) {
	hallID, ok := actorHallID(ctx)
	if !ok {
		return
	}

	batches, err := c.extensionService.GroupPolicyHistory(ctx.Request.Context(), hallID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: batches})
}

// Reconcile re-runs the expiry recalculation for one student
// @Summary Reconcile a student's effective expiry date
// @Description Recomputes the effective expiry date from the base date and all approved extensions. Safe to run any number of times; used to repair stale dates after a recalculation failure.
// @Tags extensions
// @Produce json
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.ReconcileResult} "Recalculated value"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Security BearerAuth
// @Router /extensions/students/{studentId}/reconcile [post]
func (c *ExtensionController) Reconcile(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "studentId")
	if !ok {
		return
	}

	result, err := c.extensionService.Reconcile(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: result})
}

// ListOwn lists the authenticated student's extension records
// @Summary List own extension records
// @Tags extensions
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.ResidencyExtension} "Extension history"
// @Security BearerAuth
// @Router /extensions/me [get]
func (c *ExtensionController) ListOwn(ctx *gin.Context) {
	studentID, ok := actorID(ctx)
	if !ok {
		return
	}

	exts, err := c.extensionService.ListByStudent(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: exts})
}

// ListByStudent lists one student's extension records
// @Summary List a student's extension records
// @Tags extensions
// @Produce json
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.ResidencyExtension} "Extension history"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Security BearerAuth
// @Router /extensions/students/{studentId} [get]
func (c *ExtensionController) ListByStudent(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "studentId")
	if !ok {
		return
	}

	exts, err := c.extensionService.ListByStudent(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: exts})
}

// ListPending lists the hall's pending extension requests
// @Summary List pending extension requests
// @Description Returns the provost's hall queue of pending individual requests, oldest first.
// @Tags extensions
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.ResidencyExtension} "Pending requests"
// @Security BearerAuth
// @Router /extensions/pending [get]
func (c *ExtensionController) ListPending(ctx *gin.Context) {
	hallID, ok := actorHallID(ctx)
	if !ok {
		return
	}

	exts, err := c.extensionService.ListPendingByHall(ctx.Request.Context(), hallID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: exts})
}
