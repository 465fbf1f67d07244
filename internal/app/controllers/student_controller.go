package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/hallsphere/internal/app/models/dto"
	"github.com/yigit/hallsphere/internal/app/services"
	"github.com/yigit/hallsphere/internal/middleware"
	"github.com/yigit/hallsphere/internal/pkg/helpers"
)

// StudentController handles student approval and profile operations
type StudentController struct {
	studentService services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// ApproveStudent approves a pending student registration
// @Summary Approve a student registration
// @Description Approves a pending student in the provost's hall, claiming the requested bed position and bumping occupancy counters.
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Student approved"
// @Failure 403 {object} dto.ErrorResponse "Student belongs to another hall"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "Already processed, position taken or room full"
// @Security BearerAuth
// @Router /students/{id}/approve [patch]
func (c *StudentController) ApproveStudent(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	hallID, ok := actorHallID(ctx)
	if !ok {
		return
	}

	if err := c.studentService.ApproveStudent(ctx.Request.Context(), studentID, hallID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Student approved"}})
}

// RejectStudent rejects a pending student registration
// @Summary Reject a student registration
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param request body dto.RejectUserRequest true "Rejection reason"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Student rejected"
// @Failure 403 {object} dto.ErrorResponse "Student belongs to another hall"
// @Failure 409 {object} dto.ErrorResponse "Already processed"
// @Security BearerAuth
// @Router /students/{id}/reject [patch]
func (c *StudentController) RejectStudent(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	hallID, ok := actorHallID(ctx)
	if !ok {
		return
	}

	var req dto.RejectUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestBody(ctx, err)
		return
	}

	if err := c.studentService.RejectStudent(ctx.Request.Context(), studentID, hallID, req.Reason); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Student registration rejected"}})
}

// ListPending lists the hall's pending student registrations
// @Summary List pending student registrations
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.User} "Pending registrations"
// @Security BearerAuth
// @Router /students/pending [get]
func (c *StudentController) ListPending(ctx *gin.Context) {
	hallID, ok := actorHallID(ctx)
	if !ok {
		return
	}

	students, err := c.studentService.ListPendingByHall(ctx.Request.Context(), hallID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: students})
}

// ListApproved lists a page of the hall's current residents
// @Summary List hall residents
// @Tags students
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Residents with profiles"
// @Security BearerAuth
// @Router /students [get]
func (c *StudentController) ListApproved(ctx *gin.Context) {
	hallID, ok := actorHallID(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	students, total, err := c.studentService.ListApprovedByHall(ctx.Request.Context(), hallID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.PaginatedResponse{
		Items:      students,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}})
}

// GetOwnProfile returns the authenticated student's profile
// @Summary Get own profile
// @Description Returns the student profile including the base and effective expiry dates.
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.StudentProfile} "Profile"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Security BearerAuth
// @Router /students/me [get]
func (c *StudentController) GetOwnProfile(ctx *gin.Context) {
	studentID, ok := actorID(ctx)
	if !ok {
		return
	}

	profile, err := c.studentService.GetProfile(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: profile})
}
