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

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// RegisterStudent handles student self-registration
// @Summary Register a new student
// @Description Creates a pending student account with a requested hall, room and bed position. The base expiry date is copied from an existing session peer in the same hall when one exists.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterStudentRequest true "Student registration information"
// @Success 201 {object} dto.APIResponse{data=dto.RegisteredResponse} "Registration submitted, awaiting provost approval"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 409 {object} dto.ErrorResponse "Email, roll or registration number already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register/student [post]
func (c *AuthController) RegisterStudent(ctx *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid student registration payload")
		badRequestBody(ctx, err)
		return
	}

	resp, err := c.authService.RegisterStudent(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// RegisterProvost handles provost registration
// @Summary Register a new provost
// @Description Creates a pending provost account gated by the hall's secret code. The VC clears provost registrations.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterProvostRequest true "Provost registration information"
// @Success 201 {object} dto.APIResponse{data=dto.RegisteredResponse} "Registration submitted, awaiting VC approval"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Wrong hall secret code"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /auth/register/provost [post]
func (c *AuthController) RegisterProvost(ctx *gin.Context) {
	c.registerStaff(ctx, models.RoleProvost)
}

// RegisterViceProvost handles vice provost registration
// @Summary Register a new vice provost
// @Description Creates a pending vice provost account gated by the hall's secret code.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterProvostRequest true "Vice provost registration information"
// @Success 201 {object} dto.APIResponse{data=dto.RegisteredResponse} "Registration submitted, awaiting VC approval"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Wrong hall secret code"
// @Router /auth/register/vice-provost [post]
func (c *AuthController) RegisterViceProvost(ctx *gin.Context) {
	c.registerStaff(ctx, models.RoleViceProvost)
}

func (c *AuthController) registerStaff(ctx *gin.Context, role models.RoleType) {
	var req dto.RegisterProvostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid staff registration payload")
		badRequestBody(ctx, err)
		return
	}

	resp, err := c.authService.RegisterProvost(ctx.Request.Context(), &req, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// Login handles user login
// @Summary Log in
// @Description Authenticates a user and returns a signed access token. Pending and rejected accounts cannot log in.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Authenticated"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account pending or rejected"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestBody(ctx, err)
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// Me returns the authenticated user
// @Summary Get the current user
// @Description Returns the authenticated account. Students get their profile with base and effective expiry dates attached.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.User} "Current user"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	userID, ok := actorID(ctx)
	if !ok {
		return
	}

	user, err := c.authService.CurrentUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: user})
}
