package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/hallsphere/internal/app/models/dto"
	"github.com/yigit/hallsphere/internal/app/services"
	"github.com/yigit/hallsphere/internal/middleware"
)

// HallController handles hall and room management
type HallController struct {
	hallService services.HallService
	logger      zerolog.Logger
}

// NewHallController creates a new HallController
func NewHallController(hallService services.HallService, logger zerolog.Logger) *HallController {
	return &HallController{
		hallService: hallService,
		logger:      logger,
	}
}

// CreateHall creates a hall
// @Summary Create a hall
// @Tags halls
// @Accept json
// @Produce json
// @Param request body dto.CreateHallRequest true "Hall information"
// @Success 201 {object} dto.APIResponse{data=models.Hall} "Hall created"
// @Failure 409 {object} dto.ErrorResponse "Hall name already exists"
// @Security BearerAuth
// @Router /halls [post]
func (c *HallController) CreateHall(ctx *gin.Context) {
	var req dto.CreateHallRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestBody(ctx, err)
		return
	}

	hall, err := c.hallService.CreateHall(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: hall})
}

// GetHall returns one hall
// @Summary Get a hall
// @Tags halls
// @Produce json
// @Param id path int true "Hall ID"
// @Success 200 {object} dto.APIResponse{data=models.Hall} "Hall"
// @Failure 404 {object} dto.ErrorResponse "Hall not found"
// @Router /halls/{id} [get]
func (c *HallController) GetHall(ctx *gin.Context) {
	hallID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	hall, err := c.hallService.GetHall(ctx.Request.Context(), hallID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: hall})
}

// ListHalls lists halls
// @Summary List halls
// @Tags halls
// @Produce json
// @Param active query bool false "Only active halls"
// @Success 200 {object} dto.APIResponse{data=[]models.Hall} "Halls"
// @Router /halls [get]
func (c *HallController) ListHalls(ctx *gin.Context) {
	activeOnly := ctx.Query("active") == "true"

	halls, err := c.hallService.ListHalls(ctx.Request.Context(), activeOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: halls})
}

// CreateRoom adds a room to a hall
// @Summary Create a room
// @Tags halls
// @Accept json
// @Produce json
// @Param id path int true "Hall ID"
// @Param request body dto.CreateRoomRequest true "Room information"
// @Success 201 {object} dto.APIResponse{data=models.Room} "Room created"
// @Failure 409 {object} dto.ErrorResponse "Room number already exists in this hall"
// @Security BearerAuth
// @Router /halls/{id}/rooms [post]
func (c *HallController) CreateRoom(ctx *gin.Context) {
	hallID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestBody(ctx, err)
		return
	}

	room, err := c.hallService.CreateRoom(ctx.Request.Context(), hallID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: room})
}

// ListRooms lists a hall's rooms
// @Summary List rooms in a hall
// @Tags halls
// @Produce json
// @Param id path int true "Hall ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Room} "Rooms"
// @Failure 404 {object} dto.ErrorResponse "Hall not found"
// @Router /halls/{id}/rooms [get]
func (c *HallController) ListRooms(ctx *gin.Context) {
	hallID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	rooms, err := c.hallService.ListRooms(ctx.Request.Context(), hallID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: rooms})
}
