// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hallsphere/internal/app/models/dto"
	"github.com/yigit/hallsphere/internal/middleware"
)

// actorID returns the authenticated user's id from the context. Routes
// behind JWTAuth always have it; a miss aborts with 401.
func actorID(ctx *gin.Context) (int64, bool) {
	v, exists := ctx.Get(middleware.ContextUserID)
	if !exists {
		abortUnauthorized(ctx, "User information not found")
		return 0, false
	}
	id, ok := v.(int64)
	if !ok {
		abortUnauthorized(ctx, "Invalid user identity")
		return 0, false
	}
	return id, true
}

// actorHallID returns the hall scope resolved by the HallScope middleware
func actorHallID(ctx *gin.Context) (int64, bool) {
	v, exists := ctx.Get(middleware.ContextHallID)
	if !exists {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "No hall assignment")
		ctx.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	id, ok := v.(int64)
	if !ok {
		abortUnauthorized(ctx, "Invalid hall scope")
		return 0, false
	}
	return id, true
}

// pathID parses a numeric path parameter, aborting with 400 on garbage
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

func abortUnauthorized(ctx *gin.Context, details string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	errorDetail = errorDetail.WithDetails(details)
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

func badRequestBody(ctx *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload")
	errorDetail = errorDetail.WithDetails(err.Error())
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
