package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hallsphere/internal/app/models/dto"
	"github.com/yigit/hallsphere/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto the standard error response.
// Controllers funnel every error through here so status codes stay
// consistent across the API.
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	message := err.Error()
	if errors.As(err, &customErr) {
		message = customErr.Message
	}

	switch {
	case errors.Is(err, apperrors.ErrExpiryRecalculation):
		// Committed approval with a stale effective date. Critical so
		// operators spot it and run reconciliation.
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeExpiryRecalculation, "Expiry recalculation failed")
		errorDetail = errorDetail.WithSeverity(dto.ErrorSeverityCritical)
		errorDetail = errorDetail.WithDetails(message)
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))

	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")))

	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")))

	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))

	case errors.Is(err, apperrors.ErrAccountPending):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeAccountPending, "Account pending approval")))

	case errors.Is(err, apperrors.ErrAccountRejected):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeAccountRejected, "Account rejected")))

	case apperrors.Is(err, apperrors.ErrPermissionDenied,
		apperrors.ErrHallScopeMissing,
		apperrors.ErrInvalidHallSecret):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, message)))

	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrStudentNotFound,
		apperrors.ErrProvostNotFound,
		apperrors.ErrHallNotFound,
		apperrors.ErrRoomNotFound,
		apperrors.ErrExtensionNotFound,
		apperrors.ErrComplaintNotFound,
		apperrors.ErrNoticeNotFound,
		apperrors.ErrClearanceNotFound,
		apperrors.ErrNoMatchingStudents):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message)))

	case apperrors.Is(err, apperrors.ErrResourceAlreadyExists,
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrRollAlreadyExists,
		apperrors.ErrRegistrationAlreadyExists,
		apperrors.ErrHallAlreadyExists,
		apperrors.ErrRoomAlreadyExists):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message)))

	case apperrors.Is(err, apperrors.ErrConflict,
		apperrors.ErrDuplicatePendingRequest,
		apperrors.ErrExtensionProcessed,
		apperrors.ErrApprovalProcessed,
		apperrors.ErrDuplicatePendingClearance,
		apperrors.ErrClearanceProcessed,
		apperrors.ErrPositionOccupied,
		apperrors.ErrRoomFull,
		apperrors.ErrHallHasProvost,
		apperrors.ErrProvostNotCurrent):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceConflict, message)))

	case apperrors.Is(err, apperrors.ErrHallInactive,
		apperrors.ErrRoomNotInHall,
		apperrors.ErrInsufficientBalance):
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)))

	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
