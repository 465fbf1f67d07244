package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/hallsphere/internal/app/models/dto"
	"github.com/yigit/hallsphere/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", apperrors.NewValidationError("reason too short"), http.StatusBadRequest},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"token expired", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"account pending", apperrors.ErrAccountPending, http.StatusForbidden},
		{"cross-hall access", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"missing hall scope", apperrors.ErrHallScopeMissing, http.StatusForbidden},
		{"wrong hall secret", apperrors.ErrInvalidHallSecret, http.StatusForbidden},
		{"extension not found", apperrors.ErrExtensionNotFound, http.StatusNotFound},
		{"student not found", apperrors.ErrStudentNotFound, http.StatusNotFound},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		{"duplicate pending request", apperrors.ErrDuplicatePendingRequest, http.StatusConflict},
		{"already processed", apperrors.ErrExtensionProcessed, http.StatusConflict},
		{"room full", apperrors.ErrRoomFull, http.StatusConflict},
		{"empty cohort", apperrors.ErrNoMatchingStudents, http.StatusNotFound},
		{"inactive hall", apperrors.ErrHallInactive, http.StatusUnprocessableEntity},
		{"negative balance", apperrors.ErrInsufficientBalance, http.StatusUnprocessableEntity},
		{"unmapped error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			HandleAPIError(c, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandleAPIErrorRecalculationIsCritical(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	err := fmt.Errorf("%w: student ID=7: connection reset", apperrors.ErrExpiryRecalculation)
	HandleAPIError(c, err)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrorCodeExpiryRecalculation, resp.Error.Code)
	assert.Equal(t, dto.ErrorSeverityCritical, resp.Error.Severity)
	assert.Contains(t, resp.Error.Details, "student ID=7")
}
