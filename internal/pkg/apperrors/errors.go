package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountPending     = errors.New("account pending approval")
	ErrAccountRejected    = errors.New("account rejected")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")
	ErrHallScopeMissing = errors.New("hall assignment not found for this user")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// User errors
var (
	ErrUserNotFound              = errors.New("user not found")
	ErrEmailAlreadyExists        = errors.New("email already exists")
	ErrRollAlreadyExists         = errors.New("roll already registered")
	ErrRegistrationAlreadyExists = errors.New("registration number already registered")
	ErrInvalidHallSecret         = errors.New("unauthorized registration attempt")
	ErrStudentNotFound           = errors.New("student not found")
	ErrProvostNotFound           = errors.New("provost not found")
	ErrApprovalProcessed         = errors.New("approval already processed")
	ErrPositionOccupied          = errors.New("position is already requested or occupied")
	ErrRoomFull                  = errors.New("room is already full")
	ErrHallHasProvost            = errors.New("hall already has a provost")
	ErrProvostNotCurrent         = errors.New("provost is not the current hall provost")
)

// Hall and room errors
var (
	ErrHallNotFound      = errors.New("hall not found")
	ErrHallAlreadyExists = errors.New("hall with this name already exists")
	ErrHallInactive      = errors.New("hall is not active")
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomAlreadyExists = errors.New("room number already exists in this hall")
	ErrRoomNotInHall     = errors.New("room does not belong to the selected hall")
)

// Residency extension errors
var (
	ErrExtensionNotFound       = errors.New("extension request not found")
	ErrDuplicatePendingRequest = errors.New("a pending extension request already exists for this student")
	ErrExtensionProcessed      = errors.New("extension request already processed")
	ErrNoMatchingStudents      = errors.New("no students matched the policy criteria")

	// ErrExpiryRecalculation marks the critical case where an approval has
	// been committed but the paired expiry recalculation did not run. The
	// extension status is durable; the student's effective expiry date is
	// stale until the reconciliation path re-runs recalculation.
	ErrExpiryRecalculation = errors.New("expiry recalculation failed after status commit")
)

// Complaint and notice errors
var (
	ErrComplaintNotFound = errors.New("complaint not found")
	ErrNoticeNotFound    = errors.New("notice not found")
)

// Hall clearance errors
var (
	ErrClearanceNotFound         = errors.New("clearance request not found")
	ErrDuplicatePendingClearance = errors.New("a pending clearance request already exists")
	ErrClearanceProcessed        = errors.New("clearance request already processed")
	ErrInsufficientBalance       = errors.New("insufficient balance")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// Is returns whether target matches err or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
