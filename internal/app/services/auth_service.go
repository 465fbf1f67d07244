package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/hallsphere/internal/app/models"
	"github.com/yigit/hallsphere/internal/app/models/dto"
	"github.com/yigit/hallsphere/internal/db"
	"github.com/yigit/hallsphere/internal/pkg/apperrors"
	"github.com/yigit/hallsphere/internal/pkg/auth"
	"github.com/yigit/hallsphere/internal/pkg/logger"
	"github.com/yigit/hallsphere/internal/pkg/validation"
)

// TxRunner runs a function inside a database transaction. Satisfied by
// db.PostgresDB in production.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// UserStore is the user persistence surface registration and login use
type UserStore interface {
	CreateUserTx(ctx context.Context, tx pgx.Tx, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64) error
}

// ProfileStore creates student profiles and resolves session peers during
// registration.
type ProfileStore interface {
	CreateProfileTx(ctx context.Context, tx pgx.Tx, profile *models.StudentProfile) error
	FindSessionPeerExpiryTx(ctx context.Context, tx pgx.Tx, hallID int64, academicSession string) (*time.Time, error)
	GetProfileByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error)
}

// HallStore is the hall lookup surface registration uses
type HallStore interface {
	GetHallByID(ctx context.Context, id int64) (*models.Hall, error)
}

// RoomStore is the room lookup surface registration uses
type RoomStore interface {
	GetRoomByID(ctx context.Context, id int64) (*models.Room, error)
}

// AuthService handles registration and login. New accounts always start
// pending; provosts clear students, the VC clears provosts.
type AuthService interface {
	RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.RegisteredResponse, error)
	RegisterProvost(ctx context.Context, req *dto.RegisterProvostRequest, role models.RoleType) (*dto.RegisteredResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	CurrentUser(ctx context.Context, userID int64) (*models.User, error)
}

type authService struct {
	txRunner     TxRunner
	userStore    UserStore
	profileStore ProfileStore
	hallStore    HallStore
	roomStore    RoomStore
	jwtService   *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(txRunner TxRunner, userStore UserStore, profileStore ProfileStore, hallStore HallStore, roomStore RoomStore, jwtService *auth.JWTService) AuthService {
	return &authService{
		txRunner:     txRunner,
		userStore:    userStore,
		profileStore: profileStore,
		hallStore:    hallStore,
		roomStore:    roomStore,
		jwtService:   jwtService,
	}
}

func validateCredentials(name, email, password string, phone *string) error {
	nameOK := validation.NewStringValidation(name).
		WithMinLength(validation.NameMinLength).
		WithMaxLength(validation.NameMaxLength).
		Validate()
	if !nameOK {
		return apperrors.NewValidationError("name must be 2 to 100 characters")
	}
	if !validation.IsValidEmail(email) {
		return apperrors.NewValidationError("invalid email format")
	}
	if len(password) < validation.PasswordMinLength {
		return apperrors.NewValidationError("password must be at least 8 characters")
	}
	if phone != nil {
		phoneOK := validation.NewStringValidation(*phone).
			WithRequired(false).
			WithPattern(validation.CompiledPatterns.Phone).
			Validate()
		if !phoneOK {
			return apperrors.NewValidationError("invalid phone number")
		}
	}
	return nil
}

func (s *authService) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.RegisteredResponse, error) {
	if err := validateCredentials(req.Name, req.Email, req.Password, req.Phone); err != nil {
		return nil, err
	}
	if !validation.IsValidSession(req.AcademicSession) {
		return nil, apperrors.NewValidationError("academicSession must be in YYYY-YYYY format")
	}
	if !models.IsValidDepartment(req.Department) {
		return nil, apperrors.NewValidationError("unknown department: " + req.Department)
	}

	hall, err := s.hallStore.GetHallByID(ctx, req.HallID)
	if err != nil {
		return nil, err
	}
	if !hall.IsActive {
		return nil, apperrors.ErrHallInactive
	}

	room, err := s.roomStore.GetRoomByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if room.HallID != hall.ID {
		return nil, apperrors.ErrRoomNotInHall
	}
	if !validPositionForRoom(req.Position, room.Capacity) {
		return nil, apperrors.NewValidationError("invalid room position: " + req.Position)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var userID int64
	err = s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		user := &models.User{
			Name:           req.Name,
			Email:          req.Email,
			Password:       hashedPassword,
			Role:           models.RoleStudent,
			Phone:          req.Phone,
			ApprovalStatus: models.ApprovalPending,
			HallID:         &req.HallID,
		}
		id, err := s.userStore.CreateUserTx(ctx, tx, user)
		if err != nil {
			return err
		}
		userID = id

		// Onboarding propagation: a newcomer inherits the base expiry
		// date of any already registered session peer in the same hall.
		// First of the cohort gets NULL until a group policy or manual
		// update sets the cohort's date.
		baseExpiry, err := s.profileStore.FindSessionPeerExpiryTx(ctx, tx, req.HallID, req.AcademicSession)
		if err != nil {
			return err
		}

		profile := &models.StudentProfile{
			UserID:              id,
			Roll:                req.Roll,
			Registration:        req.Registration,
			AcademicSession:     req.AcademicSession,
			AdmissionYear:       req.AdmissionYear,
			Department:          req.Department,
			RoomID:              &req.RoomID,
			Position:            models.RoomPosition(req.Position),
			BaseExpiryDate:      baseExpiry,
			EffectiveExpiryDate: baseExpiry,
		}
		return s.profileStore.CreateProfileTx(ctx, tx, profile)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("userID", userID).Str("session", req.AcademicSession).Msg("Student registered, awaiting approval")
	return &dto.RegisteredResponse{
		UserID:  userID,
		Message: "Registration submitted. Awaiting approval.",
	}, nil
}

func validPositionForRoom(position string, capacity int) bool {
	positions := []models.RoomPosition{models.PositionA, models.PositionB, models.PositionC, models.PositionD}
	for i, p := range positions {
		if string(p) == position {
			return i < capacity
		}
	}
	return false
}

func (s *authService) RegisterProvost(ctx context.Context, req *dto.RegisterProvostRequest, role models.RoleType) (*dto.RegisteredResponse, error) {
	if role != models.RoleProvost && role != models.RoleViceProvost {
		return nil, apperrors.NewValidationError("invalid staff role")
	}
	if err := validateCredentials(req.Name, req.Email, req.Password, req.Phone); err != nil {
		return nil, err
	}

	hall, err := s.hallStore.GetHallByID(ctx, req.HallID)
	if err != nil {
		return nil, err
	}
	if hall.SecretCode != req.SecretCode {
		logger.Warn().Int64("hallID", req.HallID).Str("email", req.Email).Msg("Provost registration with wrong hall secret")
		return nil, apperrors.ErrInvalidHallSecret
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var userID int64
	err = s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		user := &models.User{
			Name:           req.Name,
			Email:          req.Email,
			Password:       hashedPassword,
			Role:           role,
			Phone:          req.Phone,
			ApprovalStatus: models.ApprovalPending,
			HallID:         &req.HallID,
		}
		id, err := s.userStore.CreateUserTx(ctx, tx, user)
		if err != nil {
			return err
		}
		userID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("userID", userID).Str("role", string(role)).Msg("Staff registered, awaiting approval")
	return &dto.RegisteredResponse{
		UserID:  userID,
		Message: "Registration submitted. Awaiting approval.",
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userStore.GetUserByEmail(ctx, req.Email)
	if err != nil {
		// Same error for unknown email and wrong password.
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		logger.Warn().Str("email", req.Email).Msg("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	switch user.ApprovalStatus {
	case models.ApprovalApproved:
		// proceed
	case models.ApprovalPending:
		return nil, apperrors.ErrAccountPending
	default:
		return nil, apperrors.ErrAccountRejected
	}

	accessToken, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	if err := s.userStore.UpdateLastLogin(ctx, user.ID); err != nil {
		// Login still succeeds; the stamp is advisory.
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Could not update last login timestamp")
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		ExpiresIn:   expiresIn,
		UserID:      user.ID,
		Role:        string(user.Role),
	}, nil
}

func (s *authService) CurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userStore.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Role == models.RoleStudent {
		profile, err := s.profileStore.GetProfileByUserID(ctx, userID)
		if err != nil {
			logger.Warn().Err(err).Int64("userID", userID).Msg("Student without a profile row")
		} else {
			user.Profile = profile
		}
	}

	return user, nil
}
