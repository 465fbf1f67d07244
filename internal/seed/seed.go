package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/yigit/hallsphere/internal/app/models"
	appRepos "github.com/yigit/hallsphere/internal/app/repositories"
	"github.com/yigit/hallsphere/internal/pkg/apperrors"
)

// CreateDefaultData creates the default halls and the VC account if they
// don't exist yet. Errors are collected rather than aborting: a partially
// seeded database is still usable.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	hallRepo := appRepos.NewHallRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (Halls/VC account)...")
	var finalErr error

	defaultHalls := []*appModels.Hall{
		{
			Name:          "Shaheed Salam Hall",
			Gender:        appModels.HallMale,
			Location:      "North Campus",
			TotalFloors:   5,
			MonthlyRent:   450,
			SecretCode:    "salam-provost-2024",
			TotalCapacity: 400,
			IsActive:      true,
		},
		{
			Name:          "Begum Rokeya Hall",
			Gender:        appModels.HallFemale,
			Location:      "East Campus",
			TotalFloors:   4,
			MonthlyRent:   450,
			SecretCode:    "rokeya-provost-2024",
			TotalCapacity: 320,
			IsActive:      true,
		},
	}

	for _, hall := range defaultHalls {
		if _, err := hallRepo.CreateHall(ctx, hall); err != nil && !errors.Is(err, apperrors.ErrHallAlreadyExists) {
			lgr.Error().Err(err).Str("hall", hall.Name).Msg("Error creating default hall")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Create Default VC User --- //
	vcEmail := "vc@hallsphere.edu"
	_, err := userRepo.GetUserByEmail(ctx, vcEmail)
	if err == nil {
		return finalErr // VC already exists
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		lgr.Error().Err(err).Msg("Error checking if VC user exists")
		return errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Creating default VC user...")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("ChangeMe123!"), bcrypt.DefaultCost)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing VC password")
		return errors.Join(finalErr, err)
	}

	vc := &appModels.User{
		Name:           "Vice Chancellor",
		Email:          vcEmail,
		Password:       string(hashedPassword),
		Role:           appModels.RoleVC,
		ApprovalStatus: appModels.ApprovalApproved,
	}

	tx, err := dbPool.Begin(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error starting transaction for VC user")
		return errors.Join(finalErr, err)
	}
	defer tx.Rollback(ctx)

	if _, err := userRepo.CreateUserTx(ctx, tx, vc); err != nil {
		if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating VC user")
			finalErr = errors.Join(finalErr, err)
		}
		return finalErr
	}
	if err := tx.Commit(ctx); err != nil {
		lgr.Error().Err(err).Msg("Error committing VC user")
		return errors.Join(finalErr, err)
	}

	lgr.Info().Str("email", vcEmail).Msg("Default VC user created. Change the password after first login.")
	return finalErr
}
