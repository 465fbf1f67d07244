package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/hallsphere/internal/app/models"
	"github.com/yigit/hallsphere/internal/pkg/apperrors"
	"github.com/yigit/hallsphere/internal/pkg/dberrors"
	"github.com/yigit/hallsphere/internal/pkg/logger"
)

// StudentRepository handles student profile and residency database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const profileColumns = "user_id, roll, registration, academic_session, admission_year, department, room_id, position, base_expiry_date, effective_expiry_date, balance, created_at, updated_at"

func scanProfile(row pgx.Row) (*models.StudentProfile, error) {
	var p models.StudentProfile
	err := row.Scan(
		&p.UserID, &p.Roll, &p.Registration, &p.AcademicSession, &p.AdmissionYear,
		&p.Department, &p.RoomID, &p.Position, &p.BaseExpiryDate,
		&p.EffectiveExpiryDate, &p.Balance, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProfileTx inserts a student profile inside the registration
// transaction. Both expiry columns carry whatever onboarding propagation
// resolved, possibly NULL.
func (r *StudentRepository) CreateProfileTx(ctx context.Context, tx pgx.Tx, profile *models.StudentProfile) error {
	sql, args, err := r.sb.Insert("student_profiles").
		Columns("user_id", "roll", "registration", "academic_session", "admission_year",
			"department", "room_id", "position", "base_expiry_date", "effective_expiry_date").
		Values(profile.UserID, profile.Roll, profile.Registration, profile.AcademicSession,
			profile.AdmissionYear, profile.Department, profile.RoomID, profile.Position,
			profile.BaseExpiryDate, profile.EffectiveExpiryDate).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create profile query: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "student_profiles_roll_key") {
			return apperrors.ErrRollAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "student_profiles_registration_key") {
			return apperrors.ErrRegistrationAlreadyExists
		}
		logger.Error().Err(err).Int64("userID", profile.UserID).Msg("Error creating student profile")
		return fmt.Errorf("error creating student profile: %w", err)
	}

	return nil
}

// GetProfileByUserID retrieves a student profile
func (r *StudentRepository) GetProfileByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	sql, args, err := r.sb.Select(profileColumns).
		From("student_profiles").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	profile, err := scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning student profile")
		return nil, fmt.Errorf("error retrieving profile for user ID=%d: %w", userID, err)
	}
	return profile, nil
}

// GetResidency returns the approval-scoped residency projection for a
// student: hall, session, department and both expiry dates. Only approved
// students participate in expiry recalculation.
func (r *StudentRepository) GetResidency(ctx context.Context, studentID int64) (*models.StudentResidency, error) {
	sql, args, err := r.sb.Select("sp.user_id", "u.hall_id", "sp.academic_session", "sp.department",
		"sp.base_expiry_date", "sp.effective_expiry_date").
		From("student_profiles sp").
		Join("users u ON u.id = sp.user_id").
		Where(squirrel.Eq{"sp.user_id": studentID, "u.role": models.RoleStudent, "u.approval_status": models.ApprovalApproved}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get residency query: %w", err)
	}

	var res models.StudentResidency
	var hallID *int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&res.UserID, &hallID, &res.AcademicSession, &res.Department,
		&res.BaseExpiryDate, &res.EffectiveExpiryDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error scanning residency row")
		return nil, fmt.Errorf("error retrieving residency for student ID=%d: %w", studentID, err)
	}
	if hallID == nil {
		return nil, apperrors.ErrHallScopeMissing
	}
	res.HallID = *hallID
	return &res, nil
}

// UpdateEffectiveExpiry writes the recomputed effective expiry date. The
// value is always an absolute overwrite, never an increment.
func (r *StudentRepository) UpdateEffectiveExpiry(ctx context.Context, studentID int64, effectiveExpiry time.Time) error {
	sql, args, err := r.sb.Update("student_profiles").
		SetMap(map[string]interface{}{
			"effective_expiry_date": effectiveExpiry,
			"updated_at":            time.Now(),
		}).
		Where(squirrel.Eq{"user_id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update effective expiry query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error updating effective expiry date")
		return fmt.Errorf("error updating effective expiry for student ID=%d: %w", studentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	logger.Debug().Int64("studentID", studentID).Time("effectiveExpiry", effectiveExpiry).Msg("Effective expiry date updated")
	return nil
}

// FindSessionPeerExpiryTx looks up the base expiry date of any already
// registered student in the same hall and academic session. Registration
// copies this onto the newcomer; no peer means the cohort has no base
// date yet and the caller leaves it NULL.
func (r *StudentRepository) FindSessionPeerExpiryTx(ctx context.Context, tx pgx.Tx, hallID int64, academicSession string) (*time.Time, error) {
	sql, args, err := r.sb.Select("sp.base_expiry_date").
		From("student_profiles sp").
		Join("users u ON u.id = sp.user_id").
		Where(squirrel.Eq{"u.hall_id": hallID, "sp.academic_session": academicSession, "u.role": models.RoleStudent}).
		Where(squirrel.NotEq{"sp.base_expiry_date": nil}).
		OrderBy("sp.created_at ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build session peer query: %w", err)
	}

	var baseExpiry *time.Time
	if err := tx.QueryRow(ctx, sql, args...).Scan(&baseExpiry); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Int64("hallID", hallID).Str("session", academicSession).Msg("Error querying session peer expiry")
		return nil, fmt.Errorf("error finding session peer: %w", err)
	}
	return baseExpiry, nil
}

// FindCohortStudentIDs returns the ids of approved students in one hall
// matching an academic session and any of the given departments. Group
// policies resolve their targets through this.
func (r *StudentRepository) FindCohortStudentIDs(ctx context.Context, hallID int64, academicSession string, departments []string) ([]int64, error) {
	sql, args, err := r.sb.Select("sp.user_id").
		From("student_profiles sp").
		Join("users u ON u.id = sp.user_id").
		Where(squirrel.Eq{
			"u.hall_id":           hallID,
			"sp.academic_session": academicSession,
			"sp.department":       departments,
			"u.role":              models.RoleStudent,
			"u.approval_status":   models.ApprovalApproved,
		}).
		OrderBy("sp.user_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build cohort query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("hallID", hallID).Str("session", academicSession).Msg("Error querying cohort students")
		return nil, fmt.Errorf("error listing cohort students: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan cohort student id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cohort rows: %w", err)
	}

	return ids, nil
}

// IsPositionOccupied reports whether an approved student already holds the
// given bed position in a room.
func (r *StudentRepository) IsPositionOccupied(ctx context.Context, roomID int64, position string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("student_profiles sp").
		Join("users u ON u.id = sp.user_id").
		Where(squirrel.Eq{"sp.room_id": roomID, "sp.position": position, "u.approval_status": models.ApprovalApproved}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build position occupancy query: %w", err)
	}

	var one int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		logger.Error().Err(err).Int64("roomID", roomID).Str("position", position).Msg("Error checking position occupancy")
		return false, fmt.Errorf("error checking position occupancy: %w", err)
	}
	return true, nil
}

// CountRoomOccupants counts approved students assigned to a room
func (r *StudentRepository) CountRoomOccupants(ctx context.Context, roomID int64) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("student_profiles sp").
		Join("users u ON u.id = sp.user_id").
		Where(squirrel.Eq{"sp.room_id": roomID, "u.approval_status": models.ApprovalApproved}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build room occupancy query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Int64("roomID", roomID).Msg("Error counting room occupants")
		return 0, fmt.Errorf("error counting room occupants: %w", err)
	}
	return count, nil
}

// CountProfilesByHall counts the approved residents of a hall.
func (r *StudentRepository) CountProfilesByHall(ctx context.Context, hallID int64) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("users u").
		Join("student_profiles sp ON sp.user_id = u.id").
		Where(squirrel.Eq{"u.hall_id": hallID, "u.role": models.RoleStudent, "u.approval_status": models.ApprovalApproved}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build hall resident count query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Int64("hallID", hallID).Msg("Error counting hall residents")
		return 0, fmt.Errorf("error counting hall residents: %w", err)
	}
	return count, nil
}

// ListProfilesByHall lists a page of approved student profiles in a hall
// with their user rows attached, ordered by roll.
func (r *StudentRepository) ListProfilesByHall(ctx context.Context, hallID int64, offset uint64, limit int) ([]*models.User, error) {
	sql, args, err := r.sb.Select(
		"u.id", "u.name", "u.email", "u.password", "u.role", "u.phone",
		"u.approval_status", "u.rejection_reason", "u.hall_id", "u.last_login_at",
		"u.created_at", "u.updated_at",
		"sp.user_id", "sp.roll", "sp.registration", "sp.academic_session",
		"sp.admission_year", "sp.department", "sp.room_id", "sp.position",
		"sp.base_expiry_date", "sp.effective_expiry_date", "sp.balance",
		"sp.created_at", "sp.updated_at").
		From("users u").
		Join("student_profiles sp ON sp.user_id = u.id").
		Where(squirrel.Eq{"u.hall_id": hallID, "u.role": models.RoleStudent, "u.approval_status": models.ApprovalApproved}).
		OrderBy("sp.roll ASC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list hall students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("hallID", hallID).Msg("Error querying hall students")
		return nil, fmt.Errorf("error listing hall students: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		var p models.StudentProfile
		err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Phone,
			&u.ApprovalStatus, &u.RejectionReason, &u.HallID, &u.LastLoginAt,
			&u.CreatedAt, &u.UpdatedAt,
			&p.UserID, &p.Roll, &p.Registration, &p.AcademicSession,
			&p.AdmissionYear, &p.Department, &p.RoomID, &p.Position,
			&p.BaseExpiryDate, &p.EffectiveExpiryDate, &p.Balance,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hall student row: %w", err)
		}
		u.Profile = &p
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hall student rows: %w", err)
	}

	return users, nil
}
