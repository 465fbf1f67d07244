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

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const userColumns = "id, name, email, password, role, phone, approval_status, rejection_reason, hall_id, last_login_at, created_at, updated_at"

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.Role,
		&user.Phone, &user.ApprovalStatus, &user.RejectionReason,
		&user.HallID, &user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUserTx inserts a user inside an existing transaction and returns the
// new id. Registration writes the user row and the student profile
// atomically, so creation is tx-scoped.
func (r *UserRepository) CreateUserTx(ctx context.Context, tx pgx.Tx, user *models.User) (int64, error) {
	sql, args, err := r.sb.Insert("users").
		Columns("name", "email", "password", "role", "phone", "approval_status", "hall_id").
		Values(user.Name, user.Email, user.Password, user.Role, user.Phone, user.ApprovalStatus, user.HallID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			logger.Warn().Str("email", user.Email).Msg("Attempted to register duplicate email")
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	logger.Info().Int64("userID", id).Str("role", string(user.Role)).Msg("User created")
	return id, nil
}

// GetUserByID retrieves a user by id
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", id).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user ID=%d: %w", id, err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user by email query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning user row by email")
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}
	return user, nil
}

// GetUserByIDAndRole retrieves a user only when it has the given role
func (r *UserRepository) GetUserByIDAndRole(ctx context.Context, id int64, role models.RoleType) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"id": id, "role": role}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user by role query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", id).Str("role", string(role)).Msg("Error scanning user row by role")
		return nil, fmt.Errorf("error retrieving user ID=%d: %w", id, err)
	}
	return user, nil
}

// UpdateApprovalStatus sets the approval state and optional rejection reason
func (r *UserRepository) UpdateApprovalStatus(ctx context.Context, id int64, status models.ApprovalStatus, rejectionReason *string) error {
	sql, args, err := r.sb.Update("users").
		SetMap(map[string]interface{}{
			"approval_status":  status,
			"rejection_reason": rejectionReason,
			"updated_at":       time.Now(),
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update approval status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", id).Msg("Error updating approval status")
		return fmt.Errorf("error updating approval status for user ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	logger.Info().Int64("userID", id).Str("status", string(status)).Msg("User approval status updated")
	return nil
}

// UpdateHall re-points a user's hall assignment; nil clears it
func (r *UserRepository) UpdateHall(ctx context.Context, id int64, hallID *int64) error {
	sql, args, err := r.sb.Update("users").
		SetMap(map[string]interface{}{
			"hall_id":    hallID,
			"updated_at": time.Now(),
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update hall query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", id).Msg("Error updating user hall")
		return fmt.Errorf("error updating hall for user ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin stamps the last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("users").
		Set("last_login_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update last login query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", id).Msg("Error updating last login")
		return fmt.Errorf("error updating last login for user ID=%d: %w", id, err)
	}
	return nil
}

// ListByRoleAndStatus lists users of one role, optionally filtered by
// approval status and hall, newest first.
func (r *UserRepository) ListByRoleAndStatus(ctx context.Context, role models.RoleType, status *models.ApprovalStatus, hallID *int64) ([]*models.User, error) {
	builder := r.sb.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"role": role}).
		OrderBy("created_at DESC")

	if status != nil {
		builder = builder.Where(squirrel.Eq{"approval_status": *status})
	}
	if hallID != nil {
		builder = builder.Where(squirrel.Eq{"hall_id": *hallID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("role", string(role)).Msg("Error querying users")
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// CountByRoleAndStatus counts users of one role in one approval status
func (r *UserRepository) CountByRoleAndStatus(ctx context.Context, role models.RoleType, status models.ApprovalStatus) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("users").
		Where(squirrel.Eq{"role": role, "approval_status": status}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count users query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Str("role", string(role)).Str("status", string(status)).Msg("Error counting users")
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}

// GetHallID returns the hall a user is assigned to, or ErrHallScopeMissing
// when the user has none. The hall scope middleware resolves actor scope
// through this.
func (r *UserRepository) GetHallID(ctx context.Context, userID int64) (int64, error) {
	sql, args, err := r.sb.Select("hall_id").
		From("users").
		Where(squirrel.Eq{"id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build get hall id query: %w", err)
	}

	var hallID *int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&hallID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error querying user hall id")
		return 0, fmt.Errorf("error retrieving hall for user ID=%d: %w", userID, err)
	}
	if hallID == nil {
		return 0, apperrors.ErrHallScopeMissing
	}
	return *hallID, nil
}
