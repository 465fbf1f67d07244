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

// ClearanceRepository handles hall clearance database operations
type ClearanceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewClearanceRepository creates a new ClearanceRepository
func NewClearanceRepository(db *pgxpool.Pool) *ClearanceRepository {
	return &ClearanceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const clearanceColumns = "id, clearance_code, student_id, hall_id, department, clearance_reason, semester, year, reason_details, status, rejection_reason, approved_by, approved_at, created_at, updated_at"

func scanClearance(row pgx.Row) (*models.HallClearance, error) {
	var c models.HallClearance
	err := row.Scan(
		&c.ID, &c.ClearanceCode, &c.StudentID, &c.HallID, &c.Department,
		&c.ClearanceReason, &c.Semester, &c.Year, &c.ReasonDetails,
		&c.Status, &c.RejectionReason, &c.ApprovedBy, &c.ApprovedAt,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a clearance request and returns its id. A partial unique
// index keeps at most one pending request per student.
func (r *ClearanceRepository) Create(ctx context.Context, c *models.HallClearance) (int64, error) {
	sql, args, err := r.sb.Insert("hall_clearances").
		Columns("clearance_code", "student_id", "hall_id", "department", "clearance_reason",
			"semester", "year", "reason_details", "status").
		Values(c.ClearanceCode, c.StudentID, c.HallID, c.Department, c.ClearanceReason,
			c.Semester, c.Year, c.ReasonDetails, c.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create clearance query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "one_pending_clearance_per_student") {
			return 0, apperrors.ErrDuplicatePendingClearance
		}
		logger.Error().Err(err).Int64("studentID", c.StudentID).Msg("Error creating clearance request")
		return 0, fmt.Errorf("error creating clearance request: %w", err)
	}

	logger.Info().Int64("clearanceID", id).Str("code", c.ClearanceCode).Msg("Clearance request created")
	return id, nil
}

// GetByID retrieves a clearance request
func (r *ClearanceRepository) GetByID(ctx context.Context, id int64) (*models.HallClearance, error) {
	sql, args, err := r.sb.Select(clearanceColumns).
		From("hall_clearances").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get clearance query: %w", err)
	}

	c, err := scanClearance(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClearanceNotFound
		}
		logger.Error().Err(err).Int64("clearanceID", id).Msg("Error scanning clearance row")
		return nil, fmt.Errorf("error retrieving clearance ID=%d: %w", id, err)
	}
	return c, nil
}

// ListByStudent lists a student's clearance requests, newest first
func (r *ClearanceRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.HallClearance, error) {
	sql, args, err := r.sb.Select(clearanceColumns).
		From("hall_clearances").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list clearances by student query: %w", err)
	}

	return r.queryClearances(ctx, sql, args)
}

// ListPendingByHall lists a hall's pending clearance requests, oldest first
func (r *ClearanceRepository) ListPendingByHall(ctx context.Context, hallID int64) ([]*models.HallClearance, error) {
	sql, args, err := r.sb.Select(clearanceColumns).
		From("hall_clearances").
		Where(squirrel.Eq{"hall_id": hallID, "status": models.ClearancePending}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list pending clearances query: %w", err)
	}

	return r.queryClearances(ctx, sql, args)
}

func (r *ClearanceRepository) queryClearances(ctx context.Context, sql string, args []interface{}) ([]*models.HallClearance, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying clearance requests")
		return nil, fmt.Errorf("error listing clearance requests: %w", err)
	}
	defer rows.Close()

	var clearances []*models.HallClearance
	for rows.Next() {
		c, err := scanClearance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clearance row: %w", err)
		}
		clearances = append(clearances, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clearance rows: %w", err)
	}

	return clearances, nil
}

// MarkProcessed transitions a pending clearance to approved or rejected.
// The status=pending guard keeps double processing out.
func (r *ClearanceRepository) MarkProcessed(ctx context.Context, id int64, status models.ClearanceStatus, rejectionReason *string, approvedBy int64, approvedAt time.Time) error {
	sql, args, err := r.sb.Update("hall_clearances").
		SetMap(map[string]interface{}{
			"status":           status,
			"rejection_reason": rejectionReason,
			"approved_by":      approvedBy,
			"approved_at":      approvedAt,
			"updated_at":       approvedAt,
		}).
		Where(squirrel.Eq{"id": id, "status": models.ClearancePending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark clearance processed query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("clearanceID", id).Msg("Error updating clearance status")
		return fmt.Errorf("error updating clearance ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClearanceProcessed
	}

	logger.Info().Int64("clearanceID", id).Str("status", string(status)).Msg("Clearance request processed")
	return nil
}

// HasPending reports whether a student already has a pending clearance open
func (r *ClearanceRepository) HasPending(ctx context.Context, studentID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("hall_clearances").
		Where(squirrel.Eq{"student_id": studentID, "status": models.ClearancePending}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build pending clearance query: %w", err)
	}

	var one int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error checking pending clearance")
		return false, fmt.Errorf("error checking pending clearance: %w", err)
	}
	return true, nil
}
