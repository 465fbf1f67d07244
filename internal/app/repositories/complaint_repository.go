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
	"github.com/yigit/hallsphere/internal/pkg/logger"
)

// ComplaintRepository handles complaint database operations
type ComplaintRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewComplaintRepository creates a new ComplaintRepository
func NewComplaintRepository(db *pgxpool.Pool) *ComplaintRepository {
	return &ComplaintRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const complaintColumns = "id, title, description, category, status, priority, hall_id, created_by, assigned_to, resolved_at, created_at, updated_at"

func scanComplaint(row pgx.Row) (*models.Complaint, error) {
	var c models.Complaint
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.Category, &c.Status, &c.Priority,
		&c.HallID, &c.CreatedBy, &c.AssignedTo, &c.ResolvedAt,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CountByStatus counts complaints in one status across all halls
func (r *ComplaintRepository) CountByStatus(ctx context.Context, status models.ComplaintStatus) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("complaints").
		Where(squirrel.Eq{"status": status}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count complaints query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Str("status", string(status)).Msg("Error counting complaints")
		return 0, fmt.Errorf("error counting complaints: %w", err)
	}
	return count, nil
}

// Create inserts a complaint and returns its id
func (r *ComplaintRepository) Create(ctx context.Context, c *models.Complaint) (int64, error) {
	sql, args, err := r.sb.Insert("complaints").
		Columns("title", "description", "category", "status", "priority", "hall_id", "created_by").
		Values(c.Title, c.Description, c.Category, c.Status, c.Priority, c.HallID, c.CreatedBy).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create complaint query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("createdBy", c.CreatedBy).Msg("Error creating complaint")
		return 0, fmt.Errorf("error creating complaint: %w", err)
	}

	logger.Info().Int64("complaintID", id).Str("category", string(c.Category)).Msg("Complaint created")
	return id, nil
}

// GetByID retrieves a complaint
func (r *ComplaintRepository) GetByID(ctx context.Context, id int64) (*models.Complaint, error) {
	sql, args, err := r.sb.Select(complaintColumns).
		From("complaints").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get complaint query: %w", err)
	}

	c, err := scanComplaint(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrComplaintNotFound
		}
		logger.Error().Err(err).Int64("complaintID", id).Msg("Error scanning complaint row")
		return nil, fmt.Errorf("error retrieving complaint ID=%d: %w", id, err)
	}
	return c, nil
}

// ListByHall lists a hall's complaints, optionally filtered by status,
// urgent first then newest.
func (r *ComplaintRepository) ListByHall(ctx context.Context, hallID int64, status *models.ComplaintStatus) ([]*models.Complaint, error) {
	builder := r.sb.Select(complaintColumns).
		From("complaints").
		Where(squirrel.Eq{"hall_id": hallID}).
		OrderBy("priority DESC", "created_at DESC")
	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list complaints query: %w", err)
	}

	return r.queryComplaints(ctx, sql, args)
}

// ListByCreator lists complaints filed by one user, newest first
func (r *ComplaintRepository) ListByCreator(ctx context.Context, userID int64) ([]*models.Complaint, error) {
	sql, args, err := r.sb.Select(complaintColumns).
		From("complaints").
		Where(squirrel.Eq{"created_by": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list complaints by creator query: %w", err)
	}

	return r.queryComplaints(ctx, sql, args)
}

func (r *ComplaintRepository) queryComplaints(ctx context.Context, sql string, args []interface{}) ([]*models.Complaint, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying complaints")
		return nil, fmt.Errorf("error listing complaints: %w", err)
	}
	defer rows.Close()

	var complaints []*models.Complaint
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan complaint row: %w", err)
		}
		complaints = append(complaints, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating complaint rows: %w", err)
	}

	return complaints, nil
}

// UpdateStatus moves a complaint to a new handling state
func (r *ComplaintRepository) UpdateStatus(ctx context.Context, id int64, status models.ComplaintStatus, assignedTo *int64, resolvedAt *time.Time) error {
	sql, args, err := r.sb.Update("complaints").
		SetMap(map[string]interface{}{
			"status":      status,
			"assigned_to": assignedTo,
			"resolved_at": resolvedAt,
			"updated_at":  time.Now(),
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update complaint status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("complaintID", id).Msg("Error updating complaint status")
		return fmt.Errorf("error updating complaint ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrComplaintNotFound
	}

	logger.Info().Int64("complaintID", id).Str("status", string(status)).Msg("Complaint status updated")
	return nil
}
