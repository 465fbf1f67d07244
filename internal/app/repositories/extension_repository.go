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

// ExtensionRepository handles residency extension database operations.
// Extension rows are append-only: status transitions update a row in
// place but rows are never deleted, so the table doubles as the audit
// trail the recalculation reads from.
type ExtensionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewExtensionRepository creates a new ExtensionRepository
func NewExtensionRepository(db *pgxpool.Pool) *ExtensionRepository {
	return &ExtensionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const extensionColumns = "id, student_id, hall_id, new_expiry_date, type, status, batch_id, academic_session, departments, reason, rejection_reason, processed_by, processed_at, created_at, updated_at"

func scanExtension(row pgx.Row) (*models.ResidencyExtension, error) {
	var e models.ResidencyExtension
	err := row.Scan(
		&e.ID, &e.StudentID, &e.HallID, &e.NewExpiryDate, &e.Type, &e.Status,
		&e.BatchID, &e.AcademicSession, &e.Departments, &e.Reason,
		&e.RejectionReason, &e.ProcessedBy, &e.ProcessedAt,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a single extension record and returns its id. A partial
// unique index rejects a second pending individual request for the same
// student; that race surfaces here as ErrDuplicatePendingRequest.
func (r *ExtensionRepository) Create(ctx context.Context, ext *models.ResidencyExtension) (int64, error) {
	sql, args, err := r.sb.Insert("residency_extensions").
		Columns("student_id", "hall_id", "new_expiry_date", "type", "status",
			"batch_id", "academic_session", "departments", "reason", "processed_by", "processed_at").
		Values(ext.StudentID, ext.HallID, ext.NewExpiryDate, ext.Type, ext.Status,
			ext.BatchID, ext.AcademicSession, ext.Departments, ext.Reason, ext.ProcessedBy, ext.ProcessedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create extension query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "one_pending_request_per_student") {
			logger.Warn().Int64("studentID", ext.StudentID).Msg("Duplicate pending extension request rejected by index")
			return 0, apperrors.ErrDuplicatePendingRequest
		}
		logger.Error().Err(err).Int64("studentID", ext.StudentID).Msg("Error creating extension record")
		return 0, fmt.Errorf("error creating extension record: %w", err)
	}

	logger.Info().Int64("extensionID", id).Int64("studentID", ext.StudentID).Str("type", string(ext.Type)).Msg("Extension record created")
	return id, nil
}

// BulkInsert writes one batch of group policy records in a single
// multi-row INSERT so the batch commits or fails as a unit.
func (r *ExtensionRepository) BulkInsert(ctx context.Context, exts []*models.ResidencyExtension) error {
	if len(exts) == 0 {
		return nil
	}

	builder := r.sb.Insert("residency_extensions").
		Columns("student_id", "hall_id", "new_expiry_date", "type", "status",
			"batch_id", "academic_session", "departments", "reason", "processed_by", "processed_at")
	for _, ext := range exts {
		builder = builder.Values(ext.StudentID, ext.HallID, ext.NewExpiryDate, ext.Type, ext.Status,
			ext.BatchID, ext.AcademicSession, ext.Departments, ext.Reason, ext.ProcessedBy, ext.ProcessedAt)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build bulk insert query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int("count", len(exts)).Msg("Error bulk inserting extension records")
		return fmt.Errorf("error bulk inserting extension records: %w", err)
	}

	logger.Info().Int("count", len(exts)).Msg("Group policy extension records inserted")
	return nil
}

// GetByID retrieves an extension record
func (r *ExtensionRepository) GetByID(ctx context.Context, id int64) (*models.ResidencyExtension, error) {
	sql, args, err := r.sb.Select(extensionColumns).
		From("residency_extensions").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get extension query: %w", err)
	}

	ext, err := scanExtension(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExtensionNotFound
		}
		logger.Error().Err(err).Int64("extensionID", id).Msg("Error scanning extension row")
		return nil, fmt.Errorf("error retrieving extension ID=%d: %w", id, err)
	}
	return ext, nil
}

// ApprovedDatesByStudent returns the new expiry dates of every approved
// extension a student has, in no particular order. The recalculation
// takes the max over these together with the base date.
func (r *ExtensionRepository) ApprovedDatesByStudent(ctx context.Context, studentID int64) ([]time.Time, error) {
	sql, args, err := r.sb.Select("new_expiry_date").
		From("residency_extensions").
		Where(squirrel.Eq{"student_id": studentID, "status": models.ExtensionApproved}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build approved dates query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error querying approved extension dates")
		return nil, fmt.Errorf("error listing approved extension dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan extension date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating extension dates: %w", err)
	}

	return dates, nil
}

// HasPendingIndividual reports whether a student already has a pending
// individual request open.
func (r *ExtensionRepository) HasPendingIndividual(ctx context.Context, studentID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("residency_extensions").
		Where(squirrel.Eq{
			"student_id": studentID,
			"type":       models.ExtensionIndividual,
			"status":     models.ExtensionPending,
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build pending request query: %w", err)
	}

	var one int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error checking pending extension request")
		return false, fmt.Errorf("error checking pending extension request: %w", err)
	}
	return true, nil
}

// MarkProcessed transitions a pending record to approved or rejected.
// The status=pending guard makes the transition race-safe: a second
// approval of the same record affects zero rows and returns
// ErrExtensionProcessed.
func (r *ExtensionRepository) MarkProcessed(ctx context.Context, id int64, status models.ExtensionStatus, rejectionReason *string, processedBy int64, processedAt time.Time) error {
	sql, args, err := r.sb.Update("residency_extensions").
		SetMap(map[string]interface{}{
			"status":           status,
			"rejection_reason": rejectionReason,
			"processed_by":     processedBy,
			"processed_at":     processedAt,
			"updated_at":       processedAt,
		}).
		Where(squirrel.Eq{"id": id, "status": models.ExtensionPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark processed query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("extensionID", id).Msg("Error updating extension status")
		return fmt.Errorf("error updating extension ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExtensionProcessed
	}

	logger.Info().Int64("extensionID", id).Str("status", string(status)).Msg("Extension record processed")
	return nil
}

// ListByStudent lists every extension record for a student, newest first
func (r *ExtensionRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.ResidencyExtension, error) {
	sql, args, err := r.sb.Select(extensionColumns).
		From("residency_extensions").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list by student query: %w", err)
	}

	return r.queryExtensions(ctx, sql, args)
}

// ListPendingByHall lists pending individual requests scoped to one hall,
// oldest first so provosts work through the queue in arrival order.
func (r *ExtensionRepository) ListPendingByHall(ctx context.Context, hallID int64) ([]*models.ResidencyExtension, error) {
	sql, args, err := r.sb.Select(extensionColumns).
		From("residency_extensions").
		Where(squirrel.Eq{
			"hall_id": hallID,
			"type":    models.ExtensionIndividual,
			"status":  models.ExtensionPending,
		}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list pending query: %w", err)
	}

	return r.queryExtensions(ctx, sql, args)
}

func (r *ExtensionRepository) queryExtensions(ctx context.Context, sql string, args []interface{}) ([]*models.ResidencyExtension, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying extension records")
		return nil, fmt.Errorf("error listing extension records: %w", err)
	}
	defer rows.Close()

	var exts []*models.ResidencyExtension
	for rows.Next() {
		ext, err := scanExtension(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan extension row: %w", err)
		}
		exts = append(exts, ext)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating extension rows: %w", err)
	}

	return exts, nil
}

// GroupPolicyHistory aggregates group policy records per batch for one
// hall, newest batch first.
func (r *ExtensionRepository) GroupPolicyHistory(ctx context.Context, hallID int64) ([]*models.GroupPolicyBatch, error) {
	sql, args, err := r.sb.Select(
		"re.batch_id",
		"re.new_expiry_date",
		"re.reason",
		"re.processed_by",
		"u.name AS applied_by_name",
		"MIN(re.processed_at) AS applied_at",
		"re.academic_session",
		"re.departments",
		"COUNT(*) AS student_count").
		From("residency_extensions re").
		Join("users u ON u.id = re.processed_by").
		Where(squirrel.Eq{"re.hall_id": hallID, "re.type": models.ExtensionGroupPolicy}).
		Where(squirrel.NotEq{"re.batch_id": nil}).
		GroupBy("re.batch_id", "re.new_expiry_date", "re.reason", "re.processed_by", "u.name", "re.academic_session", "re.departments").
		OrderBy("applied_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build group policy history query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("hallID", hallID).Msg("Error querying group policy history")
		return nil, fmt.Errorf("error listing group policy history: %w", err)
	}
	defer rows.Close()

	var batches []*models.GroupPolicyBatch
	for rows.Next() {
		var b models.GroupPolicyBatch
		err := rows.Scan(&b.BatchID, &b.NewExpiryDate, &b.Reason, &b.AppliedByID,
			&b.AppliedByName, &b.AppliedAt, &b.AcademicSession, &b.Departments, &b.StudentCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group policy batch: %w", err)
		}
		batches = append(batches, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group policy batches: %w", err)
	}

	return batches, nil
}
