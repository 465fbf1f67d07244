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

// NoticeRepository handles notice database operations
type NoticeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNoticeRepository creates a new NoticeRepository
func NewNoticeRepository(db *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const noticeColumns = "id, title, content, visibility, hall_id, created_by, expiry_date, is_active, created_at, updated_at"

func scanNotice(row pgx.Row) (*models.Notice, error) {
	var n models.Notice
	err := row.Scan(
		&n.ID, &n.Title, &n.Content, &n.Visibility, &n.HallID,
		&n.CreatedBy, &n.ExpiryDate, &n.IsActive, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Count counts all notices, active or not
func (r *NoticeRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("notices").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count notices query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error counting notices")
		return 0, fmt.Errorf("error counting notices: %w", err)
	}
	return count, nil
}

// Create inserts a notice and returns its id
func (r *NoticeRepository) Create(ctx context.Context, n *models.Notice) (int64, error) {
	sql, args, err := r.sb.Insert("notices").
		Columns("title", "content", "visibility", "hall_id", "created_by", "expiry_date", "is_active").
		Values(n.Title, n.Content, n.Visibility, n.HallID, n.CreatedBy, n.ExpiryDate, n.IsActive).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create notice query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("createdBy", n.CreatedBy).Msg("Error creating notice")
		return 0, fmt.Errorf("error creating notice: %w", err)
	}

	logger.Info().Int64("noticeID", id).Str("visibility", string(n.Visibility)).Msg("Notice created")
	return id, nil
}

// GetByID retrieves a notice
func (r *NoticeRepository) GetByID(ctx context.Context, id int64) (*models.Notice, error) {
	sql, args, err := r.sb.Select(noticeColumns).
		From("notices").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get notice query: %w", err)
	}

	n, err := scanNotice(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoticeNotFound
		}
		logger.Error().Err(err).Int64("noticeID", id).Msg("Error scanning notice row")
		return nil, fmt.Errorf("error retrieving notice ID=%d: %w", id, err)
	}
	return n, nil
}

// ListVisibleToHall lists active unexpired notices a hall's residents can
// read: public ones plus the hall's own private ones.
func (r *NoticeRepository) ListVisibleToHall(ctx context.Context, hallID int64, now time.Time) ([]*models.Notice, error) {
	sql, args, err := r.sb.Select(noticeColumns).
		From("notices").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Or{
			squirrel.Eq{"visibility": models.NoticePublic},
			squirrel.And{
				squirrel.Eq{"visibility": models.NoticePrivate},
				squirrel.Eq{"hall_id": hallID},
			},
		}).
		Where(squirrel.Or{
			squirrel.Eq{"expiry_date": nil},
			squirrel.GtOrEq{"expiry_date": now},
		}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list notices query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("hallID", hallID).Msg("Error querying notices")
		return nil, fmt.Errorf("error listing notices: %w", err)
	}
	defer rows.Close()

	var notices []*models.Notice
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notice row: %w", err)
		}
		notices = append(notices, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notice rows: %w", err)
	}

	return notices, nil
}

// Deactivate hides a notice without deleting it
func (r *NoticeRepository) Deactivate(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("notices").
		SetMap(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build deactivate notice query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("noticeID", id).Msg("Error deactivating notice")
		return fmt.Errorf("error deactivating notice ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoticeNotFound
	}
	return nil
}
