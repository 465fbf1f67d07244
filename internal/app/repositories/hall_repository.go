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

// HallRepository handles hall database operations
type HallRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewHallRepository creates a new HallRepository
func NewHallRepository(db *pgxpool.Pool) *HallRepository {
	return &HallRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const hallColumns = "id, name, gender, location, description, total_floors, monthly_rent, secret_code, provost_id, total_capacity, current_occupants, is_active, created_at, updated_at"

func scanHall(row pgx.Row) (*models.Hall, error) {
	var h models.Hall
	err := row.Scan(
		&h.ID, &h.Name, &h.Gender, &h.Location, &h.Description,
		&h.TotalFloors, &h.MonthlyRent, &h.SecretCode, &h.ProvostID,
		&h.TotalCapacity, &h.CurrentOccupants, &h.IsActive,
		&h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// CreateHall inserts a hall and returns its id
func (r *HallRepository) CreateHall(ctx context.Context, hall *models.Hall) (int64, error) {
	sql, args, err := r.sb.Insert("halls").
		Columns("name", "gender", "location", "description", "total_floors", "monthly_rent",
			"secret_code", "total_capacity", "is_active").
		Values(hall.Name, hall.Gender, hall.Location, hall.Description, hall.TotalFloors,
			hall.MonthlyRent, hall.SecretCode, hall.TotalCapacity, hall.IsActive).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create hall query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "halls_name_key") {
			return 0, apperrors.ErrHallAlreadyExists
		}
		logger.Error().Err(err).Str("name", hall.Name).Msg("Error creating hall")
		return 0, fmt.Errorf("error creating hall: %w", err)
	}

	logger.Info().Int64("hallID", id).Str("name", hall.Name).Msg("Hall created")
	return id, nil
}

// GetHallByID retrieves a hall by id
func (r *HallRepository) GetHallByID(ctx context.Context, id int64) (*models.Hall, error) {
	sql, args, err := r.sb.Select(hallColumns).
		From("halls").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get hall query: %w", err)
	}

	hall, err := scanHall(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrHallNotFound
		}
		logger.Error().Err(err).Int64("hallID", id).Msg("Error scanning hall row")
		return nil, fmt.Errorf("error retrieving hall ID=%d: %w", id, err)
	}
	return hall, nil
}

// ListHalls lists halls, optionally only active ones
func (r *HallRepository) ListHalls(ctx context.Context, activeOnly bool) ([]*models.Hall, error) {
	builder := r.sb.Select(hallColumns).
		From("halls").
		OrderBy("name ASC")
	if activeOnly {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list halls query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying halls")
		return nil, fmt.Errorf("error listing halls: %w", err)
	}
	defer rows.Close()

	var halls []*models.Hall
	for rows.Next() {
		hall, err := scanHall(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hall row: %w", err)
		}
		halls = append(halls, hall)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hall rows: %w", err)
	}

	return halls, nil
}

// CountActive counts halls that are currently active
func (r *HallRepository) CountActive(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("halls").
		Where(squirrel.Eq{"is_active": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count halls query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error counting active halls")
		return 0, fmt.Errorf("error counting active halls: %w", err)
	}
	return count, nil
}

// SetProvost assigns or clears the hall's provost
func (r *HallRepository) SetProvost(ctx context.Context, hallID int64, provostID *int64) error {
	sql, args, err := r.sb.Update("halls").
		SetMap(map[string]interface{}{
			"provost_id": provostID,
			"updated_at": time.Now(),
		}).
		Where(squirrel.Eq{"id": hallID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set provost query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("hallID", hallID).Msg("Error setting hall provost")
		return fmt.Errorf("error setting provost for hall ID=%d: %w", hallID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrHallNotFound
	}
	return nil
}

// AdjustOccupancy moves the occupant counter by delta, clamped to the
// hall's capacity bounds at the database level.
func (r *HallRepository) AdjustOccupancy(ctx context.Context, hallID int64, delta int) error {
	sql, args, err := r.sb.Update("halls").
		Set("current_occupants", squirrel.Expr("current_occupants + ?", delta)).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": hallID}).
		Where(squirrel.Expr("current_occupants + ? BETWEEN 0 AND total_capacity", delta)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build adjust occupancy query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("hallID", hallID).Int("delta", delta).Msg("Error adjusting hall occupancy")
		return fmt.Errorf("error adjusting occupancy for hall ID=%d: %w", hallID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRoomFull
	}

	return nil
}
