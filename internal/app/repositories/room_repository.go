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

// RoomRepository handles room database operations
type RoomRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const roomColumns = "id, hall_id, room_number, room_type, capacity, current_occupancy, status, floor, created_at, updated_at"

func scanRoom(row pgx.Row) (*models.Room, error) {
	var rm models.Room
	err := row.Scan(
		&rm.ID, &rm.HallID, &rm.RoomNumber, &rm.RoomType, &rm.Capacity,
		&rm.CurrentOccupancy, &rm.Status, &rm.Floor, &rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

// CreateRoom inserts a room and returns its id
func (r *RoomRepository) CreateRoom(ctx context.Context, room *models.Room) (int64, error) {
	sql, args, err := r.sb.Insert("rooms").
		Columns("hall_id", "room_number", "room_type", "capacity", "status", "floor").
		Values(room.HallID, room.RoomNumber, room.RoomType, room.Capacity, room.Status, room.Floor).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create room query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "rooms_hall_id_room_number_key") {
			return 0, apperrors.ErrRoomAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrHallNotFound
		}
		logger.Error().Err(err).Str("roomNumber", room.RoomNumber).Msg("Error creating room")
		return 0, fmt.Errorf("error creating room: %w", err)
	}

	logger.Info().Int64("roomID", id).Int64("hallID", room.HallID).Str("roomNumber", room.RoomNumber).Msg("Room created")
	return id, nil
}

// GetRoomByID retrieves a room by id
func (r *RoomRepository) GetRoomByID(ctx context.Context, id int64) (*models.Room, error) {
	sql, args, err := r.sb.Select(roomColumns).
		From("rooms").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get room query: %w", err)
	}

	room, err := scanRoom(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		logger.Error().Err(err).Int64("roomID", id).Msg("Error scanning room row")
		return nil, fmt.Errorf("error retrieving room ID=%d: %w", id, err)
	}
	return room, nil
}

// ListRoomsByHall lists a hall's rooms ordered by room number
func (r *RoomRepository) ListRoomsByHall(ctx context.Context, hallID int64) ([]*models.Room, error) {
	sql, args, err := r.sb.Select(roomColumns).
		From("rooms").
		Where(squirrel.Eq{"hall_id": hallID}).
		OrderBy("room_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list rooms query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("hallID", hallID).Msg("Error querying rooms")
		return nil, fmt.Errorf("error listing rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room row: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating room rows: %w", err)
	}

	return rooms, nil
}

// UpdateOccupancy sets a room's occupancy count and derived status
func (r *RoomRepository) UpdateOccupancy(ctx context.Context, roomID int64, occupancy int, status models.RoomStatus) error {
	sql, args, err := r.sb.Update("rooms").
		SetMap(map[string]interface{}{
			"current_occupancy": occupancy,
			"status":            status,
			"updated_at":        time.Now(),
		}).
		Where(squirrel.Eq{"id": roomID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update occupancy query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("roomID", roomID).Msg("Error updating room occupancy")
		return fmt.Errorf("error updating occupancy for room ID=%d: %w", roomID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRoomNotFound
	}
	return nil
}
