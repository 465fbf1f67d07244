package services

import (
	"context"

	"github.com/yigit/hallsphere/internal/app/models"
	"github.com/yigit/hallsphere/internal/app/models/dto"
	"github.com/yigit/hallsphere/internal/app/repositories"
	"github.com/yigit/hallsphere/internal/pkg/apperrors"
)

// HallService manages halls and their rooms
type HallService interface {
	CreateHall(ctx context.Context, req *dto.CreateHallRequest) (*models.Hall, error)
	GetHall(ctx context.Context, id int64) (*models.Hall, error)
	ListHalls(ctx context.Context, activeOnly bool) ([]*models.Hall, error)
	CreateRoom(ctx context.Context, hallID int64, req *dto.CreateRoomRequest) (*models.Room, error)
	ListRooms(ctx context.Context, hallID int64) ([]*models.Room, error)
}

type hallService struct {
	hallRepo *repositories.HallRepository
	roomRepo *repositories.RoomRepository
}

// NewHallService creates a new HallService
func NewHallService(hallRepo *repositories.HallRepository, roomRepo *repositories.RoomRepository) HallService {
	return &hallService{
		hallRepo: hallRepo,
		roomRepo: roomRepo,
	}
}

func (s *hallService) CreateHall(ctx context.Context, req *dto.CreateHallRequest) (*models.Hall, error) {
	if req.Gender != string(models.HallMale) && req.Gender != string(models.HallFemale) {
		return nil, apperrors.NewValidationError("gender must be male or female")
	}
	if req.TotalCapacity <= 0 {
		return nil, apperrors.NewValidationError("totalCapacity must be positive")
	}

	hall := &models.Hall{
		Name:          req.Name,
		Gender:        models.HallGender(req.Gender),
		Location:      req.Location,
		Description:   req.Description,
		TotalFloors:   req.TotalFloors,
		MonthlyRent:   req.MonthlyRent,
		SecretCode:    req.SecretCode,
		TotalCapacity: req.TotalCapacity,
		IsActive:      true,
	}

	id, err := s.hallRepo.CreateHall(ctx, hall)
	if err != nil {
		return nil, err
	}
	hall.ID = id
	return hall, nil
}

func (s *hallService) GetHall(ctx context.Context, id int64) (*models.Hall, error) {
	return s.hallRepo.GetHallByID(ctx, id)
}

func (s *hallService) ListHalls(ctx context.Context, activeOnly bool) ([]*models.Hall, error) {
	return s.hallRepo.ListHalls(ctx, activeOnly)
}

func (s *hallService) CreateRoom(ctx context.Context, hallID int64, req *dto.CreateRoomRequest) (*models.Room, error) {
	if req.Capacity < 1 || req.Capacity > 4 {
		return nil, apperrors.NewValidationError("room capacity must be between 1 and 4")
	}

	if _, err := s.hallRepo.GetHallByID(ctx, hallID); err != nil {
		return nil, err
	}

	room := &models.Room{
		HallID:     hallID,
		RoomNumber: req.RoomNumber,
		RoomType:   req.RoomType,
		Capacity:   req.Capacity,
		Status:     models.RoomVacant,
		Floor:      req.Floor,
	}

	id, err := s.roomRepo.CreateRoom(ctx, room)
	if err != nil {
		return nil, err
	}
	room.ID = id
	return room, nil
}

func (s *hallService) ListRooms(ctx context.Context, hallID int64) ([]*models.Room, error) {
	if _, err := s.hallRepo.GetHallByID(ctx, hallID); err != nil {
		return nil, err
	}
	return s.roomRepo.ListRoomsByHall(ctx, hallID)
}
