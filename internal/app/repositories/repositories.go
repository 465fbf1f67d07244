package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles every repository behind a single constructor so the
// bootstrap wires the data layer in one step.
type Repositories struct {
	Users      *UserRepository
	Students   *StudentRepository
	Extensions *ExtensionRepository
	Halls      *HallRepository
	Rooms      *RoomRepository
	Complaints *ComplaintRepository
	Notices    *NoticeRepository
	Clearances *ClearanceRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(db),
		Students:   NewStudentRepository(db),
		Extensions: NewExtensionRepository(db),
		Halls:      NewHallRepository(db),
		Rooms:      NewRoomRepository(db),
		Complaints: NewComplaintRepository(db),
		Notices:    NewNoticeRepository(db),
		Clearances: NewClearanceRepository(db),
	}
}
