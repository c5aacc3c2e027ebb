package storage

import (
	"time"

	"github.com/tmacedo/arena-tactics/internal/game"
)

type Repository interface {
	// Roster store (read-only input to battle initialization).
	GetTeamByID(id uint) (*game.Team, error)
	GetTeamCharacters(teamID uint) ([]game.Character, error)

	// Room registry persistence.
	CreateRoom(r *game.Room) error
	GetRoomByID(id uint) (*game.Room, error)
	FindRoomByCode(code string) (*game.Room, error)
	UpdateRoom(r *game.Room) error
	// DeleteRoom is idempotent: deleting an absent room is not an error.
	DeleteRoom(id uint) error

	// FindExpiredOpenRooms returns open rooms created at or before the
	// given time. The sweeper decides how to tear them down.
	FindExpiredOpenRooms(before time.Time) ([]game.Room, error)

	GetProfileByUserID(userID string) (*game.PlayerProfile, error)
}
