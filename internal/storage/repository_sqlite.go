package storage

import (
	"time"

	"gorm.io/gorm"

	"github.com/tmacedo/arena-tactics/internal/game"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) GetTeamByID(id uint) (*game.Team, error) {
	var t game.Team
	if err := r.db.Preload("Characters").First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *sqliteRepository) GetTeamCharacters(teamID uint) ([]game.Character, error) {
	var chars []game.Character
	if err := r.db.Where("team_id = ?", teamID).Order("id").Find(&chars).Error; err != nil {
		return nil, err
	}
	return chars, nil
}

func (r *sqliteRepository) CreateRoom(room *game.Room) error {
	return r.db.Create(room).Error
}

func (r *sqliteRepository) GetRoomByID(id uint) (*game.Room, error) {
	var room game.Room
	if err := r.db.First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *sqliteRepository) FindRoomByCode(code string) (*game.Room, error) {
	var room game.Room
	if err := r.db.Where("code = ?", code).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *sqliteRepository) UpdateRoom(room *game.Room) error {
	return r.db.Save(room).Error
}

func (r *sqliteRepository) DeleteRoom(id uint) error {
	// Unscoped so the room code is reusable immediately after deletion.
	return r.db.Unscoped().Delete(&game.Room{}, id).Error
}

func (r *sqliteRepository) FindExpiredOpenRooms(before time.Time) ([]game.Room, error) {
	var rooms []game.Room
	err := r.db.Where("status = ? AND created_at <= ?", game.RoomOpen, before).Find(&rooms).Error
	return rooms, err
}

func (r *sqliteRepository) GetProfileByUserID(userID string) (*game.PlayerProfile, error) {
	var p game.PlayerProfile
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
