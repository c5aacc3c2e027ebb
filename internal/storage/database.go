package storage

import (
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tmacedo/arena-tactics/internal/constants"
	"github.com/tmacedo/arena-tactics/internal/game"
	"github.com/tmacedo/arena-tactics/internal/logging"
)

// SeedTeam describes a roster inserted on first startup so a fresh server
// is immediately playable.
type SeedTeam struct {
	Name       string
	OwnerName  string
	Characters []game.Character
}

// OpenAndMigrate opens the sqlite database, migrates the schema and seeds
// demo rosters when the teams table is empty.
func OpenAndMigrate(dataSourceName string, seeds []SeedTeam) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.PlayerProfile{}, &game.Character{}, &game.Team{}, &game.Room{}); err != nil {
		return nil, err
	}
	seedTeams(db, seeds)
	return db, nil
}

// seedTeams inserts the configured rosters once. Each owner gets a fresh
// opaque user ID; the IDs are logged so local clients know what to send in
// the identity header.
func seedTeams(db *gorm.DB, seeds []SeedTeam) {
	var count int64
	db.Model(&game.Team{}).Count(&count)
	if count > 0 {
		return
	}
	for _, s := range seeds {
		userID := uuid.NewString()
		profile := game.PlayerProfile{UserID: userID, Name: s.OwnerName}
		if err := db.Create(&profile).Error; err != nil {
			logging.Error("failed to seed player profile", err, logging.Fields{"owner": s.OwnerName})
			continue
		}
		team := game.Team{Name: s.Name, OwnerUserID: userID, Characters: s.Characters}
		if err := db.Create(&team).Error; err != nil {
			logging.Error("failed to seed team", err, logging.Fields{"team": s.Name})
			continue
		}
		logging.Info("seeded team", logging.Fields{
			"team":                   team.Name,
			constants.LogFieldTeamID: team.ID,
			"owner":                  s.OwnerName,
			constants.LogFieldUserID: userID,
		})
	}
}
