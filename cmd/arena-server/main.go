package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tmacedo/arena-tactics/internal/api"
	"github.com/tmacedo/arena-tactics/internal/battle"
	"github.com/tmacedo/arena-tactics/internal/config"
	"github.com/tmacedo/arena-tactics/internal/constants"
	"github.com/tmacedo/arena-tactics/internal/game"
	"github.com/tmacedo/arena-tactics/internal/logging"
	"github.com/tmacedo/arena-tactics/internal/service"
	"github.com/tmacedo/arena-tactics/internal/storage"
)

func main() {
	// Load configuration (weapon table + optional seed rosters). Path may
	// be provided via ARENA_CONFIG or defaults to ./arena_config.json.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./arena_config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid arena configuration", err, logging.Fields{
			"config_path": configPath,
			"hint":        "create an arena_config.json with a 'weapon_list' array (name,type,bonuses,hit,range,abilities) and optional keys: team_list, server.address, room_ttl_minutes",
		})
	}

	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/arena.db"
	}
	seeds := make([]storage.SeedTeam, 0, len(cfg.SeedTeams))
	for _, s := range cfg.SeedTeams {
		seeds = append(seeds, storage.SeedTeam{Name: s.Name, OwnerName: s.OwnerName, Characters: s.Characters})
	}
	db, err := storage.OpenAndMigrate(dbPath, seeds)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}

	repo := storage.NewSQLiteRepository(db)
	weapons := game.NewWeaponTable(cfg.Weapons)
	battles := battle.NewManager()
	handler := api.NewHandler(repo, battles, weapons)

	// Background sweeper: expire open rooms nobody joined and evict
	// concluded sessions past their linger window.
	workerID := uuid.NewString()
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		logging.Info("room sweeper started", logging.Fields{constants.LogFieldWorkerID: workerID, "room_ttl": cfg.RoomTTL.String()})
		for range ticker.C {
			service.ExpireStaleRooms(repo, battles, time.Now(), cfg.RoomTTL)
		}
	}()

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RouteWeapons, handler.ListWeapons)

		// Identified endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.IdentityRequired())

		protected.GET(constants.RouteProfile, handler.GetProfile)
		protected.GET(constants.RouteTeamByID, handler.GetTeam)
		protected.POST(constants.RouteRooms, handler.CreateRoom)
		protected.POST(constants.RouteRoomsJoin, handler.JoinRoom)
		protected.GET(constants.RouteRoomByID, handler.RoomStatus)
		protected.DELETE(constants.RouteRoomByID, handler.CancelRoom)
		protected.GET(constants.RouteRoomBattle, handler.BattleState)
		protected.POST(constants.RouteRoomAttack, handler.Attack)
		protected.POST(constants.RouteRoomEndTurn, handler.EndTurn)
	}

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
