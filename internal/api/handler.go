package api

import (
	"github.com/tmacedo/arena-tactics/internal/battle"
	"github.com/tmacedo/arena-tactics/internal/game"
	"github.com/tmacedo/arena-tactics/internal/storage"
)

// Handler groups all HTTP handlers around their shared collaborators.
type Handler struct {
	repo    storage.Repository
	battles *battle.Manager
	weapons game.WeaponTable
}

// NewHandler creates a Handler with the given repository, session manager
// and static weapon table.
func NewHandler(repo storage.Repository, battles *battle.Manager, weapons game.WeaponTable) *Handler {
	return &Handler{repo: repo, battles: battles, weapons: weapons}
}
