package api

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tmacedo/arena-tactics/internal/constants"
	"github.com/tmacedo/arena-tactics/internal/game"
)

// ListWeapons returns the static weapon table, sorted by name.
func (h *Handler) ListWeapons(c *gin.Context) {
	weapons := make([]game.Weapon, 0, len(h.weapons))
	for _, w := range h.weapons {
		weapons = append(weapons, w)
	}
	sort.Slice(weapons, func(i, j int) bool { return weapons[i].Name < weapons[j].Name })
	c.JSON(http.StatusOK, weapons)
}

// GetProfile returns the calling player's profile.
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.repo.GetProfileByUserID(currentUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrProfileNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInternal})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id": profile.UserID,
		"name":    profile.Name,
	})
}

// GetTeam returns a team roster snapshot, characters in stable ID order.
func (h *Handler) GetTeam(c *gin.Context) {
	teamID, ok := parseUintParam(c, "teamID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidTeamID})
		return
	}
	team, err := h.repo.GetTeamByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrTeamNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchTeam})
		return
	}
	sort.Slice(team.Characters, func(i, j int) bool { return team.Characters[i].ID < team.Characters[j].ID })
	c.JSON(http.StatusOK, team)
}
