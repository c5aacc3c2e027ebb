package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tmacedo/arena-tactics/internal/battle"
	"github.com/tmacedo/arena-tactics/internal/constants"
	"github.com/tmacedo/arena-tactics/internal/service"
)

// BattleState is the ~1.5s polling endpoint. Concurrent polls for the
// same room are coalesced in the service layer so both clients share one
// snapshot build.
func (h *Handler) BattleState(c *gin.Context) {
	roomID, ok := parseUintParam(c, "roomID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRoomID})
		return
	}
	v, err := service.BattleState(h.battles, roomID)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrRoomNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchState})
		return
	}
	c.JSON(http.StatusOK, v)
}

type AttackPayload struct {
	AttackerID uint `json:"attacker_id"`
	TargetID   uint `json:"target_id"`
}

// Attack applies one attack for the caller's current turn.
func (h *Handler) Attack(c *gin.Context) {
	roomID, ok := parseUintParam(c, "roomID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRoomID})
		return
	}
	var req AttackPayload
	if err := c.ShouldBindJSON(&req); err != nil || req.AttackerID == 0 || req.TargetID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	result, err := service.Attack(h.battles, roomID, currentUserID(c), req.AttackerID, req.TargetID)
	if err != nil {
		h.battleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// EndTurn hands the turn to the opponent.
func (h *Handler) EndTurn(c *gin.Context) {
	roomID, ok := parseUintParam(c, "roomID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRoomID})
		return
	}
	turn, err := service.EndTurn(h.battles, roomID, currentUserID(c))
	if err != nil {
		h.battleError(c, err)
		return
	}
	c.JSON(http.StatusOK, turn)
}

// battleError maps session errors to HTTP statuses with a human-readable
// message. No battle error is fatal to the session.
func (h *Handler) battleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrRoomNotFound})
	case errors.Is(err, battle.ErrNotYourTurn):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotYourTurn})
	case errors.Is(err, battle.ErrAlreadyAttacked):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrAlreadyAttacked})
	case errors.Is(err, battle.ErrInvalidTarget):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidTarget})
	case errors.Is(err, battle.ErrConcluded):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleOver})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInternal})
	}
}
