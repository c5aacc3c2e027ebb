package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tmacedo/arena-tactics/internal/constants"
	"github.com/tmacedo/arena-tactics/internal/service"
)

type CreateRoomPayload struct {
	TeamID uint `json:"team_id"`
}

// CreateRoom opens a matchmaking room for the caller's team and returns
// its ID and short join code.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req CreateRoomPayload
	if err := c.ShouldBindJSON(&req); err != nil || req.TeamID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	room, err := service.CreateRoom(h.repo, currentUserID(c), req.TeamID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrTeamNotFound})
		case errors.Is(err, service.ErrTeamNotBattleReady):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateRoom})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"room_id": room.ID,
		"code":    room.Code,
	})
}

type JoinRoomPayload struct {
	Code   string `json:"code"`
	TeamID uint   `json:"team_id"`
}

// JoinRoom matches the caller into an open room by its short code.
func (h *Handler) JoinRoom(c *gin.Context) {
	var req JoinRoomPayload
	if err := c.ShouldBindJSON(&req); err != nil || req.TeamID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	code := normalizeRoomCode(req.Code)
	if !roomCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRoomCode})
		return
	}
	room, err := service.JoinRoom(h.repo, h.battles, h.weapons, currentUserID(c), req.TeamID, code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrRoomNotFound})
		case errors.Is(err, service.ErrRoomAlreadyFull):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrRoomAlreadyFull})
		case errors.Is(err, service.ErrSelfJoin):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrCannotJoinOwnRoom})
		case errors.Is(err, service.ErrTeamNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrTeamNotFound})
		case errors.Is(err, service.ErrTeamNotBattleReady):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedJoinRoom})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"room_id": room.ID,
		"host_id": room.HostUserID,
	})
}

// RoomStatus is the polling endpoint used to detect match completion.
func (h *Handler) RoomStatus(c *gin.Context) {
	roomID, ok := parseUintParam(c, "roomID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRoomID})
		return
	}
	room, err := service.RoomStatus(h.repo, roomID)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrRoomNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInternal})
		return
	}
	var joinerID interface{}
	if room.Matched() {
		joinerID = room.JoinerUserID
	}
	c.JSON(http.StatusOK, gin.H{
		"room_id":   room.ID,
		"code":      room.Code,
		"status":    room.Status,
		"host_id":   room.HostUserID,
		"joiner_id": joinerID,
	})
}

// CancelRoom deletes a room and tears down its battle session. Idempotent:
// cancelling an already-gone room succeeds.
func (h *Handler) CancelRoom(c *gin.Context) {
	roomID, ok := parseUintParam(c, "roomID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRoomID})
		return
	}
	if err := service.CancelRoom(h.repo, h.battles, roomID, currentUserID(c)); err != nil {
		if errors.Is(err, service.ErrNotParticipant) {
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotInRoom})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCancelRoom})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Room cancelled"})
}
