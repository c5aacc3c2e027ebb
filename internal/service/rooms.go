package service

import (
	"errors"
	"fmt"
	"math/rand"

	"gorm.io/gorm"

	"github.com/tmacedo/arena-tactics/internal/battle"
	"github.com/tmacedo/arena-tactics/internal/constants"
	"github.com/tmacedo/arena-tactics/internal/game"
	"github.com/tmacedo/arena-tactics/internal/logging"
	"github.com/tmacedo/arena-tactics/internal/storage"
)

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomAlreadyFull    = errors.New("room is already full")
	ErrSelfJoin           = errors.New("cannot join your own room")
	ErrTeamNotFound       = errors.New("team not found")
	ErrTeamNotBattleReady = errors.New("team is not battle-ready")
	ErrNotParticipant     = errors.New("player is not a participant of this room")
)

// Room codes avoid characters that read ambiguously on a phone screen.
const codeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const codeLength = 6

func generateRoomCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(b)
}

const maxCodeAttempts = 5

// CreateRoom validates the host's team and opens a room with a unique
// short code. Codes are collision-checked against currently open rooms;
// the unique index on the code column backstops a race between two
// concurrent creates.
func CreateRoom(repo storage.Repository, hostUserID string, hostTeamID uint) (*game.Room, error) {
	team, err := repo.GetTeamByID(hostTeamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if err := team.BattleReady(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTeamNotBattleReady, err)
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := generateRoomCode()
		if _, err := repo.FindRoomByCode(code); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		room := &game.Room{
			Code:       code,
			Status:     game.RoomOpen,
			HostUserID: hostUserID,
			HostTeamID: hostTeamID,
		}
		if err := repo.CreateRoom(room); err != nil {
			// Lost the race on the code's unique index; try another.
			logging.Warn("room code collision, retrying", logging.Fields{constants.LogFieldRoomCode: code})
			continue
		}
		return room, nil
	}
	return nil, errors.New("could not allocate a unique room code")
}

// JoinRoom matches a second participant into an open room and spins up
// the battle session from both rosters. The joiner's team is validated
// exactly like the host's.
func JoinRoom(repo storage.Repository, battles *battle.Manager, weapons game.WeaponTable, userID string, teamID uint, code string) (*game.Room, error) {
	room, err := repo.FindRoomByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if room.Matched() {
		return nil, ErrRoomAlreadyFull
	}
	if room.HostUserID == userID {
		return nil, ErrSelfJoin
	}
	team, err := repo.GetTeamByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if err := team.BattleReady(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTeamNotBattleReady, err)
	}

	// Load everything the session needs before touching the room row, so
	// a failed roster read leaves the room open and joinable.
	hostChars, err := repo.GetTeamCharacters(room.HostTeamID)
	if err != nil {
		return nil, err
	}

	room.JoinerUserID = userID
	room.JoinerTeamID = teamID
	room.Status = game.RoomMatched
	if err := repo.UpdateRoom(room); err != nil {
		return nil, err
	}

	session := battle.NewSession(room.ID, weapons,
		battle.SideInit{TeamID: room.HostTeamID, UserID: room.HostUserID, Characters: hostChars},
		battle.SideInit{TeamID: teamID, UserID: userID, Characters: team.Characters},
	)
	battles.Create(room.ID, session)

	logging.Info("room matched", logging.Fields{
		constants.LogFieldRoomID:   room.ID,
		constants.LogFieldRoomCode: room.Code,
		constants.LogFieldHostID:   room.HostUserID,
		constants.LogFieldJoinerID: userID,
	})
	return room, nil
}

// RoomStatus returns the room row for polling clients.
func RoomStatus(repo storage.Repository, roomID uint) (*game.Room, error) {
	room, err := repo.GetRoomByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

// CancelRoom tears down a room and, when a battle is live, concludes its
// session so the opponent's next poll sees the opponent-left signal.
// Cancelling an already-gone room is not an error.
func CancelRoom(repo storage.Repository, battles *battle.Manager, roomID uint, callerID string) error {
	room, err := repo.GetRoomByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Room row is gone; drop any lingering session too.
			battles.Remove(roomID)
			return nil
		}
		return err
	}
	if !room.IsParticipant(callerID) {
		return ErrNotParticipant
	}
	if room.Matched() {
		// Concluded sessions linger so the remaining player's poll can
		// observe the abandonment before the sweeper evicts them.
		battles.Abandon(roomID, callerID)
	} else {
		battles.Remove(roomID)
	}
	if err := repo.DeleteRoom(roomID); err != nil {
		return err
	}
	logging.Info("room cancelled", logging.Fields{constants.LogFieldRoomID: roomID, constants.LogFieldUserID: callerID})
	return nil
}
