package service

import (
	"time"

	"github.com/tmacedo/arena-tactics/internal/battle"
	"github.com/tmacedo/arena-tactics/internal/constants"
	"github.com/tmacedo/arena-tactics/internal/logging"
	"github.com/tmacedo/arena-tactics/internal/storage"
)

// concludedLinger bounds how long a concluded session stays queryable
// after its battle ended, so a slow poller still sees the winner or the
// opponent-left signal before eviction.
const concludedLinger = 2 * time.Minute

// ExpireStaleRooms removes open rooms whose host never found an opponent
// within ttl, and evicts battle sessions that concluded more than the
// linger window ago (deleting their room rows with them).
func ExpireStaleRooms(repo storage.Repository, battles *battle.Manager, now time.Time, ttl time.Duration) {
	rooms, err := repo.FindExpiredOpenRooms(now.Add(-ttl))
	if err != nil {
		logging.Error("room sweeper failed to list expired rooms", err, nil)
	} else {
		for _, r := range rooms {
			battles.Remove(r.ID)
			if err := repo.DeleteRoom(r.ID); err != nil {
				logging.Error("failed to expire room", err, logging.Fields{constants.LogFieldRoomID: r.ID})
				continue
			}
			logging.Info("expired open room", logging.Fields{constants.LogFieldRoomID: r.ID, constants.LogFieldRoomCode: r.Code})
		}
	}

	for _, roomID := range battles.SweepConcluded(now.Add(-concludedLinger)) {
		if err := repo.DeleteRoom(roomID); err != nil {
			logging.Error("failed to delete room for swept session", err, logging.Fields{constants.LogFieldRoomID: roomID})
		}
	}
}
