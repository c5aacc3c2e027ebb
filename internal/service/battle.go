package service

import (
	"fmt"

	"github.com/tmacedo/arena-tactics/internal/battle"
	"github.com/tmacedo/arena-tactics/internal/dedupe"
)

// Attack applies one attack inside the room's battle session. Session
// errors (NotYourTurn, AlreadyAttacked, InvalidTarget, Concluded) pass
// through untouched for the API layer to map.
func Attack(battles *battle.Manager, roomID uint, userID string, attackerID, targetID uint) (*battle.AttackResult, error) {
	session, ok := battles.Get(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	return session.Attack(userID, attackerID, targetID)
}

// EndTurn hands the turn to the opponent and clears the attacked set.
func EndTurn(battles *battle.Manager, roomID uint, userID string) (battle.TurnState, error) {
	session, ok := battles.Get(roomID)
	if !ok {
		return battle.TurnState{}, ErrRoomNotFound
	}
	return session.EndTurn(userID)
}

// BattleState returns the polling snapshot for the room's session. Both
// participants poll on a short fixed interval, so near-simultaneous reads
// are coalesced through a singleflight group. The key carries the session
// version: a poll issued after a mutation starts a fresh flight instead of
// joining one whose snapshot predates the mutation.
func BattleState(battles *battle.Manager, roomID uint) (battle.Snapshot, error) {
	session, ok := battles.Get(roomID)
	if !ok {
		return battle.Snapshot{}, ErrRoomNotFound
	}
	key := fmt.Sprintf("room:%d:v%d", roomID, session.Version())
	v, err, _ := dedupe.SnapshotGroup.Do(key, func() (interface{}, error) {
		return session.Snapshot(), nil
	})
	if err != nil {
		return battle.Snapshot{}, err
	}
	return v.(battle.Snapshot), nil
}
