package battle

import (
	"github.com/tmacedo/arena-tactics/internal/engine"
	"github.com/tmacedo/arena-tactics/internal/game"
)

// CombatantSnapshot is the read-only view of one live character.
type CombatantSnapshot struct {
	ID        uint                `json:"id"`
	Name      string              `json:"name"`
	Label     string              `json:"label"`
	Type      game.CharacterType  `json:"type"`
	Size      int                 `json:"size"`
	Weapon    string              `json:"weapon"`
	Health    int                 `json:"health"`
	MaxHealth int                 `json:"max_health"`
	Derived   engine.DerivedStats `json:"derived_stats"`
}

// TeamSnapshot is the read-only view of one side.
type TeamSnapshot struct {
	TeamID     uint                `json:"id"`
	UserID     string              `json:"user_id"`
	Characters []CombatantSnapshot `json:"characters"`
}

// Snapshot is the full polling view of a session. Building it never
// mutates session state.
type Snapshot struct {
	RoomID            uint             `json:"room_id"`
	State             State            `json:"state"`
	CurrentTurnUserID string           `json:"current_turn_user_id"`
	Attacked          []uint           `json:"attacked"`
	WinnerUserID      string           `json:"winner_user_id,omitempty"`
	ConclusionReason  ConclusionReason `json:"conclusion_reason,omitempty"`
	Teams             [2]TeamSnapshot  `json:"teams"`
}

// Snapshot returns a consistent read-only copy of the session. Characters
// are listed in stable ascending-ID order, host side first.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		RoomID:            s.roomID,
		State:             StateTurnActive,
		CurrentTurnUserID: s.currentTurn,
		Attacked:          s.attackedIDs(),
	}
	if s.concluded {
		snap.State = StateConcluded
		snap.CurrentTurnUserID = ""
		snap.WinnerUserID = s.winnerID
		snap.ConclusionReason = s.reason
	}
	for i, sd := range s.sides {
		ts := TeamSnapshot{TeamID: sd.teamID, UserID: sd.userID}
		for _, c := range sd.combatants {
			ts.Characters = append(ts.Characters, s.snapshotCombatant(c))
		}
		snap.Teams[i] = ts
	}
	return snap
}
