package battle

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/tmacedo/arena-tactics/internal/engine"
	"github.com/tmacedo/arena-tactics/internal/game"
)

var (
	ErrNotYourTurn     = errors.New("it is not your turn")
	ErrAlreadyAttacked = errors.New("character has already attacked this turn")
	ErrInvalidTarget   = errors.New("invalid attack target")
	ErrConcluded       = errors.New("battle is already concluded")
)

// ConclusionReason explains why a battle reached its terminal state.
type ConclusionReason string

const (
	ReasonAllDefeated  ConclusionReason = "all_defeated"
	ReasonOpponentLeft ConclusionReason = "opponent_left"
)

// State is the coarse session state exposed to polling clients.
type State string

const (
	StateTurnActive State = "turn_active"
	StateConcluded  State = "concluded"
)

// Combatant is a live battle-instance copy of a roster character. Health
// is the only mutable field; MaxHealth is seeded from the character's base
// health stat when the session is created and never changes afterwards.
type Combatant struct {
	ID         uint
	Name       string
	Label      string
	Type       game.CharacterType
	Size       int
	Base       game.BaseStats
	WeaponName string
	Health     int
	MaxHealth  int
}

type side struct {
	teamID     uint
	userID     string
	combatants []*Combatant
}

func (s *side) find(id uint) *Combatant {
	for _, c := range s.combatants {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s *side) defeated() bool {
	for _, c := range s.combatants {
		if c.Health > 0 {
			return false
		}
	}
	return true
}

// SideInit carries one participant's roster into NewSession.
type SideInit struct {
	TeamID     uint
	UserID     string
	Characters []game.Character
}

// Session is the authoritative turn/attack state machine for one matched
// room. All mutations go through its mutex so at most one is in flight per
// room; every mutation is visible to the very next Snapshot call.
type Session struct {
	mu      sync.Mutex
	roomID  uint
	weapons game.WeaponTable

	// sides[0] is the host; the host always owns the first turn.
	sides       [2]*side
	currentTurn string
	attacked    map[uint]struct{}
	// version counts applied mutations. Snapshot coalescing keys on it so
	// a poll issued after a mutation never shares a pre-mutation flight.
	version uint64

	concluded   bool
	winnerID    string
	reason      ConclusionReason
	concludedAt time.Time
}

// NewSession builds the live state for a matched pair of teams. The host
// side moves first. Each combatant's starting and maximum health are both
// seeded from the character's base health stat.
func NewSession(roomID uint, weapons game.WeaponTable, host, joiner SideInit) *Session {
	s := &Session{
		roomID:   roomID,
		weapons:  weapons,
		attacked: make(map[uint]struct{}),
	}
	s.sides[0] = newSide(host)
	s.sides[1] = newSide(joiner)
	s.currentTurn = host.UserID
	return s
}

func newSide(in SideInit) *side {
	sd := &side{teamID: in.TeamID, userID: in.UserID}
	for i := range in.Characters {
		c := &in.Characters[i]
		sd.combatants = append(sd.combatants, &Combatant{
			ID:         c.ID,
			Name:       c.Name,
			Label:      c.Label,
			Type:       c.Type,
			Size:       c.Size,
			Base:       c.Base,
			WeaponName: c.WeaponName,
			Health:     c.Base.Health,
			MaxHealth:  c.Base.Health,
		})
	}
	// Stable server-defined order so clients need no ordering workaround.
	sort.Slice(sd.combatants, func(i, j int) bool { return sd.combatants[i].ID < sd.combatants[j].ID })
	return sd
}

// RoomID returns the room this session belongs to.
func (s *Session) RoomID() uint { return s.roomID }

func (s *Session) sideOf(userID string) (own, opposing *side) {
	if s.sides[0].userID == userID {
		return s.sides[0], s.sides[1]
	}
	if s.sides[1].userID == userID {
		return s.sides[1], s.sides[0]
	}
	return nil, nil
}

// AttackResult reports a successfully applied attack.
type AttackResult struct {
	Damage       int               `json:"damage"`
	Target       CombatantSnapshot `json:"updated_target"`
	Attacked     []uint            `json:"attacked"`
	Concluded    bool              `json:"concluded"`
	WinnerUserID string            `json:"winner_user_id,omitempty"`
}

// Attack applies one attack by actingUserID's attacker against targetID on
// the opposing team. A failed attack leaves the session unchanged.
func (s *Session) Attack(actingUserID string, attackerID, targetID uint) (*AttackResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.concluded {
		return nil, ErrConcluded
	}
	if actingUserID != s.currentTurn {
		return nil, ErrNotYourTurn
	}
	own, opposing := s.sideOf(actingUserID)
	if own == nil {
		return nil, ErrNotYourTurn
	}
	attacker := own.find(attackerID)
	if attacker == nil || attacker.Health <= 0 {
		return nil, ErrInvalidTarget
	}
	if _, done := s.attacked[attackerID]; done {
		return nil, ErrAlreadyAttacked
	}
	target := opposing.find(targetID)
	if target == nil || target.Health <= 0 {
		return nil, ErrInvalidTarget
	}

	attStats := engine.DeriveFromTable(attacker.Type, attacker.Base, attacker.WeaponName, s.weapons)
	defStats := engine.DeriveFromTable(target.Type, target.Base, target.WeaponName, s.weapons)
	outcome := engine.ResolveAttack(attacker.Type, attStats, defStats, target.Health)

	target.Health = outcome.DefenderHealthAfter
	s.attacked[attackerID] = struct{}{}
	s.version++

	if opposing.defeated() {
		s.conclude(actingUserID, ReasonAllDefeated)
	}

	return &AttackResult{
		Damage:       outcome.Damage,
		Target:       s.snapshotCombatant(target),
		Attacked:     s.attackedIDs(),
		Concluded:    s.concluded,
		WinnerUserID: s.winnerID,
	}, nil
}

// TurnState reports the turn owner after an EndTurn.
type TurnState struct {
	CurrentTurnUserID string `json:"current_turn_user_id"`
}

// EndTurn clears the attacked set and hands the turn to the opponent.
// Partial turns are permitted: there is no requirement that every
// character attacked first.
func (s *Session) EndTurn(actingUserID string) (TurnState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.concluded {
		return TurnState{}, ErrConcluded
	}
	if actingUserID != s.currentTurn {
		return TurnState{}, ErrNotYourTurn
	}
	s.attacked = make(map[uint]struct{})
	if s.sides[0].userID == actingUserID {
		s.currentTurn = s.sides[1].userID
	} else {
		s.currentTurn = s.sides[0].userID
	}
	s.version++
	return TurnState{CurrentTurnUserID: s.currentTurn}, nil
}

// Abandon concludes the battle because leavingUserID left mid-battle. The
// remaining participant wins. Idempotent once concluded.
func (s *Session) Abandon(leavingUserID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.concluded {
		return
	}
	winner := ""
	if s.sides[0].userID == leavingUserID {
		winner = s.sides[1].userID
	} else if s.sides[1].userID == leavingUserID {
		winner = s.sides[0].userID
	}
	s.conclude(winner, ReasonOpponentLeft)
}

// conclude must be called with the mutex held.
func (s *Session) conclude(winnerID string, reason ConclusionReason) {
	s.concluded = true
	s.winnerID = winnerID
	s.reason = reason
	s.concludedAt = time.Now()
	s.version++
}

// Version returns the count of mutations applied so far.
func (s *Session) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// ConcludedSince reports whether the session reached its terminal state
// before cutoff.
func (s *Session) ConcludedSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.concluded && s.concludedAt.Before(cutoff)
}

func (s *Session) attackedIDs() []uint {
	ids := make([]uint, 0, len(s.attacked))
	for id := range s.attacked {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *Session) snapshotCombatant(c *Combatant) CombatantSnapshot {
	return CombatantSnapshot{
		ID:        c.ID,
		Name:      c.Name,
		Label:     c.Label,
		Type:      c.Type,
		Size:      c.Size,
		Weapon:    c.WeaponName,
		Health:    c.Health,
		MaxHealth: c.MaxHealth,
		Derived:   engine.DeriveFromTable(c.Type, c.Base, c.WeaponName, s.weapons),
	}
}
