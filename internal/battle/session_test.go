package battle

import (
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/tmacedo/arena-tactics/internal/game"
)

func testWeapons() game.WeaponTable {
	return game.NewWeaponTable([]game.Weapon{
		{Name: "Iron Sword", Type: game.WeaponMelee, Bonuses: game.BaseStats{Strength: 2}},
		{Name: "Fire Tome", Type: game.WeaponMagick, Bonuses: game.BaseStats{Magick: 3}},
	})
}

func char(id uint, ctype game.CharacterType, base game.BaseStats, weapon string) game.Character {
	return game.Character{Model: gorm.Model{ID: id}, Name: "C", Type: ctype, Base: base, WeaponName: weapon}
}

// newTestSession builds a 2v2 session: host characters 1,2 vs joiner 11,12.
func newTestSession() *Session {
	host := SideInit{TeamID: 1, UserID: "host", Characters: []game.Character{
		char(1, game.TypeMelee, game.BaseStats{Health: 20, Strength: 7, Defense: 5, Resistance: 3}, "Iron Sword"),
		char(2, game.TypeMage, game.BaseStats{Health: 16, Magick: 8, Defense: 2, Resistance: 6}, "Fire Tome"),
	}}
	joiner := SideInit{TeamID: 2, UserID: "joiner", Characters: []game.Character{
		char(11, game.TypeMelee, game.BaseStats{Health: 18, Strength: 5, Defense: 3, Resistance: 2}, "Iron Sword"),
		char(12, game.TypeMage, game.BaseStats{Health: 15, Magick: 9, Defense: 2, Resistance: 5}, "Fire Tome"),
	}}
	return NewSession(42, testWeapons(), host, joiner)
}

func TestNewSession_HostMovesFirst(t *testing.T) {
	s := newTestSession()
	snap := s.Snapshot()
	if snap.CurrentTurnUserID != "host" {
		t.Fatalf("expected host to own the first turn, got %q", snap.CurrentTurnUserID)
	}
	if snap.State != StateTurnActive {
		t.Fatalf("expected state=turn_active, got %q", snap.State)
	}
}

func TestNewSession_MaxHealthSeededFromBase(t *testing.T) {
	s := newTestSession()
	snap := s.Snapshot()
	for _, team := range snap.Teams {
		for _, c := range team.Characters {
			if c.MaxHealth != c.Health {
				t.Fatalf("character %d: max health %d != starting health %d", c.ID, c.MaxHealth, c.Health)
			}
			if c.MaxHealth == 0 {
				t.Fatalf("character %d: max health must come from base health, got 0", c.ID)
			}
		}
	}
}

func TestSnapshot_StableCharacterOrder(t *testing.T) {
	// Feed characters in reverse order; snapshot must sort by ID.
	host := SideInit{TeamID: 1, UserID: "host", Characters: []game.Character{
		char(5, game.TypeMelee, game.BaseStats{Health: 10}, ""),
		char(3, game.TypeMelee, game.BaseStats{Health: 10}, ""),
	}}
	joiner := SideInit{TeamID: 2, UserID: "joiner", Characters: []game.Character{
		char(9, game.TypeMelee, game.BaseStats{Health: 10}, ""),
		char(7, game.TypeMelee, game.BaseStats{Health: 10}, ""),
	}}
	snap := NewSession(1, nil, host, joiner).Snapshot()
	if snap.Teams[0].Characters[0].ID != 3 || snap.Teams[0].Characters[1].ID != 5 {
		t.Fatalf("host characters not in ascending ID order: %+v", snap.Teams[0].Characters)
	}
	if snap.Teams[1].Characters[0].ID != 7 || snap.Teams[1].Characters[1].ID != 9 {
		t.Fatalf("joiner characters not in ascending ID order: %+v", snap.Teams[1].Characters)
	}
}

func TestAttack_TurnExclusivity(t *testing.T) {
	s := newTestSession()
	if _, err := s.Attack("joiner", 11, 1); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn for joiner on host's turn, got %v", err)
	}
	if _, err := s.Attack("stranger", 1, 11); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn for non-participant, got %v", err)
	}
	if _, err := s.EndTurn("joiner"); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn for joiner endTurn, got %v", err)
	}
}

func TestAttack_AppliesDamageAndMarksAttacker(t *testing.T) {
	s := newTestSession()
	// Attacker 1: power 7+2=9 melee. Target 11: melee protection 3.
	res, err := s.Attack("host", 1, 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Damage != 6 {
		t.Fatalf("expected damage=6 (9-3), got %d", res.Damage)
	}
	if res.Target.Health != 12 {
		t.Fatalf("expected target health=12 (18-6), got %d", res.Target.Health)
	}
	if len(res.Attacked) != 1 || res.Attacked[0] != 1 {
		t.Fatalf("expected attacked=[1], got %v", res.Attacked)
	}

	// Read-after-write: the very next snapshot must show the mutation.
	snap := s.Snapshot()
	if snap.Teams[1].Characters[0].Health != 12 {
		t.Fatalf("snapshot did not reflect attack, health=%d", snap.Teams[1].Characters[0].Health)
	}
}

func TestAttack_AtMostOncePerTurn(t *testing.T) {
	s := newTestSession()
	if _, err := s.Attack("host", 1, 11); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Attack("host", 1, 12); !errors.Is(err, ErrAlreadyAttacked) {
		t.Fatalf("expected ErrAlreadyAttacked on repeat attacker, got %v", err)
	}
	// The second character may still act.
	if _, err := s.Attack("host", 2, 11); err != nil {
		t.Fatalf("unexpected error for second attacker: %v", err)
	}
}

func TestEndTurn_ClearsAttackedAndFlipsOwner(t *testing.T) {
	s := newTestSession()
	if _, err := s.Attack("host", 1, 11); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	turn, err := s.EndTurn("host")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if turn.CurrentTurnUserID != "joiner" {
		t.Fatalf("expected turn to flip to joiner, got %q", turn.CurrentTurnUserID)
	}
	if got := s.Snapshot().Attacked; len(got) != 0 {
		t.Fatalf("expected attacked set cleared on endTurn, got %v", got)
	}
	// A new turn resets the at-most-once rule for the opponent's side and,
	// after the turn returns, for the original attacker too.
	if _, err := s.EndTurn("joiner"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Attack("host", 1, 11); err != nil {
		t.Fatalf("expected attacker 1 usable again next turn, got %v", err)
	}
}

func TestAttack_InvalidTargets(t *testing.T) {
	s := newTestSession()
	// Own-team target.
	if _, err := s.Attack("host", 1, 2); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget for own-team target, got %v", err)
	}
	// Unknown attacker and unknown target.
	if _, err := s.Attack("host", 99, 11); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget for unknown attacker, got %v", err)
	}
	if _, err := s.Attack("host", 1, 99); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget for unknown target, got %v", err)
	}
	// Failed attacks leave state untouched.
	snap := s.Snapshot()
	if len(snap.Attacked) != 0 {
		t.Fatalf("failed attacks must not mutate the attacked set: %v", snap.Attacked)
	}
	if snap.Teams[1].Characters[0].Health != 18 {
		t.Fatalf("failed attacks must not mutate health, got %d", snap.Teams[1].Characters[0].Health)
	}
}

func TestAttack_DeadTargetRejected(t *testing.T) {
	s := newTestSession()
	// Mage 2: power 8+3=11 vs target 12 magic protection 5 → 6 damage.
	// 15 health → dead after three hits across turns.
	for i := 0; i < 2; i++ {
		if _, err := s.Attack("host", 2, 12); err != nil {
			t.Fatalf("round %d: unexpected error: %v", i, err)
		}
		mustEndTurn(t, s, "host")
		mustEndTurn(t, s, "joiner")
	}
	res, err := s.Attack("host", 2, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Target.Health != 0 {
		t.Fatalf("expected target at 0 health, got %d", res.Target.Health)
	}
	mustEndTurn(t, s, "host")
	mustEndTurn(t, s, "joiner")
	if _, err := s.Attack("host", 1, 12); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget for dead target, got %v", err)
	}
}

func mustEndTurn(t *testing.T, s *Session, userID string) {
	t.Helper()
	if _, err := s.EndTurn(userID); err != nil {
		t.Fatalf("endTurn(%s): %v", userID, err)
	}
}

func TestBattle_ConcludesWhenSideWipedOut(t *testing.T) {
	host := SideInit{TeamID: 1, UserID: "host", Characters: []game.Character{
		char(1, game.TypeMelee, game.BaseStats{Health: 20, Strength: 30}, ""),
	}}
	joiner := SideInit{TeamID: 2, UserID: "joiner", Characters: []game.Character{
		char(11, game.TypeMelee, game.BaseStats{Health: 5}, ""),
	}}
	s := NewSession(7, nil, host, joiner)

	res, err := s.Attack("host", 1, 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Concluded || res.WinnerUserID != "host" {
		t.Fatalf("expected conclusion with host winner, got %+v", res)
	}
	snap := s.Snapshot()
	if snap.State != StateConcluded || snap.WinnerUserID != "host" || snap.ConclusionReason != ReasonAllDefeated {
		t.Fatalf("unexpected concluded snapshot: %+v", snap)
	}
	if snap.CurrentTurnUserID != "" {
		t.Fatalf("no one owns a turn after conclusion, got %q", snap.CurrentTurnUserID)
	}
	if _, err := s.Attack("host", 1, 11); !errors.Is(err, ErrConcluded) {
		t.Fatalf("expected ErrConcluded after battle end, got %v", err)
	}
	if _, err := s.EndTurn("host"); !errors.Is(err, ErrConcluded) {
		t.Fatalf("expected ErrConcluded for endTurn after battle end, got %v", err)
	}
}

func TestAbandon_RemainingParticipantWins(t *testing.T) {
	s := newTestSession()
	s.Abandon("host")
	snap := s.Snapshot()
	if snap.State != StateConcluded {
		t.Fatalf("expected concluded state, got %q", snap.State)
	}
	if snap.WinnerUserID != "joiner" || snap.ConclusionReason != ReasonOpponentLeft {
		t.Fatalf("expected joiner win by opponent_left, got winner=%q reason=%q", snap.WinnerUserID, snap.ConclusionReason)
	}
	// Abandon is idempotent and never flips an existing conclusion.
	s.Abandon("joiner")
	if got := s.Snapshot().WinnerUserID; got != "joiner" {
		t.Fatalf("second abandon must not change the winner, got %q", got)
	}
}

func TestAttack_SerializedPerRoom(t *testing.T) {
	s := newTestSession()
	const goroutines = 16
	var wg sync.WaitGroup
	successes := make(chan *AttackResult, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if res, err := s.Attack("host", 1, 11); err == nil {
				successes <- res
			}
		}()
	}
	wg.Wait()
	close(successes)
	var wins int
	for range successes {
		wins++
	}
	if wins != 1 {
		t.Fatalf("expected exactly one concurrent attack to win, got %d", wins)
	}
	if got := s.Snapshot().Teams[1].Characters[0].Health; got != 12 {
		t.Fatalf("expected a single application of damage (health=12), got %d", got)
	}
}

func TestSession_VersionAdvancesOnEveryMutation(t *testing.T) {
	s := newTestSession()
	v0 := s.Version()

	if _, err := s.Attack("host", 1, 11); err != nil {
		t.Fatalf("attack: %v", err)
	}
	v1 := s.Version()
	if v1 <= v0 {
		t.Fatalf("attack must advance the version, got %d -> %d", v0, v1)
	}

	// Reads and rejected mutations leave the version alone.
	s.Snapshot()
	if _, err := s.Attack("joiner", 11, 1); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	if got := s.Version(); got != v1 {
		t.Fatalf("reads and failed mutations must not advance the version, got %d", got)
	}

	if _, err := s.EndTurn("host"); err != nil {
		t.Fatalf("endTurn: %v", err)
	}
	v2 := s.Version()
	if v2 <= v1 {
		t.Fatalf("endTurn must advance the version, got %d -> %d", v1, v2)
	}

	s.Abandon("joiner")
	if got := s.Version(); got <= v2 {
		t.Fatalf("conclusion must advance the version, got %d -> %d", v2, got)
	}
}

func TestManager_SweepConcluded(t *testing.T) {
	m := NewManager()
	s := newTestSession()
	m.Create(42, s)
	s.Abandon("host")

	// Too fresh to sweep.
	if removed := m.SweepConcluded(time.Now().Add(-time.Minute)); len(removed) != 0 {
		t.Fatalf("expected nothing swept inside linger window, got %v", removed)
	}
	if removed := m.SweepConcluded(time.Now().Add(time.Minute)); len(removed) != 1 || removed[0] != 42 {
		t.Fatalf("expected room 42 swept, got %v", removed)
	}
	if _, ok := m.Get(42); ok {
		t.Fatalf("session must be gone after sweep")
	}
}
