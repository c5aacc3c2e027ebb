package engine

import "github.com/tmacedo/arena-tactics/internal/game"

// AttackOutcome is the result of resolving one attack.
type AttackOutcome struct {
	Damage              int `json:"damage"`
	DefenderHealthAfter int `json:"defender_health_after"`
}

// ResolveAttack computes the deterministic effect of one attack.
//
// Damage is the attacker's power against the defender's protection on the
// channel selected by the attacker's type (melee hits melee protection,
// mage hits magic protection), clamped at zero:
//
//	damage = max(0, power - protection)
//
// The defender's health is reduced by the damage and floored at zero. The
// richer derived stats (accuracy, evasion, critical, block) are computed
// and exposed but take no part in resolution; there is no hidden
// randomness, so identical inputs always yield identical outcomes.
func ResolveAttack(attackerType game.CharacterType, attacker DerivedStats, defender DerivedStats, defenderHealth int) AttackOutcome {
	protection := defender.MeleeProtection
	if attackerType == game.TypeMage {
		protection = defender.MagicProtection
	}
	damage := attacker.Power - protection
	if damage < 0 {
		damage = 0
	}
	after := defenderHealth - damage
	if after < 0 {
		after = 0
	}
	return AttackOutcome{Damage: damage, DefenderHealthAfter: after}
}
