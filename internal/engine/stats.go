package engine

import (
	"math"

	"github.com/tmacedo/arena-tactics/internal/game"
)

// DerivedStats are the combat-relevant values computed from a character's
// base attributes plus its equipped weapon's bonuses.
type DerivedStats struct {
	Power           int `json:"power"`
	MeleeProtection int `json:"melee_protection"`
	MagicProtection int `json:"magic_protection"`
	Agility         int `json:"agility"`
	Accuracy        int `json:"accuracy"`
	Evasion         int `json:"evasion"`
	Critical        int `json:"critical"`
	Block           int `json:"block"`
}

// ceilSum rounds toward positive infinity; the stat formulas mix whole
// and half weights and the reference math ceils the sum, so the exact
// rounding mode matters for reproducible outcomes.
func ceilSum(terms ...float64) int {
	sum := 0.0
	for _, t := range terms {
		sum += t
	}
	return int(math.Ceil(sum))
}

// Derive computes the derived stats for a character of the given type with
// the given base attributes and weapon. A nil weapon contributes zero to
// every bonus term; derivation never fails.
func Derive(ctype game.CharacterType, base game.BaseStats, weapon *game.Weapon) DerivedStats {
	var bonus game.BaseStats
	if weapon != nil {
		bonus = weapon.Bonuses
	}

	spd := float64(base.Speed + bonus.Speed)
	skl := float64(base.Skill + bonus.Skill)
	knl := float64(base.Knowledge + bonus.Knowledge)
	lck := float64(base.Luck + bonus.Luck)

	power := base.Strength + bonus.Strength
	if ctype == game.TypeMage {
		power = base.Magick + bonus.Magick
	}

	return DerivedStats{
		Power:           power,
		MeleeProtection: base.Defense + bonus.Defense,
		MagicProtection: base.Resistance + bonus.Resistance,
		Agility:         base.Speed + bonus.Speed,
		Accuracy:        ceilSum(0.5*spd, 0.5*skl, 1*knl, 0.5*lck),
		Evasion:         ceilSum(0.5*spd, 1*skl, 0.5*knl, 0.5*lck),
		Critical:        ceilSum(0.5*spd, 0.5*skl, 0.5*knl, 1*lck),
		Block:           (base.Defense + bonus.Defense) + (base.Resistance + bonus.Resistance) + (base.Luck + bonus.Luck),
	}
}

// DeriveFromTable is a convenience wrapper resolving the weapon key against
// the shared table. An unknown or empty key defaults every bonus to zero.
func DeriveFromTable(ctype game.CharacterType, base game.BaseStats, weaponKey string, table game.WeaponTable) DerivedStats {
	if w, ok := table.Lookup(weaponKey); ok {
		return Derive(ctype, base, &w)
	}
	return Derive(ctype, base, nil)
}
