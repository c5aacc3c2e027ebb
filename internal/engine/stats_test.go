package engine

import (
	"testing"

	"github.com/tmacedo/arena-tactics/internal/game"
)

func TestDerive_ReferenceVector(t *testing.T) {
	base := game.BaseStats{Speed: 5, Skill: 3, Knowledge: 2, Luck: 1}
	d := Derive(game.TypeMelee, base, nil)

	if d.Agility != 5 {
		t.Fatalf("expected agility=5, got %d", d.Agility)
	}
	// ceil(0.5*5 + 0.5*3 + 1*2 + 0.5*1) = ceil(6.5) = 7
	if d.Accuracy != 7 {
		t.Fatalf("expected accuracy=7, got %d", d.Accuracy)
	}
	// ceil(0.5*5 + 1*3 + 0.5*2 + 0.5*1) = ceil(7) = 7
	if d.Evasion != 7 {
		t.Fatalf("expected evasion=7, got %d", d.Evasion)
	}
	// ceil(0.5*5 + 0.5*3 + 0.5*2 + 1*1) = ceil(6) = 6
	if d.Critical != 6 {
		t.Fatalf("expected critical=6, got %d", d.Critical)
	}
}

func TestDerive_PowerByType(t *testing.T) {
	base := game.BaseStats{Strength: 7, Magick: 4}
	weapon := &game.Weapon{Name: "Test", Bonuses: game.BaseStats{Strength: 2, Magick: 3}}

	melee := Derive(game.TypeMelee, base, weapon)
	if melee.Power != 9 {
		t.Fatalf("expected melee power=9 (7+2), got %d", melee.Power)
	}
	mage := Derive(game.TypeMage, base, weapon)
	if mage.Power != 7 {
		t.Fatalf("expected mage power=7 (4+3), got %d", mage.Power)
	}
}

func TestDerive_ProtectionAndBlock(t *testing.T) {
	base := game.BaseStats{Defense: 5, Resistance: 3, Luck: 2}
	weapon := &game.Weapon{Bonuses: game.BaseStats{Defense: 1, Resistance: 2, Luck: 1}}

	d := Derive(game.TypeMelee, base, weapon)
	if d.MeleeProtection != 6 {
		t.Fatalf("expected melee protection=6, got %d", d.MeleeProtection)
	}
	if d.MagicProtection != 5 {
		t.Fatalf("expected magic protection=5, got %d", d.MagicProtection)
	}
	// block = def' + res' + lck' = 6 + 5 + 3
	if d.Block != 14 {
		t.Fatalf("expected block=14, got %d", d.Block)
	}
}

func TestDerive_NilWeaponZeroBonuses(t *testing.T) {
	base := game.BaseStats{Strength: 4, Defense: 2, Speed: 3}
	withNil := Derive(game.TypeMelee, base, nil)
	withZero := Derive(game.TypeMelee, base, &game.Weapon{})
	if withNil != withZero {
		t.Fatalf("nil weapon must equal zero-bonus weapon: %+v vs %+v", withNil, withZero)
	}
}

func TestDerive_ZeroStatsNoNaN(t *testing.T) {
	d := Derive(game.TypeMage, game.BaseStats{}, nil)
	if d != (DerivedStats{}) {
		t.Fatalf("all-zero inputs must derive all-zero stats, got %+v", d)
	}
}

func TestDeriveFromTable_UnknownKeyDefaultsToZero(t *testing.T) {
	table := game.NewWeaponTable([]game.Weapon{{Name: "Iron Sword", Type: game.WeaponMelee, Bonuses: game.BaseStats{Strength: 2}}})
	base := game.BaseStats{Strength: 5}

	known := DeriveFromTable(game.TypeMelee, base, "iron sword", table)
	if known.Power != 7 {
		t.Fatalf("expected power=7 with weapon bonus, got %d", known.Power)
	}
	unknown := DeriveFromTable(game.TypeMelee, base, "rusty pitchfork", table)
	if unknown.Power != 5 {
		t.Fatalf("expected power=5 with no bonus for unknown key, got %d", unknown.Power)
	}
	empty := DeriveFromTable(game.TypeMelee, base, "", table)
	if empty.Power != 5 {
		t.Fatalf("expected power=5 with no bonus for empty key, got %d", empty.Power)
	}
}
