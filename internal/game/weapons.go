package game

import "strings"

// Weapon is an immutable entry of the static weapon table. Stat bonuses
// cover the same attribute vector as character base stats. Hit and Range
// are carried for future positional combat and are not consumed by the
// current resolution.
type Weapon struct {
	Name      string     `json:"name"`
	Type      WeaponType `json:"type"`
	Bonuses   BaseStats  `json:"bonuses"`
	Hit       int        `json:"hit"`
	Range     int        `json:"range"`
	Abilities []string   `json:"abilities"`
}

// WeaponTable is the shared read-only weapon lookup, keyed by lowercase
// name. Loaded once from config and shared by reference across battles.
type WeaponTable map[string]Weapon

// NewWeaponTable builds a table from a weapon list.
func NewWeaponTable(weapons []Weapon) WeaponTable {
	t := make(WeaponTable, len(weapons))
	for _, w := range weapons {
		t[strings.ToLower(strings.TrimSpace(w.Name))] = w
	}
	return t
}

// Lookup returns the weapon for key, or false when the key is absent or
// empty. Callers must treat a miss as "no bonuses", never as a failure.
func (t WeaponTable) Lookup(key string) (Weapon, bool) {
	if t == nil {
		return Weapon{}, false
	}
	w, ok := t[strings.ToLower(strings.TrimSpace(key))]
	return w, ok
}
