package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tmacedo/arena-tactics/internal/game"
)

type weaponEntry struct {
	Name      string          `json:"name"`
	Type      game.WeaponType `json:"type"`
	Bonuses   game.BaseStats  `json:"bonuses"`
	Hit       int             `json:"hit"`
	Range     int             `json:"range"`
	Abilities []string        `json:"abilities"`
}

type characterEntry struct {
	Name           string             `json:"name"`
	Label          string             `json:"label"`
	Type           game.CharacterType `json:"type"`
	Size           int                `json:"size"`
	Base           game.BaseStats     `json:"base_stats"`
	Weapon         string             `json:"weapon"`
	WeaponAbility1 string             `json:"weapon_ability_1"`
	WeaponAbility2 string             `json:"weapon_ability_2"`
}

type teamEntry struct {
	Name       string           `json:"name"`
	OwnerName  string           `json:"owner_name"`
	Characters []characterEntry `json:"characters"`
}

type rawConfig struct {
	WeaponList []weaponEntry `json:"weapon_list"`
	// TeamList seeds demo rosters on first startup so a fresh server is
	// immediately playable. Optional.
	TeamList []teamEntry `json:"team_list"`
	Server   *struct {
		Address string `json:"address"`
	} `json:"server"`
	// RoomTTLMinutes bounds how long an open room may wait for an
	// opponent before the sweeper expires it. Zero means the default.
	RoomTTLMinutes int `json:"room_ttl_minutes"`
}

// SeedTeam describes a roster to insert on first startup.
type SeedTeam struct {
	Name       string
	OwnerName  string
	Characters []game.Character
}

// LoadedConfig contains the weapon table, optional seed rosters and server
// settings.
type LoadedConfig struct {
	Weapons       []game.Weapon
	SeedTeams     []SeedTeam
	ServerAddress string
	RoomTTL       time.Duration
}

const defaultRoomTTL = 30 * time.Minute

// LoadConfig reads the configuration file at path. It requires the key
// `weapon_list` (snake_case) and validates weapon name uniqueness plus
// seed-team weapon references.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.WeaponList) == 0 {
		return nil, fmt.Errorf("config file %s: weapon_list is empty (provide 'weapon_list' array)", path)
	}

	weapons := make([]game.Weapon, 0, len(rc.WeaponList))
	nameSet := make(map[string]struct{}, len(rc.WeaponList))
	for _, w := range rc.WeaponList {
		name := strings.TrimSpace(w.Name)
		if name == "" {
			return nil, fmt.Errorf("config file %s: weapon entry missing 'name'", path)
		}
		if w.Type != game.WeaponMelee && w.Type != game.WeaponMagick {
			return nil, fmt.Errorf("config file %s: weapon '%s' has invalid type '%s'", path, name, w.Type)
		}
		ln := strings.ToLower(name)
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate weapon name '%s'", path, name)
		}
		nameSet[ln] = struct{}{}
		weapons = append(weapons, game.Weapon{
			Name:      name,
			Type:      w.Type,
			Bonuses:   w.Bonuses,
			Hit:       w.Hit,
			Range:     w.Range,
			Abilities: w.Abilities,
		})
	}

	seeds := make([]SeedTeam, 0, len(rc.TeamList))
	for _, te := range rc.TeamList {
		if strings.TrimSpace(te.Name) == "" {
			return nil, fmt.Errorf("config file %s: team entry missing 'name'", path)
		}
		chars := make([]game.Character, 0, len(te.Characters))
		for _, ce := range te.Characters {
			if strings.TrimSpace(ce.Name) == "" {
				return nil, fmt.Errorf("config file %s: team '%s' has a character missing 'name'", path, te.Name)
			}
			if ce.Type != game.TypeMelee && ce.Type != game.TypeMage {
				return nil, fmt.Errorf("config file %s: character '%s' has invalid type '%s'", path, ce.Name, ce.Type)
			}
			if ce.Weapon != "" {
				if _, ok := nameSet[strings.ToLower(strings.TrimSpace(ce.Weapon))]; !ok {
					return nil, fmt.Errorf("config file %s: character '%s' references unknown weapon '%s'", path, ce.Name, ce.Weapon)
				}
			}
			chars = append(chars, game.Character{
				Name:           ce.Name,
				Label:          ce.Label,
				Type:           ce.Type,
				Size:           ce.Size,
				Base:           ce.Base,
				WeaponName:     ce.Weapon,
				WeaponAbility1: ce.WeaponAbility1,
				WeaponAbility2: ce.WeaponAbility2,
			})
		}
		seeds = append(seeds, SeedTeam{Name: te.Name, OwnerName: te.OwnerName, Characters: chars})
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	ttl := defaultRoomTTL
	if rc.RoomTTLMinutes > 0 {
		ttl = time.Duration(rc.RoomTTLMinutes) * time.Minute
	}

	return &LoadedConfig{
		Weapons:       weapons,
		SeedTeams:     seeds,
		ServerAddress: addr,
		RoomTTL:       ttl,
	}, nil
}
