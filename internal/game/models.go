package game

import (
	"fmt"

	"gorm.io/gorm"
)

// CharacterType distinguishes the two combat archetypes. The type decides
// which power source (strength or magick) and which protection channel an
// attack uses.
type CharacterType string

const (
	TypeMelee CharacterType = "melee"
	TypeMage  CharacterType = "mage"
)

// WeaponType mirrors CharacterType for the weapon table.
type WeaponType string

const (
	WeaponMelee  WeaponType = "melee"
	WeaponMagick WeaponType = "magick"
)

// BaseStats is the attribute vector shared by characters and weapon
// bonuses. Embedded in both so the stat engine can add them term by term.
type BaseStats struct {
	Health     int `json:"health"`
	Strength   int `json:"strength"`
	Defense    int `json:"defense"`
	Magick     int `json:"magick"`
	Resistance int `json:"resistance"`
	Speed      int `json:"speed"`
	Skill      int `json:"skill"`
	Knowledge  int `json:"knowledge"`
	Luck       int `json:"luck"`
}

// Character is a roster definition row. Live battle health is never
// written back here; battle sessions work on copies.
type Character struct {
	gorm.Model
	TeamID uint          `json:"-"`
	Name   string        `json:"name" gorm:"size:32"`
	Label  string        `json:"label" gorm:"size:32"`
	Type   CharacterType `json:"type"`
	// Size (1–4) constrains team composition only; it takes no part in
	// combat math.
	Size int `json:"size"`
	// Base attributes are flattened into columns via the embedded struct.
	Base BaseStats `json:"base_stats" gorm:"embedded;embeddedPrefix:base_"`
	// WeaponName keys into the static weapon table loaded from config.
	// Weapons are shared reference data, never owned by a character.
	WeaponName string `json:"weapon" gorm:"size:32"`
	// Chosen weapon abilities. Informational for now: combat resolution
	// does not consume them.
	WeaponAbility1 string `json:"weapon_ability_1" gorm:"size:48"`
	WeaponAbility2 string `json:"weapon_ability_2" gorm:"size:48"`
}

// Team groups up to six characters under an owning user.
type Team struct {
	gorm.Model
	Name        string      `json:"name" gorm:"size:32"`
	OwnerUserID string      `json:"owner_user_id" gorm:"size:64;index"`
	Characters  []Character `json:"characters"`
}

// BattleReadySize is the exact roster size required for matchmaking.
const BattleReadySize = 6

// Composition caps by character size, and the mage cap.
var sizeCaps = map[int]int{1: 1, 2: 2, 3: 2, 4: 1}

const mageCap = 2

// BattleReady reports whether the team may enter matchmaking: exactly six
// characters, size composition within caps, at most two mages.
func (t *Team) BattleReady() error {
	if len(t.Characters) != BattleReadySize {
		return fmt.Errorf("team must have exactly %d characters, has %d", BattleReadySize, len(t.Characters))
	}
	bySize := map[int]int{}
	mages := 0
	for i := range t.Characters {
		c := &t.Characters[i]
		bySize[c.Size]++
		if c.Type == TypeMage {
			mages++
		}
	}
	for size, n := range bySize {
		limit, ok := sizeCaps[size]
		if !ok {
			return fmt.Errorf("character size %d is out of range", size)
		}
		if n > limit {
			return fmt.Errorf("too many size-%d characters: %d (max %d)", size, n, limit)
		}
	}
	if mages > mageCap {
		return fmt.Errorf("too many mage characters: %d (max %d)", mages, mageCap)
	}
	return nil
}

// RoomStatus tracks the matchmaking lifecycle of a room.
type RoomStatus string

const (
	RoomOpen    RoomStatus = "open"
	RoomMatched RoomStatus = "matched"
)

// Room is a matchmaking unit pairing a host and a joiner by short code.
// The room row persists past match-found so polling clients can keep
// resolving the code; live combat state lives in the battle session keyed
// by the room ID.
type Room struct {
	gorm.Model
	Code         string     `json:"code" gorm:"size:8;uniqueIndex"`
	Status       RoomStatus `json:"status"`
	HostUserID   string     `json:"host_user_id" gorm:"size:64"`
	HostTeamID   uint       `json:"host_team_id"`
	JoinerUserID string     `json:"joiner_user_id" gorm:"size:64"`
	JoinerTeamID uint       `json:"joiner_team_id"`
}

// Matched reports whether a second participant has joined.
func (r *Room) Matched() bool { return r.JoinerUserID != "" }

// IsParticipant reports whether userID is the host or the joiner.
func (r *Room) IsParticipant(userID string) bool {
	return userID != "" && (r.HostUserID == userID || r.JoinerUserID == userID)
}

// PlayerProfile stores the opaque identity issued for a seeded player.
// The core never authenticates; it only compares these IDs.
type PlayerProfile struct {
	gorm.Model
	UserID string `json:"user_id" gorm:"size:64;uniqueIndex"`
	Name   string `json:"name" gorm:"size:40"`
}

func (PlayerProfile) TableName() string { return "player_profiles" }
