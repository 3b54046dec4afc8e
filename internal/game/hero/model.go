// Package hero defines the hero domain model and the pure stat arithmetic
// derived from class, level, and rarity.
package hero

import (
	"time"

	"github.com/Gzeu/cosmic-legends-server/internal/game/tables"
)

// Hero is a player-owned hero's persistent state.
//
// Invariant: 0 <= CurrentHP <= MaxHP and 0 <= CurrentMP <= MaxMP at all
// times. Experience is monotonically increasing; heroes are never destroyed
// by combat (health floors at zero).
type Hero struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Title      string           `json:"title,omitempty"`
	Class      tables.Class     `json:"class"`
	Element    tables.Element   `json:"element"`
	Rarity     tables.Rarity    `json:"rarity"`
	Level      int              `json:"level"`
	Experience int              `json:"experience"`
	Stats      tables.StatBlock `json:"stats"`
	CurrentHP  int              `json:"current_hp"`
	MaxHP      int              `json:"max_hp"`
	CurrentMP  int              `json:"current_mp"`
	MaxMP      int              `json:"max_mp"`
	Abilities  []Ability        `json:"abilities"`
	// StatusEffects holds transient effect tags applied during battles.
	StatusEffects []string `json:"status_effects"`
	Owner         string   `json:"owner"`
	Backstory     string   `json:"backstory,omitempty"`
	NFTID         string   `json:"nft_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalPower returns the sum of all six primary stats.
func (h *Hero) TotalPower() int {
	return h.Stats.Total()
}

// RestoreFull sets current HP/MP to their maximums.
//
// Postcondition: CurrentHP == MaxHP and CurrentMP == MaxMP.
func (h *Hero) RestoreFull() {
	h.CurrentHP = h.MaxHP
	h.CurrentMP = h.MaxMP
}

// EffectiveStats computes a hero's stat block from class base stats, level,
// and rarity: each stat is floor(base * rarityMultiplier) plus a flat
// +floor(level/5) bonus.
//
// Precondition: class must be valid; level >= 1; rarity must be valid.
func EffectiveStats(class tables.Class, level int, rarity tables.Rarity) tables.StatBlock {
	base := tables.Classes[class].Base
	mult := tables.RarityMultipliers[rarity]
	bonus := level / 5

	return tables.StatBlock{
		Strength:     int(float64(base.Strength)*mult) + bonus,
		Intelligence: int(float64(base.Intelligence)*mult) + bonus,
		Agility:      int(float64(base.Agility)*mult) + bonus,
		Vitality:     int(float64(base.Vitality)*mult) + bonus,
		Luck:         int(float64(base.Luck)*mult) + bonus,
		Charisma:     int(float64(base.Charisma)*mult) + bonus,
	}
}

// HPMP derives maximum hit points and mana points from a stat block and
// level: hp = vitality*10 + level*5, mp = intelligence*8 + level*3.
func HPMP(stats tables.StatBlock, level int) (hp, mp int) {
	hp = stats.Vitality*10 + level*5
	mp = stats.Intelligence*8 + level*3
	return hp, mp
}
