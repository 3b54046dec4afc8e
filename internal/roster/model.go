// Package roster manages the persistent hero collection: the heroes
// players own, level, and trade, as opposed to the transient combat
// state in the battle package.
package roster

import (
	"strings"
	"time"

	"github.com/Gzeu/cosmic-legends-server/internal/game/dice"
	"github.com/Gzeu/cosmic-legends-server/internal/game/tables"
)

// Power is one learned ability on a roster hero.
type Power struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Element     string `json:"element"`
	Damage      int    `json:"damage,omitempty"`
	Cooldown    int    `json:"cooldown"`
	ManaCost    int    `json:"manaCost"`
	Rarity      string `json:"rarity"`
}

// Hero is a collection hero with its display stat card.
type Hero struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Title      string              `json:"title"`
	Class      tables.DisplayClass `json:"class"`
	Element    string              `json:"element"`
	Rarity     tables.Rarity       `json:"rarity"`
	Level      int                 `json:"level"`
	Experience int                 `json:"experience"`
	Stats      CardStats           `json:"stats"`
	Powers     []Power             `json:"powers"`
	Owner      string              `json:"owner"`
	NFTID      string              `json:"nft_id,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// CardStats is the stored stat card.
type CardStats struct {
	Health      int `json:"health"`
	Mana        int `json:"mana"`
	Attack      int `json:"attack"`
	Defense     int `json:"defense"`
	Speed       int `json:"speed"`
	CosmicPower int `json:"cosmic_power"`
}

// Filter narrows List queries. Zero fields match everything.
type Filter struct {
	Owner  string
	Class  string
	Rarity string
	Limit  int
	Offset int
}

// Matches reports whether the hero passes the filter's field
// predicates. Pagination is the store's concern.
func (f Filter) Matches(h *Hero) bool {
	if f.Owner != "" && h.Owner != f.Owner {
		return false
	}
	if f.Class != "" && !strings.EqualFold(string(h.Class), f.Class) {
		return false
	}
	if f.Rarity != "" && !strings.EqualFold(string(h.Rarity), f.Rarity) {
		return false
	}
	return true
}

// creation tiers roll at 50/30/15/5
var creationWeights = []struct {
	rarity tables.Rarity
	weight float64
}{
	{tables.RarityCommon, 50},
	{tables.RarityRare, 30},
	{tables.RarityEpic, 15},
	{tables.RarityLegendary, 5},
}

// RollCreationRarity draws the rarity for a newly minted hero.
func RollCreationRarity(src dice.Source) tables.Rarity {
	roll := dice.Float(src) * 100
	for _, tier := range creationWeights {
		if roll <= tier.weight {
			return tier.rarity
		}
		roll -= tier.weight
	}
	return tables.RarityCommon
}

// BuildStats derives a fresh stat card from the class base and the
// rarity multiplier. Cosmic power is half the scaled stat total.
func BuildStats(class tables.DisplayClass, rarity tables.Rarity) CardStats {
	base := tables.DisplayBaseStats[class]
	mult := tables.DisplayRarityMultipliers[rarity]
	return CardStats{
		Health:      int(float64(base.Health) * mult),
		Mana:        int(float64(base.Mana) * mult),
		Attack:      int(float64(base.Attack) * mult),
		Defense:     int(float64(base.Defense) * mult),
		Speed:       int(float64(base.Speed) * mult),
		CosmicPower: int(float64(base.Sum()) * mult / 2),
	}
}
