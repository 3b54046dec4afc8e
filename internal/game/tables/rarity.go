package tables

// Rarity identifies a hero rarity tier. Tiers are ordered:
// common < rare < epic < legendary < mythic.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
)

// RarityMultipliers is the canonical stat multiplier per tier, used by the
// six-stat hero model and everything that feeds combat.
var RarityMultipliers = map[Rarity]float64{
	RarityCommon:    1.0,
	RarityRare:      1.2,
	RarityEpic:      1.5,
	RarityLegendary: 2.0,
	RarityMythic:    2.5,
}

// rarityRanks orders the tiers for comparison.
var rarityRanks = map[Rarity]int{
	RarityCommon:    0,
	RarityRare:      1,
	RarityEpic:      2,
	RarityLegendary: 3,
	RarityMythic:    4,
}

// Rarities returns all tiers from common to mythic.
func Rarities() []Rarity {
	return []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary, RarityMythic}
}

// ValidRarity reports whether r names a known rarity tier.
func ValidRarity(r Rarity) bool {
	_, ok := rarityRanks[r]
	return ok
}

// Rank returns the ordinal position of r (common=0 … mythic=4), or -1 for an
// unknown tier.
func (r Rarity) Rank() int {
	rank, ok := rarityRanks[r]
	if !ok {
		return -1
	}
	return rank
}

// RarityFromRoll maps a uniform roll in [0, 100) to a rarity tier using the
// cumulative thresholds: common 60%, rare 25%, epic 12%, legendary 2.5%,
// mythic 0.5%.
//
// Postcondition: returns a valid Rarity for any roll; rolls outside [0, 100)
// clamp to the nearest tier.
func RarityFromRoll(roll float64) Rarity {
	switch {
	case roll >= 99.5:
		return RarityMythic
	case roll >= 97:
		return RarityLegendary
	case roll >= 85:
		return RarityEpic
	case roll >= 60:
		return RarityRare
	default:
		return RarityCommon
	}
}
