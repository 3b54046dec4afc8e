package tables

// The AI-generation endpoints present heroes with a five-stat display block
// (health/mana/attack/defense/speed) and their own four-class, four-tier
// tables. These numbers feed the generated stat card and cosmic_power, not
// the combat formulas; the six-stat model above stays canonical for combat.

// DisplayClass identifies one of the four generator-facing classes.
type DisplayClass string

const (
	DisplayWarrior  DisplayClass = "Warrior"
	DisplayMage     DisplayClass = "Mage"
	DisplayRanger   DisplayClass = "Ranger"
	DisplayGuardian DisplayClass = "Guardian"
)

// DisplayStats is the five-stat block shown on generated hero cards.
type DisplayStats struct {
	Health  int `json:"health"`
	Mana    int `json:"mana"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Speed   int `json:"speed"`
}

// Sum returns the total of all five display stats.
func (d DisplayStats) Sum() int {
	return d.Health + d.Mana + d.Attack + d.Defense + d.Speed
}

// DisplayBaseStats holds the base display stat block per generator class.
var DisplayBaseStats = map[DisplayClass]DisplayStats{
	DisplayWarrior:  {Health: 2000, Mana: 600, Attack: 800, Defense: 900, Speed: 500},
	DisplayMage:     {Health: 1500, Mana: 2000, Attack: 1000, Defense: 400, Speed: 700},
	DisplayRanger:   {Health: 1800, Mana: 1200, Attack: 850, Defense: 600, Speed: 1000},
	DisplayGuardian: {Health: 2800, Mana: 800, Attack: 600, Defense: 1200, Speed: 400},
}

// DisplayRarityMultipliers scales display stat cards per tier. Mythic is not
// reachable through the display generator, which rolls only four tiers.
var DisplayRarityMultipliers = map[Rarity]float64{
	RarityCommon:    0.8,
	RarityRare:      1.0,
	RarityEpic:      1.3,
	RarityLegendary: 1.6,
}

// DisplayClasses returns the four generator classes in a stable order.
func DisplayClasses() []DisplayClass {
	return []DisplayClass{DisplayWarrior, DisplayMage, DisplayRanger, DisplayGuardian}
}

// DisplayClassElements maps each generator class to its element name pool.
var DisplayClassElements = map[DisplayClass][]string{
	DisplayWarrior:  {"Fire", "Ice", "Earth", "Air"},
	DisplayMage:     {"Void", "Light", "Shadow", "Arcane"},
	DisplayRanger:   {"Nature", "Wind", "Shadow", "Lightning"},
	DisplayGuardian: {"Light", "Earth", "Cosmic", "Crystal"},
}

// ValidDisplayClass reports whether c names a generator class.
func ValidDisplayClass(c DisplayClass) bool {
	_, ok := DisplayBaseStats[c]
	return ok
}
