// Package tables holds the static game data: hero classes, rarity tiers,
// elemental matchups, and battlefield environments. Everything in this
// package is constant lookup data with no behavior beyond access helpers.
package tables

// StatBlock holds the six primary hero stats.
type StatBlock struct {
	Strength     int `json:"strength"`
	Intelligence int `json:"intelligence"`
	Agility      int `json:"agility"`
	Vitality     int `json:"vitality"`
	Luck         int `json:"luck"`
	Charisma     int `json:"charisma"`
}

// Total returns the sum of all six stats.
func (s StatBlock) Total() int {
	return s.Strength + s.Intelligence + s.Agility + s.Vitality + s.Luck + s.Charisma
}

// Class identifies a hero class.
type Class string

// The six playable hero classes.
const (
	ClassWarrior  Class = "warrior"
	ClassMage     Class = "mage"
	ClassRanger   Class = "ranger"
	ClassGuardian Class = "guardian"
	ClassAssassin Class = "assassin"
	ClassPaladin  Class = "paladin"
)

// ClassSpec describes a hero class: display name, flavor, base stats,
// primary element, and the ability ids a fresh hero starts with.
type ClassSpec struct {
	Name              string
	Description       string
	Base              StatBlock
	PrimaryElement    Element
	StartingAbilities []string
}

// Classes maps every valid Class to its spec.
var Classes = map[Class]ClassSpec{
	ClassWarrior: {
		Name:              "Cosmic Warrior",
		Description:       "Masters of physical combat with exceptional strength and defense",
		Base:              StatBlock{Strength: 8, Intelligence: 3, Agility: 5, Vitality: 7, Luck: 4, Charisma: 5},
		PrimaryElement:    ElementFire,
		StartingAbilities: []string{"slash", "shield-bash", "war-cry"},
	},
	ClassMage: {
		Name:              "Astral Mage",
		Description:       "Wielders of cosmic magic with devastating spell-casting abilities",
		Base:              StatBlock{Strength: 2, Intelligence: 9, Agility: 4, Vitality: 4, Luck: 6, Charisma: 7},
		PrimaryElement:    ElementWater,
		StartingAbilities: []string{"magic-missile", "mana-shield", "fireball"},
	},
	ClassRanger: {
		Name:              "Void Ranger",
		Description:       "Swift hunters with unmatched agility and precision",
		Base:              StatBlock{Strength: 6, Intelligence: 5, Agility: 9, Vitality: 5, Luck: 7, Charisma: 6},
		PrimaryElement:    ElementAir,
		StartingAbilities: []string{"arrow-shot", "stealth", "multi-shot"},
	},
	ClassGuardian: {
		Name:              "Stellar Guardian",
		Description:       "Ultimate defenders with massive vitality and protective abilities",
		Base:              StatBlock{Strength: 6, Intelligence: 4, Agility: 3, Vitality: 9, Luck: 5, Charisma: 8},
		PrimaryElement:    ElementEarth,
		StartingAbilities: []string{"taunt", "healing-aura", "fortress"},
	},
	ClassAssassin: {
		Name:              "Shadow Assassin",
		Description:       "Masters of stealth and critical strikes",
		Base:              StatBlock{Strength: 7, Intelligence: 6, Agility: 9, Vitality: 4, Luck: 8, Charisma: 3},
		PrimaryElement:    ElementDark,
		StartingAbilities: []string{"backstab", "vanish", "poison-blade"},
	},
	ClassPaladin: {
		Name:              "Divine Paladin",
		Description:       "Holy warriors blessed with healing and protective powers",
		Base:              StatBlock{Strength: 7, Intelligence: 6, Agility: 4, Vitality: 6, Luck: 5, Charisma: 9},
		PrimaryElement:    ElementLight,
		StartingAbilities: []string{"holy-strike", "bless", "divine-protection"},
	},
}

// ClassNames returns all valid classes in a stable order.
func ClassNames() []Class {
	return []Class{ClassWarrior, ClassMage, ClassRanger, ClassGuardian, ClassAssassin, ClassPaladin}
}

// ValidClass reports whether c names a known hero class.
func ValidClass(c Class) bool {
	_, ok := Classes[c]
	return ok
}
