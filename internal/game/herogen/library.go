package herogen

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Gzeu/cosmic-legends-server/internal/game/tables"
)

// Library holds the content pools the generator draws from. Name pools
// are keyed by lowercase class then lowercase element; templates use
// {name}, {element}, {element_lower}, {origin}, {class_lower} and
// {rarity} placeholders.
type Library struct {
	Names         map[string]map[string][]string `yaml:"names"`
	Titles        map[string][]string            `yaml:"titles"`
	Origins       []string                       `yaml:"origins"`
	Powers        map[string]PowerPool           `yaml:"powers"`
	Personalities map[string]map[string]string   `yaml:"personalities"`
	Backstories   map[string]string              `yaml:"backstories"`
	Appearance    string                         `yaml:"appearance"`

	NamePrefixes []string `yaml:"name_prefixes"`
	NameSuffixes []string `yaml:"name_suffixes"`
}

// PowerPool lists ability names per slot for one class.
type PowerPool struct {
	Attack   []string `yaml:"attack"`
	Defense  []string `yaml:"defense"`
	Ultimate []string `yaml:"ultimate"`
}

// Validate checks that every generator class has names, titles, and a
// full power pool.
//
// Postcondition: Returns nil iff the library can serve any class and
// element combination without falling back to zero-value content.
func (l *Library) Validate() error {
	if len(l.Origins) == 0 {
		return fmt.Errorf("hero library: origins must not be empty")
	}
	for _, c := range tables.DisplayClasses() {
		key := strings.ToLower(string(c))
		if len(l.Names[key]) == 0 {
			return fmt.Errorf("hero library: no name pools for class %q", key)
		}
		if len(l.Titles[key]) == 0 {
			return fmt.Errorf("hero library: no titles for class %q", key)
		}
		pool, ok := l.Powers[key]
		if !ok || len(pool.Attack) == 0 || len(pool.Defense) == 0 || len(pool.Ultimate) == 0 {
			return fmt.Errorf("hero library: incomplete power pool for class %q", key)
		}
	}
	return nil
}

// LoadLibrary reads a library from a YAML file and validates it.
//
// Precondition: path must name a readable YAML file.
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hero library %q: %w", path, err)
	}
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("parsing hero library %q: %w", path, err)
	}
	if lib.NamePrefixes == nil {
		lib.NamePrefixes = defaultLibrary.NamePrefixes
	}
	if lib.NameSuffixes == nil {
		lib.NameSuffixes = defaultLibrary.NameSuffixes
	}
	if lib.Appearance == "" {
		lib.Appearance = defaultLibrary.Appearance
	}
	if err := lib.Validate(); err != nil {
		return nil, err
	}
	return &lib, nil
}

// DefaultLibrary returns the built-in content pools.
func DefaultLibrary() *Library {
	return &defaultLibrary
}

var defaultLibrary = Library{
	Names: map[string]map[string][]string{
		"warrior": {
			"fire":  {"Zyx", "Pyros", "Blaze", "Inferno", "Ignis", "Vulcan", "Ember"},
			"ice":   {"Frost", "Glacier", "Blizzard", "Arctic", "Cryo", "Neve", "Icicle"},
			"earth": {"Terra", "Boulder", "Granite", "Quake", "Stone", "Ridge", "Summit"},
			"air":   {"Gale", "Storm", "Tempest", "Zephyr", "Cyclone", "Breeze", "Whirl"},
		},
		"mage": {
			"void":   {"Aria", "Cosmos", "Void", "Nexus", "Quantum", "Stellar", "Nebula"},
			"light":  {"Lux", "Radiant", "Aurora", "Prism", "Lumina", "Dawn", "Ray"},
			"shadow": {"Umbra", "Eclipse", "Midnight", "Shade", "Dusk", "Raven", "Noir"},
			"arcane": {"Mystic", "Spell", "Rune", "Magic", "Cipher", "Enigma", "Sage"},
		},
		"ranger": {
			"nature":    {"Sylph", "Forest", "Grove", "Thorn", "Oak", "Ivy", "Cedar"},
			"wind":      {"Zephyr", "Gust", "Swift", "Breeze", "Drift", "Soar", "Glide"},
			"shadow":    {"Phantom", "Ghost", "Wraith", "Stealth", "Cloak", "Veil", "Shade"},
			"lightning": {"Bolt", "Thunder", "Lightning", "Spark", "Volt", "Flash", "Strike"},
		},
		"guardian": {
			"light":   {"Titan", "Beacon", "Guardian", "Sentinel", "Paladin", "Divine", "Holy"},
			"earth":   {"Mountain", "Fortress", "Bastion", "Shield", "Armor", "Wall", "Keep"},
			"cosmic":  {"Stellar", "Galaxy", "Universe", "Cosmos", "Astral", "Celestial", "Eternal"},
			"crystal": {"Gem", "Crystal", "Diamond", "Prism", "Shard", "Jewel", "Sapphire"},
		},
	},
	Titles: map[string][]string{
		"warrior":  {"the Flamebringer", "the Destroyer", "the Conqueror", "the Mighty", "the Fearless", "the Champion"},
		"mage":     {"the Voidweaver", "the Spellbinder", "the Arcane", "the Mystic", "the Enlightened", "the Sage"},
		"ranger":   {"the Shadowstrike", "the Hunter", "the Swift", "the Tracker", "the Silent", "the Phantom"},
		"guardian": {"the Lightbearer", "the Protector", "the Eternal", "the Divine", "the Steadfast", "the Shield"},
	},
	Origins: []string{
		"The Andromeda Forge Nebula",
		"The Great Void Between Galaxies",
		"The Whispering Dark Between Worlds",
		"The First Light - Origin Point of Creation",
		"The Shattered Constellation of Eternal War",
		"The Temporal Rift of Lost Dimensions",
		"The Crystal Caves of the Quantum Moon",
		"The Stellar Graveyard of Ancient Heroes",
		"The Cosmic Library of Infinite Knowledge",
		"The Phoenix Nebula of Endless Rebirth",
	},
	Powers: map[string]PowerPool{
		"warrior": {
			Attack:   []string{"Devastating Slash", "Berserker Strike", "Crushing Blow", "Fury Combo"},
			Defense:  []string{"Iron Wall", "Battle Stance", "Armor Up", "Shield Slam"},
			Ultimate: []string{"Cosmic Rage", "Divine Wrath", "Apocalypse Strike", "World Breaker"},
		},
		"mage": {
			Attack:   []string{"Arcane Missile", "Elemental Burst", "Mind Blast", "Energy Bolt"},
			Defense:  []string{"Mage Shield", "Barrier Field", "Spell Ward", "Reflection"},
			Ultimate: []string{"Reality Storm", "Cosmic Singularity", "Time Fracture", "Dimension Rift"},
		},
		"ranger": {
			Attack:   []string{"Precision Shot", "Multi Arrow", "Poison Dart", "Hunter Mark"},
			Defense:  []string{"Evasion", "Camouflage", "Trap Field", "Stealth Mode"},
			Ultimate: []string{"Arrow Storm", "Phantom Strike", "Void Rain", "Shadow Barrage"},
		},
		"guardian": {
			Attack:   []string{"Holy Strike", "Divine Hammer", "Judgment", "Righteous Fury"},
			Defense:  []string{"Sanctuary", "Divine Shield", "Healing Aura", "Protection Field"},
			Ultimate: []string{"Stellar Judgment", "Divine Intervention", "Cosmic Sanctuary", "Eternal Light"},
		},
	},
	Personalities: map[string]map[string]string{
		"warrior": {
			"fire":  "Passionate and aggressive, quick to anger but fiercely loyal to allies",
			"ice":   "Cool and calculated, prefers strategic thinking over rash actions",
			"earth": "Steadfast and reliable, values honor and tradition above all",
			"air":   "Swift and unpredictable, adapts quickly to changing situations",
		},
		"mage": {
			"void":   "Mysterious and philosophical, sees patterns others cannot comprehend",
			"light":  "Wise and benevolent, seeks to guide others toward enlightenment",
			"shadow": "Introspective and cunning, understands the necessity of darkness",
			"arcane": "Curious and experimental, constantly pushes magical boundaries",
		},
		"ranger": {
			"nature":    "Patient and observant, deeply connected to natural rhythms",
			"wind":      "Free-spirited and independent, values freedom above comfort",
			"shadow":    "Silent and efficient, speaks only when necessary",
			"lightning": "Energetic and quick-witted, thrives in fast-paced situations",
		},
		"guardian": {
			"light":   "Compassionate and protective, will sacrifice everything for others",
			"earth":   "Patient and enduring, provides stability in chaotic times",
			"cosmic":  "Wise and eternal, sees the bigger picture beyond mortal concerns",
			"crystal": "Pure and focused, maintains clarity even in darkest moments",
		},
	},
	Backstories: map[string]string{
		"warrior":  "Born in the heart of {origin}, {name} was forged through countless battles across the cosmic realms. Wielding the power of {element_lower}, this legendary warrior has never known defeat and seeks only the greatest challenges the universe can offer.",
		"mage":     "{name} transcended mortal limitations eons ago, becoming one with the {element_lower} forces of {origin}. This ancient being manipulates reality itself, weaving spells that can reshape the very fabric of space and time.",
		"ranger":   "From the silent depths of {origin}, {name} emerged as the ultimate cosmic hunter. Moving between dimensions with {element_lower} energy, this phantom strikes with precision that defies the laws of physics.",
		"guardian": "Chosen by the Cosmic Council from {origin}, {name} serves as the eternal protector of universal balance. Channeling pure {element_lower} energy, this divine guardian brings hope to the darkest corners of existence.",
	},
	Appearance:   "A {rarity} {class_lower} radiating {element_lower} energy, with intricate cosmic armor and {element_lower}-infused weapons. Their presence commands respect and fear across all dimensions.",
	NamePrefixes: []string{"", "", "", "Cosmic ", "Stellar ", "Quantum ", "Astral "},
	NameSuffixes: []string{"", "", "", "star", "void", "flux", "prime"},
}

func renderTemplate(tmpl string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
