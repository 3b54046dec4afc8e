package herogen

import "github.com/Gzeu/cosmic-legends-server/internal/game/tables"

// RarityOdds describes one rarity tier for clients.
type RarityOdds struct {
	Chance     string `json:"chance"`
	PowerBonus string `json:"power_bonus"`
}

// Options is the payload clients use to build their generation forms.
type Options struct {
	Classes        []tables.DisplayClass            `json:"classes"`
	Elements       map[tables.DisplayClass][]string `json:"elements"`
	Rarities       map[string]RarityOdds            `json:"rarities"`
	GenerationCost map[string]string                `json:"generation_cost"`
}

// GenerationOptions returns the class, element, and rarity menus along
// with the mint cost table.
func GenerationOptions() Options {
	return Options{
		Classes:  tables.DisplayClasses(),
		Elements: tables.DisplayClassElements,
		Rarities: map[string]RarityOdds{
			"common":    {Chance: "60%", PowerBonus: "0%"},
			"rare":      {Chance: "25%", PowerBonus: "20%"},
			"epic":      {Chance: "12%", PowerBonus: "50%"},
			"legendary": {Chance: "3%", PowerBonus: "100%"},
		},
		GenerationCost: map[string]string{
			"common":    "0.1 EGLD",
			"rare":      "0.3 EGLD",
			"epic":      "0.8 EGLD",
			"legendary": "2.0 EGLD",
		},
	}
}
