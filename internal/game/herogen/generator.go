// Package herogen procedurally generates hero cards: names, titles,
// lore, display stats and powers, drawn from a content library with
// weighted rarity rolls.
package herogen

import (
	"context"
	"strings"
	"time"

	"github.com/Gzeu/cosmic-legends-server/internal/apperrors"
	"github.com/Gzeu/cosmic-legends-server/internal/flavor"
	"github.com/Gzeu/cosmic-legends-server/internal/game/dice"
	"github.com/Gzeu/cosmic-legends-server/internal/game/tables"
	"github.com/Gzeu/cosmic-legends-server/internal/pkg/clock"
	"github.com/Gzeu/cosmic-legends-server/internal/pkg/idgen"
)

// MaxBatchSize caps how many heroes one batch request may produce.
const MaxBatchSize = 10

const modelVersion = "CosmicAI-v1.0"

// GeneratedHero is the wire shape of a generated hero card.
type GeneratedHero struct {
	ID                    string           `json:"id"`
	Name                  string           `json:"name"`
	Title                 string           `json:"title"`
	Class                 string           `json:"class"`
	Element               string           `json:"element"`
	Rarity                string           `json:"rarity"`
	Backstory             string           `json:"backstory"`
	Personality           string           `json:"personality"`
	AppearanceDescription string           `json:"appearance_description"`
	Stats                 CardStats        `json:"stats"`
	GeneratedPowers       []Power          `json:"generated_powers"`
	PassiveAbility        PassiveAbility   `json:"passive_ability"`
	CosmicOrigin          string           `json:"cosmic_origin"`
	GenerationParams      GenerationParams `json:"generation_params"`
	CreatedAt             time.Time        `json:"created_at"`
}

// CardStats is the display stat block plus the derived cosmic power.
type CardStats struct {
	Health      int `json:"health"`
	Mana        int `json:"mana"`
	Attack      int `json:"attack"`
	Defense     int `json:"defense"`
	Speed       int `json:"speed"`
	CosmicPower int `json:"cosmic_power"`
}

// Power is one generated ability on the card.
type Power struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Element     string `json:"element"`
	PowerLevel  int    `json:"power_level"`
}

// PassiveAbility is the always-on trait every hero carries.
type PassiveAbility struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GenerationParams records how a hero was produced.
type GenerationParams struct {
	Seed            string  `json:"seed"`
	ModelVersion    string  `json:"model_version"`
	CreativityLevel float64 `json:"creativity_level"`
	ThemeAdherence  float64 `json:"theme_adherence"`
}

// Request narrows the generation space. Zero values mean "roll it".
type Request struct {
	Theme       string              `json:"theme,omitempty"`
	Class       tables.DisplayClass `json:"class,omitempty"`
	Element     string              `json:"element,omitempty"`
	Rarity      tables.Rarity       `json:"rarity,omitempty"`
	Level       int                 `json:"level,omitempty"`
	Inspiration string              `json:"inspiration,omitempty"`
}

// Generator produces hero cards. All randomness flows through the
// injected source, so a seeded source replays identical heroes.
type Generator struct {
	src    dice.Source
	ids    idgen.Generator
	clk    clock.Clock
	lib    *Library
	flavor flavor.Generator
}

// New builds a generator. A nil flavor generator means backstories
// always come from the library templates.
//
// Precondition: lib must pass Validate.
func New(src dice.Source, ids idgen.Generator, clk clock.Clock, lib *Library, fl flavor.Generator) *Generator {
	return &Generator{src: src, ids: ids, clk: clk, lib: lib, flavor: fl}
}

// Generate produces one hero honoring any constraints in req. The
// backstory is requested from the flavor generator when one is
// configured; on miss the library template fills in.
//
// Postcondition: the returned hero's cosmic power equals the floored
// sum of its five display stats divided by 2.5.
func (g *Generator) Generate(ctx context.Context, req Request) (*GeneratedHero, error) {
	class := req.Class
	if class == "" {
		class = dice.Pick(g.src, tables.DisplayClasses())
	} else if !tables.ValidDisplayClass(class) {
		return nil, apperrors.InvalidArgumentf("unknown hero class %q", class)
	}

	element := req.Element
	if element == "" {
		element = dice.Pick(g.src, tables.DisplayClassElements[class])
	}

	rarity := req.Rarity
	if rarity == "" {
		rarity = g.rollRarity()
	} else if _, ok := tables.DisplayRarityMultipliers[rarity]; !ok {
		return nil, apperrors.InvalidArgumentf("unknown rarity %q", rarity)
	}

	level := req.Level
	switch {
	case level == 0:
		level = dice.Between(g.src, 1, 10)
	case level < 1 || level > 100:
		return nil, apperrors.InvalidArgumentf("level %d out of range 1-100", level)
	}

	name := g.generateName(class, element)
	title := g.generateTitle(class)
	origin := dice.Pick(g.src, g.lib.Origins)

	hero := &GeneratedHero{
		ID:                    g.ids.Generate(),
		Name:                  name,
		Title:                 title,
		Class:                 string(class),
		Element:               element,
		Rarity:                string(rarity),
		Backstory:             g.generateBackstory(ctx, name, title, class, element, rarity, origin),
		Personality:           g.generatePersonality(class, element),
		AppearanceDescription: g.generateAppearance(class, element, rarity),
		Stats:                 g.generateStats(class, rarity, level),
		GeneratedPowers:       g.generatePowers(class, element, level),
		PassiveAbility: PassiveAbility{
			Name:        element + " Mastery",
			Description: "Inherent connection to " + strings.ToLower(element) + " forces grants enhanced abilities and resistance",
		},
		CosmicOrigin: origin,
		GenerationParams: GenerationParams{
			Seed:            g.generateSeed(),
			ModelVersion:    modelVersion,
			CreativityLevel: 0.8,
			ThemeAdherence:  0.9,
		},
		CreatedAt: g.clk.Now().UTC(),
	}
	return hero, nil
}

// GenerateBatch produces up to MaxBatchSize heroes. Class and element
// constraints are dropped per hero so a batch comes out varied; rarity
// and level constraints still apply.
func (g *Generator) GenerateBatch(ctx context.Context, count int, req Request) ([]*GeneratedHero, error) {
	if count < 1 {
		count = 1
	}
	if count > MaxBatchSize {
		count = MaxBatchSize
	}
	heroes := make([]*GeneratedHero, 0, count)
	for i := 0; i < count; i++ {
		each := req
		each.Class = ""
		each.Element = ""
		hero, err := g.Generate(ctx, each)
		if err != nil {
			return nil, err
		}
		heroes = append(heroes, hero)
	}
	return heroes, nil
}

// rarity tiers roll at 60/25/12/3; mythic is reserved for event drops
// and never rolls here
func (g *Generator) rollRarity() tables.Rarity {
	roll := dice.Float(g.src) * 100
	switch {
	case roll < 60:
		return tables.RarityCommon
	case roll < 85:
		return tables.RarityRare
	case roll < 97:
		return tables.RarityEpic
	default:
		return tables.RarityLegendary
	}
}

func (g *Generator) generateName(class tables.DisplayClass, element string) string {
	pools, ok := g.lib.Names[strings.ToLower(string(class))]
	if !ok || len(pools) == 0 {
		return "Unknown"
	}
	pool, ok := pools[strings.ToLower(element)]
	if !ok || len(pool) == 0 {
		for _, p := range pools {
			pool = append(pool, p...)
		}
	}
	base := dice.Pick(g.src, pool)
	prefix := dice.Pick(g.src, g.lib.NamePrefixes)
	suffix := dice.Pick(g.src, g.lib.NameSuffixes)
	name := prefix + base
	if suffix != "" {
		name += " " + suffix
	}
	return name
}

func (g *Generator) generateTitle(class tables.DisplayClass) string {
	titles, ok := g.lib.Titles[strings.ToLower(string(class))]
	if !ok || len(titles) == 0 {
		return "the Legendary"
	}
	return dice.Pick(g.src, titles)
}

func (g *Generator) generateStats(class tables.DisplayClass, rarity tables.Rarity, level int) CardStats {
	base := tables.DisplayBaseStats[class]
	mult := tables.DisplayRarityMultipliers[rarity] * (1 + float64(level-1)*0.05)
	roll := func(stat int) int {
		return int(float64(stat) * mult * dice.Variance(g.src, 0.10))
	}
	stats := CardStats{
		Health:  roll(base.Health),
		Mana:    roll(base.Mana),
		Attack:  roll(base.Attack),
		Defense: roll(base.Defense),
		Speed:   roll(base.Speed),
	}
	sum := stats.Health + stats.Mana + stats.Attack + stats.Defense + stats.Speed
	stats.CosmicPower = int(float64(sum) / 2.5)
	return stats
}

func (g *Generator) generatePowers(class tables.DisplayClass, element string, level int) []Power {
	pool, ok := g.lib.Powers[strings.ToLower(string(class))]
	if !ok {
		return []Power{}
	}
	lower := strings.ToLower(element)
	powers := []Power{
		{
			Name:        element + " " + dice.Pick(g.src, pool.Attack),
			Description: "A powerful " + lower + " attack that devastates enemies",
			Type:        "attack",
			Element:     element,
			PowerLevel:  300 + level*10,
		},
		{
			Name:        element + " " + dice.Pick(g.src, pool.Defense),
			Description: "A defensive ability that protects against " + lower + " attacks",
			Type:        "defense",
			Element:     element,
			PowerLevel:  200 + level*8,
		},
	}
	if level >= 20 {
		powers = append(powers, Power{
			Name:        element + " " + dice.Pick(g.src, pool.Ultimate),
			Description: "The ultimate " + lower + " technique that can change the tide of battle",
			Type:        "ultimate",
			Element:     element,
			PowerLevel:  500 + level*20,
		})
	}
	return powers
}

func (g *Generator) generateBackstory(ctx context.Context, name, title string, class tables.DisplayClass, element string, rarity tables.Rarity, origin string) string {
	if g.flavor != nil {
		text, err := g.flavor.Backstory(ctx, flavor.Subject{
			Name:    name,
			Title:   title,
			Class:   string(class),
			Element: element,
			Rarity:  string(rarity),
			Origin:  origin,
		})
		if err == nil {
			return text
		}
	}
	tmpl, ok := g.lib.Backstories[strings.ToLower(string(class))]
	if !ok {
		return "A mysterious cosmic entity with unknown origins."
	}
	return renderTemplate(tmpl, map[string]string{
		"name":          name,
		"element":       element,
		"element_lower": strings.ToLower(element),
		"origin":        origin,
	})
}

func (g *Generator) generatePersonality(class tables.DisplayClass, element string) string {
	if byElement, ok := g.lib.Personalities[strings.ToLower(string(class))]; ok {
		if p, ok := byElement[strings.ToLower(element)]; ok {
			return p
		}
	}
	return "A being of mysterious nature and hidden depths"
}

func (g *Generator) generateAppearance(class tables.DisplayClass, element string, rarity tables.Rarity) string {
	return renderTemplate(g.lib.Appearance, map[string]string{
		"rarity":        string(rarity),
		"class_lower":   strings.ToLower(string(class)),
		"element_lower": strings.ToLower(element),
	})
}

const seedAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func (g *Generator) generateSeed() string {
	var b strings.Builder
	for i := 0; i < 9; i++ {
		b.WriteByte(seedAlphabet[g.src.Intn(len(seedAlphabet))])
	}
	return b.String()
}
