// Package progression implements hero experience and leveling rules.
//
// Experience requirements grow geometrically: each level costs half again
// as much as the one before it. Levels confer flat stat bonuses every
// fifth level and a full restore on level up.
package progression

import (
	"math"

	"github.com/Gzeu/cosmic-legends-server/internal/game/hero"
)

// BattleType selects the experience multiplier applied to battle rewards.
type BattleType string

const (
	BattlePvE        BattleType = "pve"
	BattlePvP        BattleType = "pvp"
	BattleTournament BattleType = "tournament"
)

var battleMultipliers = map[BattleType]float64{
	BattlePvE:        1.0,
	BattlePvP:        1.5,
	BattleTournament: 2.0,
}

// ExperienceForLevel returns the experience needed to advance from
// level to level+1.
//
// Precondition: level >= 1.
func ExperienceForLevel(level int) int {
	if level < 1 {
		return 0
	}
	return int(math.Floor(100 * math.Pow(1.5, float64(level-1))))
}

// TotalExperienceForLevel returns the cumulative experience required to
// reach level starting from level 1 with zero experience.
func TotalExperienceForLevel(level int) int {
	total := 0
	for l := 1; l < level; l++ {
		total += ExperienceForLevel(l)
	}
	return total
}

// LevelFromExperience returns the level a hero with the given total
// experience has reached.
//
// Postcondition: LevelFromExperience(TotalExperienceForLevel(n)) == n.
func LevelFromExperience(experience int) int {
	level := 1
	remaining := experience
	for {
		cost := ExperienceForLevel(level)
		if remaining < cost {
			return level
		}
		remaining -= cost
		level++
	}
}

// ExperienceGain computes the experience awarded for defeating an
// opponent. Fighting above your level pays a premium, fighting below
// never pays less than the base.
func ExperienceGain(winnerLevel, loserLevel int, battleType BattleType) int {
	mult, ok := battleMultipliers[battleType]
	if !ok {
		mult = 1.0
	}
	diff := loserLevel - winnerLevel
	bonus := diff * 10
	if bonus < 0 {
		bonus = 0
	}
	return int(math.Floor(float64(100+bonus) * mult))
}

// LevelUpResult describes the outcome of applying experience to a hero.
type LevelUpResult struct {
	LeveledUp bool `json:"leveled_up"`
	OldLevel  int  `json:"old_level"`
	NewLevel  int  `json:"new_level"`
	StatGain  int  `json:"stat_gain"`
}

// AddExperience credits experience to the hero and applies any level
// ups it earns, recomputing stats and fully restoring the hero on gain.
//
// Invariant: the hero's level always matches LevelFromExperience of its
// total experience after this call.
func AddExperience(h *hero.Hero, amount int) LevelUpResult {
	if amount < 0 {
		amount = 0
	}
	oldLevel := h.Level
	h.Experience += amount
	newLevel := LevelFromExperience(h.Experience)
	result := LevelUpResult{OldLevel: oldLevel, NewLevel: oldLevel}
	if newLevel <= oldLevel {
		return result
	}
	h.Level = newLevel
	h.Stats = hero.EffectiveStats(h.Class, newLevel, h.Rarity)
	// every fifth level grants a flat bonus to all stats on top of the
	// class curve
	gain := newLevel/5 - oldLevel/5
	h.MaxHP, h.MaxMP = hero.HPMP(h.Stats, newLevel)
	h.RestoreFull()
	result.LeveledUp = true
	result.NewLevel = newLevel
	result.StatGain = gain
	return result
}
