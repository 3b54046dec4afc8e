package battle

import (
	"github.com/Gzeu/cosmic-legends-server/internal/game/dice"
	"github.com/Gzeu/cosmic-legends-server/internal/game/hero"
	"github.com/Gzeu/cosmic-legends-server/internal/game/tables"
)

// Flat combat profile used when heroes fight without loaded stat
// sheets. Attack and defense are fixed so matches stay symmetric.
const (
	flatAttack     = 100
	flatDefense    = 80
	flatCritChance = 15
	critMultiplier = 1.5
)

// FlatDamage resolves one hit under the flat profile: attack scaled by
// the move multiplier, less half the defense, with a crit roll and a
// variance roll folded in before flooring.
//
// Postcondition: the result is at least 1.
func FlatDamage(src dice.Source, multiplier float64) int {
	base := flatAttack*multiplier - flatDefense*0.5
	if dice.Chance(src, flatCritChance) {
		base *= critMultiplier
	}
	dmg := int(base * dice.Variance(src, 0.10))
	if dmg < 1 {
		return 1
	}
	return dmg
}

// CriticalRoll decides whether an attacker with the given stats lands
// a critical hit. Luck and agility raise the 5% base chance.
func CriticalRoll(src dice.Source, stats tables.StatBlock) bool {
	chance := 5 + stats.Luck/2 + stats.Agility/5
	return dice.Chance(src, float64(chance))
}

// HeroDamage resolves an ability hit between two fully statted heroes.
// Attack abilities scale on strength, special abilities on
// intelligence; elemental matchups and the defender's vitality adjust
// the total before the crit and variance rolls.
//
// Postcondition: the result is at least 1.
func HeroDamage(src dice.Source, attacker, defender *hero.Hero, ability hero.Ability, critical bool) int {
	base := ability.Damage
	switch ability.Type {
	case hero.AbilityAttack:
		base += attacker.Stats.Strength / 2
	case hero.AbilitySpecial:
		base += attacker.Stats.Intelligence * 3 / 10
	}

	base = int(float64(base) * tables.ElementalMultiplier(ability.Element, defender.Element))

	base -= defender.Stats.Vitality * 3 / 10
	if base < 1 {
		base = 1
	}

	if critical {
		base = int(float64(base) * critMultiplier)
	}

	// variance stays within +/-7.5% of the computed total
	dmg := int(float64(base) * dice.Variance(src, 0.075))
	if dmg < 1 {
		return 1
	}
	return dmg
}
