package hero_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/Gzeu/cosmic-legends-server/internal/game/hero"
	"github.com/Gzeu/cosmic-legends-server/internal/game/tables"
)

func TestEffectiveStats_CommonLevelOne(t *testing.T) {
	// common multiplier is 1.0 and level 1 yields no flat bonus, so the
	// effective stats equal the class base.
	got := hero.EffectiveStats(tables.ClassWarrior, 1, tables.RarityCommon)
	assert.Equal(t, tables.Classes[tables.ClassWarrior].Base, got)
}

func TestEffectiveStats_RarityAndLevelBonus(t *testing.T) {
	// warrior base strength 8, legendary x2.0, level 10 => +2 flat
	got := hero.EffectiveStats(tables.ClassWarrior, 10, tables.RarityLegendary)
	assert.Equal(t, 18, got.Strength)
	assert.Equal(t, 8, got.Intelligence) // 3*2.0 + 2
}

func TestEffectiveStats_Property_MonotonicInRarity(t *testing.T) {
	classes := tables.ClassNames()
	rapid.Check(t, func(rt *rapid.T) {
		class := rapid.SampledFrom(classes).Draw(rt, "class")
		level := rapid.IntRange(1, 60).Draw(rt, "level")
		rarities := tables.Rarities()
		prev := -1
		for _, r := range rarities {
			total := hero.EffectiveStats(class, level, r).Total()
			assert.Greater(rt, total, prev, "rarity %q", r)
			prev = total
		}
	})
}

func TestHPMP(t *testing.T) {
	stats := tables.StatBlock{Vitality: 7, Intelligence: 3}
	hp, mp := hero.HPMP(stats, 1)
	assert.Equal(t, 75, hp) // 7*10 + 1*5
	assert.Equal(t, 27, mp) // 3*8 + 1*3
}

func TestRestoreFull(t *testing.T) {
	h := hero.Hero{MaxHP: 100, CurrentHP: 3, MaxMP: 40, CurrentMP: 0}
	h.RestoreFull()
	assert.Equal(t, 100, h.CurrentHP)
	assert.Equal(t, 40, h.CurrentMP)
}

func TestAbility_CooldownLifecycle(t *testing.T) {
	a := hero.Ability{Cooldown: 3}
	assert.True(t, a.Ready())
	a.Use()
	assert.False(t, a.Ready())
	assert.Equal(t, 3, a.CurrentCooldown)
	a.TickCooldown()
	a.TickCooldown()
	a.TickCooldown()
	assert.True(t, a.Ready())
	a.TickCooldown() // floors at zero
	assert.Equal(t, 0, a.CurrentCooldown)
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"Zyx the Flamebringer", false},
		{"hero_01", false},
		{"ab", true},
		{"", true},
		{"Zyx!", true},
		{"this name is far too long to be a valid hero name at all", true},
	}
	for _, tc := range tests {
		err := hero.ValidateName(tc.name)
		if tc.wantErr {
			assert.Error(t, err, "name %q", tc.name)
		} else {
			assert.NoError(t, err, "name %q", tc.name)
		}
	}
}
