package battle_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Gzeu/cosmic-legends-server/internal/apperrors"
	"github.com/Gzeu/cosmic-legends-server/internal/game/battle"
	"github.com/Gzeu/cosmic-legends-server/internal/game/dice"
	"github.com/Gzeu/cosmic-legends-server/internal/game/hero"
	"github.com/Gzeu/cosmic-legends-server/internal/game/tables"
	"github.com/Gzeu/cosmic-legends-server/internal/pkg/clock"
	"github.com/Gzeu/cosmic-legends-server/internal/pkg/idgen"
)

var testTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newEngine(src dice.Source) *battle.Engine {
	return battle.NewEngine(src, idgen.NewSequential("action"), clock.Fixed{T: testTime})
}

func twoSeeds() []battle.ParticipantSeed {
	return []battle.ParticipantSeed{
		{PlayerID: "alice", HeroID: "hero_a", HeroName: "Zyx"},
		{PlayerID: "bob", HeroID: "hero_b", HeroName: "Umbra"},
	}
}

func TestCreateBattle_Defaults(t *testing.T) {
	e := newEngine(dice.NewCryptoSource())
	b, err := e.CreateBattle("battle_1", twoSeeds(), "", "")
	require.NoError(t, err)

	assert.Equal(t, battle.StatusActive, b.Status)
	assert.Equal(t, battle.TypePvP, b.Type)
	assert.Equal(t, tables.EnvCosmicVoid, b.Battlefield.Environment)
	assert.Equal(t, []string{"zero_gravity", "void_energy"}, b.Battlefield.Effects)
	assert.Equal(t, 0, b.CurrentTurn)
	assert.Empty(t, b.Actions)

	require.Len(t, b.Participants, 2)
	for i, p := range b.Participants {
		assert.Equal(t, 1000, p.CurrentHealth)
		assert.Equal(t, 1000, p.MaxHealth)
		assert.Equal(t, 500, p.CurrentMana)
		assert.Equal(t, 500, p.MaxMana)
		assert.Equal(t, i, p.Position)
	}
	assert.ElementsMatch(t, []string{"hero_a", "hero_b"}, b.TurnOrder)
}

func TestCreateBattle_CustomCaps(t *testing.T) {
	e := newEngine(dice.NewCryptoSource())
	seeds := []battle.ParticipantSeed{
		{PlayerID: "alice", HeroID: "hero_a", MaxHealth: 2500, MaxMana: 800},
		{PlayerID: "bob", HeroID: "hero_b"},
	}
	b, err := e.CreateBattle("battle_1", seeds, battle.TypeTournament, tables.EnvQuantumArena)
	require.NoError(t, err)

	assert.Equal(t, battle.TypeTournament, b.Type)
	assert.Equal(t, 2500, b.Participants[0].MaxHealth)
	assert.Equal(t, 800, b.Participants[0].MaxMana)
	assert.Equal(t, 1000, b.Participants[1].MaxHealth)
	assert.Equal(t, []string{"reality_shift", "temporal_flux"}, b.Battlefield.Effects)
}

func TestCreateBattle_RequiresTwoParticipants(t *testing.T) {
	e := newEngine(dice.NewCryptoSource())
	_, err := e.CreateBattle("battle_1", twoSeeds()[:1], battle.TypePvP, tables.EnvCosmicVoid)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.CodeOf(err))
}

func TestCreateBattle_RejectsIncompleteSeed(t *testing.T) {
	e := newEngine(dice.NewCryptoSource())
	seeds := []battle.ParticipantSeed{
		{PlayerID: "alice", HeroID: "hero_a"},
		{PlayerID: "bob"},
	}
	_, err := e.CreateBattle("battle_1", seeds, battle.TypePvP, tables.EnvCosmicVoid)
	assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.CodeOf(err))
}

func TestCreateBattle_Property_TurnOrderIsPermutation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(2, 8).Draw(rt, "participants")
		seeds := make([]battle.ParticipantSeed, n)
		ids := make([]string, n)
		for i := range seeds {
			id := rapid.StringMatching(`hero_[a-z]{6}`).Draw(rt, "id")
			seeds[i] = battle.ParticipantSeed{PlayerID: "p", HeroID: id}
			ids[i] = id
		}
		e := newEngine(dice.NewCryptoSource())
		b, err := e.CreateBattle("battle_1", seeds, battle.TypePvE, tables.EnvNebulaRuins)
		require.NoError(rt, err)
		assert.ElementsMatch(rt, ids, b.TurnOrder)
	})
}

// attacker first in turn order regardless of the shuffle roll
func orderedBattle(t *testing.T, e *battle.Engine) *battle.Battle {
	t.Helper()
	b, err := e.CreateBattle("battle_1", twoSeeds(), battle.TypePvP, tables.EnvCosmicVoid)
	require.NoError(t, err)
	b.TurnOrder = []string{"hero_a", "hero_b"}
	return b
}

func TestExecuteAction_AttackDealsDamageAndAdvancesTurn(t *testing.T) {
	e := newEngine(dice.NewCryptoSource())
	b := orderedBattle(t, e)

	res, err := e.ExecuteAction(b, battle.ActionCommand{
		PlayerID: "alice", HeroID: "hero_a", ActionType: battle.ActionAttack, TargetID: "hero_b",
	})
	require.NoError(t, err)

	assert.False(t, res.BattleEnded)
	assert.Equal(t, "hero_b", res.NextHeroID)
	assert.Positive(t, res.Action.DamageDealt)
	assert.Equal(t, 1000-res.Action.DamageDealt, b.Participant("hero_b").CurrentHealth)
	assert.Equal(t, 1, b.CurrentTurn)
	require.Len(t, b.Actions, 1)
	assert.Equal(t, 0, b.Actions[0].Turn)
	assert.Contains(t, res.Message, "attack")
}

func TestExecuteAction_RejectsOutOfTurn(t *testing.T) {
	e := newEngine(dice.NewCryptoSource())
	b := orderedBattle(t, e)

	_, err := e.ExecuteAction(b, battle.ActionCommand{
		PlayerID: "bob", HeroID: "hero_b", ActionType: battle.ActionAttack, TargetID: "hero_a",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeFailedPrecondition, apperrors.CodeOf(err))
	assert.Empty(t, b.Actions)
	assert.Equal(t, 0, b.CurrentTurn)
}

func TestExecuteAction_SkillCostsManaAndHitsHarder(t *testing.T) {
	e := newEngine(dice.NewCryptoSource())
	b := orderedBattle(t, e)

	res, err := e.ExecuteAction(b, battle.ActionCommand{
		PlayerID: "alice", HeroID: "hero_a", ActionType: battle.ActionSkill,
		TargetID: "hero_b", PowerID: "power_1",
	})
	require.NoError(t, err)

	assert.Equal(t, 450, b.Participant("hero_a").CurrentMana)
	assert.Positive(t, res.Action.DamageDealt)
}

func TestExecuteAction_SkillRejectedOnInsufficientMana(t *testing.T) {
	e := newEngine(dice.NewCryptoSource())
	b := orderedBattle(t, e)
	b.Participant("hero_a").CurrentMana = 49

	_, err := e.ExecuteAction(b, battle.ActionCommand{
		PlayerID: "alice", HeroID: "hero_a", ActionType: battle.ActionSkill,
		TargetID: "hero_b", PowerID: "power_1",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeFailedPrecondition, apperrors.CodeOf(err))
	assert.Equal(t, 49, b.Participant("hero_a").CurrentMana)
	assert.Equal(t, 1000, b.Participant("hero_b").CurrentHealth)
}

func TestExecuteAction_SkillWithoutTargetRecordsNothing(t *testing.T) {
	e := newEngine(dice.NewCryptoSource())
	b := orderedBattle(t, e)

	res, err := e.ExecuteAction(b, battle.ActionCommand{
		PlayerID: "alice", HeroID: "hero_a", ActionType: battle.ActionSkill, PowerID: "power_1",
	})
	require.NoError(t, err)
	assert.Zero(t, res.Action.DamageDealt)
	assert.Equal(t, 500, b.Participant("hero_a").CurrentMana)
	assert.Equal(t, 1, b.CurrentTurn)
}

func TestExecuteAction_DefendRecordsAndAdvances(t *testing.T) {
	e := newEngine(dice.NewCryptoSource())
	b := orderedBattle(t, e)

	res, err := e.ExecuteAction(b, battle.ActionCommand{
		PlayerID: "alice", HeroID: "hero_a", ActionType: battle.ActionDefend,
	})
	require.NoError(t, err)
	assert.Zero(t, res.Action.DamageDealt)
	assert.Equal(t, 1, b.CurrentTurn)
	assert.Equal(t, "hero_b", b.TurnOwner())
}

func TestExecuteAction_RejectsUnknownActionType(t *testing.T) {
	e := newEngine(dice.NewCryptoSource())
	b := orderedBattle(t, e)

	_, err := e.ExecuteAction(b, battle.ActionCommand{
		PlayerID: "alice", HeroID: "hero_a", ActionType: battle.ActionType("dance"),
	})
	assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.CodeOf(err))
}

func TestExecuteAction_LethalHitCompletesBattle(t *testing.T) {
	e := newEngine(dice.NewCryptoSource())
	b := orderedBattle(t, e)
	b.Participant("hero_b").CurrentHealth = 1

	res, err := e.ExecuteAction(b, battle.ActionCommand{
		PlayerID: "alice", HeroID: "hero_a", ActionType: battle.ActionAttack, TargetID: "hero_b",
	})
	require.NoError(t, err)

	assert.True(t, res.BattleEnded)
	assert.Empty(t, res.NextHeroID)
	assert.Contains(t, res.Message, "Zyx")
	assert.Equal(t, battle.StatusCompleted, b.Status)
	assert.Equal(t, "alice", b.Winner)
	require.NotNil(t, b.CompletedAt)
	require.NotNil(t, b.Rewards)
	assert.Equal(t, 1000, b.Rewards.Experience)
	assert.Equal(t, 50, b.Rewards.CosmicTokens)
	assert.Equal(t, []string{"cosmic_shard"}, b.Rewards.Items)
	// the turn counter still advances on the closing action
	assert.Equal(t, 1, b.CurrentTurn)
}

func TestExecuteAction_CompletedBattleConflicts(t *testing.T) {
	e := newEngine(dice.NewCryptoSource())
	b := orderedBattle(t, e)
	b.Status = battle.StatusCompleted

	_, err := e.ExecuteAction(b, battle.ActionCommand{
		PlayerID: "alice", HeroID: "hero_a", ActionType: battle.ActionAttack, TargetID: "hero_b",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.CodeOf(err))
	assert.True(t, errors.Is(err, apperrors.Conflict("")))
}

func TestExecuteAction_TeammatesKeepBattleRunning(t *testing.T) {
	e := newEngine(dice.NewCryptoSource())
	seeds := []battle.ParticipantSeed{
		{PlayerID: "alice", HeroID: "hero_a1", HeroName: "Zyx"},
		{PlayerID: "alice", HeroID: "hero_a2", HeroName: "Pyros"},
		{PlayerID: "bob", HeroID: "hero_b", HeroName: "Umbra"},
	}
	b, err := e.CreateBattle("battle_1", seeds, battle.TypePvP, tables.EnvCosmicVoid)
	require.NoError(t, err)
	b.TurnOrder = []string{"hero_b", "hero_a1", "hero_a2"}
	b.Participant("hero_a1").CurrentHealth = 1

	// downing one of alice's heroes leaves her second standing
	res, err := e.ExecuteAction(b, battle.ActionCommand{
		PlayerID: "bob", HeroID: "hero_b", ActionType: battle.ActionAttack, TargetID: "hero_a1",
	})
	require.NoError(t, err)
	assert.False(t, res.BattleEnded)
	assert.Equal(t, battle.StatusActive, b.Status)
}

func TestTurnOwner_WrapsAroundOrder(t *testing.T) {
	b := &battle.Battle{TurnOrder: []string{"a", "b", "c"}}
	owners := []string{}
	for turn := 0; turn < 6; turn++ {
		b.CurrentTurn = turn
		owners = append(owners, b.TurnOwner())
	}
	assert.Equal(t, []string{"a", "b", "c", "a", "b", "c"}, owners)
}

func TestFlatDamage_Bounds(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 500; i++ {
		dmg := battle.FlatDamage(src, 1.0)
		// 100 - 40 = 60 base; worst case 0.9, best case crit at 1.1
		assert.GreaterOrEqual(t, dmg, 54)
		assert.LessOrEqual(t, dmg, 99)
	}
}

func TestFlatDamage_SkillMultiplier(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 500; i++ {
		dmg := battle.FlatDamage(src, 1.5)
		// 150 - 40 = 110 base
		assert.GreaterOrEqual(t, dmg, 99)
		assert.LessOrEqual(t, dmg, 181)
	}
}

func TestHeroDamage_ElementalAndFloor(t *testing.T) {
	attacker := &hero.Hero{
		Element: tables.ElementFire,
		Stats:   tables.StatBlock{Strength: 10},
	}
	defender := &hero.Hero{
		Element: tables.ElementEarth,
		Stats:   tables.StatBlock{Vitality: 200},
	}
	ability := hero.Ability{Type: hero.AbilityAttack, Element: tables.ElementFire, Damage: 20}

	src := dice.NewCryptoSource()
	for i := 0; i < 200; i++ {
		// massive vitality swallows the hit; damage floors at 1
		dmg := battle.HeroDamage(src, attacker, defender, ability, false)
		assert.GreaterOrEqual(t, dmg, 1)
		assert.LessOrEqual(t, dmg, 2)
	}
}

func TestHeroDamage_SpecialScalesOnIntelligence(t *testing.T) {
	attacker := &hero.Hero{Element: tables.ElementNeutral, Stats: tables.StatBlock{Intelligence: 100}}
	defender := &hero.Hero{Element: tables.ElementNeutral, Stats: tables.StatBlock{}}
	ability := hero.Ability{Type: hero.AbilitySpecial, Element: tables.ElementNeutral, Damage: 50}

	src := dice.NewCryptoSource()
	for i := 0; i < 200; i++ {
		// base 50 + 30 = 80, variance within 7.5%
		dmg := battle.HeroDamage(src, attacker, defender, ability, false)
		assert.GreaterOrEqual(t, dmg, 74)
		assert.LessOrEqual(t, dmg, 86)
	}
}

func TestCriticalRoll_HighStatsAlwaysCrit(t *testing.T) {
	src := dice.NewCryptoSource()
	stats := tables.StatBlock{Luck: 200, Agility: 100}
	// 5 + 100 + 20 > 100%
	assert.True(t, battle.CriticalRoll(src, stats))
}
