package battle

import (
	"fmt"

	"github.com/Gzeu/cosmic-legends-server/internal/apperrors"
	"github.com/Gzeu/cosmic-legends-server/internal/game/dice"
	"github.com/Gzeu/cosmic-legends-server/internal/game/tables"
	"github.com/Gzeu/cosmic-legends-server/internal/pkg/clock"
	"github.com/Gzeu/cosmic-legends-server/internal/pkg/idgen"
)

const (
	defaultMaxHealth = 1000
	defaultMaxMana   = 500
	skillManaCost    = 50
	skillMultiplier  = 1.5

	winExperience = 1000
	winTokens     = 50
)

var winItems = []string{"cosmic_shard"}

// Engine resolves battle rules. Randomness flows through the injected
// source so seeded sources replay identical fights.
type Engine struct {
	src       dice.Source
	actionIDs idgen.Generator
	clk       clock.Clock
}

// NewEngine builds an engine.
func NewEngine(src dice.Source, actionIDs idgen.Generator, clk clock.Clock) *Engine {
	return &Engine{src: src, actionIDs: actionIDs, clk: clk}
}

// ParticipantSeed is the caller-supplied slice of a create request.
// Zero health or mana caps fall back to the arena defaults.
type ParticipantSeed struct {
	PlayerID  string `json:"player_id"`
	HeroID    string `json:"hero_id"`
	HeroName  string `json:"hero_name"`
	MaxHealth int    `json:"max_health,omitempty"`
	MaxMana   int    `json:"max_mana,omitempty"`
}

// CreateBattle assembles a new active battle: participants start at
// full health and mana, turn order is shuffled, and the battlefield
// effects follow the chosen environment.
//
// Precondition: at least two participant seeds.
func (e *Engine) CreateBattle(id string, seeds []ParticipantSeed, battleType Type, env tables.Environment) (*Battle, error) {
	if len(seeds) < 2 {
		return nil, apperrors.InvalidArgument("at least 2 participants required")
	}
	for i, s := range seeds {
		if s.PlayerID == "" || s.HeroID == "" {
			return nil, apperrors.InvalidArgumentf("participant %d missing player_id or hero_id", i)
		}
	}
	if battleType == "" {
		battleType = TypePvP
	}
	if env == "" {
		env = tables.EnvCosmicVoid
	}

	participants := make([]Participant, len(seeds))
	for i, s := range seeds {
		maxHealth := s.MaxHealth
		if maxHealth <= 0 {
			maxHealth = defaultMaxHealth
		}
		maxMana := s.MaxMana
		if maxMana <= 0 {
			maxMana = defaultMaxMana
		}
		participants[i] = Participant{
			PlayerID:      s.PlayerID,
			HeroID:        s.HeroID,
			HeroName:      s.HeroName,
			CurrentHealth: maxHealth,
			MaxHealth:     maxHealth,
			CurrentMana:   maxMana,
			MaxMana:       maxMana,
			StatusEffects: []string{},
			Position:      i,
		}
	}

	order := make([]string, len(participants))
	for i, p := range dice.Shuffle(e.src, participants) {
		order[i] = p.HeroID
	}

	now := e.clk.Now().UTC()
	return &Battle{
		ID:           id,
		Type:         battleType,
		Status:       StatusActive,
		Participants: participants,
		CurrentTurn:  0,
		TurnOrder:    order,
		Actions:      []Action{},
		Battlefield: Battlefield{
			Environment: env,
			Effects:     tables.EnvironmentEffects(env),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ActionCommand is one participant's move for the current turn.
type ActionCommand struct {
	PlayerID   string     `json:"player_id"`
	HeroID     string     `json:"hero_id"`
	ActionType ActionType `json:"action_type"`
	TargetID   string     `json:"target_id,omitempty"`
	PowerID    string     `json:"power_id,omitempty"`
}

// ActionResult reports what one executed action did to the battle.
type ActionResult struct {
	Action      Action `json:"action"`
	BattleEnded bool   `json:"battle_ended"`
	NextHeroID  string `json:"-"`
	Message     string `json:"message"`
}

// ExecuteAction applies cmd to the battle in place.
//
// Precondition: b.Status is StatusActive and it is cmd.HeroID's turn.
// Postcondition: exactly one action is appended and CurrentTurn
// advances by one; when at most one player has living heroes left the
// battle is completed and the survivor takes the rewards.
func (e *Engine) ExecuteAction(b *Battle, cmd ActionCommand) (*ActionResult, error) {
	switch b.Status {
	case StatusActive:
	case StatusCompleted, StatusCancelled:
		return nil, apperrors.Conflictf("battle %s is %s", b.ID, b.Status)
	default:
		return nil, apperrors.FailedPreconditionf("battle %s is not active", b.ID)
	}

	if !ValidActionType(cmd.ActionType) {
		return nil, apperrors.InvalidArgumentf("unknown action type %q", cmd.ActionType)
	}
	if owner := b.TurnOwner(); owner != cmd.HeroID {
		return nil, apperrors.FailedPrecondition("not your turn")
	}

	attacker := b.Participant(cmd.HeroID)
	if attacker == nil {
		return nil, apperrors.InvalidArgument("attacker not found")
	}
	target := b.Participant(cmd.TargetID)

	action := Action{
		ID:            e.actionIDs.Generate(),
		BattleID:      b.ID,
		Turn:          b.CurrentTurn,
		PlayerID:      cmd.PlayerID,
		HeroID:        cmd.HeroID,
		ActionType:    cmd.ActionType,
		TargetID:      cmd.TargetID,
		PowerID:       cmd.PowerID,
		StatusEffects: []string{},
		Timestamp:     e.clk.Now().UTC(),
	}

	switch cmd.ActionType {
	case ActionAttack:
		if target != nil {
			dmg := FlatDamage(e.src, 1.0)
			target.CurrentHealth = max(0, target.CurrentHealth-dmg)
			action.DamageDealt = dmg
		}
	case ActionSkill:
		if cmd.PowerID != "" && target != nil {
			if attacker.CurrentMana < skillManaCost {
				return nil, apperrors.FailedPrecondition("insufficient mana")
			}
			dmg := FlatDamage(e.src, skillMultiplier)
			target.CurrentHealth = max(0, target.CurrentHealth-dmg)
			attacker.CurrentMana -= skillManaCost
			action.DamageDealt = dmg
		}
	case ActionDefend, ActionUltimate:
		// recorded but with no mechanical effect yet
	}

	b.Actions = append(b.Actions, action)

	ended := b.Ended()
	if ended && b.Status == StatusActive {
		b.Status = StatusCompleted
		now := e.clk.Now().UTC()
		b.CompletedAt = &now
		if survivor := b.FirstSurvivor(); survivor != nil {
			b.Winner = survivor.PlayerID
			b.Rewards = &Rewards{
				Experience:   winExperience,
				CosmicTokens: winTokens,
				Items:        winItems,
			}
		}
	}

	b.CurrentTurn++
	b.UpdatedAt = e.clk.Now().UTC()

	result := &ActionResult{Action: action, BattleEnded: ended}
	if ended {
		name := ""
		if s := b.FirstSurvivor(); s != nil {
			name = s.HeroName
		}
		result.Message = fmt.Sprintf("Battle completed! Winner: %s", name)
	} else {
		result.NextHeroID = b.TurnOwner()
		result.Message = fmt.Sprintf("Action executed: %s", cmd.ActionType)
		if action.DamageDealt > 0 {
			result.Message += fmt.Sprintf(" dealing %d damage", action.DamageDealt)
		}
	}
	return result, nil
}
