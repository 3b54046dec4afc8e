// Package battle implements turn-based battle state and resolution.
package battle

import (
	"time"

	"github.com/Gzeu/cosmic-legends-server/internal/game/tables"
)

// Type classifies a battle.
type Type string

const (
	TypePvP        Type = "pvp"
	TypePvE        Type = "pve"
	TypeTournament Type = "tournament"
	TypeGuildWar   Type = "guild_war"
)

// Status tracks a battle through its lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ActionType names the moves a participant can make on their turn.
type ActionType string

const (
	ActionAttack   ActionType = "attack"
	ActionDefend   ActionType = "defend"
	ActionSkill    ActionType = "skill"
	ActionUltimate ActionType = "ultimate"
)

// ValidActionType reports whether t names a known action.
func ValidActionType(t ActionType) bool {
	switch t {
	case ActionAttack, ActionDefend, ActionSkill, ActionUltimate:
		return true
	}
	return false
}

// Participant is one hero's live state inside a battle.
type Participant struct {
	PlayerID      string   `json:"player_id"`
	HeroID        string   `json:"hero_id"`
	HeroName      string   `json:"hero_name"`
	CurrentHealth int      `json:"current_health"`
	MaxHealth     int      `json:"max_health"`
	CurrentMana   int      `json:"current_mana"`
	MaxMana       int      `json:"max_mana"`
	StatusEffects []string `json:"status_effects"`
	Position      int      `json:"position"`
}

// Alive reports whether the participant can still act.
func (p *Participant) Alive() bool {
	return p.CurrentHealth > 0
}

// Action records one resolved move.
type Action struct {
	ID            string     `json:"id"`
	BattleID      string     `json:"battle_id"`
	Turn          int        `json:"turn"`
	PlayerID      string     `json:"player_id"`
	HeroID        string     `json:"hero_id"`
	ActionType    ActionType `json:"action_type"`
	TargetID      string     `json:"target_id,omitempty"`
	PowerID       string     `json:"power_id,omitempty"`
	DamageDealt   int        `json:"damage_dealt"`
	HealingDone   int        `json:"healing_done"`
	StatusEffects []string   `json:"status_effects"`
	Timestamp     time.Time  `json:"timestamp"`
}

// Rewards is the payout granted to the winner when a battle completes.
type Rewards struct {
	Experience   int      `json:"experience"`
	CosmicTokens int      `json:"cosmic_tokens,omitempty"`
	Items        []string `json:"items,omitempty"`
	NFTDrops     []string `json:"nft_drops,omitempty"`
}

// Battlefield describes where the battle takes place.
type Battlefield struct {
	Environment tables.Environment `json:"environment"`
	Effects     []string           `json:"effects"`
}

// Battle is the full state of one battle.
//
// Invariant: TurnOrder holds each participant's hero ID exactly once,
// and the acting hero is always TurnOrder[CurrentTurn % len(TurnOrder)].
type Battle struct {
	ID           string        `json:"id"`
	Type         Type          `json:"type"`
	Status       Status        `json:"status"`
	Participants []Participant `json:"participants"`
	CurrentTurn  int           `json:"current_turn"`
	TurnOrder    []string      `json:"turn_order"`
	Actions      []Action      `json:"actions"`
	Winner       string        `json:"winner,omitempty"`
	Rewards      *Rewards      `json:"rewards,omitempty"`
	Battlefield  Battlefield   `json:"battlefield"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	CompletedAt  *time.Time    `json:"completed_at,omitempty"`
}

// TurnOwner returns the hero ID whose turn it is, or "" when the battle
// has no participants.
func (b *Battle) TurnOwner() string {
	if len(b.TurnOrder) == 0 {
		return ""
	}
	return b.TurnOrder[b.CurrentTurn%len(b.TurnOrder)]
}

// Participant returns the participant with the given hero ID, or nil.
func (b *Battle) Participant(heroID string) *Participant {
	for i := range b.Participants {
		if b.Participants[i].HeroID == heroID {
			return &b.Participants[i]
		}
	}
	return nil
}

// Ended reports whether at most one player still has living heroes.
func (b *Battle) Ended() bool {
	alive := map[string]struct{}{}
	for i := range b.Participants {
		if b.Participants[i].Alive() {
			alive[b.Participants[i].PlayerID] = struct{}{}
		}
	}
	return len(alive) <= 1
}

// FirstSurvivor returns the first participant still standing, or nil.
func (b *Battle) FirstSurvivor() *Participant {
	for i := range b.Participants {
		if b.Participants[i].Alive() {
			return &b.Participants[i]
		}
	}
	return nil
}
