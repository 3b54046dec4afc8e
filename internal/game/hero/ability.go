package hero

import "github.com/Gzeu/cosmic-legends-server/internal/game/tables"

// AbilityType classifies what an ability does in combat.
type AbilityType string

const (
	AbilityAttack   AbilityType = "attack"
	AbilityDefense  AbilityType = "defense"
	AbilitySpecial  AbilityType = "special"
	AbilityUltimate AbilityType = "ultimate"
)

// Ability is an immutable ability template plus its one mutable field, the
// per-battle cooldown counter.
//
// Damage may be zero or negative; a negative value represents healing.
type Ability struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Type        AbilityType    `json:"type"`
	Element     tables.Element `json:"element"`
	Damage      int            `json:"damage"`
	ManaCost    int            `json:"mana_cost"`
	Cooldown    int            `json:"cooldown"`
	// CurrentCooldown counts down once per owner turn, flooring at zero.
	CurrentCooldown int `json:"current_cooldown"`
}

// Ready reports whether the ability can be used this turn.
func (a *Ability) Ready() bool {
	return a.CurrentCooldown == 0
}

// Use puts the ability on cooldown.
//
// Postcondition: CurrentCooldown == Cooldown.
func (a *Ability) Use() {
	a.CurrentCooldown = a.Cooldown
}

// TickCooldown decrements the cooldown counter by one, flooring at zero.
//
// Postcondition: CurrentCooldown >= 0.
func (a *Ability) TickCooldown() {
	if a.CurrentCooldown > 0 {
		a.CurrentCooldown--
	}
}
