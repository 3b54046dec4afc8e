package tables

// Element identifies a combat element.
type Element string

// Combat elements. Neutral has no matchup relations.
const (
	ElementFire    Element = "fire"
	ElementWater   Element = "water"
	ElementEarth   Element = "earth"
	ElementAir     Element = "air"
	ElementLight   Element = "light"
	ElementDark    Element = "dark"
	ElementNeutral Element = "neutral"
)

// Advantage records the one element an element is strong against and the one
// it is weak against. Empty string means no relation.
type Advantage struct {
	Strong Element
	Weak   Element
}

// Advantages is the elemental matchup table.
//
// Invariant: the strong/weak relations are antisymmetric. If A is strong
// against B then B is never simultaneously strong against A. The fire/water
// and earth/air pairs are symmetric opposites; light and dark each prey on
// neutral, and neutral has no relations at all.
var Advantages = map[Element]Advantage{
	ElementFire:    {Strong: ElementEarth, Weak: ElementWater},
	ElementWater:   {Strong: ElementFire, Weak: ElementEarth},
	ElementEarth:   {Strong: ElementWater, Weak: ElementAir},
	ElementAir:     {Strong: ElementEarth, Weak: ElementFire},
	ElementLight:   {Strong: ElementNeutral, Weak: ElementDark},
	ElementDark:    {Strong: ElementNeutral, Weak: ElementLight},
	ElementNeutral: {},
}

// Elements returns all combat elements in a stable order.
func Elements() []Element {
	return []Element{ElementFire, ElementWater, ElementEarth, ElementAir, ElementLight, ElementDark, ElementNeutral}
}

// ValidElement reports whether e names a known combat element.
func ValidElement(e Element) bool {
	_, ok := Advantages[e]
	return ok
}

// ElementalMultiplier returns the damage multiplier for an attacker element
// hitting a defender element: 1.25 when strong against it, 0.8 when weak
// against it, 1.0 otherwise (including unknown elements).
func ElementalMultiplier(attacker, defender Element) float64 {
	adv, ok := Advantages[attacker]
	if !ok {
		return 1.0
	}
	switch {
	case adv.Strong != "" && defender == adv.Strong:
		return 1.25
	case adv.Weak != "" && defender == adv.Weak:
		return 0.8
	default:
		return 1.0
	}
}
