package tables

// Environment identifies a battlefield environment.
type Environment string

const (
	EnvCosmicVoid   Environment = "cosmic_void"
	EnvStellarForge Environment = "stellar_forge"
	EnvNebulaRuins  Environment = "nebula_ruins"
	EnvQuantumArena Environment = "quantum_arena"
)

// environmentEffects maps each environment to its passive battlefield effects.
var environmentEffects = map[Environment][]string{
	EnvCosmicVoid:   {"zero_gravity", "void_energy"},
	EnvStellarForge: {"fire_damage_boost", "metal_armor_bonus"},
	EnvNebulaRuins:  {"energy_regeneration", "mystical_enhancement"},
	EnvQuantumArena: {"reality_shift", "temporal_flux"},
}

// EnvironmentEffects returns a copy of the effect list for env, or an empty
// slice for an unknown environment.
func EnvironmentEffects(env Environment) []string {
	effects, ok := environmentEffects[env]
	if !ok {
		return []string{}
	}
	out := make([]string, len(effects))
	copy(out, effects)
	return out
}

// Environments returns the known battlefield environments in a stable order.
func Environments() []Environment {
	return []Environment{EnvCosmicVoid, EnvStellarForge, EnvNebulaRuins, EnvQuantumArena}
}
