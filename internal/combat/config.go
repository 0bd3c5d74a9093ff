package combat

import "dungeondelve/server/roster"

// Config holds the player-side roll ranges. Enemy ranges come from the
// roster template sampled at encounter start.
type Config struct {
	Fight roster.Range `json:"fight"`
	Spell roster.Range `json:"spell"`
	Heal  roster.Range `json:"heal"`
}

// DefaultConfig returns the stock player combat tuning.
func DefaultConfig() Config {
	return Config{
		Fight: roster.Range{Min: 5, Max: 12},
		Spell: roster.Range{Min: 10, Max: 18},
		Heal:  roster.Range{Min: 8, Max: 16},
	}
}

// Normalized clamps nonsensical ranges back to defaults.
func (cfg Config) Normalized() Config {
	defaults := DefaultConfig()
	normalized := cfg
	if normalized.Fight.Validate() != nil || normalized.Fight.Min < 1 {
		normalized.Fight = defaults.Fight
	}
	if normalized.Spell.Validate() != nil || normalized.Spell.Min < 1 {
		normalized.Spell = defaults.Spell
	}
	if normalized.Heal.Validate() != nil || normalized.Heal.Min < 1 {
		normalized.Heal = defaults.Heal
	}
	return normalized
}
