package roster

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
)

// Range is an inclusive [Min, Max] integer interval used for health, attack,
// and reward rolls.
type Range struct {
	Min int `json:"min" jsonschema:"title=Minimum,description=Inclusive lower bound of the roll"`
	Max int `json:"max" jsonschema:"title=Maximum,description=Inclusive upper bound of the roll"`
}

// Roll samples uniformly from the interval, degrading to Min when the range
// is empty or inverted.
func (r Range) Roll(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

// Contains reports whether v falls inside the interval.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Validate rejects negative or inverted intervals.
func (r Range) Validate() error {
	if r.Min < 0 {
		return fmt.Errorf("min %d is negative", r.Min)
	}
	if r.Max < r.Min {
		return fmt.Errorf("max %d is below min %d", r.Max, r.Min)
	}
	return nil
}

// Template models one designer-authored enemy entry. The combat engine treats
// templates as read-only configuration sampled once per encounter.
type Template struct {
	Name   string `json:"name" jsonschema:"title=Enemy name,description=Display name shown in the battle log"`
	Health Range  `json:"health" jsonschema:"description=Encounter health is rolled once from this range"`
	Attack Range  `json:"attack" jsonschema:"description=Per-turn enemy damage roll bounds"`
	Reward Range  `json:"reward" jsonschema:"description=Coin reward rolled once on defeat"`
}

// Validate checks a single template for authoring mistakes.
func (t Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("template has no name")
	}
	if err := t.Health.Validate(); err != nil {
		return fmt.Errorf("template %q health: %w", t.Name, err)
	}
	if t.Health.Min < 1 {
		return fmt.Errorf("template %q health min %d is below 1", t.Name, t.Health.Min)
	}
	if err := t.Attack.Validate(); err != nil {
		return fmt.Errorf("template %q attack: %w", t.Name, err)
	}
	if err := t.Reward.Validate(); err != nil {
		return fmt.Errorf("template %q reward: %w", t.Name, err)
	}
	return nil
}

// FileDefinitions represents the contents of config/enemies.json. The schema
// generator shares this type so the emitted document matches the loader.
type FileDefinitions []Template

// Load reads and validates a roster file.
func Load(path string) ([]Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	var definitions FileDefinitions
	if err := json.Unmarshal(data, &definitions); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	if err := Validate(definitions); err != nil {
		return nil, err
	}
	return definitions, nil
}

// Validate checks the whole roster, rejecting empty files and duplicates.
func Validate(templates []Template) error {
	if len(templates) == 0 {
		return fmt.Errorf("roster is empty")
	}
	seen := make(map[string]struct{}, len(templates))
	for _, template := range templates {
		if err := template.Validate(); err != nil {
			return err
		}
		if _, dup := seen[template.Name]; dup {
			return fmt.Errorf("duplicate template %q", template.Name)
		}
		seen[template.Name] = struct{}{}
	}
	return nil
}

// Defaults returns the built-in roster used when no config file is present.
func Defaults() []Template {
	return []Template{
		{
			Name:   "Goblin",
			Health: Range{Min: 12, Max: 20},
			Attack: Range{Min: 3, Max: 8},
			Reward: Range{Min: 5, Max: 15},
		},
		{
			Name:   "Skeleton",
			Health: Range{Min: 18, Max: 28},
			Attack: Range{Min: 5, Max: 11},
			Reward: Range{Min: 10, Max: 25},
		},
		{
			Name:   "Cave Slime",
			Health: Range{Min: 8, Max: 14},
			Attack: Range{Min: 2, Max: 6},
			Reward: Range{Min: 3, Max: 10},
		},
		{
			Name:   "Dread Knight",
			Health: Range{Min: 30, Max: 45},
			Attack: Range{Min: 8, Max: 16},
			Reward: Range{Min: 25, Max: 50},
		},
	}
}
