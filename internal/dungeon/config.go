package dungeon

import "strings"

const (
	DefaultSeed         = "prototype"
	DefaultWidth        = 48
	DefaultHeight       = 32
	DefaultMinRooms     = 5
	DefaultMaxRooms     = 9
	DefaultMinRoomSize  = 5
	DefaultMaxRoomSize  = 9
	DefaultEnemyCount   = 6
	DefaultChestCount   = 4
	DefaultVisionRadius = 3
)

// Config drives one dungeon generation. Invalid values are clamped rather
// than rejected; generation never fails.
type Config struct {
	Seed         string `json:"seed"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	MinRooms     int    `json:"minRooms"`
	MaxRooms     int    `json:"maxRooms"`
	MinRoomSize  int    `json:"minRoomSize"`
	MaxRoomSize  int    `json:"maxRoomSize"`
	EnemyCount   int    `json:"enemyCount"`
	ChestCount   int    `json:"chestCount"`
	VisionRadius int    `json:"visionRadius"`
}

// Normalized returns a copy with defaults applied and invalid values clamped.
func (cfg Config) Normalized() Config {
	normalized := cfg
	normalized.Seed = strings.TrimSpace(normalized.Seed)
	if normalized.Seed == "" {
		normalized.Seed = DefaultSeed
	}
	if normalized.Width < 5 {
		normalized.Width = DefaultWidth
	}
	if normalized.Height < 5 {
		normalized.Height = DefaultHeight
	}
	if normalized.MinRooms < 1 {
		normalized.MinRooms = DefaultMinRooms
	}
	if normalized.MaxRooms < 1 {
		normalized.MaxRooms = DefaultMaxRooms
	}
	if normalized.MaxRooms < normalized.MinRooms {
		normalized.MaxRooms = normalized.MinRooms
	}
	if normalized.MinRoomSize < 3 {
		normalized.MinRoomSize = DefaultMinRoomSize
	}
	if normalized.MaxRoomSize < 1 {
		normalized.MaxRoomSize = DefaultMaxRoomSize
	}
	if normalized.MaxRoomSize < normalized.MinRoomSize {
		normalized.MaxRoomSize = normalized.MinRoomSize
	}
	if normalized.EnemyCount < 0 {
		normalized.EnemyCount = 0
	}
	if normalized.ChestCount < 0 {
		normalized.ChestCount = 0
	}
	if normalized.VisionRadius < 1 {
		normalized.VisionRadius = DefaultVisionRadius
	}
	return normalized
}

// DefaultConfig returns the stock dungeon parameters.
func DefaultConfig() Config {
	return Config{
		Seed:         DefaultSeed,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		MinRooms:     DefaultMinRooms,
		MaxRooms:     DefaultMaxRooms,
		MinRoomSize:  DefaultMinRoomSize,
		MaxRoomSize:  DefaultMaxRoomSize,
		EnemyCount:   DefaultEnemyCount,
		ChestCount:   DefaultChestCount,
		VisionRadius: DefaultVisionRadius,
	}
}
