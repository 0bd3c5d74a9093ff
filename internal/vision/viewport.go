package vision

import "dungeondelve/server/internal/grid"

// DefaultWindowSize is the edge length of the player-centered viewport.
const DefaultWindowSize = 7

// CellKind classifies what a viewport cell should display.
type CellKind int

const (
	CellFog CellKind = iota
	CellPlayer
	CellVisited
	CellWall
	CellFloor
	CellEnemy
	CellChest
	CellExit
	CellStart
)

// String returns the wire label for snapshot payloads.
func (k CellKind) String() string {
	switch k {
	case CellFog:
		return "fog"
	case CellPlayer:
		return "player"
	case CellVisited:
		return "visited"
	case CellWall:
		return "wall"
	case CellFloor:
		return "floor"
	case CellEnemy:
		return "enemy"
	case CellChest:
		return "chest"
	case CellExit:
		return "exit"
	case CellStart:
		return "start"
	default:
		return "unknown"
	}
}

// Cell is one entry of the rendered viewport window. Wall is meaningful only
// when Kind == CellWall.
type Cell struct {
	Kind CellKind
	Wall WallVariant
}

// Window renders a size×size viewport centered on player. Classification per
// cell: the center cell is the player marker; out-of-bounds or unrevealed
// cells are fog; visited cells show the visited overlay; everything else shows
// its own tile kind, with walls resolved to a contextual variant. The window
// is recomputed from scratch on every call — nothing here is cached.
func Window(g *grid.Grid, state *State, player grid.Position, size int) [][]Cell {
	if size <= 0 {
		size = DefaultWindowSize
	}
	half := size / 2
	window := make([][]Cell, size)
	for row := 0; row < size; row++ {
		window[row] = make([]Cell, size)
		for col := 0; col < size; col++ {
			pos := grid.Position{X: player.X + col - half, Y: player.Y + row - half}
			window[row][col] = classify(g, state, player, pos)
		}
	}
	return window
}

func classify(g *grid.Grid, state *State, player, pos grid.Position) Cell {
	if pos == player {
		return Cell{Kind: CellPlayer}
	}
	if !g.InBounds(pos) || !state.Revealed(pos) {
		return Cell{Kind: CellFog}
	}
	if state.Visited(pos) {
		return Cell{Kind: CellVisited}
	}
	switch g.At(pos) {
	case grid.TileWall:
		return Cell{Kind: CellWall, Wall: WallVariantAt(g, pos)}
	case grid.TileEnemy:
		return Cell{Kind: CellEnemy}
	case grid.TileChest:
		return Cell{Kind: CellChest}
	case grid.TileExit:
		return Cell{Kind: CellExit}
	case grid.TileStart:
		return Cell{Kind: CellStart}
	default:
		return Cell{Kind: CellFloor}
	}
}
