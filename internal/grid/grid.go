package grid

import "fmt"

// TileKind identifies the content of a single dungeon cell.
type TileKind int

const (
	TileWall TileKind = iota
	TileFloor
	TileEnemy
	TileChest
	TileExit
	TileStart
)

// String returns the wire label used in snapshots and logs.
func (k TileKind) String() string {
	switch k {
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileEnemy:
		return "enemy"
	case TileChest:
		return "chest"
	case TileExit:
		return "exit"
	case TileStart:
		return "start"
	default:
		return "unknown"
	}
}

// Walkable reports whether an actor may stand on a tile of this kind.
func (k TileKind) Walkable() bool {
	return k != TileWall
}

// Position addresses a single cell. X grows east, Y grows south.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the position shifted by the given direction.
func (p Position) Add(d Direction) Position {
	return Position{X: p.X + d.DX, Y: p.Y + d.DY}
}

// ManhattanDistance returns the 4-directional step distance to other.
func (p Position) ManhattanDistance(other Position) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Direction is a unit step along one of the four cardinal axes.
type Direction struct {
	DX int
	DY int
}

var (
	North = Direction{DX: 0, DY: -1}
	South = Direction{DX: 0, DY: 1}
	West  = Direction{DX: -1, DY: 0}
	East  = Direction{DX: 1, DY: 0}
)

// CardinalDirections lists the four movement directions in a fixed order.
var CardinalDirections = []Direction{North, South, West, East}

// Grid is the single source of truth for tile state during one dungeon run.
// Dimensions are fixed at construction; the grid is owned exclusively by the
// current run and replaced wholesale when a new run starts.
type Grid struct {
	width  int
	height int
	tiles  []TileKind
}

// New returns a width×height grid filled entirely with Wall tiles.
func New(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("grid: invalid dimensions %dx%d", width, height))
	}
	return &Grid{
		width:  width,
		height: height,
		tiles:  make([]TileKind, width*height),
	}
}

// Dimensions returns the fixed width and height.
func (g *Grid) Dimensions() (int, int) {
	return g.width, g.height
}

// InBounds reports whether pos lies within [0,W)×[0,H).
func (g *Grid) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < g.width && pos.Y >= 0 && pos.Y < g.height
}

// At returns the tile kind at pos. Out-of-bounds access is a contract
// violation: callers are expected to pre-validate with InBounds.
func (g *Grid) At(pos Position) TileKind {
	g.mustContain(pos)
	return g.tiles[pos.Y*g.width+pos.X]
}

// Set replaces the tile kind at pos, with the same bounds contract as At.
func (g *Grid) Set(pos Position, kind TileKind) {
	g.mustContain(pos)
	g.tiles[pos.Y*g.width+pos.X] = kind
}

// IsWalkable reports whether pos is in bounds and not a Wall tile.
func (g *Grid) IsWalkable(pos Position) bool {
	return g.InBounds(pos) && g.tiles[pos.Y*g.width+pos.X].Walkable()
}

// IsBorder reports whether pos sits on the outermost ring of the grid.
func (g *Grid) IsBorder(pos Position) bool {
	return pos.X == 0 || pos.Y == 0 || pos.X == g.width-1 || pos.Y == g.height-1
}

// Count returns the number of tiles of the given kind.
func (g *Grid) Count(kind TileKind) int {
	total := 0
	for _, tile := range g.tiles {
		if tile == kind {
			total++
		}
	}
	return total
}

// Positions returns every cell holding the given kind, scanned row by row.
func (g *Grid) Positions(kind TileKind) []Position {
	var positions []Position
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.tiles[y*g.width+x] == kind {
				positions = append(positions, Position{X: x, Y: y})
			}
		}
	}
	return positions
}

func (g *Grid) mustContain(pos Position) {
	if !g.InBounds(pos) {
		panic(fmt.Sprintf("grid: position (%d,%d) outside %dx%d bounds", pos.X, pos.Y, g.width, g.height))
	}
}
