package dungeon

import (
	"math/rand"

	"dungeondelve/server/internal/grid"
	"dungeondelve/server/internal/vision"
)

// Result is the output of one generation: a connected grid, a fresh fog-of-war
// state with the starting area revealed, and the start/exit anchors. Both
// anchors always reference walkable in-bounds cells.
type Result struct {
	Grid   *grid.Grid
	Vision *vision.State
	Start  grid.Position
	Exit   grid.Position
	Rooms  int
}

// Generate produces a complete dungeon from the configuration. Generation
// never fails: insufficient space degrades to fewer rooms, enemies, or chests.
func Generate(cfg Config) *Result {
	cfg = cfg.Normalized()

	g := grid.New(cfg.Width, cfg.Height)
	roomRNG := NewDeterministicRNG(cfg.Seed, "dungeon.rooms")
	corridorRNG := NewDeterministicRNG(cfg.Seed, "dungeon.corridors")
	placementRNG := NewDeterministicRNG(cfg.Seed, "dungeon.placement")

	rooms := sampleRooms(cfg, roomRNG)
	for _, room := range rooms {
		carveRoom(g, room)
	}

	// Each room connects to its immediate predecessor in acceptance order.
	for i := 1; i < len(rooms); i++ {
		from := rooms[i-1].Center()
		to := rooms[i].Center()
		carveCorridor(g, from, to, corridorRNG.Intn(2) == 0)
	}

	start := placeStart(g, rooms)
	exit := placeExit(g, rooms, start)
	g.Set(start, grid.TileStart)
	g.Set(exit, grid.TileExit)

	placeEntities(g, cfg, placementRNG)

	visState := vision.NewState(cfg.Width, cfg.Height)
	visState.RevealAround(start, cfg.VisionRadius)

	return &Result{
		Grid:   g,
		Vision: visState,
		Start:  start,
		Exit:   exit,
		Rooms:  len(rooms),
	}
}

// placeStart anchors the run at the first room's center. With zero accepted
// rooms the generator still produces a minimal playable dungeon by forcing a
// single floor cell near the middle of the interior.
func placeStart(g *grid.Grid, rooms []Room) grid.Position {
	if len(rooms) > 0 {
		return rooms[0].Center()
	}
	width, height := g.Dimensions()
	fallback := grid.Position{X: width / 2, Y: height / 2}
	fallback = clampToInterior(g, fallback)
	g.Set(fallback, grid.TileFloor)
	return fallback
}

// placeExit prefers the last accepted room's center. With fewer than two
// rooms it falls back to the floor tile of maximum Manhattan distance from
// start, scanned low-x-then-low-y so ties resolve deterministically. If start
// is the only floor tile, one adjacent interior cell is forced open so the
// exit never coincides with the start.
func placeExit(g *grid.Grid, rooms []Room, start grid.Position) grid.Position {
	if len(rooms) >= 2 {
		return rooms[len(rooms)-1].Center()
	}

	width, height := g.Dimensions()
	best := start
	bestDistance := 0
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			pos := grid.Position{X: x, Y: y}
			if g.At(pos) != grid.TileFloor || pos == start {
				continue
			}
			if d := start.ManhattanDistance(pos); d > bestDistance {
				best = pos
				bestDistance = d
			}
		}
	}
	if best != start {
		return best
	}

	for _, dir := range grid.CardinalDirections {
		neighbor := start.Add(dir)
		if g.InBounds(neighbor) && !g.IsBorder(neighbor) {
			g.Set(neighbor, grid.TileFloor)
			return neighbor
		}
	}
	// A 5x5 minimum grid always has an interior neighbor next to the clamped
	// start, so this is unreachable in practice.
	return start
}

// placeEntities scatters enemies and chests by sampling floor tiles without
// replacement. When fewer floor tiles remain than requested, every remaining
// tile is used and the rest of the request is dropped.
func placeEntities(g *grid.Grid, cfg Config, rng *rand.Rand) {
	floors := g.Positions(grid.TileFloor)
	rng.Shuffle(len(floors), func(i, j int) {
		floors[i], floors[j] = floors[j], floors[i]
	})

	next := 0
	for i := 0; i < cfg.EnemyCount && next < len(floors); i++ {
		g.Set(floors[next], grid.TileEnemy)
		next++
	}
	for i := 0; i < cfg.ChestCount && next < len(floors); i++ {
		g.Set(floors[next], grid.TileChest)
		next++
	}
}

func clampToInterior(g *grid.Grid, pos grid.Position) grid.Position {
	width, height := g.Dimensions()
	if pos.X < 1 {
		pos.X = 1
	}
	if pos.X > width-2 {
		pos.X = width - 2
	}
	if pos.Y < 1 {
		pos.Y = 1
	}
	if pos.Y > height-2 {
		pos.Y = height - 2
	}
	return pos
}
