package dungeon

import "dungeondelve/server/internal/grid"

// carveFloor writes a Floor tile unless the cell is out of bounds or on the
// border ring. The border stays an unbroken outer wall for the whole run.
// Carving is an idempotent union, so overlapping strokes are harmless.
func carveFloor(g *grid.Grid, pos grid.Position) {
	if !g.InBounds(pos) || g.IsBorder(pos) {
		return
	}
	g.Set(pos, grid.TileFloor)
}

func carveRect(g *grid.Grid, x, y, width, height int) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			carveFloor(g, grid.Position{X: x + dx, Y: y + dy})
		}
	}
}

// carveRoom stamps the room's shape into the grid. All patterns operate on
// the room's bounding rectangle and union their strokes.
func carveRoom(g *grid.Grid, room Room) {
	x, y, w, h := room.X, room.Y, room.Width, room.Height
	switch room.Shape {
	case ShapeL:
		// Vertical strip hugging the left edge plus a horizontal strip along
		// the bottom.
		carveRect(g, x, y, w/2+1, h)
		carveRect(g, x, y+h-(h/2+1), w, h/2+1)
	case ShapeT:
		// Bar across the top with a 3-wide stem through the horizontal center.
		carveRect(g, x, y, w, max(h/3, 1))
		stem := x + w/2 - 1
		if stem < x {
			stem = x
		}
		carveRect(g, stem, y, 3, h)
	case ShapeCross:
		// Middle-third bars crossing at the center.
		carveRect(g, x, y+h/3, w, max(h/3, 1))
		carveRect(g, x+w/3, y, max(w/3, 1), h)
	case ShapeU:
		// Two side strips joined by a half-height strip at the bottom.
		side := max(w/3, 1)
		carveRect(g, x, y, side, h)
		carveRect(g, x+w-side, y, side, h)
		bottom := max(h/2, 1)
		carveRect(g, x, y+h-bottom, w, bottom)
	default:
		carveRect(g, x, y, w, h)
	}
}

// corridorWidth is the thickness of connecting passages.
const corridorWidth = 2

// carveCorridor cuts an L-shaped corridor between two room centers. Whether
// the horizontal or the vertical leg comes first is a coin flip; both legs
// pass through both centers, so connectivity holds either way.
func carveCorridor(g *grid.Grid, from, to grid.Position, horizontalFirst bool) {
	if horizontalFirst {
		carveHorizontal(g, from.X, to.X, from.Y)
		carveVertical(g, from.Y, to.Y, to.X)
	} else {
		carveVertical(g, from.Y, to.Y, from.X)
		carveHorizontal(g, from.X, to.X, to.Y)
	}
}

func carveHorizontal(g *grid.Grid, fromX, toX, y int) {
	if fromX > toX {
		fromX, toX = toX, fromX
	}
	for x := fromX; x <= toX; x++ {
		for t := 0; t < corridorWidth; t++ {
			carveFloor(g, grid.Position{X: x, Y: y + t})
		}
	}
}

func carveVertical(g *grid.Grid, fromY, toY, x int) {
	if fromY > toY {
		fromY, toY = toY, fromY
	}
	for y := fromY; y <= toY; y++ {
		for t := 0; t < corridorWidth; t++ {
			carveFloor(g, grid.Position{X: x + t, Y: y})
		}
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
