package vision

import "dungeondelve/server/internal/grid"

// WallVariant selects one of the 13 wall sub-tiles: four straight edges, four
// outer corners, four inner corners, and a fully enclosed solid block.
// Variants are named by the direction of the adjacent open space.
type WallVariant int

const (
	WallSolid WallVariant = iota
	WallEdgeNorth
	WallEdgeSouth
	WallEdgeEast
	WallEdgeWest
	WallCornerNE
	WallCornerNW
	WallCornerSE
	WallCornerSW
	WallInnerNE
	WallInnerNW
	WallInnerSE
	WallInnerSW
)

// String returns the wire label for snapshot payloads.
func (v WallVariant) String() string {
	switch v {
	case WallEdgeNorth:
		return "edge-north"
	case WallEdgeSouth:
		return "edge-south"
	case WallEdgeEast:
		return "edge-east"
	case WallEdgeWest:
		return "edge-west"
	case WallCornerNE:
		return "corner-ne"
	case WallCornerNW:
		return "corner-nw"
	case WallCornerSE:
		return "corner-se"
	case WallCornerSW:
		return "corner-sw"
	case WallInnerNE:
		return "inner-ne"
	case WallInnerNW:
		return "inner-nw"
	case WallInnerSE:
		return "inner-se"
	case WallInnerSW:
		return "inner-sw"
	default:
		return "solid"
	}
}

// WallVariantAt resolves the wall sub-tile at pos from the walkability of its
// four cardinal and four diagonal neighbors. Pure function of the local
// neighborhood; recomputed on every render.
func WallVariantAt(g *grid.Grid, pos grid.Position) WallVariant {
	north := g.IsWalkable(grid.Position{X: pos.X, Y: pos.Y - 1})
	south := g.IsWalkable(grid.Position{X: pos.X, Y: pos.Y + 1})
	east := g.IsWalkable(grid.Position{X: pos.X + 1, Y: pos.Y})
	west := g.IsWalkable(grid.Position{X: pos.X - 1, Y: pos.Y})

	switch {
	case north && west:
		return WallCornerNW
	case north && east:
		return WallCornerNE
	case south && west:
		return WallCornerSW
	case south && east:
		return WallCornerSE
	case north:
		return WallEdgeNorth
	case south:
		return WallEdgeSouth
	case east:
		return WallEdgeEast
	case west:
		return WallEdgeWest
	}

	// No open cardinal neighbor: inner corners show where a single diagonal
	// opening touches the wall.
	northEast := g.IsWalkable(grid.Position{X: pos.X + 1, Y: pos.Y - 1})
	northWest := g.IsWalkable(grid.Position{X: pos.X - 1, Y: pos.Y - 1})
	southEast := g.IsWalkable(grid.Position{X: pos.X + 1, Y: pos.Y + 1})
	southWest := g.IsWalkable(grid.Position{X: pos.X - 1, Y: pos.Y + 1})

	switch {
	case northWest:
		return WallInnerNW
	case northEast:
		return WallInnerNE
	case southWest:
		return WallInnerSW
	case southEast:
		return WallInnerSE
	default:
		return WallSolid
	}
}
